package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

var (
	// ErrUnknownIdentity is returned when no user matches the login email or token subject
	ErrUnknownIdentity = errors.New("unknown identity")

	// ErrBadCredential is returned when the password does not match
	ErrBadCredential = errors.New("bad credential")

	// ErrUnauthenticated wraps every token verification failure
	ErrUnauthenticated = errors.New("unauthenticated")
)

const TokenType = "bearer"

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        *model.User
}

// Service implements the login flow and resolves bearer tokens to users.
type Service struct {
	users  repository.UserRepositoryInterface
	tokens *TokenService
}

func NewService(users repository.UserRepositoryInterface, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnknownIdentity
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !CheckPassword(user.Password, password) {
		return nil, ErrBadCredential
	}

	token, err := s.tokens.Issue(user.EmailAddress)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{AccessToken: token, TokenType: TokenType, User: user}, nil
}

// Resolve verifies tokenStr and loads the user named by its subject.
func (s *Service) Resolve(ctx context.Context, tokenStr string) (*model.User, error) {
	email, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnknownIdentity
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
