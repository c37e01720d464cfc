// Package guard holds the precondition checks run before a mutation: the
// referenced parent must exist, and the acting user must own the board the
// target belongs to.
package guard

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ErrForbidden is returned when the actor may not modify the resource.
var ErrForbidden = errors.New("forbidden")

// ForbiddenError names the kind of resource the actor tried to modify.
type ForbiddenError struct {
	Kind string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("Not allowed to modify this %s", e.Kind)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

type Guard struct {
	users  repository.UserRepositoryInterface
	boards repository.BoardRepositoryInterface
	lists  repository.ListRepositoryInterface
	cards  repository.CardRepositoryInterface
}

func New(
	users repository.UserRepositoryInterface,
	boards repository.BoardRepositoryInterface,
	lists repository.ListRepositoryInterface,
	cards repository.CardRepositoryInterface,
) *Guard {
	return &Guard{users: users, boards: boards, lists: lists, cards: cards}
}

func (g *Guard) User(ctx context.Context, id uint) (*model.User, error) {
	return g.users.GetByID(ctx, id)
}

func (g *Guard) Board(ctx context.Context, id uint) (*model.Board, error) {
	return g.boards.GetByID(ctx, id)
}

func (g *Guard) List(ctx context.Context, id uint) (*model.List, error) {
	return g.lists.GetByID(ctx, id)
}

func (g *Guard) Card(ctx context.Context, id uint) (*model.Card, error) {
	return g.cards.GetByID(ctx, id)
}

// OwnedBoard loads the board and checks that actorID owns it.
func (g *Guard) OwnedBoard(ctx context.Context, boardID, actorID uint) (*model.Board, error) {
	board, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board.OwnerUserID != actorID {
		return nil, &ForbiddenError{Kind: "board"}
	}
	return board, nil
}

// OwnedList loads the list and checks that actorID owns its board.
func (g *Guard) OwnedList(ctx context.Context, listID, actorID uint) (*model.List, error) {
	list, err := g.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := g.ownsBoard(ctx, list.BoardID, actorID, "list"); err != nil {
		return nil, err
	}
	return list, nil
}

// OwnedCard loads the card and checks that actorID owns the board of its list.
func (g *Guard) OwnedCard(ctx context.Context, cardID, actorID uint) (*model.Card, error) {
	card, err := g.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := g.ownsCardBoard(ctx, card, actorID, "card"); err != nil {
		return nil, err
	}
	return card, nil
}

// CanManageLabel checks that actorID owns the label's board.
func (g *Guard) CanManageLabel(ctx context.Context, label *model.BoardLabel, actorID uint) error {
	return g.ownsBoard(ctx, label.BoardID, actorID, "label")
}

// CanEditComment allows only the author.
func (g *Guard) CanEditComment(comment *model.Comment, actorID uint) error {
	if comment.UserID != actorID {
		return &ForbiddenError{Kind: "comment"}
	}
	return nil
}

// CanDeleteComment allows the author and the owner of the card's board.
func (g *Guard) CanDeleteComment(ctx context.Context, comment *model.Comment, actorID uint) error {
	if comment.UserID == actorID {
		return nil
	}
	card, err := g.cards.GetByID(ctx, comment.CardID)
	if err != nil {
		return err
	}
	return g.ownsCardBoard(ctx, card, actorID, "comment")
}

func (g *Guard) ownsCardBoard(ctx context.Context, card *model.Card, actorID uint, kind string) error {
	list, err := g.lists.GetByID(ctx, card.ListID)
	if err != nil {
		return err
	}
	return g.ownsBoard(ctx, list.BoardID, actorID, kind)
}

func (g *Guard) ownsBoard(ctx context.Context, boardID, actorID uint, kind string) error {
	board, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board.OwnerUserID != actorID {
		return &ForbiddenError{Kind: kind}
	}
	return nil
}
