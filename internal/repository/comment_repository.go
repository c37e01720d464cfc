package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	*Store[model.Comment]
}

type CommentRepositoryInterface interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uint) (*model.Comment, error)
	GetByCardID(ctx context.Context, cardID uint) ([]model.Comment, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.Comment, error)
	Delete(ctx context.Context, id uint) error
}

var _ CommentRepositoryInterface = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{Store: NewStore[model.Comment](db, KindComment)}
}

// GetByCardID returns the card's comments, newest first.
func (r *CommentRepository) GetByCardID(ctx context.Context, cardID uint) ([]model.Comment, error) {
	return r.ListBy(ctx, "card_id", cardID, "created_at DESC, id DESC")
}
