package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type LabelRepository struct {
	*Store[model.BoardLabel]
}

type LabelRepositoryInterface interface {
	Create(ctx context.Context, label *model.BoardLabel) error
	GetByID(ctx context.Context, id uint) (*model.BoardLabel, error)
	GetByBoardID(ctx context.Context, boardID uint) ([]model.BoardLabel, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.BoardLabel, error)
	Delete(ctx context.Context, id uint) error
}

var _ LabelRepositoryInterface = (*LabelRepository)(nil)

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{Store: NewStore[model.BoardLabel](db, KindLabel)}
}

// GetByBoardID retrieves all labels for a specific board
func (r *LabelRepository) GetByBoardID(ctx context.Context, boardID uint) ([]model.BoardLabel, error) {
	return r.ListBy(ctx, "board_id", boardID, "id")
}
