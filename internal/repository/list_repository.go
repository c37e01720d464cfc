package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type ListRepository struct {
	*Store[model.List]
}

type ListRepositoryInterface interface {
	Create(ctx context.Context, list *model.List) error
	GetByID(ctx context.Context, id uint) (*model.List, error)
	GetByBoardID(ctx context.Context, boardID uint) ([]model.List, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.List, error)
	Delete(ctx context.Context, id uint) error
}

var _ ListRepositoryInterface = (*ListRepository)(nil)

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{Store: NewStore[model.List](db, KindList)}
}

// GetByBoardID returns the board's lists by ascending position.
func (r *ListRepository) GetByBoardID(ctx context.Context, boardID uint) ([]model.List, error) {
	return r.ListBy(ctx, "board_id", boardID, "position ASC, id ASC")
}

// Delete removes the list, its cards and their comments.
func (r *ListRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		if err := tx.Where("card_id IN (SELECT id FROM cards WHERE list_id = ?)", id).
			Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", id).Delete(&model.Card{}).Error; err != nil {
			return err
		}
		return r.delete(tx, id)
	})
}
