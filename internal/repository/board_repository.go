package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type BoardRepository struct {
	*Store[model.Board]
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uint) (*model.Board, error)
	List(ctx context.Context, ownerID *uint) ([]model.Board, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.Board, error)
	Delete(ctx context.Context, id uint) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{Store: NewStore[model.Board](db, KindBoard)}
}

// List returns all boards, or only those owned by ownerID when it is set.
func (r *BoardRepository) List(ctx context.Context, ownerID *uint) ([]model.Board, error) {
	if ownerID == nil {
		return r.ListBy(ctx, "", nil, "id")
	}
	return r.ListBy(ctx, "owner_user_id", *ownerID, "id")
}

// Delete removes the board together with its labels, lists, cards and comments.
func (r *BoardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		if err := tx.Where("card_id IN (SELECT id FROM cards WHERE list_id IN (SELECT id FROM lists WHERE board_id = ?))", id).
			Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id IN (SELECT id FROM lists WHERE board_id = ?)", id).
			Delete(&model.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.List{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.BoardLabel{}).Error; err != nil {
			return err
		}
		return r.delete(tx, id)
	})
}
