package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type CardRepository struct {
	*Store[model.Card]
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uint) (*model.Card, error)
	GetByListID(ctx context.Context, listID uint) ([]model.Card, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.Card, error)
	Delete(ctx context.Context, id uint) error
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{Store: NewStore[model.Card](db, KindCard)}
}

func (r *CardRepository) GetByListID(ctx context.Context, listID uint) ([]model.Card, error) {
	return r.ListBy(ctx, "list_id", listID, "position ASC, id ASC")
}

// Delete removes the card and its comments.
func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return r.delete(tx, id)
	})
}
