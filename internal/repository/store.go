package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Store implements the persistence operations shared by every entity type.
// Per-entity repositories embed it and add their own queries.
type Store[T any] struct {
	db   *gorm.DB
	kind string
}

func NewStore[T any](db *gorm.DB, kind string) *Store[T] {
	return &Store[T]{db: db, kind: kind}
}

func (s *Store[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	return s.find(s.db.WithContext(ctx), id)
}

// ListBy returns the rows whose column equals value, sorted by order.
// An empty column lists every row.
func (s *Store[T]) ListBy(ctx context.Context, column string, value any, order string) ([]T, error) {
	q := s.db.WithContext(ctx)
	if column != "" {
		q = q.Where(column+" = ?", value)
	}
	if order != "" {
		q = q.Order(order)
	}

	rows := make([]T, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts row and fills in its id and defaulted columns.
func (s *Store[T]) Create(ctx context.Context, row *T) error {
	return s.db.WithContext(ctx).Create(row).Error
}

// Update applies only the given columns and returns the stored row.
func (s *Store[T]) Update(ctx context.Context, id uint, fields map[string]any) (*T, error) {
	var updated *T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = s.update(tx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	return s.delete(s.db.WithContext(ctx), id)
}

func (s *Store[T]) find(tx *gorm.DB, id uint) (*T, error) {
	var row T
	if err := tx.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: s.kind}
		}
		return nil, err
	}
	return &row, nil
}

func (s *Store[T]) update(tx *gorm.DB, id uint, fields map[string]any) (*T, error) {
	if _, err := s.find(tx, id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := tx.Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.find(tx, id)
}

func (s *Store[T]) delete(tx *gorm.DB, id uint) error {
	result := tx.Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Kind: s.kind}
	}
	return nil
}
