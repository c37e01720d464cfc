package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	*Store[model.User]
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Store: NewStore[model.User](db, KindUser)}
}

// Create inserts the user, failing with ErrEmailTaken if the email is in use.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkEmailFree(tx, user.EmailAddress, 0); err != nil {
			return err
		}
		return translateDuplicate(tx.Create(user).Error)
	})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email_address = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Kind: KindUser}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return r.ListBy(ctx, "", nil, "id")
}

// Update applies the given columns; a changed email must stay unique.
func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]any) (*model.User, error) {
	var updated *model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if email, ok := fields["email_address"].(string); ok {
			if err := r.checkEmailFree(tx, email, id); err != nil {
				return err
			}
		}
		var err error
		updated, err = r.update(tx, id, fields)
		return translateDuplicate(err)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user and the comments they wrote. Users that still own
// boards are kept and ErrUserOwnsBoards is returned.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}

		var owned int64
		if err := tx.Model(&model.Board{}).Where("owner_user_id = ?", id).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrUserOwnsBoards
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return r.delete(tx, id)
	})
}

func (r *UserRepository) checkEmailFree(tx *gorm.DB, email string, exceptID uint) error {
	var count int64
	q := tx.Model(&model.User{}).Where("email_address = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}
