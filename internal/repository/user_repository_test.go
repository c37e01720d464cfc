package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_FindByEmail_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	email := "test@example.com"
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email_address = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email_address", "password", "first_name", "last_name", "created_at"}).
			AddRow(7, email, "$2a$10$hash", "Test", "User", time.Now()))

	user, err := userRepo.FindByEmail(context.Background(), email)

	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, email, user.EmailAddress)
	assert.Equal(t, "Test", user.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email_address = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := userRepo.FindByEmail(context.Background(), "nonexistent@example.com")

	assert.Nil(t, user)
	assert.True(t, repository.IsNotFound(err, repository.KindUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Error(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email_address = .*`).
		WillReturnError(assert.AnError)

	user, err := userRepo.FindByEmail(context.Background(), "test@example.com")

	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, repository.IsNotFound(err))
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_MissingRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE "users"."id" = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := userRepo.Delete(context.Background(), 42)

	assert.True(t, repository.IsNotFound(err, repository.KindUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	first := &model.User{EmailAddress: "a@x.com", Password: "hash", FirstName: "A"}
	require.NoError(t, userRepo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	dup := &model.User{EmailAddress: "a@x.com", Password: "hash", FirstName: "B"}
	err := userRepo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
	assert.Zero(t, dup.ID)

	users, err := userRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_UpdateEmailConflict(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	a := &model.User{EmailAddress: "a@x.com", Password: "hash"}
	b := &model.User{EmailAddress: "b@x.com", Password: "hash"}
	require.NoError(t, userRepo.Create(ctx, a))
	require.NoError(t, userRepo.Create(ctx, b))

	_, err := userRepo.Update(ctx, b.ID, map[string]any{"email_address": "a@x.com"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	// keeping your own email is not a conflict
	updated, err := userRepo.Update(ctx, b.ID, map[string]any{"email_address": "b@x.com", "first_name": "Bee"})
	require.NoError(t, err)
	assert.Equal(t, "Bee", updated.FirstName)
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	boards := repository.NewBoardRepository(db)
	comments := repository.NewCommentRepository(db)

	owner := &model.User{EmailAddress: "owner@x.com", Password: "hash"}
	author := &model.User{EmailAddress: "author@x.com", Password: "hash"}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, author))

	board := &model.Board{Title: "B", OwnerUserID: owner.ID}
	require.NoError(t, boards.Create(ctx, board))
	comment := &model.Comment{Comment: "hi", CardID: 1, UserID: author.ID}
	require.NoError(t, comments.Create(ctx, comment))

	assert.ErrorIs(t, users.Delete(ctx, owner.ID), repository.ErrUserOwnsBoards)
	_, err := users.GetByID(ctx, owner.ID)
	assert.NoError(t, err)

	require.NoError(t, users.Delete(ctx, author.ID))
	_, err = comments.GetByID(ctx, comment.ID)
	assert.True(t, repository.IsNotFound(err, repository.KindComment))
}
