package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	boards := repository.NewBoardRepository(db)
	ctx := context.Background()

	board := &model.Board{Title: "Roadmap", Description: "Q3", OwnerUserID: 1}
	require.NoError(t, boards.Create(ctx, board))
	require.NotZero(t, board.ID)
	assert.False(t, board.CreatedAt.IsZero())

	got, err := boards.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", got.Title)
	assert.Equal(t, uint(1), got.OwnerUserID)

	_, err = boards.GetByID(ctx, board.ID+100)
	assert.True(t, repository.IsNotFound(err, repository.KindBoard))
	assert.EqualError(t, err, "Board not found")
}

func TestStore_UpdateKeepsAbsentFields(t *testing.T) {
	db := setupTestDB(t)
	cards := repository.NewCardRepository(db)
	ctx := context.Background()

	due := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	card := &model.Card{Title: "Write docs", Description: "all of them", Position: 3, DueDate: &due, ListID: 9}
	require.NoError(t, cards.Create(ctx, card))

	updated, err := cards.Update(ctx, card.ID, map[string]any{"title": "Write fewer docs", "position": 0})
	require.NoError(t, err)

	assert.Equal(t, "Write fewer docs", updated.Title)
	assert.Equal(t, 0, updated.Position)
	assert.Equal(t, "all of them", updated.Description)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))
	assert.Equal(t, uint(9), updated.ListID)

	unchanged, err := cards.Update(ctx, card.ID, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, updated.Title, unchanged.Title)

	_, err = cards.Update(ctx, card.ID+1, map[string]any{"title": "x"})
	assert.True(t, repository.IsNotFound(err, repository.KindCard))
}

func TestStore_DeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	labels := repository.NewLabelRepository(db)
	ctx := context.Background()

	label := &model.BoardLabel{Name: "bug", Color: "red", BoardID: 1}
	require.NoError(t, labels.Create(ctx, label))

	require.NoError(t, labels.Delete(ctx, label.ID))
	for i := 0; i < 2; i++ {
		err := labels.Delete(ctx, label.ID)
		assert.True(t, repository.IsNotFound(err, repository.KindLabel))
	}
}

func TestListRepository_OrderedByPosition(t *testing.T) {
	db := setupTestDB(t)
	lists := repository.NewListRepository(db)
	ctx := context.Background()

	for _, l := range []model.List{
		{Title: "Done", Position: 2, BoardID: 1},
		{Title: "Todo", Position: 0, BoardID: 1},
		{Title: "Doing", Position: 1, BoardID: 1},
		{Title: "Elsewhere", Position: 0, BoardID: 2},
	} {
		l := l
		require.NoError(t, lists.Create(ctx, &l))
	}

	got, err := lists.GetByBoardID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Todo", got[0].Title)
	assert.Equal(t, "Doing", got[1].Title)
	assert.Equal(t, "Done", got[2].Title)

	empty, err := lists.GetByBoardID(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCommentRepository_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	comments := repository.NewCommentRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		c := &model.Comment{Comment: text, CardID: 1, UserID: 1, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, comments.Create(ctx, c))
	}

	got, err := comments.GetByCardID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Comment)
	assert.Equal(t, "second", got[1].Comment)
	assert.Equal(t, "first", got[2].Comment)
}

func TestBoardRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	boards := repository.NewBoardRepository(db)
	lists := repository.NewListRepository(db)
	cards := repository.NewCardRepository(db)
	comments := repository.NewCommentRepository(db)
	labels := repository.NewLabelRepository(db)

	board := &model.Board{Title: "B", OwnerUserID: 1}
	other := &model.Board{Title: "Other", OwnerUserID: 1}
	require.NoError(t, boards.Create(ctx, board))
	require.NoError(t, boards.Create(ctx, other))

	list := &model.List{Title: "L", BoardID: board.ID}
	otherList := &model.List{Title: "L2", BoardID: other.ID}
	require.NoError(t, lists.Create(ctx, list))
	require.NoError(t, lists.Create(ctx, otherList))
	card := &model.Card{Title: "C", ListID: list.ID}
	otherCard := &model.Card{Title: "C2", ListID: otherList.ID}
	require.NoError(t, cards.Create(ctx, card))
	require.NoError(t, cards.Create(ctx, otherCard))
	comment := &model.Comment{Comment: "x", CardID: card.ID, UserID: 1}
	otherComment := &model.Comment{Comment: "y", CardID: otherCard.ID, UserID: 1}
	require.NoError(t, comments.Create(ctx, comment))
	require.NoError(t, comments.Create(ctx, otherComment))
	label := &model.BoardLabel{Name: "n", Color: "c", BoardID: board.ID}
	require.NoError(t, labels.Create(ctx, label))

	require.NoError(t, boards.Delete(ctx, board.ID))

	_, err := lists.GetByID(ctx, list.ID)
	assert.True(t, repository.IsNotFound(err, repository.KindList))
	_, err = cards.GetByID(ctx, card.ID)
	assert.True(t, repository.IsNotFound(err, repository.KindCard))
	_, err = comments.GetByID(ctx, comment.ID)
	assert.True(t, repository.IsNotFound(err, repository.KindComment))
	_, err = labels.GetByID(ctx, label.ID)
	assert.True(t, repository.IsNotFound(err, repository.KindLabel))

	_, err = comments.GetByID(ctx, otherComment.ID)
	assert.NoError(t, err)
	_, err = cards.GetByID(ctx, otherCard.ID)
	assert.NoError(t, err)

	assert.True(t, repository.IsNotFound(boards.Delete(ctx, board.ID), repository.KindBoard))
}

func TestBoardRepository_ListByOwner(t *testing.T) {
	db := setupTestDB(t)
	boards := repository.NewBoardRepository(db)
	ctx := context.Background()

	require.NoError(t, boards.Create(ctx, &model.Board{Title: "mine", OwnerUserID: 1}))
	require.NoError(t, boards.Create(ctx, &model.Board{Title: "theirs", OwnerUserID: 2}))

	all, err := boards.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	owner := uint(2)
	mine, err := boards.List(ctx, &owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "theirs", mine[0].Title)
}

// For any subset of supplied fields, the fields left out keep their values.
func TestProperty_PartialUpdatePreservesAbsentFields(t *testing.T) {
	db := setupTestDB(t)
	boards := repository.NewBoardRepository(db)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("absent fields are untouched", prop.ForAll(
		func(title, description string, setTitle, setDescription bool) bool {
			board := &model.Board{Title: "before", Description: "before desc", OwnerUserID: 1}
			if err := boards.Create(ctx, board); err != nil {
				return false
			}

			fields := map[string]any{}
			if setTitle {
				fields["title"] = title
			}
			if setDescription {
				fields["description"] = description
			}

			got, err := boards.Update(ctx, board.ID, fields)
			if err != nil {
				return false
			}

			wantTitle, wantDescription := board.Title, board.Description
			if setTitle {
				wantTitle = title
			}
			if setDescription {
				wantDescription = description
			}
			return got.Title == wantTitle &&
				got.Description == wantDescription &&
				got.OwnerUserID == board.OwnerUserID
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
