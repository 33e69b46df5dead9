package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/pkg/publicid"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.EventRequest{}))
	return db
}

func TestUserLookupByEitherIdentifier(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	short := "anna-lisbon"
	u := &model.User{ID: uuid.New().String(), Username: "anna", Email: "anna@example.com", ShortID: &short}
	require.NoError(t, u.SetPassword("s3cret"))
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.FindByPredicate(ctx, publicid.Classify(u.ID))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.FindByPredicate(ctx, publicid.Classify("anna-lisbon"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	assert.True(t, got.CheckPassword("s3cret"))
	assert.False(t, got.CheckPassword("wrong"))

	_, err = repo.FindByPredicate(ctx, publicid.Classify("missing-code"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEventRequestStatuses(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEventRequestRepository(db)
	ctx := context.Background()

	r1 := &model.EventRequest{ListingID: "L1", RequesterID: "A"}
	r2 := &model.EventRequest{ListingID: "L1", RequesterID: "B", Status: model.RequestStatusAccepted}
	require.NoError(t, repo.Create(ctx, r1))
	require.NoError(t, repo.Create(ctx, r2))

	require.NoError(t, repo.UpdateStatus(ctx, r1.ID, model.RequestStatusPaid))

	statuses, err := repo.StatusesByIDs(ctx, []string{r1.ID, r2.ID, "missing"})
	require.NoError(t, err)
	assert.EqualValues(t, model.RequestStatusPaid, statuses[r1.ID])
	assert.EqualValues(t, model.RequestStatusAccepted, statuses[r2.ID])
	assert.NotContains(t, statuses, "missing")

	cnt, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cnt)

	list, err := repo.ListByRequester(ctx, "A", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r1.ID, list[0].ID)
}
