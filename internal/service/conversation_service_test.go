package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/internal/repository"
	"github.com/d60-Lab/tripmarket/internal/service"
	"github.com/d60-Lab/tripmarket/pkg/publicid"
)

func newConvService(t *testing.T) (service.ConversationService, repository.ConversationRepository, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	convRepo := repository.NewConversationRepository(db)
	return service.NewConversationService(convRepo), convRepo, db
}

func TestStartRejectsSelf(t *testing.T) {
	svc, _, _ := newConvService(t)
	_, err := svc.Start(context.Background(), "A", "A", "listing1", "hello me")
	assert.ErrorIs(t, err, service.ErrSelfConversation)
}

func TestListForUserViews(t *testing.T) {
	svc, convRepo, _ := newConvService(t)
	ctx := context.Background()

	conv, err := svc.Start(ctx, "A", "B", "listing1", "first")
	require.NoError(t, err)
	_, err = convRepo.AppendMessage(ctx, conv.ID, "B", "reply")
	require.NoError(t, err)

	views, err := svc.ListForUser(ctx, "A")
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	// 未分配短码时公开标识为主键派生回退
	assert.Equal(t, publicid.DeriveShortID(conv.ID), v.PublicID)
	assert.Equal(t, "reply", v.LastMessage)
	assert.Equal(t, "B", v.LastSenderID)
	assert.Equal(t, 1, v.UnreadCount) // B 的回复对 A 未读

	views, err = svc.ListForUser(ctx, "B")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].UnreadCount) // A 的首条对 B 未读
}

func TestGetByPublicIDBothForms(t *testing.T) {
	svc, _, db := newConvService(t)
	ctx := context.Background()

	conv, err := svc.Start(ctx, "A", "B", "listing1", "hello")
	require.NoError(t, err)

	// UUID 形式
	got, err := svc.GetByPublicID(ctx, "A", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)

	// 大写 UUID 同样命中
	got, err = svc.GetByPublicID(ctx, "B", strings.ToUpper(conv.ID))
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)

	// 分配短码后按短码命中
	short := "trip-chat-1"
	require.NoError(t, db.Model(&model.Conversation{}).Where("id = ?", conv.ID).Update("short_id", short).Error)
	got, err = svc.GetByPublicID(ctx, "A", short)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)

	// 非参与者视同不存在
	_, err = svc.GetByPublicID(ctx, "C", conv.ID)
	assert.ErrorIs(t, err, service.ErrNotParticipant)

	_, err = svc.GetByPublicID(ctx, "A", "no-such-code")
	assert.ErrorIs(t, err, service.ErrConversationNotFound)
}

func TestAppendMessageAdvancesUpdatedAt(t *testing.T) {
	svc, convRepo, _ := newConvService(t)
	ctx := context.Background()

	conv, err := svc.Start(ctx, "A", "B", "listing1", "first")
	require.NoError(t, err)
	first := conv.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	_, err = convRepo.AppendMessage(ctx, conv.ID, "B", "later")
	require.NoError(t, err)

	got, err := svc.GetByPublicID(ctx, "A", conv.ID)
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(first), "updated_at must be monotonically non-decreasing")
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "first", got.Messages[0].Content)
	assert.Equal(t, "later", got.Messages[1].Content)
}

func TestPublicIDPrefersAssignedShortCode(t *testing.T) {
	short := "lisbon-walks"
	conv := &model.Conversation{ID: "3f9a1b2c-7d4e-4a11-8c3d-9e0f1a2b3c4d", ShortID: &short}
	assert.Equal(t, short, conv.PublicID())

	conv.ShortID = nil
	assert.Equal(t, "3f9a1b2c7d4e", conv.PublicID())
}
