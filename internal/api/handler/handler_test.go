package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/api/handler"
	"github.com/d60-Lab/tripmarket/internal/cache"
	"github.com/d60-Lab/tripmarket/internal/middleware"
	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/internal/repository"
	"github.com/d60-Lab/tripmarket/internal/service"
)

const testSecret = "test-secret"

type env struct {
	engine    *gin.Engine
	db        *gorm.DB
	convRepo  repository.ConversationRepository
	notifRepo repository.NotificationRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Listing{}, &model.EventRequest{},
		&model.Conversation{}, &model.Message{}, &model.Notification{},
	))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	badges := cache.NewBadgeCache(client, time.Second)

	convRepo := repository.NewConversationRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	listingRepo := repository.NewListingRepository(db)
	userRepo := repository.NewUserRepository(db)
	reqRepo := repository.NewEventRequestRepository(db)

	h := handler.New(
		service.NewConversationService(convRepo),
		service.NewUnreadService(notifRepo, convRepo, nil),
		listingRepo, userRepo, reqRepo, badges,
	)

	r := gin.New()
	api := r.Group("/api/v1")
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(testSecret))
	authed.GET("/conversations", h.ListConversations)
	authed.GET("/conversations/:public_id", h.GetConversation)
	authed.GET("/unread/summary", h.UnreadSummary)
	authed.POST("/notifications/ack", h.AckNotifications)
	optional := api.Group("")
	optional.Use(middleware.OptionalAuth(testSecret))
	optional.GET("/unread/messages", h.UnreadMessages)
	optional.GET("/unread/notifications", h.UnreadNotifications)
	api.GET("/listings/:public_id", h.GetListing)
	api.GET("/profiles/:public_id", h.GetProfile)

	return &env{engine: r, db: db, convRepo: convRepo, notifRepo: notifRepo}
}

func (e *env) do(t *testing.T, method, path, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		token, err := middleware.IssueToken(testSecret, userID, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestUnreadEndpointsAnonymousZero(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/v1/unread/messages", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, dataOf(t, w)["unread_count"])

	w = e.do(t, http.MethodGet, "/api/v1/unread/notifications", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, dataOf(t, w)["unread_notifications"])
}

func TestRefreshEndpointRequiresAuth(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/v1/conversations", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ctx := context.Background()
	_, err := e.convRepo.Start(ctx, "B", "A", "listing1", "hi")
	require.NoError(t, err)

	w = e.do(t, http.MethodGet, "/api/v1/conversations", "A", "")
	require.Equal(t, http.StatusOK, w.Code)
	convs := dataOf(t, w)["conversations"].([]interface{})
	require.Len(t, convs, 1)
	first := convs[0].(map[string]interface{})
	assert.EqualValues(t, 1, first["unread_count"])
	assert.NotEmpty(t, first["public_id"])
}

func TestAckEndpoint(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	raw, _ := json.Marshal(map[string]string{"kind": model.NotificationKindMessage, "request_id": "R1"})
	n, err := e.notifRepo.Create(ctx, "A", datatypes.JSON(raw))
	require.NoError(t, err)

	w := e.do(t, http.MethodPost, "/api/v1/notifications/ack", "A", `{"op":"markRead","notification_id":"`+n.ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 幂等：重复置读仍成功
	w = e.do(t, http.MethodPost, "/api/v1/notifications/ack", "A", `{"op":"markRead","notification_id":"`+n.ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 未知 op 拒绝
	w = e.do(t, http.MethodPost, "/api/v1/notifications/ack", "A", `{"op":"markWeird"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// markRead 缺少目标拒绝
	w = e.do(t, http.MethodPost, "/api/v1/notifications/ack", "A", `{"op":"markRead"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/notifications/ack", "A", `{"op":"markAllRead"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/unread/summary", "A", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, dataOf(t, w)["total_unread"])
}

func TestUnreadSummaryIncludesRequestStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	req := &model.EventRequest{ID: "R1", ListingID: "L1", RequesterID: "A", Status: model.RequestStatusAccepted}
	require.NoError(t, e.db.Create(req).Error)
	raw, _ := json.Marshal(map[string]string{"kind": model.NotificationKindStatusUpdate, "request_id": "R1"})
	_, err := e.notifRepo.Create(ctx, "A", datatypes.JSON(raw))
	require.NoError(t, err)

	w := e.do(t, http.MethodGet, "/api/v1/unread/summary", "A", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.EqualValues(t, 1, data["total_unread"])
	statuses := data["request_status"].(map[string]interface{})
	assert.EqualValues(t, model.RequestStatusAccepted, statuses["R1"])
}

func TestEntityLoadersBothIdentifierForms(t *testing.T) {
	e := newEnv(t)

	short := "lisbon-tour"
	listing := &model.Listing{ID: "3f9a1b2c-7d4e-4a11-8c3d-9e0f1a2b3c4d", AuthorID: "op1", Title: "Lisbon walking tour", ShortID: &short}
	require.NoError(t, e.db.Create(listing).Error)

	w := e.do(t, http.MethodGet, "/api/v1/listings/3f9a1b2c-7d4e-4a11-8c3d-9e0f1a2b3c4d", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/listings/lisbon-tour", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// UUID 形近但版本半字节非法 → 按短码查，未命中 404
	w = e.do(t, http.MethodGet, "/api/v1/listings/3f9a1b2c-7d4e-0a11-8c3d-9e0f1a2b3c4d", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/profiles/nobody", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
