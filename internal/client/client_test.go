package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/tripmarket/internal/client"
	"github.com/d60-Lab/tripmarket/internal/service"
)

func refreshServer(t *testing.T, hits *atomic.Int64, views func() []service.ConversationView) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/v1/conversations", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    0,
			"message": "ok",
			"data":    map[string]interface{}{"conversations": views()},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchConversations(t *testing.T) {
	var hits atomic.Int64
	srv := refreshServer(t, &hits, func() []service.ConversationView {
		return []service.ConversationView{{PublicID: "abc123def456", UnreadCount: 2}}
	})

	c := client.New(srv.URL, "tok")
	views, err := c.FetchConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "abc123def456", views[0].PublicID)
	assert.Equal(t, 2, views[0].UnreadCount)
}

func TestFetchConversationsNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := client.New(srv.URL, "tok").FetchConversations(context.Background())
	assert.Error(t, err)
}

func TestPollerEndToEnd(t *testing.T) {
	var hits atomic.Int64
	current := atomic.Value{}
	current.Store([]service.ConversationView{{PublicID: "first"}})
	srv := refreshServer(t, &hits, func() []service.ConversationView {
		return current.Load().([]service.ConversationView)
	})

	p := client.New(srv.URL, "tok").NewPoller(10*time.Millisecond, time.Second)
	p.Prime(nil)
	p.Start()
	defer p.Stop()

	require.Eventually(t, func() bool {
		s := p.Snapshot()
		return len(s) == 1 && s[0].PublicID == "first"
	}, 2*time.Second, 5*time.Millisecond)

	// 服务端状态推进后，下一次轮询整体替换列表
	current.Store([]service.ConversationView{{PublicID: "second"}, {PublicID: "third"}})
	require.Eventually(t, func() bool {
		s := p.Snapshot()
		return len(s) == 2 && s[0].PublicID == "second"
	}, 2*time.Second, 5*time.Millisecond)

	// 变更触发的即时刷新
	require.NoError(t, p.RefreshNow(context.Background()))

	p.Stop()
	time.Sleep(30 * time.Millisecond) // 在途请求结算
	settled := hits.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, hits.Load(), "no polls after teardown")
}
