// Package client is the browser-side counterpart of the refresh endpoint: it
// fetches the caller's conversation list and wires it into the sync poller.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/d60-Lab/tripmarket/internal/poller"
	"github.com/d60-Lab/tripmarket/internal/service"
)

// Client calls the conversation refresh endpoint for one authenticated user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{baseURL: baseURL, token: token, http: &http.Client{}}
}

// FetchConversations performs one GET against the refresh endpoint.
func (c *Client) FetchConversations(ctx context.Context) ([]service.ConversationView, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/conversations", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("refresh endpoint: unexpected status %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			Conversations []service.ConversationView `json:"conversations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	return envelope.Data.Conversations, nil
}

// NewPoller builds a sync poller backed by this client. Callers Prime it with
// the page-load snapshot, Start it, and Stop it on teardown.
func (c *Client) NewPoller(interval, requestTimeout time.Duration) *poller.Poller[service.ConversationView] {
	return poller.New(c.FetchConversations, poller.Options{
		Interval:       interval,
		RequestTimeout: requestTimeout,
	})
}
