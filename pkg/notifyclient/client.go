// Package notifyclient keeps a local mirror of a user's notification list in
// sync with the AcademiaPro backend. There is no server push on this path:
// the mirror is filled when a session starts and refreshed on demand, and the
// unread count is always derived from the cached items rather than stored.
//
// Mark operations are optimistic: the local read flags flip immediately and
// the remote call follows. A failed remote call is returned to the caller but
// the local flip is not rolled back, so the mirror can run ahead of the store
// until the next refresh.
package notifyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Notification mirrors the server's wire shape.
type Notification struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	User      *string   `json:"user,omitempty"`
	Role      *string   `json:"role,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNoSession = errors.New("no active session")

// Client is a session-scoped notification mirror. Safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client

	mu     sync.RWMutex
	userID string
	token  string
	items  []Notification
	active bool
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartSession binds the client to a user and performs the initial fetch.
// If the fetch fails the session is still established with an empty mirror;
// the error is returned so the caller can surface it.
func (c *Client) StartSession(ctx context.Context, userID, token string) error {
	c.mu.Lock()
	c.userID = userID
	c.token = token
	c.items = nil
	c.active = true
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// EndSession clears the mirror and forgets the identity.
func (c *Client) EndSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = ""
	c.token = ""
	c.items = nil
	c.active = false
}

// Refresh replaces the mirror with the server's current visible set.
// On failure the mirror keeps its last-known state.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	if !c.active {
		c.mu.RUnlock()
		return ErrNoSession
	}
	userID := c.userID
	c.mu.RUnlock()

	var fetched []Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/"+userID, &fetched); err != nil {
		return err
	}

	c.mu.Lock()
	if c.active && c.userID == userID {
		c.items = fetched
	}
	c.mu.Unlock()
	return nil
}

// Notifications returns a copy of the cached list, newest first.
func (c *Client) Notifications() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// UnreadCount is derived from the cached items on every call.
func (c *Client) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead optimistically flips the local read flag, then tells the server.
// The flip is kept even when the server call fails.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return ErrNoSession
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			break
		}
	}
	c.mu.Unlock()

	return c.do(ctx, http.MethodPost, "/notifications/read/"+id, nil)
}

// MarkAllRead optimistically flips every local read flag, then tells the
// server to mark the full visible set.
func (c *Client) MarkAllRead(ctx context.Context) error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return ErrNoSession
	}
	userID := c.userID
	for i := range c.items {
		c.items[i].Read = true
	}
	c.mu.Unlock()

	return c.do(ctx, http.MethodPost, "/notifications/mark-all-read/"+userID, nil)
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
