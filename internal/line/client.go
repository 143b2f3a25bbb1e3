// Package line is a minimal client for the LINE Messaging API covering the
// calls this service makes: push, reply and multicast messages, profile
// lookup and webhook signature validation.  Message payloads are built as
// loosely typed maps because the API accepts many message shapes and the
// service only ever constructs a handful of them.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.line.me"

// Client calls the LINE Messaging API with a channel access token.  A nil
// *Client is a valid no-op sender, which lets the service run without LINE
// credentials in development.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient returns a Client authenticated with the given channel access
// token, or nil when the token is empty (notifications disabled).
func NewClient(token string) *Client {
	if token == "" {
		return nil
	}
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Push sends messages to a single user or group.
func (c *Client) Push(ctx context.Context, to string, messages ...Message) error {
	if c == nil {
		return nil
	}
	return c.post(ctx, "/v2/bot/message/push", map[string]interface{}{
		"to":       to,
		"messages": messages,
	})
}

// Reply answers a webhook event using its reply token.  Reply tokens are
// single-use and expire quickly, so failures here are expected and callers
// treat them as best-effort.
func (c *Client) Reply(ctx context.Context, replyToken string, messages ...Message) error {
	if c == nil {
		return nil
	}
	return c.post(ctx, "/v2/bot/message/reply", map[string]interface{}{
		"replyToken": replyToken,
		"messages":   messages,
	})
}

// Multicast sends the same messages to several users at once.
func (c *Client) Multicast(ctx context.Context, to []string, messages ...Message) error {
	if c == nil || len(to) == 0 {
		return nil
	}
	return c.post(ctx, "/v2/bot/message/multicast", map[string]interface{}{
		"to":       to,
		"messages": messages,
	})
}

// Profile is the subset of a LINE user profile the service consumes.
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`
}

// GetProfile resolves a LINE user id to their display name and picture.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if c == nil {
		return nil, fmt.Errorf("line client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/bot/profile/"+userID, nil)
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
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("line profile lookup: status %d: %s", resp.StatusCode, body)
	}
	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("line api %s: status %d: %s", path, resp.StatusCode, msg)
	}
	return nil
}
