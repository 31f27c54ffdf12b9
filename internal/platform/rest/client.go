package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reaction-roulette-be/internal/platform"
)

// Client talks to the chat platform's REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		// Gone or inaccessible both collapse to not-found for callers.
		return platform.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("platform API %s %s returned %d: %s", method, path, resp.StatusCode, string(raw))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) FetchMessage(ctx context.Context, channelId, messageId int64) (*platform.Message, error) {
	var msg platform.Message
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/channels/%d/messages/%d", channelId, messageId), nil, &msg)
	if err != nil {
		if err == platform.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (c *Client) FetchRecent(ctx context.Context, channelId int64, limit int) ([]*platform.Message, error) {
	var msgs []*platform.Message
	path := fmt.Sprintf("/channels/%d/messages?limit=%d", channelId, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

type sendMessageRequest struct {
	Content string                 `json:"content"`
	Actions []platform.PanelAction `json:"actions,omitempty"`
}

type sendMessageResponse struct {
	Id int64 `json:"id"`
}

func (c *Client) SendMessage(ctx context.Context, channelId int64, content string) (int64, error) {
	var resp sendMessageResponse
	req := sendMessageRequest{Content: content}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%d/messages", channelId), req, &resp); err != nil {
		return 0, err
	}
	return resp.Id, nil
}

func (c *Client) SendPanel(ctx context.Context, channelId int64, content string, actions []platform.PanelAction) (int64, error) {
	var resp sendMessageResponse
	req := sendMessageRequest{Content: content, Actions: actions}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%d/messages", channelId), req, &resp); err != nil {
		return 0, err
	}
	return resp.Id, nil
}

func (c *Client) DeleteMessage(ctx context.Context, channelId, messageId int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/channels/%d/messages/%d", channelId, messageId), nil, nil)
}

type userResponse struct {
	Id          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}

func (c *Client) ResolveDisplayName(ctx context.Context, userId int64) (string, error) {
	var user userResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userId), nil, &user); err != nil {
		return "", err
	}
	if user.DisplayName != "" {
		return user.DisplayName, nil
	}
	return user.Username, nil
}
