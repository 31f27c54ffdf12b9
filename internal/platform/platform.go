package platform

import (
	"context"
	"errors"
)

// ErrNotFound signals the target no longer exists upstream (deleted message,
// missing user). Callers treat it as expected, not as a fault.
var ErrNotFound = errors.New("platform: not found")

// Message is a live message as seen on the chat platform.
type Message struct {
	Id        int64  `json:"id"`
	ChannelId int64  `json:"channel_id"`
	AuthorId  int64  `json:"author_id"`
	Content   string `json:"content"`
}

// PanelAction is one interactive control on the panel message.
type PanelAction struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

// Client is the outbound chat platform port.
type Client interface {
	// FetchMessage returns (nil, nil) when the message is gone or inaccessible.
	FetchMessage(ctx context.Context, channelId, messageId int64) (*Message, error)
	FetchRecent(ctx context.Context, channelId int64, limit int) ([]*Message, error)
	SendMessage(ctx context.Context, channelId int64, content string) (int64, error)
	SendPanel(ctx context.Context, channelId int64, content string, actions []PanelAction) (int64, error)
	// DeleteMessage returns ErrNotFound when the message is already gone.
	DeleteMessage(ctx context.Context, channelId, messageId int64) error
	// ResolveDisplayName is best-effort; callers fall back to a placeholder.
	ResolveDisplayName(ctx context.Context, userId int64) (string, error)
}
