package dto

// GatewayEvent is the JSON envelope the platform adapter pushes over the
// gateway websocket.
type GatewayEvent struct {
	Type      string `json:"type" validate:"required,oneof=reaction message interaction"`
	MessageId int64  `json:"message_id,omitempty"`
	ChannelId int64  `json:"channel_id" validate:"required"`
	UserId    int64  `json:"user_id,omitempty"`
	AuthorId  int64  `json:"author_id,omitempty"`
	// EmojiId is zero for unicode reactions, which carry no stable numeric
	// identity and never reach the ledger.
	EmojiId   int64  `json:"emoji_id,omitempty"`
	EmojiName string `json:"emoji_name,omitempty"`
	Content   string `json:"content,omitempty"`
	Action    string `json:"action,omitempty"`
	Added     bool   `json:"added,omitempty"`
}

// ReactionEvent is a reaction added/removed on a live message.
type ReactionEvent struct {
	MessageId int64  `json:"message_id"`
	ChannelId int64  `json:"channel_id"`
	UserId    int64  `json:"user_id"`
	EmojiId   int64  `json:"emoji_id"`
	EmojiName string `json:"emoji_name"`
	Added     bool   `json:"added"`
}

// MessageEvent is a new message observed live in the mirrored channel.
type MessageEvent struct {
	MessageId int64  `json:"message_id"`
	ChannelId int64  `json:"channel_id"`
	AuthorId  int64  `json:"author_id"`
	Content   string `json:"content"`
}

// InteractionEvent is a panel button press or a slash command.
type InteractionEvent struct {
	ChannelId int64  `json:"channel_id"`
	UserId    int64  `json:"user_id"`
	Action    string `json:"action"`
}
