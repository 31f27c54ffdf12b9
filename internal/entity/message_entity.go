package entity

import "time"

// Message is one cached chat post from the mirrored channel.
type Message struct {
	Id        int64
	ChannelId int64
	AuthorId  int64
	Content   string
	Reactions ReactionLedger
	CreatedAt time.Time
	UpdatedAt time.Time
}
