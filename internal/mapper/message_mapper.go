package mapper

import (
	"encoding/json"

	"reaction-roulette-be/internal/entity"
	"reaction-roulette-be/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	ledger := entity.NewReactionLedger()
	if len(msg.Reactions) > 0 {
		// A corrupt column falls back to an empty ledger rather than failing reads.
		_ = json.Unmarshal(msg.Reactions, &ledger)
	}
	return &entity.Message{
		Id:        msg.Id,
		ChannelId: msg.ChannelId,
		AuthorId:  msg.AuthorId,
		Content:   msg.Content,
		Reactions: ledger,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	ledger := msg.Reactions
	if ledger == nil {
		ledger = entity.NewReactionLedger()
	}
	raw, _ := json.Marshal(ledger)
	return &model.Message{
		Id:        msg.Id,
		ChannelId: msg.ChannelId,
		AuthorId:  msg.AuthorId,
		Content:   msg.Content,
		Reactions: datatypes.JSON(raw),
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}
