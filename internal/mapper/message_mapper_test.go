package mapper

import (
	"testing"

	"reaction-roulette-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestMessageMapperRoundTrip(t *testing.T) {
	m := NewMessageMapper()

	ledger := entity.NewReactionLedger()
	ledger.Add("100", 5)
	ledger.Add("100", 7)
	ledger.Add("200", 5)

	original := &entity.Message{
		Id:        42,
		ChannelId: 1,
		AuthorId:  10,
		Content:   "hello",
		Reactions: ledger,
	}

	back := m.ToEntity(m.ToModel(original))
	assert.Equal(t, original.Id, back.Id)
	assert.Equal(t, original.AuthorId, back.AuthorId)
	assert.Equal(t, original.Content, back.Content)
	assert.True(t, back.Reactions.Has("100", 5))
	assert.True(t, back.Reactions.Has("100", 7))
	assert.True(t, back.Reactions.Has("200", 5))
}

func TestMessageMapperNilLedgerBecomesEmpty(t *testing.T) {
	m := NewMessageMapper()

	back := m.ToEntity(m.ToModel(&entity.Message{Id: 1, ChannelId: 1, AuthorId: 2}))
	assert.NotNil(t, back.Reactions)
	assert.False(t, back.Reactions.Has("100", 5))
}

func TestMessageMapperNilSafety(t *testing.T) {
	m := NewMessageMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
