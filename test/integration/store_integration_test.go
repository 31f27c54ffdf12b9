package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"reaction-roulette-be/internal/entity"
	"reaction-roulette-be/internal/model"
	"reaction-roulette-be/internal/repository/specification"
	"reaction-roulette-be/internal/repository/unitofwork"
	"reaction-roulette-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestMessageStore(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	assert.NoError(t, gormDB.AutoMigrate(&model.Message{}))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	repo := uowFactory.NewUnitOfWork(ctx).MessageRepository()

	// Unique ids per run so reruns don't collide.
	base := time.Now().UnixNano()
	channelId := base
	id1, id2 := base+1, base+2

	t.Run("Upsert and point read", func(t *testing.T) {
		msg := &entity.Message{Id: id1, ChannelId: channelId, AuthorId: 10, Content: "first", Reactions: entity.NewReactionLedger()}
		assert.NoError(t, repo.Upsert(ctx, msg))

		got, err := repo.FindOne(ctx, specification.ByMessageID{ID: id1})
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, "first", got.Content)
	})

	t.Run("Upsert conflict refreshes content not author", func(t *testing.T) {
		msg := &entity.Message{Id: id1, ChannelId: channelId, AuthorId: 77, Content: "rewritten", Reactions: entity.NewReactionLedger()}
		assert.NoError(t, repo.Upsert(ctx, msg))

		got, err := repo.FindOne(ctx, specification.ByMessageID{ID: id1})
		assert.NoError(t, err)
		assert.Equal(t, "rewritten", got.Content)
		assert.Equal(t, int64(10), got.AuthorId) // insert-only
	})

	t.Run("MergeReaction laws", func(t *testing.T) {
		assert.NoError(t, repo.MergeReaction(ctx, id1, "100", 5, true))
		// Re-adding is a no-op.
		assert.NoError(t, repo.MergeReaction(ctx, id1, "100", 5, true))

		got, _ := repo.FindOne(ctx, specification.ByMessageID{ID: id1})
		assert.Equal(t, []int64{5}, got.Reactions["100"])

		// Remove inverts add.
		assert.NoError(t, repo.MergeReaction(ctx, id1, "100", 5, false))
		got, _ = repo.FindOne(ctx, specification.ByMessageID{ID: id1})
		assert.False(t, got.Reactions.Has("100", 5))
	})

	t.Run("MergeReaction on unknown id creates nothing", func(t *testing.T) {
		missing := base + 999
		assert.NoError(t, repo.MergeReaction(ctx, missing, "100", 5, true))

		got, err := repo.FindOne(ctx, specification.ByMessageID{ID: missing})
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("BulkUpsert dedupes within batch, last wins", func(t *testing.T) {
		batch := []*entity.Message{
			{Id: id2, ChannelId: channelId, AuthorId: 20, Content: "early", Reactions: entity.NewReactionLedger()},
			{Id: id2, ChannelId: channelId, AuthorId: 20, Content: "late", Reactions: entity.NewReactionLedger()},
		}
		assert.NoError(t, repo.BulkUpsert(ctx, batch))

		got, err := repo.FindOne(ctx, specification.ByMessageID{ID: id2})
		assert.NoError(t, err)
		assert.Equal(t, "late", got.Content)

		count, err := repo.Count(ctx, specification.ByChannelID{ChannelID: channelId})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("BulkUpsert conflict leaves reactions untouched", func(t *testing.T) {
		assert.NoError(t, repo.MergeReaction(ctx, id2, "100", 5, true))

		batch := []*entity.Message{
			{Id: id2, ChannelId: channelId, AuthorId: 20, Content: "resynced", Reactions: entity.NewReactionLedger()},
		}
		assert.NoError(t, repo.BulkUpsert(ctx, batch))

		got, err := repo.FindOne(ctx, specification.ByMessageID{ID: id2})
		assert.NoError(t, err)
		assert.Equal(t, "resynced", got.Content)
		assert.True(t, got.Reactions.Has("100", 5))
	})
}
