package contract

import (
	"context"

	"reaction-roulette-be/internal/entity"
	"reaction-roulette-be/internal/repository/specification"
)

type MessageRepository interface {
	// Upsert inserts the message or, when the id already exists, refreshes
	// content and reactions. Author and channel are set on insert only.
	Upsert(ctx context.Context, message *entity.Message) error
	// BulkUpsert applies Upsert semantics to a batch in one transaction.
	// Duplicate ids within the batch resolve to the last occurrence.
	BulkUpsert(ctx context.Context, messages []*entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	// MergeReaction mutates only the reactions column. Unknown ids are a
	// no-op: reactions are tracked only for already-ingested messages.
	MergeReaction(ctx context.Context, messageId int64, kind string, userId int64, add bool) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
