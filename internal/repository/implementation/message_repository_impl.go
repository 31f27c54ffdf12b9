package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"reaction-roulette-be/internal/entity"
	"reaction-roulette-be/internal/mapper"
	"reaction-roulette-be/internal/model"
	"reaction-roulette-be/internal/repository/contract"
	"reaction-roulette-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refreshedColumns are the only columns a single-message upsert touches on
// conflict. Author and channel are insert-only (authorship is immutable on
// re-sync).
var refreshedColumns = []string{"content", "reactions", "updated_at"}

// reconciledColumns is the conflict set for the bulk reconcile path. The
// reactions column is owned by the incremental event handlers: a reconcile
// that wrote it could revert a merge that landed mid-run.
var reconciledColumns = []string{"content", "updated_at"}

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Upsert(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(refreshedColumns),
	}).Create(m).Error
}

func (r *MessageRepositoryImpl) BulkUpsert(ctx context.Context, messages []*entity.Message) error {
	if len(messages) == 0 {
		return nil
	}

	// Postgres rejects ON CONFLICT updates that touch the same row twice in
	// one statement, so duplicate ids collapse to their last occurrence.
	seen := make(map[int64]int, len(messages))
	deduped := make([]*model.Message, 0, len(messages))
	for _, message := range messages {
		if i, ok := seen[message.Id]; ok {
			deduped[i] = r.mapper.ToModel(message)
			continue
		}
		seen[message.Id] = len(deduped)
		deduped = append(deduped, r.mapper.ToModel(message))
	}

	// Single transaction: the batch lands all-or-nothing.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(reconciledColumns),
		}).CreateInBatches(deduped, 100).Error
	})
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	var m model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) MergeReaction(ctx context.Context, messageId int64, kind string, userId int64, add bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Message
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, "id = ?", messageId).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Never materialize a bare reaction-only record.
				return nil
			}
			return err
		}

		ledger := entity.NewReactionLedger()
		if len(m.Reactions) > 0 {
			if err := json.Unmarshal(m.Reactions, &ledger); err != nil {
				return err
			}
		}

		var changed bool
		if add {
			changed = ledger.Add(kind, userId)
		} else {
			changed = ledger.Remove(kind, userId)
		}
		if !changed {
			return nil
		}

		raw, err := json.Marshal(ledger)
		if err != nil {
			return err
		}
		return tx.Model(&model.Message{}).
			Where("id = ?", messageId).
			Update("reactions", datatypes.JSON(raw)).Error
	})
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
