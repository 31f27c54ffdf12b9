package service

import (
	"context"
	"sync"

	"reaction-roulette-be/internal/entity"
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/platform"
	"reaction-roulette-be/internal/repository/contract"
	"reaction-roulette-be/internal/repository/specification"
	"reaction-roulette-be/internal/repository/unitofwork"
)

// fakePlatform records outbound platform calls.
type fakePlatform struct {
	mu sync.Mutex

	live   map[int64]*platform.Message
	recent []*platform.Message
	names  map[int64]string

	nextId  int64
	sent    []string
	panels  []int64
	deleted []int64

	deleteErr      error
	sendPanelErr   error
	fetchRecentErr error
	resolveErr     error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		live:   make(map[int64]*platform.Message),
		names:  make(map[int64]string),
		nextId: 1000,
	}
}

func (f *fakePlatform) FetchMessage(ctx context.Context, channelId, messageId int64) (*platform.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live[messageId], nil
}

func (f *fakePlatform) FetchRecent(ctx context.Context, channelId int64, limit int) ([]*platform.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchRecentErr != nil {
		return nil, f.fetchRecentErr
	}
	if limit > len(f.recent) {
		limit = len(f.recent)
	}
	return f.recent[:limit], nil
}

func (f *fakePlatform) SendMessage(ctx context.Context, channelId int64, content string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, content)
	f.nextId++
	return f.nextId, nil
}

func (f *fakePlatform) SendPanel(ctx context.Context, channelId int64, content string, actions []platform.PanelAction) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendPanelErr != nil {
		return 0, f.sendPanelErr
	}
	f.nextId++
	f.panels = append(f.panels, f.nextId)
	return f.nextId, nil
}

func (f *fakePlatform) DeleteMessage(ctx context.Context, channelId, messageId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageId)
	return f.deleteErr
}

func (f *fakePlatform) ResolveDisplayName(ctx context.Context, userId int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return f.names[userId], nil
}

func (f *fakePlatform) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakePlatform) postedPanels() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, len(f.panels))
	copy(out, f.panels)
	return out
}

func (f *fakePlatform) deletedMessages() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, len(f.deleted))
	copy(out, f.deleted)
	return out
}

// mergeCall records one MergeReaction invocation.
type mergeCall struct {
	messageId int64
	kind      string
	userId    int64
	add       bool
}

// fakeMessageRepository is an in-memory contract.MessageRepository.
// Specifications are ignored: tests run against a single channel.
type fakeMessageRepository struct {
	mu         sync.Mutex
	store      map[int64]*entity.Message
	mergeCalls []mergeCall
	findErr    error
	upsertErr  error

	// beforeBulkUpsert runs just before the batch is applied, for
	// interleaving writes against an in-flight reconcile.
	beforeBulkUpsert func()
}

func newFakeMessageRepository() *fakeMessageRepository {
	return &fakeMessageRepository{store: make(map[int64]*entity.Message)}
}

func (r *fakeMessageRepository) Upsert(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if existing, ok := r.store[message.Id]; ok {
		existing.Content = message.Content
		existing.Reactions = message.Reactions
		return nil
	}
	copied := *message
	r.store[message.Id] = &copied
	return nil
}

// BulkUpsert mirrors the reconcile conflict set: content is refreshed,
// reactions are left untouched on existing rows.
func (r *fakeMessageRepository) BulkUpsert(ctx context.Context, messages []*entity.Message) error {
	if r.beforeBulkUpsert != nil {
		r.beforeBulkUpsert()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for _, m := range messages {
		if existing, ok := r.store[m.Id]; ok {
			existing.Content = m.Content
			continue
		}
		copied := *m
		r.store[m.Id] = &copied
	}
	return nil
}

func (r *fakeMessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	return nil, nil
}

func (r *fakeMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*entity.Message, 0, len(r.store))
	for _, m := range r.store {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMessageRepository) MergeReaction(ctx context.Context, messageId int64, kind string, userId int64, add bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mergeCalls = append(r.mergeCalls, mergeCall{messageId, kind, userId, add})
	msg, ok := r.store[messageId]
	if !ok {
		return nil
	}
	if add {
		msg.Reactions.Add(kind, userId)
	} else {
		msg.Reactions.Remove(kind, userId)
	}
	return nil
}

func (r *fakeMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.store)), nil
}

func (r *fakeMessageRepository) recordedMerges() []mergeCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mergeCall, len(r.mergeCalls))
	copy(out, r.mergeCalls)
	return out
}

type fakeUnitOfWork struct {
	repo contract.MessageRepository

	begun      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.begun = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.rolledBack = true
	return nil
}

func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return u.repo
}

type fakeFactory struct {
	repo contract.MessageRepository

	mu   sync.Mutex
	last *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	uow := &fakeUnitOfWork{repo: f.repo}
	f.mu.Lock()
	f.last = uow
	f.mu.Unlock()
	return uow
}

func (f *fakeFactory) lastUnitOfWork() *fakeUnitOfWork {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit int) ([]logger.LogEntry, error)   { return nil, nil }
