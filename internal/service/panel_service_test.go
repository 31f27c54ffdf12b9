package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"reaction-roulette-be/internal/platform"

	"github.com/stretchr/testify/assert"
)

func TestPanelFirstPostDeletesNothing(t *testing.T) {
	pf := newFakePlatform()
	svc := NewPanelService(pf, nopLogger{}, 1)

	assert.NoError(t, svc.Post(context.Background()))
	assert.NotZero(t, svc.CurrentId())
	assert.Empty(t, pf.deletedMessages())
}

func TestPanelRepostRetiresPrevious(t *testing.T) {
	pf := newFakePlatform()
	svc := NewPanelService(pf, nopLogger{}, 1)

	assert.NoError(t, svc.Post(context.Background()))
	first := svc.CurrentId()
	assert.NoError(t, svc.Post(context.Background()))
	second := svc.CurrentId()

	assert.NotEqual(t, first, second)
	assert.Equal(t, []int64{first}, pf.deletedMessages())
	// Exactly one id is authoritative afterwards.
	assert.Len(t, pf.postedPanels(), 2)
}

func TestPanelAbsorbsAlreadyGonePrevious(t *testing.T) {
	pf := newFakePlatform()
	pf.deleteErr = platform.ErrNotFound
	svc := NewPanelService(pf, nopLogger{}, 1)

	assert.NoError(t, svc.Post(context.Background()))
	assert.NoError(t, svc.Post(context.Background()))
	assert.NotZero(t, svc.CurrentId())
}

func TestPanelSendFailureLeavesNoLivePanel(t *testing.T) {
	pf := newFakePlatform()
	svc := NewPanelService(pf, nopLogger{}, 1)
	assert.NoError(t, svc.Post(context.Background()))

	pf.sendPanelErr = errors.New("platform unreachable")
	assert.Error(t, svc.Post(context.Background()))
	// The old panel was already targeted for deletion; nothing is live.
	assert.Zero(t, svc.CurrentId())
}

func TestPanelConcurrentPostsSerialize(t *testing.T) {
	pf := newFakePlatform()
	svc := NewPanelService(pf, nopLogger{}, 1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Post(context.Background())
		}()
	}
	wg.Wait()

	panels := pf.postedPanels()
	deleted := pf.deletedMessages()
	// Every panel except the last was deleted before its successor went up.
	assert.Len(t, panels, 10)
	assert.Len(t, deleted, 9)
	assert.Equal(t, panels[len(panels)-1], svc.CurrentId())
}
