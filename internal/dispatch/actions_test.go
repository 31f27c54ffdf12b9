package dispatch

import (
	"testing"

	"reaction-roulette-be/internal/selection"

	"github.com/stretchr/testify/assert"
)

func TestEveryPanelActionHasAFilter(t *testing.T) {
	for _, action := range PanelActions() {
		_, ok := Actions[action.Id]
		assert.True(t, ok, "panel action %s missing from dispatch table", action.Id)
	}
}

func TestDispatchTableMapping(t *testing.T) {
	assert.Equal(t, selection.Unrestricted, Actions[ActionPickAny])
	assert.Equal(t, selection.SavedOnly, Actions[ActionPickSaved])
	assert.Equal(t, selection.FavoriteOnly, Actions[ActionPickFavorite])
	assert.Equal(t, selection.SelfExcluded, Actions[ActionPickUnmarked])
	assert.Equal(t, selection.FullyExcluded, Actions[ActionPickMarked])
	assert.Len(t, Actions, 5)
}

func TestPrivilegedCommandsAreNotPickActions(t *testing.T) {
	_, ok := Actions[CommandPanel]
	assert.False(t, ok)
	_, ok = Actions[CommandSyncDB]
	assert.False(t, ok)
}
