package dispatch

import (
	"reaction-roulette-be/internal/platform"
	"reaction-roulette-be/internal/selection"
)

// Panel action identifiers. Commands from the gateway reuse the same ids.
const (
	ActionPickAny      = "pick_any"
	ActionPickSaved    = "pick_saved"
	ActionPickFavorite = "pick_favorite"
	ActionPickUnmarked = "pick_unmarked"
	ActionPickMarked   = "pick_marked"

	// Privileged commands restricted to the curator.
	CommandPanel  = "panel"
	CommandSyncDB = "update_db"
)

// Actions maps a panel action id to the filter it runs. One generic handler
// consumes this table instead of one callback per control.
var Actions = map[string]selection.FilterKind{
	ActionPickAny:      selection.Unrestricted,
	ActionPickSaved:    selection.SavedOnly,
	ActionPickFavorite: selection.FavoriteOnly,
	ActionPickUnmarked: selection.SelfExcluded,
	ActionPickMarked:   selection.FullyExcluded,
}

// PanelActions returns the controls rendered on the panel, in display order.
func PanelActions() []platform.PanelAction {
	return []platform.PanelAction{
		{Id: ActionPickAny, Label: "Any message"},
		{Id: ActionPickSaved, Label: "Saved"},
		{Id: ActionPickFavorite, Label: "Favorites"},
		{Id: ActionPickUnmarked, Label: "Not skipped"},
		{Id: ActionPickMarked, Label: "Saved & favorites"},
	}
}
