package selection

import "reaction-roulette-be/internal/entity"

// FilterKind enumerates the named pick filters. Keeping the filters as data
// interpreted by one evaluator keeps the logic testable in isolation.
type FilterKind int

const (
	// Unrestricted matches every cached message.
	Unrestricted FilterKind = iota
	// SavedOnly matches messages the requester marked read-later.
	SavedOnly
	// FavoriteOnly matches messages the requester marked favorite.
	FavoriteOnly
	// SelfExcluded matches messages the requester did NOT mark as skipped.
	SelfExcluded
	// FullyExcluded matches saved or favorite messages minus the skipped ones.
	FullyExcluded
)

func (k FilterKind) String() string {
	switch k {
	case Unrestricted:
		return "unrestricted"
	case SavedOnly:
		return "saved_only"
	case FavoriteOnly:
		return "favorite_only"
	case SelfExcluded:
		return "self_excluded"
	case FullyExcluded:
		return "fully_excluded"
	}
	return "unknown"
}

// Emojis holds the ledger keys (decimal custom emoji ids) the filters test.
type Emojis struct {
	ReadLater   string
	Favorite    string
	SelfExclude string
}

// Params carries the per-request state a filter evaluates against.
type Params struct {
	UserId int64
	// Author of the requester's previous pick; zero means no memory.
	LastAuthorId int64
	// Configured always-excluded author; zero disables the rule.
	ExcludedAuthorId int64
	Emojis           Emojis
}

// Eligible reports whether msg satisfies the filter for the given params.
// Every filter except Unrestricted excludes the requester's own messages,
// the configured excluded author, and the requester's last-picked author.
func Eligible(msg *entity.Message, kind FilterKind, p Params) bool {
	if kind == Unrestricted {
		return true
	}

	if msg.AuthorId == p.UserId {
		return false
	}
	if p.ExcludedAuthorId != 0 && msg.AuthorId == p.ExcludedAuthorId {
		return false
	}
	if p.LastAuthorId != 0 && msg.AuthorId == p.LastAuthorId {
		return false
	}

	switch kind {
	case SavedOnly:
		return msg.Reactions.Has(p.Emojis.ReadLater, p.UserId)
	case FavoriteOnly:
		return msg.Reactions.Has(p.Emojis.Favorite, p.UserId)
	case SelfExcluded:
		return !msg.Reactions.Has(p.Emojis.SelfExclude, p.UserId)
	case FullyExcluded:
		marked := msg.Reactions.Has(p.Emojis.ReadLater, p.UserId) ||
			msg.Reactions.Has(p.Emojis.Favorite, p.UserId)
		return marked && !msg.Reactions.Has(p.Emojis.SelfExclude, p.UserId)
	}
	return false
}
