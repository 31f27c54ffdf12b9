package entity

// ReactionLedger maps a custom emoji id (decimal string, the JSONB key) to
// the set of users who applied it. Absent keys are empty sets.
type ReactionLedger map[string][]int64

func NewReactionLedger() ReactionLedger {
	return make(ReactionLedger)
}

// Add records userId under kind. Returns false when the user was already
// present, so re-delivered events stay no-ops.
func (l ReactionLedger) Add(kind string, userId int64) bool {
	for _, existing := range l[kind] {
		if existing == userId {
			return false
		}
	}
	l[kind] = append(l[kind], userId)
	return true
}

// Remove deletes userId from kind. Returns false when the user was not
// present. An emptied kind keeps its key out of the map.
func (l ReactionLedger) Remove(kind string, userId int64) bool {
	users, ok := l[kind]
	if !ok {
		return false
	}
	for i, existing := range users {
		if existing == userId {
			users = append(users[:i], users[i+1:]...)
			if len(users) == 0 {
				delete(l, kind)
			} else {
				l[kind] = users
			}
			return true
		}
	}
	return false
}

// Has reports whether userId applied the reaction kind.
func (l ReactionLedger) Has(kind string, userId int64) bool {
	for _, existing := range l[kind] {
		if existing == userId {
			return true
		}
	}
	return false
}
