package selection

import (
	"math/rand"
	"sync"

	"reaction-roulette-be/internal/entity"
)

// Engine picks one eligible message uniformly at random from a snapshot.
// It is stateless apart from its random source; callers own the anti-repeat
// memory and update it after a successful pick.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Pick filters msgs by kind/params and returns one uniformly-random match,
// or nil when nothing is eligible. Empty results are expected, not errors.
func (e *Engine) Pick(msgs []*entity.Message, kind FilterKind, p Params) *entity.Message {
	eligible := make([]*entity.Message, 0, len(msgs))
	for _, msg := range msgs {
		if Eligible(msg, kind, p) {
			eligible = append(eligible, msg)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	e.mu.Lock()
	i := e.rng.Intn(len(eligible))
	e.mu.Unlock()
	return eligible[i]
}
