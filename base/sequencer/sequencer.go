// Package sequencer establishes the single totally-ordered stream of
// state-mutating calls. Every mutating usecase operation runs inside
// Do, so no two mutations interleave and each call observes the state
// left by the previous one.
package sequencer

import (
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
)

type Sequencer struct {
	mu sync.Mutex
}

func New() *Sequencer {
	return &Sequencer{}
}

// Do runs fn exclusively. fn must validate before mutating so a returned
// error implies no state change.
func (s *Sequencer) Do(c ctx.Ctx, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
