package toasttest

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// ManualAnimator holds transitions open until the test finishes them.
type ManualAnimator struct {
	mu        sync.Mutex
	entrances map[uuid.UUID]func()
	exits     map[uuid.UUID]func()
}

var _ toast.Animator = (*ManualAnimator)(nil)

func NewManualAnimator() *ManualAnimator {
	return &ManualAnimator{
		entrances: make(map[uuid.UUID]func()),
		exits:     make(map[uuid.UUID]func()),
	}
}

func (a *ManualAnimator) AnimateEntrance(_ toast.Handle, req toast.Request, done func()) {
	a.mu.Lock()
	a.entrances[req.ID] = done
	a.mu.Unlock()
}

func (a *ManualAnimator) AnimateExit(_ toast.Handle, req toast.Request, done func()) {
	a.mu.Lock()
	a.exits[req.ID] = done
	a.mu.Unlock()
}

// FinishEntrance completes the entrance of id. It reports whether one was running.
func (a *ManualAnimator) FinishEntrance(id uuid.UUID) bool {
	return finish(&a.mu, a.entrances, id)
}

// FinishExit completes the exit of id. It reports whether one was running.
func (a *ManualAnimator) FinishExit(id uuid.UUID) bool {
	return finish(&a.mu, a.exits, id)
}

func finish(mu *sync.Mutex, m map[uuid.UUID]func(), id uuid.UUID) bool {
	mu.Lock()
	done, ok := m[id]
	delete(m, id)
	mu.Unlock()
	if ok {
		done()
	}
	return ok
}
