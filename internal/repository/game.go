package repository

import (
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type GameRepository interface {
	Load() entity.GameState
	Swap(next entity.GameState) entity.GameState
}

// StateSlot holds the one current game state of the process. Readers always see a
// complete snapshot: a new state is published by swapping a pointer.
type StateSlot struct {
	current atomic.Pointer[entity.GameState]
}

func NewStateSlot(initial entity.GameState) *StateSlot {
	slot := &StateSlot{}
	slot.current.Store(&initial)

	return slot
}

// Load returns a copy of the current state.
func (that *StateSlot) Load() entity.GameState {
	return *that.current.Load()
}

// Swap publishes next and returns the state it replaced.
func (that *StateSlot) Swap(next entity.GameState) entity.GameState {
	return *that.current.Swap(&next)
}
