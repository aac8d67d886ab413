package usecase

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
)

type resetTimer interface {
	Schedule(fn func()) bool
	Cancel() bool
	Stop()
}

// GameManager owns the current game. Every action goes through Dispatch, one at a time.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   repository.GameRepository
	resetTimer resetTimer

	mu      sync.Mutex
	roundID string
	closed  bool

	subsMu sync.Mutex
	subs   map[*subscriber]struct{}
}

type subscriber struct {
	ch chan entity.GameState
}

// offer replaces whatever snapshot the subscriber has not read yet.
func (that *subscriber) offer(state entity.GameState) {
	select {
	case <-that.ch:
	default:
	}

	select {
	case that.ch <- state:
	default:
	}
}

func NewGameManager(logger *slog.Logger, gameRepo repository.GameRepository, resetTimer resetTimer) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		gameRepo:   gameRepo,
		resetTimer: resetTimer,
		roundID:    uuid.NewString(),
		subs:       make(map[*subscriber]struct{}),
	}
}

// State returns the current snapshot.
func (that *GameManager) State() entity.GameState {
	return that.gameRepo.Load()
}

func (that *GameManager) RoundID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.roundID
}

func (that *GameManager) PlayMove(row, col int, position entity.Position) entity.GameState {
	return that.Dispatch(tictactoe.PlayMove{Row: row, Col: col, Position: position})
}

func (that *GameManager) ResetBoard() entity.GameState {
	return that.Dispatch(tictactoe.ResetBoard{})
}

func (that *GameManager) ChangeBackgroundColor() entity.GameState {
	return that.Dispatch(tictactoe.ChangeBackgroundColorAction{})
}

// Dispatch reduces the current state with action and publishes the result.
// After Close it only returns the last state.
func (that *GameManager) Dispatch(action tictactoe.Action) entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return that.gameRepo.Load()
	}

	return that.dispatchLocked(action)
}

func (that *GameManager) dispatchLocked(action tictactoe.Action) entity.GameState {
	log := that.logger.With("method", "Dispatch", "action", tictactoe.Name(action), "round", that.roundID)

	prev := that.gameRepo.Load()
	next := tictactoe.Reduce(prev, action)

	if _, ok := action.(tictactoe.ResetBoard); ok {
		if that.resetTimer.Cancel() {
			log.Debug("pending auto-reset canceled")
		}
		that.roundID = uuid.NewString()
		log.Info("new round started", "next_round", that.roundID)
	}

	if next == prev {
		log.Debug("action left the state unchanged")

		return prev
	}

	that.gameRepo.Swap(next)

	if !prev.Result.IsTerminal() && next.Result.IsTerminal() {
		log.Info("game finished", "result", next.Result)
		that.scheduleReset(log, that.roundID)
	}

	that.publish(next)

	return next
}

func (that *GameManager) scheduleReset(log *slog.Logger, round string) {
	armed := that.resetTimer.Schedule(func() {
		that.autoReset(round)
	})
	if !armed {
		log.Debug("auto-reset disabled")
	}
}

func (that *GameManager) autoReset(round string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed || that.roundID != round {
		that.logger.Debug("stale auto-reset ignored", "round", round)

		return
	}

	that.dispatchLocked(tictactoe.ResetBoard{})
}

// Subscribe returns a channel that always holds the newest snapshot not yet read.
// The channel is closed by the returned func or by Close.
func (that *GameManager) Subscribe() (<-chan entity.GameState, func()) {
	sub := &subscriber{ch: make(chan entity.GameState, 1)}

	that.subsMu.Lock()
	if that.subs == nil {
		close(sub.ch)
		that.subsMu.Unlock()

		return sub.ch, func() {}
	}
	that.subs[sub] = struct{}{}
	that.subsMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			that.subsMu.Lock()
			defer that.subsMu.Unlock()

			if _, ok := that.subs[sub]; ok {
				delete(that.subs, sub)
				close(sub.ch)
			}
		})
	}

	return sub.ch, unsubscribe
}

func (that *GameManager) publish(state entity.GameState) {
	that.subsMu.Lock()
	defer that.subsMu.Unlock()

	for sub := range that.subs {
		sub.offer(state)
	}
}

// Close stops the auto-reset and closes every subscription. Close is idempotent.
func (that *GameManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}
	that.closed = true

	that.resetTimer.Stop()

	that.subsMu.Lock()
	defer that.subsMu.Unlock()

	for sub := range that.subs {
		close(sub.ch)
	}
	that.subs = nil

	that.logger.Info("game manager closed")
}
