package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-core/internal/config"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/service"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-core/internal/transport/tui"
	"github.com/rocketscienceinc/tictactoe-core/internal/usecase"
)

// RunApp - runs the game until the player quits or the process is signaled.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The browser helper would otherwise print over the game screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	gameRepo := repository.NewStateSlot(tictactoe.ResetGame())
	resetTimer := service.NewResetTimer(logger, conf.Game.AutoResetDelay)
	gameManager := usecase.NewGameManager(logger, gameRepo, resetTimer)
	defer gameManager.Close()

	model := tui.NewModel(logger, gameManager, tui.Options{
		Palette: tui.Palette{
			PlayerA: conf.Theme.PlayerA,
			PlayerB: conf.Theme.PlayerB,
			Text:    conf.Theme.Text,
		},
		Link:           tui.Link{URL: conf.Link.URL, Label: conf.Link.Label},
		RippleDuration: conf.Game.RippleDuration,
	})

	g, gctx := errgroup.WithContext(ctx)
	programCtx, quit := context.WithCancel(gctx)

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(programCtx)}
	if !conf.Game.DisableMouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, programOpts...)

	g.Go(func() error {
		defer quit()
		// Also covers a program killed by a signal.
		defer model.RestoreBackground()

		log.Info("starting game", "round", gameManager.RoundID(), "auto_reset_delay", conf.Game.AutoResetDelay)

		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("terminal program failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		return pumpStates(programCtx, gameManager, program)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("game closed")

	return nil
}

type subscriber interface {
	Subscribe() (<-chan entity.GameState, func())
}

type sender interface {
	Send(msg tea.Msg)
}

// pumpStates forwards state changes made outside of the terminal input to the program.
func pumpStates(ctx context.Context, manager subscriber, program sender) error {
	updates, unsubscribe := manager.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			program.Send(tui.StateChangedMsg{})
		}
	}
}
