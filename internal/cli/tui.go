package cli

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"reposcout/internal/config"
	"reposcout/internal/eventbus"
	"reposcout/internal/github"
	"reposcout/internal/history"
	"reposcout/internal/stream"
	"reposcout/internal/ui"
)

// e2eEnv makes the TUI announce itself once it is about to draw
const e2eEnv = "REPOSCOUT_E2E_TEST"

func runTUI(cmd *cobra.Command, cfg *config.Config) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	// the store closes last so the bus can drain its handlers first
	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			slog.Warn("search history disabled", "path", cfg.History.Path, "err", err)
		} else {
			defer store.Close()
		}
	}

	bus := eventbus.New()
	defer bus.Close()
	if store != nil {
		defer store.Subscribe(bus)()
	}

	// Stream callbacks are drained by the Bubble Tea update loop
	loop := stream.NewLoop(256)
	defer loop.Close()

	model := ui.NewModel(github.NewSource(client, loop), loop, bus, ui.OptionsFromConfig(cfg))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if os.Getenv(e2eEnv) == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
	}

	slog.Info("starting UI")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	slog.Info("UI exited normally")
	return nil
}
