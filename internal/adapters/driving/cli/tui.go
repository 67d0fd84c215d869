package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/agora-labs/agora-cli/internal/adapters/driven/config/file"
	"github.com/agora-labs/agora-cli/internal/adapters/driven/sched"
	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui"
	"github.com/agora-labs/agora-cli/internal/core/services"
	"github.com/agora-labs/agora-cli/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Agora search.

Type to see a live preview dropdown, press Enter to run a full search
across clubs, threads, events and media.

Controls:
  ↑/↓     - Navigate results
  Enter   - Search
  Esc     - Close dropdown / Clear / Quit
  Ctrl+C  - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery so a TUI crash leaves a usable stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if searchStore == nil || searchService == nil {
		return fmt.Errorf("services not configured")
	}

	dd := services.NewDropdown(searchService, sched.NewTimerDebouncer(), dropdownConfig(appConfig))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The TUI is long-running, so config edits are picked up live.
	go func() {
		err := configStore.Watch(ctx, func(cfg file.Config) {
			appConfig = cfg
			if svc, ok := searchService.(*services.SearchService); ok {
				svc.SetCacheTTL(cfg.CacheTTL())
			}
			logger.Debug("config reloaded")
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()

	ports := &tui.Ports{
		Store:    searchStore,
		Dropdown: dd,
	}
	return tui.Run(ctx, ports)
}

func dropdownConfig(cfg file.Config) services.DropdownConfig {
	return services.DropdownConfig{
		MinChars:     cfg.MinQueryChars,
		Debounce:     time.Duration(cfg.DebounceMillis) * time.Millisecond,
		MaxPerDomain: cfg.DropdownMax,
	}
}
