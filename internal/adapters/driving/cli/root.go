// Package cli provides the cobra command-line interface for Agora.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agora-labs/agora-cli/internal/adapters/driven/auth"
	cachemem "github.com/agora-labs/agora-cli/internal/adapters/driven/cache/memory"
	"github.com/agora-labs/agora-cli/internal/adapters/driven/config/file"
	"github.com/agora-labs/agora-cli/internal/adapters/driven/rest"
	"github.com/agora-labs/agora-cli/internal/adapters/driven/storage/kv"
	storagemem "github.com/agora-labs/agora-cli/internal/adapters/driven/storage/memory"
	"github.com/agora-labs/agora-cli/internal/adapters/driven/storage/sqlite"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/core/ports/driving"
	"github.com/agora-labs/agora-cli/internal/core/services"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string
)

// Shared service instances wired by initServices and used by the
// subcommands. Tests may swap these for stubs.
var (
	configStore    *file.Store
	appConfig      file.Config
	searchService  driving.SearchService
	historyService driving.HistoryService
	searchStore    *services.SearchStore
	historyBackend driven.HistoryStore
)

var rootCmd = &cobra.Command{
	Use:   "agora",
	Short: "Search the Agora community platform",
	Long: `Agora CLI searches clubs, threads, events and media on an Agora
community platform, with relevance scoring, response caching and
persistent search history.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.agora)")
}

// Execute runs the root command.
func Execute() error {
	defer shutdown()
	return rootCmd.Execute()
}

// initServices builds the service graph from configuration.
// It is idempotent so tests can pre-wire stub services.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if searchService != nil {
		return nil
	}

	var err error
	configStore, err = file.NewStore(configDirFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appConfig = configStore.Get()

	tokenProvider := buildTokenProvider(appConfig)
	gateway := rest.NewGateway(appConfig.BaseURL, tokenProvider)

	cache := cachemem.NewCache(nil)
	svc := services.NewSearchService(gateway, cache, nil)
	svc.SetCacheTTL(appConfig.CacheTTL())
	searchService = svc

	historyBackend, err = buildHistoryStore(appConfig)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	historyService = services.NewHistoryService(historyBackend, nil)

	session := storagemem.NewKVStore()
	searchStore = services.NewSearchStore(searchService, historyService, session, nil)

	logger.Debug("services initialised (base_url=%s, history=%s)", appConfig.BaseURL, appConfig.HistoryBackend)
	return nil
}

// buildTokenProvider prefers the AGORA_TOKEN environment variable over
// the token stored in the config file.
func buildTokenProvider(cfg file.Config) driven.TokenProvider {
	token := os.Getenv("AGORA_TOKEN")
	if token == "" {
		token = cfg.Token
	}
	if token == "" {
		return auth.NewNullProvider()
	}
	return auth.NewStaticProvider(token)
}

func buildHistoryStore(cfg file.Config) (driven.HistoryStore, error) {
	switch cfg.HistoryBackend {
	case "file":
		store, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return kv.NewHistoryStore(store), nil
	case "memory":
		return storagemem.NewHistoryStore(), nil
	default:
		return sqlite.NewHistoryStore(cfg.DataDir)
	}
}

func shutdown() {
	if historyBackend != nil {
		if err := historyBackend.Close(); err != nil {
			logger.Warn("closing history store: %v", err)
		}
	}
}
