package cli

import (
	"errors"
	"fmt"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `View and edit the Agora CLI configuration.

Settings live in a TOML file under ~/.agora (or --config-dir).`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it.

Keys:
  base_url          backend root URL
  token             bearer token (AGORA_TOKEN overrides)
  cache_ttl_seconds response cache lifetime
  debounce_millis   dropdown debounce delay
  min_query_chars   minimum query length for previews
  dropdown_max      preview results per domain
  history_backend   sqlite, file or memory
  data_dir          data directory override`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg := configStore.Get()
	cfg.Token = "" // never echo credentials

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	cfg := configStore.Get()

	switch key {
	case "base_url":
		cfg.BaseURL = value
	case "token":
		cfg.Token = value
	case "history_backend":
		switch value {
		case "sqlite", "file", "memory":
		default:
			return fmt.Errorf("invalid history_backend %q (want sqlite, file or memory)", value)
		}
		cfg.HistoryBackend = value
	case "data_dir":
		cfg.DataDir = value
	case "cache_ttl_seconds", "debounce_millis", "min_query_chars", "dropdown_max":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid value %q for %s: expected a non-negative integer", value, key)
		}
		switch key {
		case "cache_ttl_seconds":
			cfg.CacheTTLSeconds = n
		case "debounce_millis":
			cfg.DebounceMillis = n
		case "min_query_chars":
			cfg.MinQueryChars = n
		case "dropdown_max":
			cfg.DropdownMax = n
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := configStore.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s.\n", key)
	return nil
}
