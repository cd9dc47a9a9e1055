// ABOUTME: Root Cobra command and global flags for the postboard CLI.
// ABOUTME: Loads config, installs the slog handler, and builds the API client and post store.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/config"
	"github.com/2389-research/postboard/internal/storage"
	"github.com/2389-research/postboard/internal/store"
)

var globalConfig *config.Config
var globalRemoteClient *storage.RemoteClient
var globalPostStore *store.PostStore

// Flags
var (
	flagBaseURL string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "Client-side post board for a REST posts API",
	Long: `Client-side post board for a jsonplaceholder-style posts API.

Posts fetched from or created on the server are changed through the API.
Posts that exist only in this session are edited and deleted in place.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagBaseURL != "" {
			cfg.API.BaseURL = flagBaseURL
		}
		globalConfig = cfg

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		globalRemoteClient = storage.NewRemoteClient(cfg.API.BaseURL,
			storage.WithTimeout(cfg.Timeout()),
			storage.WithLogger(logger),
		)

		postStore, err := store.New(globalRemoteClient,
			store.WithLocalIDThreshold(cfg.Store.LocalIDThreshold),
			store.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("failed to create post store: %w", err)
		}
		globalPostStore = postStore
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "api-url", "", "Posts API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the stderr text logger at the configured level.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
