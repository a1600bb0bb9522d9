package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soundest/api"
	"soundest/config"
	"soundest/core/list"
	"soundest/core/search"
	"soundest/core/session"
	"soundest/logger"
	"soundest/store"
)

// Shared application state, wired once in initApp and injected into
// every store (nothing reads storage ambiently).
var (
	cfg       *config.Config
	storage   store.Store
	sess      *session.Session
	playlist  *list.List
	recent    *list.List
	searchRes *search.Results
	client    *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "soundest",
	Short: "Soundest is a terminal client for the Soundest music service.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if storage != nil {
			storage.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// initApp loads config, initialises logging, opens durable storage and
// builds the stores on top of it.
func initApp() error {
	cfg = config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	})

	var err error
	storage, err = openStorage(cfg)
	if err != nil {
		return err
	}

	sess = session.New(storage)
	sess.Restore()
	playlist = list.NewPlaylist(storage)
	recent = list.NewRecent(storage)
	searchRes = search.New()

	client = api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	client.SetTokenFunc(sess.Token)

	return nil
}

// openStorage picks the configured storage backend.
func openStorage(cfg *config.Config) (store.Store, error) {
	switch cfg.StorageBackend {
	case "redis":
		return store.NewRedis(cfg)
	case "file", "":
		return store.NewFile(cfg.StoragePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
