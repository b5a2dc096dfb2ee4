package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/observability"
	"github.com/jonathan/resume-wizard/internal/storage"
	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configPath  string
	stateDir    string
	storageKey  string
	databaseURL string
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory holding the saved wizard state (env RESUME_WIZARD_STATE_DIR)")
	rootCmd.PersistentFlags().StringVar(&storageKey, "storage-key", "", "Name of the saved state")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "Keep state in PostgreSQL instead of a file (env DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadSettings layers flags over the config file over the environment and built-in defaults
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *fileCfg
	}

	flags := cmd.Flags()
	setString(flags, "state-dir", &cfg.StateDir, stateDir)
	setString(flags, "storage-key", &cfg.StorageKey, storageKey)
	setString(flags, "db-url", &cfg.DatabaseURL, databaseURL)
	if verbose {
		cfg.Verbose = true
	}

	merged := cfg.MergeWithDefaults(config.FromEnv())
	if merged.StateDir == "" {
		merged.StateDir = defaultStateDir()
	}
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".resume_wizard"
	}
	return filepath.Join(dir, "resume-wizard")
}

// session is one command's view of the saved wizard
type session struct {
	cfg     config.Config
	store   *store.Store
	printer *observability.Printer
	close   func()
}

// openSession restores the store from the configured backend
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	closeFn := func() {}

	var persister store.Persister
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		persister = db.NewStatePersister(database, cfg.StorageKey)
		closeFn = database.Close
		if cfg.Verbose {
			logger.Printf("[store] using PostgreSQL state %q", cfg.StorageKey)
		}
	} else {
		files := storage.NewFileStore(cfg.StateDir, cfg.StorageKey)
		persister = files
		if cfg.Verbose {
			logger.Printf("[store] using state file %s", files.Path())
		}
	}

	return &session{
		cfg:     cfg,
		store:   store.New(ctx, persister, logger),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		close:   closeFn,
	}, nil
}

// reportValidation prints inline field messages for a validation failure. Other errors pass through.
func (s *session) reportValidation(err error) error {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		s.printer.PrintValidationErrors(verr)
		return fmt.Errorf("%s not saved: %d invalid fields", verr.Kind, len(verr.Errors))
	}
	return err
}

func setString(flags *pflag.FlagSet, name string, dst *string, value string) {
	if flags.Changed(name) {
		*dst = value
	}
}
