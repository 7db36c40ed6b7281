package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/salesqueen/internal/config"
	"github.com/nao1215/salesqueen/internal/geo"
	"github.com/nao1215/salesqueen/internal/log"
	"github.com/nao1215/salesqueen/internal/notify"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/nao1215/salesqueen/internal/report"
	"github.com/nao1215/salesqueen/internal/store"
	"github.com/spf13/cobra"
)

// app holds the services a command works with.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	notifier notify.Notifier
	backend  store.Backend
	session  *project.Session
}

// openApp builds the configuration, opens the project store and restores
// the saved project. The caller must Close the returned app.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	estimator, err := pricing.New(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	backend, err := store.Open(cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StoreOptions().Kind, err)
	}

	notifier := notify.NewConsole(cmd.ErrOrStderr())
	session := project.NewSession(backend,
		project.WithEstimator(estimator),
		project.WithNotifier(notifier),
		project.WithLogger(logger),
	)
	if session.Open(cmd.Context()) {
		logger.Debug("restored saved project", "percentage", session.Percentage())
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
		backend:  backend,
		session:  session,
	}, nil
}

// Close releases the storage backend.
func (a *app) Close() error {
	return a.backend.Close()
}

// locator returns the configured location lookup service.
func (a *app) locator() (geo.Locator, error) {
	return geo.New(a.cfg.GeoOptions())
}

// writer returns a report writer for the --format flag of cmd, falling back
// to the configured format.
func (a *app) writer(cmd *cobra.Command) (report.Writer, error) {
	format := a.cfg.Format
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		format = report.Format(f.Value.String())
	}
	return report.NewWriter(format, cmd.OutOrStdout(), a.cfg.Verbose)
}

// warn shows a warning notice.
func (a *app) warn(msg string) {
	a.notifier.Notify(notify.Notice{Message: msg, Level: notify.LevelWarning})
}

// getVerboseFlag returns the verbose flag value from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file,
// SALESQUEEN_* environment variables and command-line flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplyFile(file); err != nil {
			return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with the storage flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	ephemeral, err := flags.GetBool("ephemeral")
	if err != nil {
		return err
	}
	cfg.Ephemeral = cfg.Ephemeral || ephemeral

	if flags.Changed("data-dir") {
		if cfg.DataDir, err = flags.GetString("data-dir"); err != nil {
			return err
		}
	}
	if flags.Changed("storage") {
		storage, err := flags.GetString("storage")
		if err != nil {
			return err
		}
		cfg.Storage = store.Kind(storage)
	}
	if flags.Changed("redis-url") {
		if cfg.RedisURL, err = flags.GetString("redis-url"); err != nil {
			return err
		}
	}
	return nil
}

// addFormatFlag registers the report format flag on cmd.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "", fmt.Sprintf("Output format: %s (default from configuration)", formatList()))
}

func formatList() string {
	s := ""
	for i, f := range report.Formats() {
		if i > 0 {
			s += ", "
		}
		s += string(f)
	}
	return s
}

// runWithApp opens the app, runs fn and closes the app.
func runWithApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.logger.Warn("failed to close storage", "error", cerr)
		}
	}()
	return fn(a)
}
