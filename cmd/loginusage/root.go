package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	corecfg "github.com/aevon-lab/login-usage/internal/core/config"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands once the root pre-run loaded it.
type app struct {
	configPath string
	logLevel   string
	cfg        *corecfg.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "loginusage",
		Short: "Login usage aggregation and reporting",
		Long:  "Aggregates successful logins from the system log into daily buckets and reports unique users per interval.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML configuration file (defaults and LOGINUSAGE_* env apply without one)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newAggregateCmd(a),
		newQueryCmd(a),
		newMigrateCmd(a),
	)
	return rootCmd
}

func (a *app) load() error {
	// Provisional logger until log.level is known.
	slog.SetDefault(newLogger(slog.LevelInfo))

	cfg, err := corecfg.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(level))

	a.cfg = cfg
	slog.Debug("Loaded config", "config", cfg)
	return nil
}

// newLogger writes text logs to stderr. Stdout carries command output such
// as query results.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
