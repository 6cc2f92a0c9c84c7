package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultDB = "/opt/wantokjobs/app/server/data/wantokjobs.db"

type options struct {
	DB     string
	Rules  string
	DryRun bool
	Debug  bool
}

func optionsFrom(v *viper.Viper) options {
	return options{
		DB:     v.GetString("db"),
		Rules:  v.GetString("rules"),
		DryRun: v.GetBool("dry-run"),
		Debug:  v.GetBool("debug"),
	}
}

func newRootCmd() *cobra.Command {
	var v *viper.Viper

	cmd := &cobra.Command{
		Use:   "jobclean",
		Short: "One-shot data-quality cleanup of the WantokJobs listings table",
		Long: `jobclean runs six passes over the active job listings in one transaction:
title normalization, company inference, markup stripping, stub
deactivation, description formatting and quality scoring.

Examples:
  # Clean the production database
  jobclean

  # Preview against a copy, nothing is committed
  jobclean --db ./wantokjobs.db --dry-run

  # Extra places and overrides on top of the built-in rules
  jobclean --rules ./rules.local.yml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadDotEnv()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := optionsFrom(v)
			log := newLogger(cmd.ErrOrStderr(), opts.Debug)
			return run(cmd.Context(), opts, cmd.OutOrStdout(), log)
		},
	}

	f := cmd.Flags()
	f.String("db", defaultDB, "SQLite file path or postgres:// URL of the jobs database")
	f.String("rules", "", "YAML file overlaid on the built-in rule tables")
	f.Bool("dry-run", false, "run every pass, then roll back instead of committing")
	f.Bool("debug", false, "log every record change")
	v = newViper(cmd)

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// execute runs cmd and reports any failure on its error stream. Cobra's own
// printing is silenced so flag, .env and cleanup errors all look the same.
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// newViper layers JOBCLEAN_* environment variables under the command's flags:
// an explicit flag wins, then the environment, then the flag default.
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	v.SetEnvPrefix("JOBCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "jobclean %s\n", version)
			return err
		},
	}
}

// loadDotEnv reads JOBCLEAN_* settings from ./.env when one exists.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("load .env file: %w", err)
		}
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run_id", uuid.NewString())
}
