// Package cmd implements the CLI commands for spreadview using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/config"
	"github.com/gaurav-prasanna/spreadview/core/book"
	"github.com/gaurav-prasanna/spreadview/core/extract"
	"github.com/gaurav-prasanna/spreadview/core/fetch"
	"github.com/gaurav-prasanna/spreadview/core/search"
	"github.com/gaurav-prasanna/spreadview/core/ui"
)

// Persistent flag variables.
var (
	flagConfig   string
	flagSettings string
	flagLogLevel string
)

// app holds what every book command needs, built once per invocation.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	fetcher *fetch.HTTPFetcher
	book    *book.Book
	search  *search.Client
	dialogs *ui.Dialogs
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "spreadview",
	Short: "spreadview — serve repository books to a page-flip viewer",
	Long: `spreadview resolves page layout, page labels, image and full-text URIs,
search results and table of contents for a repository book described by
a settings file, and serves them to a two-page book viewer.

Usage:
  spreadview --settings book.json spread 12
  spreadview --settings book.json serve --addr :8088`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		// Sync fails on console handles; nothing useful to report.
		_ = current.log.Sync()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Book settings file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Console log level: none, normal or debug")
}

// setup loads configuration and the book before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfiguration(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	log := cfg.Logging.Prepare()

	if flagSettings == "" {
		return errors.New("--settings is required")
	}
	settings, err := book.LoadSettings(flagSettings)
	if err != nil {
		return err
	}

	f := fetch.New(
		fetch.WithTimeout(cfg.Repository.Timeout),
		fetch.WithUserAgent(cfg.Repository.UserAgent),
		fetch.WithLogger(log.Named("fetch")),
	)
	b, err := book.New(cmd.Context(), settings, f, log.Named("book"))
	if err != nil {
		return fmt.Errorf("loading book %s: %w", flagSettings, err)
	}

	current = &app{
		cfg:     cfg,
		log:     log,
		fetcher: f,
		book:    b,
		search:  search.New(b, f, log.Named("search")),
		dialogs: ui.NewDialogs(b, b, extract.New(), log.Named("ui")),
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
