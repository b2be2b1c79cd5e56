// abel - a terminal chat client for OpenAI-compatible completion endpoints.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/abel-tui/internal/cli"
	"github.com/jeranaias/abel-tui/internal/config"
	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/session"
	"github.com/jeranaias/abel-tui/internal/ui/chat"
	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func newRootCmd() *cobra.Command {
	opts := appOptions{}

	root := &cobra.Command{
		Use:           "abel",
		Short:         "abel is a terminal chat client",
		Long:          "abel keeps a list of conversations with an OpenAI chat model and stores them locally.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.abel/config.toml)")
	flags.BoolVar(&opts.plain, "plain", false, "use the line-mode interface instead of the full-screen one")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep conversations in memory only")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newHistoryCmd(&opts),
		newClearCmd(&opts),
		newExportCmd(&opts),
		newVersionCmd(),
	)
	return root
}

func newHistoryCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			rows := model.BuildHistory(a.store.Load(), time.Now())
			fmt.Fprint(cmd.OutOrStdout(), cli.FormatHistory(rows, cli.GetTerminalWidth()))
			return nil
		},
	}
}

func newClearCmd(opts *appOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := cli.RequireConfirmation(yes, cli.ConfirmDeleteAllQuestion)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			a, err := openApp(*opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.ClearAll(); err != nil {
				return err
			}
			a.logger.Info().Msg("all conversations cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "All conversations deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newExportCmd(opts *appOptions) *cobra.Command {
	var format, outDir string
	cmd := &cobra.Command{
		Use:   "export N",
		Short: "Save conversation N from the history list to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			convs := a.store.Load()
			id, err := cli.RowID(model.BuildHistory(convs, time.Now()), args[0])
			if err != nil {
				return err
			}
			conv := convs[model.FindConversation(convs, id)]

			path, err := cli.ExportConversation(conv, format, outDir, time.Now)
			if err != nil {
				return err
			}
			a.logger.Info().Str("id", id).Str("path", path).Msg("conversation exported")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "md or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "abel %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}

// =============================================================================
// CHAT
// =============================================================================

// runChat starts the full-screen interface, or the line REPL with --plain.
func runChat(ctx context.Context, opts appOptions) error {
	tui := !opts.plain
	if tui && !cli.IsInteractive() {
		return errors.New("abel needs a terminal; use --plain for line mode")
	}

	a, err := openApp(opts, stderrIfNotTUI(tui))
	if err != nil {
		return err
	}
	defer a.Close()

	mgr := a.manager()

	if !tui {
		return runPlain(ctx, a, mgr)
	}

	m := chat.New(mgr, a.prefs, styles.NewTheme(),
		chat.WithLogger(a.logger.With().Str("component", "ui").Logger()),
		chat.WithContext(ctx),
	)
	return chat.Run(ctx, m, mgr)
}

// runPlain runs the line REPL. Replies are rendered as Markdown only when
// stdout takes color.
func runPlain(ctx context.Context, a *app, mgr *session.Manager) error {
	editor := cli.NewLineEditor(historyFile())
	defer editor.Close()

	opts := []cli.PlainOption{
		cli.WithPlainLogger(a.logger.With().Str("component", "plain").Logger()),
		cli.WithWidth(cli.GetTerminalWidth()),
	}
	if cli.ColorsEnabled() {
		theme := styles.NewTheme()
		if dark, ok := a.prefs.DarkMode(); ok {
			theme.SetDark(dark)
		}
		opts = append(opts, cli.WithMarkdownStyle(theme.GlamourStyle()))
	}
	return cli.NewPlain(mgr, editor, os.Stdout, opts...).Run(ctx)
}

// historyFile returns the REPL input history path, or "" when the config
// directory cannot be resolved.
func historyFile() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, cli.HistoryFileName)
}
