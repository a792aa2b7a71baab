package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/gravitrone/jsonedit/internal/cmd"
	"github.com/gravitrone/jsonedit/internal/config"
	"github.com/gravitrone/jsonedit/internal/document"
	"github.com/gravitrone/jsonedit/internal/logging"
	"github.com/gravitrone/jsonedit/internal/store"
	"github.com/gravitrone/jsonedit/internal/ui"
	"github.com/gravitrone/jsonedit/internal/workspace"
)

const defaultLogFile = "jsonedit-debug.log"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

type rootOptions struct {
	debug      bool
	searchMode string
}

func newRootCmd() *cobra.Command {
	var (
		opts rootOptions
		cfg  *config.Config
	)
	root := &cobra.Command{
		Use:   "jsonedit [file]",
		Short: "jsonedit - edit flat JSON objects in the terminal",
		Long:  "jsonedit: browse, search, edit, sort and save the key/value pairs of a flat JSON object.",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			lgr, closer, err := setupLogging(cfg, opts.debug)
			if err != nil {
				return err
			}
			if closer != nil {
				cobra.OnFinalize(func() { _ = closer.Close() })
			}
			c.SetContext(logging.WithLogger(c.Context(), lgr))
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runTUI(c.Context(), cfg, path, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write a debug log to "+defaultLogFile)
	root.Flags().StringVar(&opts.searchMode, "search-mode", "", "initial search mode: key or value")

	root.AddCommand(cmd.FmtCmd())
	root.AddCommand(cmd.SortCmd())
	root.AddCommand(cmd.GetCmd())
	root.AddCommand(cmd.SetCmd())
	root.AddCommand(cmd.RenameCmd())
	root.AddCommand(cmd.SearchCmd())
	root.AddCommand(cmd.LastCmd())
	return root
}

// setupLogging opens the debug log when asked for on the command line or in
// the config. Without either, logs are discarded.
func setupLogging(cfg *config.Config, debug bool) (logr.Logger, io.Closer, error) {
	path := cfg.LogFile
	if path == "" && debug {
		path = defaultLogFile
	}
	if path == "" {
		return logging.Discard(), nil, nil
	}
	verbosity := 0
	if debug {
		verbosity = 1
	}
	return logging.ToFile(path, verbosity)
}

// buildApp wires the workspace and loads the starting document: path when
// given, otherwise whatever the previous session had open. A load failure is
// shown in the editor instead of aborting.
func buildApp(ctx context.Context, cfg *config.Config, path string, opts rootOptions) (ui.App, error) {
	lgr := logging.FromContext(ctx)

	if opts.searchMode != "" {
		if _, err := document.ParseSearchMode(opts.searchMode); err != nil {
			return ui.App{}, err
		}
		cfg.SearchMode = opts.searchMode
	}

	stateFile, err := cfg.LastPathFile()
	if err != nil {
		return ui.App{}, err
	}
	ws := workspace.New(store.Files{}, store.NewLastPath(stateFile), lgr)

	var loadErr error
	if path != "" {
		loadErr = ws.Open(path)
	} else if restored, err := ws.Restore(); err != nil {
		loadErr = err
		if restored != "" {
			loadErr = fmt.Errorf("reopen %s: %w", restored, err)
		}
	}
	if loadErr != nil {
		lgr.Error(loadErr, "initial load failed")
	}

	return ui.NewApp(ws, cfg, lgr).WithStartupError(loadErr), nil
}

func runTUI(ctx context.Context, cfg *config.Config, path string, opts rootOptions) error {
	app, err := buildApp(ctx, cfg, path, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
