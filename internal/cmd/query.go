package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/jsonedit/internal/config"
	"github.com/gravitrone/jsonedit/internal/document"
	"github.com/gravitrone/jsonedit/internal/store"
)

// GetCmd returns the `jsonedit get` command.
func GetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v, ok := ws.Document().Get(args[1])
			if !ok {
				return fmt.Errorf("get %q: %w", args[1], document.ErrKeyNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
}

// SearchCmd returns the `jsonedit search` command.
func SearchCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "search <file> <term>",
		Short: "List entries whose key or string value contains a term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := document.ParseSearchMode(mode)
			if err != nil {
				return err
			}
			ws, err := openWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ws.SetSearch(document.SearchState{Mode: m, Term: args[1]})

			rows := ws.View()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Key, r.Display)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "key", "match against key or value")
	return cmd
}

// LastCmd returns the `jsonedit last` command.
func LastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Print the file the editor will reopen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			file, err := cfg.LastPathFile()
			if err != nil {
				return err
			}
			path, err := store.NewLastPath(file).Load()
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no file recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
