package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gravitrone/jsonedit/internal/document"
	"github.com/gravitrone/jsonedit/internal/logging"
	"github.com/gravitrone/jsonedit/internal/store"
	"github.com/gravitrone/jsonedit/internal/workspace"
)

// openWorkspace loads path into a workspace that does not touch the
// last-path record; one-shot commands should not change what the editor
// reopens.
func openWorkspace(ctx context.Context, path string) (*workspace.Workspace, error) {
	ws := workspace.New(store.Files{}, nil, logging.FromContext(ctx))
	if err := ws.Open(path); err != nil {
		return nil, err
	}
	return ws, nil
}

func writeBack(out io.Writer, ws *workspace.Workspace) error {
	res, err := ws.Save(workspace.Overwrite())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", res.Path)
	return nil
}

func printDocument(out io.Writer, doc *document.Document) error {
	data, err := document.Serialize(doc)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// FmtCmd returns the `jsonedit fmt` command.
func FmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Reformat a JSON file with 4-space indentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if write {
				return writeBack(cmd.OutOrStdout(), ws)
			}
			return printDocument(cmd.OutOrStdout(), ws.Document())
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file instead of printing")
	return cmd
}

// SortCmd returns the `jsonedit sort` command.
func SortCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Sort keys case-insensitively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ws.Sort()
			if write {
				return writeBack(cmd.OutOrStdout(), ws)
			}
			return printDocument(cmd.OutOrStdout(), ws.Document())
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file instead of printing")
	return cmd
}

// SetCmd returns the `jsonedit set` command.
func SetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <key> <value>",
		Short: "Set a value, inferring int, float or string",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			key := args[1]
			doc := ws.Document()
			if !doc.Has(key) {
				if err := ws.Insert(key, args[2]); err != nil {
					return fmt.Errorf("set %q: %w", key, err)
				}
			} else if _, err := doc.SetValue(key, args[2]); err != nil {
				return fmt.Errorf("set %q: %w", key, err)
			}
			if !ws.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
				return nil
			}
			return writeBack(cmd.OutOrStdout(), ws)
		},
	}
}

// RenameCmd returns the `jsonedit rename` command.
func RenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <file> <old> <new>",
		Short: "Rename a key (an existing key with the new name is replaced)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := ws.Document().RenameKey(args[1], args[2]); err != nil {
				return fmt.Errorf("rename %q: %w", args[1], err)
			}
			if !ws.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
				return nil
			}
			return writeBack(cmd.OutOrStdout(), ws)
		},
	}
}
