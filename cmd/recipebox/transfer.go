package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const defaultExportFile = "recipes.jsonl"

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every recipe to a JSON Lines file",
		Long: `Export writes one JSON object per recipe with its category name and
ingredient list. The file is replaced atomically.

Example:
  recipebox export --out backup.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Export(out)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{"path": out, "exported": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipe(s) to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", defaultExportFile, "output file")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add recipes from a JSON Lines file",
		Long: `Import adds each recipe in a file written by export. Categories are matched
by name and must already exist. Malformed lines are skipped; the first
recipe that cannot be added stops the import, keeping those added before it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.Import(args[0])
			if a.jsonOut {
				if perr := printJSON(cmd.OutOrStdout(), map[string]any{
					"imported": result.Imported,
					"skipped":  result.Skipped,
				}); perr != nil {
					return perr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipe(s), skipped %d malformed line(s)\n",
					result.Imported, result.Skipped)
			}
			return err
		},
	}
}
