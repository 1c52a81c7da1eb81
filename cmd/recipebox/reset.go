package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const resetWarning = "This deletes every recipe and ingredient and reseeds the categories."

func newResetCmd(a *app) *cobra.Command {
	var (
		seed string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all data and reseed the categories",
		Long: `Reset drops every table, recreates the schema and loads the categories from
a CSV seed file with a "name" column. Without --seed the seed_file from
config.yaml is used, or the built-in category list when that is unset.

The seed is read in full before anything is dropped, so a bad seed file
leaves the store untouched.

Example:
  recipebox reset --yes
  recipebox reset --seed categories.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintln(cmd.OutOrStdout(), resetWarning)
				fmt.Fprint(cmd.OutOrStdout(), "Continue? (y/n): ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !isYes(answer) {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
					return nil
				}
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if cmd.Flags().Changed("seed") {
				err = store.ResetFromFile(seed)
			} else {
				err = store.Reseed()
			}
			if err != nil {
				return err
			}
			return a.reportCategories(cmd, "Store reset.")
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "CSV seed file (default: seed_file from config, else built-in)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// reportCategories reopens the store after a reset and prints the seeded
// categories under msg.
func (a *app) reportCategories(cmd *cobra.Command, msg string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	categories, err := store.Categories()
	if err != nil {
		return err
	}
	if a.jsonOut {
		return printJSON(cmd.OutOrStdout(), categories)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	printCategories(cmd.OutOrStdout(), categories)
	return nil
}
