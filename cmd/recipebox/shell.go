package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PikeCameron/recipebox/internal/sqlite"
	"github.com/PikeCameron/recipebox/pkg/types"
)

// errInputClosed ends the shell when stdin runs out.
var errInputClosed = errors.New("input closed")

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive recipe menu",
		Long: `Shell opens the store once and offers a numbered menu of the recipe
operations until exit is chosen or input ends. Options can be picked by
number or by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			sh := &shell{
				app:   a,
				store: store,
				in:    bufio.NewScanner(cmd.InOrStdin()),
				out:   cmd.OutOrStdout(),
			}
			defer sh.close()
			return sh.loop()
		},
	}
}

type shell struct {
	app   *app
	store *sqlite.Store
	in    *bufio.Scanner
	out   io.Writer
}

type menuItem struct {
	key  string
	name string
	help string
	run  func(*shell) error
}

var menu = []menuItem{
	{"1", "list-all", "List every recipe", (*shell).listAll},
	{"2", "get-by-id", "Show one recipe", (*shell).getByID},
	{"3", "get-by-category", "List recipes in a category", (*shell).getByCategory},
	{"4", "add", "Add a recipe", (*shell).add},
	{"5", "update", "Update a recipe", (*shell).update},
	{"6", "delete", "Delete a recipe", (*shell).delete},
	{"7", "reset", "Drop all data and reseed the categories", (*shell).reset},
	{"0", "exit", "Leave the shell", nil},
}

func lookupMenu(choice string) (menuItem, bool) {
	choice = strings.ToLower(strings.TrimSpace(choice))
	for _, item := range menu {
		if choice == item.key || choice == item.name {
			return item, true
		}
	}
	return menuItem{}, false
}

func (s *shell) loop() error {
	for {
		s.printMenu()
		choice, err := s.prompt("Choose an option")
		if errors.Is(err, errInputClosed) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		item, ok := lookupMenu(choice)
		if !ok {
			fmt.Fprintf(s.out, "Unknown option %q.\n", choice)
			continue
		}
		if item.run == nil {
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		}

		err = item.run(s)
		switch {
		case errors.Is(err, errInputClosed):
			fmt.Fprintln(s.out)
			return nil
		case err != nil && s.store == nil:
			return err
		case err != nil:
			s.app.logger.Debug("shell action failed", "action", item.name, "error", err)
			fmt.Fprintf(s.out, "Error: %s\n", err)
		}
	}
}

func (s *shell) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Recipe Box")
	for _, item := range menu {
		fmt.Fprintf(s.out, "  %s) %-16s %s\n", item.key, item.name, item.help)
	}
}

// prompt prints label and returns the next trimmed input line.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *shell) promptID(label string) (int64, error) {
	answer, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	return parseID(answer)
}

func (s *shell) close() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *shell) listAll() error {
	rows, err := s.store.Fetch()
	if err != nil {
		return err
	}
	printRecipes(s.out, rows)
	return nil
}

func (s *shell) getByID() error {
	id, err := s.promptID("Recipe ID")
	if err != nil {
		return err
	}
	row, found, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(s.out, "No recipe with ID %d.\n", id)
		return nil
	}
	printRecipe(s.out, row)
	return nil
}

func (s *shell) getByCategory() error {
	if err := s.showCategories(); err != nil {
		return err
	}
	arg, err := s.prompt("Category ID or name (blank for all)")
	if err != nil {
		return err
	}
	rows, err := recipesInCategory(s.store, arg)
	if err != nil {
		return err
	}
	printRecipes(s.out, rows)
	return nil
}

func (s *shell) add() error {
	name, err := s.prompt("Recipe name")
	if err != nil {
		return err
	}
	if err := s.showCategories(); err != nil {
		return err
	}
	category, err := s.prompt("Category ID or name")
	if err != nil {
		return err
	}
	ingredients, err := s.prompt("Ingredients (comma separated)")
	if err != nil {
		return err
	}

	categoryID, err := resolveCategory(s.store, category)
	if err != nil {
		return err
	}
	id, err := s.store.Add(name, categoryID, splitIngredients(ingredients))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added recipe %d.\n", id)
	return nil
}

func (s *shell) update() error {
	id, err := s.promptID("Recipe ID")
	if err != nil {
		return err
	}
	row, found, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("recipe %d: %w", id, types.ErrNotFound)
	}
	printRecipe(s.out, row)

	var upd types.RecipeUpdate
	name, err := s.prompt("New name (blank to keep)")
	if err != nil {
		return err
	}
	if name != "" {
		upd.Name = &name
	}

	category, err := s.prompt("New category ID or name (blank to keep)")
	if err != nil {
		return err
	}
	if category != "" {
		categoryID, err := resolveCategory(s.store, category)
		if err != nil {
			return err
		}
		upd.CategoryID = &categoryID
	}

	ingredients, err := s.prompt("New ingredients, comma separated (blank to keep, - to clear)")
	if err != nil {
		return err
	}
	switch ingredients {
	case "":
	case "-":
		upd.Ingredients = &[]string{}
	default:
		list := splitIngredients(ingredients)
		upd.Ingredients = &list
	}

	if upd.IsEmpty() {
		fmt.Fprintln(s.out, "Nothing to update.")
		return nil
	}
	if err := s.store.Update(id, upd); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Updated recipe %d.\n", id)
	return nil
}

func (s *shell) delete() error {
	id, err := s.promptID("Recipe ID")
	if err != nil {
		return err
	}
	answer, err := s.prompt(fmt.Sprintf("Delete recipe %d and its ingredients? (y/n)", id))
	if err != nil {
		return err
	}
	if !isYes(answer) {
		fmt.Fprintln(s.out, "Delete cancelled.")
		return nil
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted recipe %d.\n", id)
	return nil
}

// reset reseeds the store and reopens it, since a reset always closes the
// store. A failed reopen ends the shell.
func (s *shell) reset() error {
	fmt.Fprintln(s.out, resetWarning)
	answer, err := s.prompt("Continue? (y/n)")
	if err != nil {
		return err
	}
	if !isYes(answer) {
		fmt.Fprintln(s.out, "Reset cancelled.")
		return nil
	}

	resetErr := s.store.Reseed()
	store, err := s.app.openStore()
	if err != nil {
		s.store = nil
		return errors.Join(resetErr, err)
	}
	s.store = store
	if resetErr != nil {
		return resetErr
	}

	fmt.Fprintln(s.out, "Store reset.")
	return s.showCategories()
}

func (s *shell) showCategories() error {
	categories, err := s.store.Categories()
	if err != nil {
		return err
	}
	printCategories(s.out, categories)
	return nil
}
