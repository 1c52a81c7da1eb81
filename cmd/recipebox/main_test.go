package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// cli runs commands against one temporary config and data directory.
type cli struct {
	configDir string
	dataDir   string
}

type result struct {
	stdout string
	stderr string
	code   int
}

func newCLI(t *testing.T) cli {
	t.Helper()
	root := t.TempDir()
	return cli{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

func (c cli) run(stdin string, args ...string) result {
	var stdout, stderr bytes.Buffer
	full := append([]string{"--config-dir", c.configDir, "--data-dir", c.dataDir}, args...)
	code := run(full, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// initialized returns a cli whose store has the built-in categories.
func initialized(t *testing.T) cli {
	t.Helper()
	c := newCLI(t)
	res := c.run("", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	return c
}

func (c cli) getJSON(t *testing.T, id int64) types.RecipeRow {
	t.Helper()
	res := c.run("", "--json", "get", fmt.Sprint(id))
	require.Equal(t, exitSuccess, res.code, res.stderr)
	var row types.RecipeRow
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &row))
	return row
}

func TestInit(t *testing.T) {
	c := newCLI(t)

	res := c.run("", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Recipebox initialized at")
	for _, name := range []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Snack"} {
		assert.Contains(t, res.stdout, name)
	}
	assert.FileExists(t, filepath.Join(c.configDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(c.dataDir, types.DefaultDatabase))

	res = c.run("", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "already initialized")
}

func TestAddGetList(t *testing.T) {
	c := initialized(t)

	res := c.run("", "add", "--name", "Pancakes", "--category", "breakfast", "--ingredients", "flour, eggs,milk")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "Added recipe 1: Pancakes\n", res.stdout)

	row := c.getJSON(t, 1)
	assert.Equal(t, types.RecipeRow{
		ID:          1,
		Name:        "Pancakes",
		CategoryID:  1,
		Category:    "Breakfast",
		Ingredients: "flour,eggs,milk",
	}, row)

	res = c.run("", "get", "1")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Category:     Breakfast (1)")
	assert.Contains(t, res.stdout, "Ingredients:  flour, eggs, milk")

	res = c.run("", "add", "--name", "Fruit Salad", "--category", "4", "-i", "apple", "-i", "pear")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	res = c.run("", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Pancakes")
	assert.Contains(t, res.stdout, "Fruit Salad")
	assert.Contains(t, res.stdout, "apple, pear")
	assert.Contains(t, res.stdout, "Total: 2 recipe(s)")

	res = c.run("", "--json", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	var rows []types.RecipeRow
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Fruit Salad", rows[1].Name)
}

func TestListEmpty(t *testing.T) {
	c := initialized(t)

	res := c.run("", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "No recipes found.\n", res.stdout)

	res = c.run("", "--json", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "[]\n", res.stdout)
}

func TestUpdate(t *testing.T) {
	c := initialized(t)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Pancakes", "--category", "1", "-i", "flour,eggs").code)

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, row types.RecipeRow)
	}{
		{
			name: "rename keeps the rest",
			args: []string{"--name", "Crepes"},
			check: func(t *testing.T, row types.RecipeRow) {
				assert.Equal(t, "Crepes", row.Name)
				assert.Equal(t, "flour,eggs", row.Ingredients)
			},
		},
		{
			name: "category by name",
			args: []string{"--category", "DESSERT"},
			check: func(t *testing.T, row types.RecipeRow) {
				assert.Equal(t, int64(4), row.CategoryID)
				assert.Equal(t, "Dessert", row.Category)
			},
		},
		{
			name: "ingredients replaced not merged",
			args: []string{"--ingredients", "sugar,butter"},
			check: func(t *testing.T, row types.RecipeRow) {
				assert.Equal(t, "sugar,butter", row.Ingredients)
			},
		},
		{
			name: "clear ingredients",
			args: []string{"--clear-ingredients"},
			check: func(t *testing.T, row types.RecipeRow) {
				assert.Equal(t, "", row.Ingredients)
				assert.Equal(t, "Crepes", row.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.run("", append([]string{"update", "1"}, tt.args...)...)
			require.Equal(t, exitSuccess, res.code, res.stderr)
			assert.Contains(t, res.stdout, "Updated recipe 1")
			tt.check(t, c.getJSON(t, 1))
		})
	}
}

func TestDelete(t *testing.T) {
	c := initialized(t)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Toast", "--category", "1", "-i", "bread").code)

	res := c.run("", "delete", "1")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "Deleted recipe 1\n", res.stdout)

	res = c.run("", "get", "1")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "entity not found")
}

func TestCategoryCommand(t *testing.T) {
	c := initialized(t)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Toast", "--category", "Breakfast").code)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Pie", "--category", "Dessert").code)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{name: "by id", args: []string{"1"}, contains: []string{"Toast"}, excludes: []string{"Pie"}},
		{name: "by name ignoring case", args: []string{"dessert"}, contains: []string{"Pie"}, excludes: []string{"Toast"}},
		{name: "no argument lists all", contains: []string{"Toast", "Pie"}},
		{name: "unknown id", args: []string{"99"}, contains: []string{"No recipes found."}},
		{name: "unknown name", args: []string{"Brunch"}, contains: []string{"No recipes found."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.run("", append([]string{"category"}, tt.args...)...)
			require.Equal(t, exitSuccess, res.code, res.stderr)
			for _, s := range tt.contains {
				assert.Contains(t, res.stdout, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, res.stdout, s)
			}
		})
	}
}

func TestCategoriesCommand(t *testing.T) {
	c := initialized(t)

	res := c.run("", "--json", "categories")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	var categories []types.Category
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &categories))
	require.Len(t, categories, 5)
	assert.Equal(t, types.Category{ID: 1, Name: "Breakfast"}, categories[0])
}

func TestExitCodes(t *testing.T) {
	c := initialized(t)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Toast", "--category", "1").code)

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing recipe", []string{"get", "99"}, exitUserError},
		{"bad id", []string{"get", "abc"}, exitUserError},
		{"duplicate name", []string{"add", "--name", "Toast", "--category", "2"}, exitUserError},
		{"unknown category id", []string{"add", "--name", "Soup", "--category", "99"}, exitUserError},
		{"unknown category name", []string{"add", "--name", "Soup", "--category", "Brunch"}, exitUserError},
		{"blank name", []string{"add", "--name", " ", "--category", "1"}, exitUserError},
		{"missing required flag", []string{"add", "--name", "Soup"}, exitUserError},
		{"update without flags", []string{"update", "1"}, exitUserError},
		{"update missing recipe", []string{"update", "99", "--name", "x"}, exitUserError},
		{"delete missing recipe", []string{"delete", "99"}, exitUserError},
		{"unknown command", []string{"bake"}, exitUserError},
		{"data dir is a file", []string{"--data-dir", blocker, "list"}, exitSysError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.run("", tt.args...)
			assert.Equal(t, tt.want, res.code, res.stderr)
			assert.Contains(t, res.stderr, "Error:")
		})
	}
}

func TestUserErrorsPrintOnce(t *testing.T) {
	c := initialized(t)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Toast", "--category", "1").code)

	tests := []struct {
		name string
		args []string
	}{
		{"delete missing recipe", []string{"delete", "999"}},
		{"duplicate name", []string{"add", "--name", "Toast", "--category", "1"}},
		{"unknown category", []string{"update", "1", "--category", "99"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.run("", tt.args...)
			assert.Equal(t, exitUserError, res.code)
			lines := strings.Split(strings.TrimSpace(res.stderr), "\n")
			require.Len(t, lines, 1, res.stderr)
			assert.True(t, strings.HasPrefix(lines[0], "Error: "))
		})
	}
}

func TestReset(t *testing.T) {
	t.Run("declined prompt keeps data", func(t *testing.T) {
		c := initialized(t)
		require.Equal(t, exitSuccess, c.run("", "add", "--name", "Toast", "--category", "1").code)

		res := c.run("n\n", "reset")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Reset cancelled.")
		assert.Equal(t, "Toast", c.getJSON(t, 1).Name)
	})

	t.Run("confirmed prompt drops recipes", func(t *testing.T) {
		c := initialized(t)
		require.Equal(t, exitSuccess, c.run("", "add", "--name", "Toast", "--category", "1").code)

		res := c.run("y\n", "reset")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Store reset.")
		assert.Equal(t, exitUserError, c.run("", "get", "1").code)
	})

	t.Run("custom seed", func(t *testing.T) {
		c := initialized(t)
		seed := filepath.Join(t.TempDir(), "seed.csv")
		require.NoError(t, os.WriteFile(seed, []byte("id,name\n1,Soups\n2,Salads\n"), 0o644))

		res := c.run("", "reset", "--yes", "--seed", seed)
		require.Equal(t, exitSuccess, res.code, res.stderr)

		res = c.run("", "--json", "categories")
		var categories []types.Category
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &categories))
		assert.Equal(t, []types.Category{{ID: 1, Name: "Soups"}, {ID: 2, Name: "Salads"}}, categories)
	})

	t.Run("bad seed keeps data", func(t *testing.T) {
		c := initialized(t)
		require.Equal(t, exitSuccess, c.run("", "add", "--name", "Toast", "--category", "1").code)
		seed := filepath.Join(t.TempDir(), "seed.csv")
		require.NoError(t, os.WriteFile(seed, []byte("title\nSoups\n"), 0o644))

		res := c.run("", "reset", "--yes", "--seed", seed)
		assert.Equal(t, exitUserError, res.code)
		assert.Contains(t, res.stderr, "invalid seed source")
		assert.Equal(t, "Toast", c.getJSON(t, 1).Name)
	})

	t.Run("missing seed file", func(t *testing.T) {
		c := initialized(t)
		res := c.run("", "reset", "--yes", "--seed", filepath.Join(t.TempDir(), "absent.csv"))
		assert.Equal(t, exitUserError, res.code)
	})
}

func TestExportImport(t *testing.T) {
	c := initialized(t)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Pancakes", "--category", "1", "-i", "flour,eggs").code)
	require.Equal(t, exitSuccess, c.run("", "add", "--name", "Pie", "--category", "4").code)

	out := filepath.Join(t.TempDir(), "backup.jsonl")
	res := c.run("", "export", "--out", out)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Exported 2 recipe(s)")

	require.Equal(t, exitSuccess, c.run("", "reset", "--yes").code)

	res = c.run("", "import", out)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Imported 2 recipe(s), skipped 0")

	row := c.getJSON(t, 1)
	assert.Equal(t, "Pancakes", row.Name)
	assert.Equal(t, "flour,eggs", row.Ingredients)

	res = c.run("", "import", out)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stdout, "Imported 0 recipe(s)")
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	res := c.run("", "version")
	require.Equal(t, exitSuccess, res.code)
	assert.True(t, strings.HasPrefix(res.stdout, "recipebox v"))
	assert.NoDirExists(t, c.configDir)
}
