package sqlite

// Table DDL. Recipes reference Categories and Ingredients reference Recipes;
// foreign_keys is enabled on every connection so both references are checked
// by SQLite in addition to the store's own lookups.
const (
	createCategories = `CREATE TABLE IF NOT EXISTS Categories (
    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE CHECK (length(trim(name)) > 0)
);`

	createRecipes = `CREATE TABLE IF NOT EXISTS Recipes (
    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE CHECK (length(trim(name)) > 0),
    category_id INTEGER NOT NULL,
    FOREIGN KEY (category_id) REFERENCES Categories(id)
);`

	createIngredients = `CREATE TABLE IF NOT EXISTS Ingredients (
    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL,
    name TEXT NOT NULL CHECK (length(trim(name)) > 0),
    FOREIGN KEY (recipe_id) REFERENCES Recipes(id)
);`
)

// Index DDL for the joins and filters used by the repository.
const (
	idxRecipesCategory   = `CREATE INDEX IF NOT EXISTS idx_recipes_category ON Recipes(category_id);`
	idxIngredientsRecipe = `CREATE INDEX IF NOT EXISTS idx_ingredients_recipe ON Ingredients(recipe_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createRecipes,
	createIngredients,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRecipesCategory,
	idxIngredientsRecipe,
}

// dropDDL removes the tables children first, so the drops succeed with
// foreign key enforcement on.
var dropDDL = []string{
	`DROP TABLE IF EXISTS Ingredients;`,
	`DROP TABLE IF EXISTS Recipes;`,
	`DROP TABLE IF EXISTS Categories;`,
}

// Joined read shape shared by Get, Fetch and FetchByCategory. Ingredient names
// are aggregated in insertion order; recipes without ingredients yield "".
const selectRecipeRows = `SELECT r.id, r.name, r.category_id, COALESCE(c.name, ''),
    COALESCE(GROUP_CONCAT(i.name, ',' ORDER BY i.id), '')
FROM Recipes r
LEFT JOIN Categories c ON c.id = r.category_id
LEFT JOIN Ingredients i ON i.recipe_id = r.id`
