package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-kitchen/internal/infrastructure/config"
	"smart-kitchen/internal/infrastructure/database"
	"smart-kitchen/internal/pkg/common"
	"smart-kitchen/internal/testhelpers"
)

func exerciseStore(t *testing.T, store *database.Store) {
	ctx := context.Background()

	require.NoError(t, store.HealthCheck(ctx))

	for _, name := range []string{"egg", "rice", "tofu"} {
		require.NoError(t, store.CreatePantryItem(ctx, &common.PantryItem{Name: name, Quantity: 1, Unit: "unit"}))
	}
	items, err := store.ListPantryItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "tofu", items[0].Name)
	assert.Equal(t, "egg", items[2].Name)

	full := &common.Recipe{
		Title:       "Egg Fried Rice",
		Ingredients: "rice, egg, soy sauce, oil, spring onion",
		Calories:    common.IntPtr(520),
		Protein:     common.IntPtr(18),
		Carbs:       common.IntPtr(70),
		Fat:         common.IntPtr(18),
		TimeMinutes: common.IntPtr(18),
	}
	partial := &common.Recipe{
		Title:       "Paneer Bhurji",
		Ingredients: "paneer, tomato",
		Calories:    common.IntPtr(300),
	}
	require.NoError(t, store.CreateRecipe(ctx, full))
	require.NoError(t, store.CreateRecipe(ctx, partial))
	assert.NotZero(t, full.ID)

	recipes, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Egg Fried Rice", recipes[0].Title)

	missing, err := store.ListRecipesMissingMacros(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, partial.ID, missing[0].ID)

	require.NoError(t, store.SaveRecipeMacros(ctx, partial.ID, common.Macros{Calories: 403, Protein: 26, Carbs: 8, Fat: 30}))
	missing, err = store.ListRecipesMissingMacros(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)

	found, err := store.FindRecipeByTitle(ctx, "Paneer Bhurji")
	require.NoError(t, err)
	require.NotNil(t, found)
	m, ok := found.StoredMacros()
	require.True(t, ok)
	assert.Equal(t, common.Macros{Calories: 403, Protein: 26, Carbs: 8, Fat: 30}, m)

	notFound, err := store.FindRecipeByTitle(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, notFound)

	assert.Error(t, store.SaveRecipeMacros(ctx, 9999, common.Macros{Calories: 1}))
}

func TestStore_SQLite(t *testing.T) {
	exerciseStore(t, testhelpers.NewSQLiteStore(t))
}

func TestStore_Postgres(t *testing.T) {
	exerciseStore(t, testhelpers.NewPostgresStore(t))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestSeedBasicRecipes(t *testing.T) {
	store := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateRecipe(ctx, &common.Recipe{Title: "Omelette", Ingredients: "egg"}))

	inserted, err := store.SeedBasicRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 19, inserted)

	again, err := store.SeedBasicRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again)

	recipes, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 20)

	omelette, err := store.FindRecipeByTitle(ctx, "Omelette")
	require.NoError(t, err)
	assert.Equal(t, "egg", omelette.Ingredients)

	rice, err := store.FindRecipeByTitle(ctx, "Egg Fried Rice")
	require.NoError(t, err)
	require.NotNil(t, rice.Description)
	assert.Equal(t, "Seeded recipe", *rice.Description)
	m, ok := rice.StoredMacros()
	require.True(t, ok)
	assert.Equal(t, common.Macros{Calories: 520, Protein: 18, Carbs: 70, Fat: 18}, m)
	assert.Equal(t, 18, *rice.TimeMinutes)
}
