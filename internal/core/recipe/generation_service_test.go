package recipe

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-kitchen/internal/pkg/common"
)

// scriptedGenerator 依序回傳預設的輸出
type scriptedGenerator struct {
	outputs []string
	errs    []error
	prompts []string
}

func (g *scriptedGenerator) GenerateJSON(ctx context.Context, prompt string, traceID string) (map[string]interface{}, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	obj, err := common.ExtractJSONObject(g.outputs[i])
	if err != nil {
		return nil, common.GenerationParseError(g.outputs[i])
	}
	return obj, nil
}

const stirFryAsian = `{"title":"Veggie Stir Fry","cuisine":"asian","ingredients":["tofu","soy sauce"],
"instructions":["Heat oil in a wok over high heat for 1 minute.","Add tofu and fry for 4 minutes.","Add soy sauce and toss for 30 seconds.","Add vegetables and stir-fry for 3 minutes.","Plate it up right away while hot."],
"macros":{"calories":410,"protein":"24","carbs":30,"fat":"n/a"}}`

func TestGenerate_CuisineRetryForcesCuisine(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{stirFryAsian, stirFryAsian}}
	svc := NewGenerationService(gen)

	recipes, err := svc.Generate(context.Background(), GenerateRequest{
		Ingredients: []string{"tofu", "soy sauce"},
		Cuisine:     "Thai",
		Count:       1,
	})
	require.NoError(t, err)

	assert.Len(t, gen.prompts, 2)
	assert.True(t, strings.HasSuffix(gen.prompts[1], cuisineRetryNotice))
	assert.True(t, strings.HasPrefix(gen.prompts[1], gen.prompts[0]))

	require.Len(t, recipes, 1)
	require.NotNil(t, recipes[0].Cuisine)
	assert.Equal(t, "Thai", *recipes[0].Cuisine)
	assert.Equal(t, "Veggie Stir Fry", recipes[0].Title)
	assert.Equal(t, common.GeneratedMacros{Calories: 410, Protein: 24, Carbs: 30, Fat: 0}, recipes[0].Macros)
	assert.Len(t, recipes[0].Instructions, 5)
}

func TestGenerate_NoRetryWhenCuisineMatches(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{
		`{"recipes":[{"title":"Thai Basil Tofu","cuisine":"Thai"},{"title":"Thai Green Curry","cuisine":"thai"},{"title":"Thai Omelette"}]}`,
	}}
	svc := NewGenerationService(gen)

	recipes, err := svc.Generate(context.Background(), GenerateRequest{
		Ingredients: []string{"tofu"},
		Cuisine:     "thai",
		Count:       2,
	})
	require.NoError(t, err)

	assert.Len(t, gen.prompts, 1)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Thai Basil Tofu", recipes[0].Title)
	assert.Equal(t, "Thai", *recipes[0].Cuisine)
}

func TestGenerate_RetryParseFailureKeepsFirstAttempt(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{stirFryAsian, "sorry, I cannot"}}
	svc := NewGenerationService(gen)

	recipes, err := svc.Generate(context.Background(), GenerateRequest{
		Ingredients: []string{"tofu"},
		Cuisine:     "Thai",
		Count:       1,
	})
	require.NoError(t, err)
	assert.Len(t, gen.prompts, 2)
	assert.Equal(t, "Thai", *recipes[0].Cuisine)
}

func TestGenerate_RetryBackendErrorFails(t *testing.T) {
	gen := &scriptedGenerator{
		outputs: []string{stirFryAsian, ""},
		errs:    []error{nil, common.GenerationBackendError(500, "crashed", nil)},
	}
	svc := NewGenerationService(gen)

	_, err := svc.Generate(context.Background(), GenerateRequest{Ingredients: []string{"tofu"}, Cuisine: "Thai"})
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeGenerationBackend))
	assert.Len(t, gen.prompts, 2)
}

func TestGenerate_EmptyIngredients(t *testing.T) {
	gen := &scriptedGenerator{}
	svc := NewGenerationService(gen)

	for _, ingredients := range [][]string{nil, {}, {"  ", ""}} {
		_, err := svc.Generate(context.Background(), GenerateRequest{Ingredients: ingredients, Count: 2})
		require.Error(t, err)
		assert.True(t, common.IsCode(err, common.ErrCodeInvalidRequest))
	}
	assert.Empty(t, gen.prompts)
}

func TestGenerate_ParseErrorPropagates(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{"no json here"}}
	svc := NewGenerationService(gen)

	_, err := svc.Generate(context.Background(), GenerateRequest{Ingredients: []string{"egg"}, Count: 1})
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeGenerationParse))
}

func TestGenerate_InvalidShape(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{`{"recipes":[1,"two",null]}`}}
	svc := NewGenerationService(gen)

	_, err := svc.Generate(context.Background(), GenerateRequest{Ingredients: []string{"egg"}, Count: 1})
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeInvalidModelOutput))
}

func TestGenerate_DefaultsMissingFields(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{`{"ingredients":"egg, rice , ","instructions":"Boil rice for 15 minutes."}`}}
	svc := NewGenerationService(gen)

	recipes, err := svc.Generate(context.Background(), GenerateRequest{Ingredients: []string{"egg", "rice"}, Count: 0})
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "Untitled Recipe", r.Title)
	assert.Nil(t, r.Cuisine)
	assert.Equal(t, []string{"egg", "rice"}, r.Ingredients)
	assert.Equal(t, "1. Boil rice for 15 minutes.", r.Instructions[0])
	assert.Len(t, r.Instructions, 5)
	assert.Equal(t, common.GeneratedMacros{}, r.Macros)
	assert.Contains(t, gen.prompts[0], "Generate exactly 1 recipe(s).")
}

func TestBuildPrompt(t *testing.T) {
	calCap := 500
	p := BuildPrompt([]string{"egg", "rice"}, "Thai", &calCap, 2)

	assert.Contains(t, p, systemRules)
	assert.Contains(t, p, "Generate exactly 2 recipe(s).")
	assert.Contains(t, p, "CUISINE HARD RULE: The recipe MUST be Thai cuisine. Title MUST include 'Thai'.")
	assert.Contains(t, p, "Keep total calories <= 500 if possible; otherwise stay close.")
	assert.Contains(t, p, "Ingredients available: egg, rice")
	assert.Contains(t, p, `"recipes"`)

	p = BuildPrompt([]string{"oats"}, "", nil, 1)
	assert.Contains(t, p, "If a cuisine is not specified")
	assert.Contains(t, p, "Set macros to a reasonable estimate.")
}
