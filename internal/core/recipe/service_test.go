package recipe

import (
	"context"
	"strings"
	"testing"
	"time"

	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/pkg/common"
)

func TestGenerateWithoutAPIKeyReturnsMock(t *testing.T) {
	svc := NewService(&config.GroqConfig{Timeout: time.Second})

	recipe, err := svc.Generate(context.Background(), []common.Ingredient{
		{Name: "chicken breast", Quantity: 300},
	}, common.RecipePreferences{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "Mocked AI Pasta" {
		t.Errorf("expected mock recipe, got %q", recipe.Title)
	}
	if len(recipe.Ingredients) != 2 || recipe.Servings != 2 {
		t.Errorf("unexpected mock shape: %+v", recipe)
	}
	if len(recipe.Tags) != 1 || recipe.Tags[0] != "mock" {
		t.Errorf("expected mock tag, got %v", recipe.Tags)
	}
}

func TestBuildIngredientPrompt(t *testing.T) {
	prompt := buildIngredientPrompt([]common.Ingredient{
		{Name: "chicken breast", Quantity: 300},
		{Name: "garlic", Quantity: 6},
	}, common.RecipePreferences{Diet: "keto"})

	if !strings.Contains(prompt, "chicken breast, garlic") {
		t.Errorf("prompt missing allowed ingredient list:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Use ONLY the ingredients listed above") {
		t.Error("prompt missing exclusivity rule")
	}
	if !strings.Contains(prompt, "keto") {
		t.Error("prompt missing diet preference")
	}
	if !strings.Contains(prompt, "STRICT JSON ONLY") {
		t.Error("prompt missing JSON instruction")
	}
}

func TestBuildDishPrompt(t *testing.T) {
	prompt := buildDishPrompt("  make me a vegan dinner  ", common.RecipePreferences{})
	if !strings.Contains(prompt, "Create a recipe for: make me a vegan dinner") {
		t.Errorf("prompt missing dish description:\n%s", prompt)
	}
	if strings.Contains(prompt, "listed above") {
		t.Error("dish prompt must not reference an ingredient list")
	}
}

func TestParseRecipeExtractsJSONFromNoise(t *testing.T) {
	content := "Sure! Here is your recipe:\n```json\n" +
		`{"title":"Garlic Chicken","ingredients":[{"name":"chicken breast","quantity":300}],"steps":["Cook"],"servings":4,"tags":["dinner"]}` +
		"\n```\nEnjoy!"

	recipe, err := parseRecipe(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "Garlic Chicken" || recipe.Servings != 4 {
		t.Errorf("unexpected recipe: %+v", recipe)
	}
	if len(recipe.Ingredients) != 1 || recipe.Ingredients[0].Quantity != 300 {
		t.Errorf("unexpected ingredients: %+v", recipe.Ingredients)
	}
}

func TestParseRecipeBackfillsDefaults(t *testing.T) {
	recipe, err := parseRecipe(`{"ingredients":null}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "AI Generated Recipe" {
		t.Errorf("expected default title, got %q", recipe.Title)
	}
	if recipe.Servings != 2 {
		t.Errorf("expected default servings 2, got %d", recipe.Servings)
	}
	if recipe.Ingredients == nil || recipe.Steps == nil || recipe.Tags == nil {
		t.Error("expected empty slices instead of nil")
	}
}

func TestParseRecipeRejectsNonJSON(t *testing.T) {
	if _, err := parseRecipe("I cannot help with that."); err == nil {
		t.Error("expected error for output without JSON object")
	}
}

func TestCacheKeyForPromptNormalizesWhitespace(t *testing.T) {
	a := cacheKeyForPrompt("Make  me\n a   recipe")
	b := cacheKeyForPrompt("make me a recipe")
	if a != b {
		t.Errorf("expected identical cache keys, got %q and %q", a, b)
	}
}
