package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"recipe-nutrition/internal/core/nutrition"
	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/pkg/common"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecipe(id string) *common.Recipe {
	now := time.Now().UTC().Truncate(time.Second)
	return &common.Recipe{
		ID:          id,
		Title:       "Garlic Chicken",
		Description: "Simple pan-fried chicken",
		Ingredients: []common.Ingredient{
			{Name: "chicken breast", Quantity: 300},
			{Name: "garlic", Quantity: 6},
			{Name: "olive oil", Quantity: 14},
		},
		Steps:         []string{"Season chicken", "Fry with garlic", "Rest and serve"},
		Servings:      2,
		TotalCalories: 495,
		Macros:        common.Macros{Protein: 93, Carbs: 0, Fat: 11},
		Tags:          []string{"dinner"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestSaveAndGetRecipe(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	want := sampleRecipe("r1")
	if err := s.SaveRecipe(ctx, want); err != nil {
		t.Fatalf("failed to save recipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "r1")
	if err != nil {
		t.Fatalf("failed to get recipe: %v", err)
	}
	if got == nil {
		t.Fatal("expected recipe, got nil")
	}
	if got.Title != want.Title || got.Servings != want.Servings {
		t.Errorf("recipe mismatch: got %+v", got)
	}
	if got.TotalCalories != 495 || got.Macros.Fat != 11 {
		t.Errorf("nutrition mismatch: got %d / %+v", got.TotalCalories, got.Macros)
	}
	if len(got.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(got.Ingredients))
	}
	// 食材順序必須保留
	for i, ing := range want.Ingredients {
		if got.Ingredients[i].Name != ing.Name || got.Ingredients[i].Quantity != ing.Quantity {
			t.Errorf("ingredient %d = %+v, want %+v", i, got.Ingredients[i], ing)
		}
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	s := newTestStorage(t)
	got, err := s.GetRecipe(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing recipe, got %+v", got)
	}
}

func TestToggleFavoriteAndListFavorites(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	r1 := sampleRecipe("r1")
	r2 := sampleRecipe("r2")
	r2.CreatedAt = r2.CreatedAt.Add(time.Second)
	if err := s.SaveRecipe(ctx, r1); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := s.SaveRecipe(ctx, r2); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	toggled, err := s.ToggleFavorite(ctx, "r1")
	if err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}
	if toggled == nil || !toggled.Favorite {
		t.Fatalf("expected favorite=true, got %+v", toggled)
	}

	favorites, err := s.ListRecipes(ctx, true)
	if err != nil {
		t.Fatalf("failed to list favorites: %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != "r1" {
		t.Errorf("expected only r1 in favorites, got %+v", favorites)
	}

	// 再切一次取消收藏
	toggled, err = s.ToggleFavorite(ctx, "r1")
	if err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}
	if toggled.Favorite {
		t.Error("expected favorite=false after second toggle")
	}

	// 不存在的食譜
	missing, err := s.ToggleFavorite(ctx, "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing recipe, got %+v", missing)
	}
}

func TestListRecipesNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	older := sampleRecipe("old")
	newer := sampleRecipe("new")
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	if err := s.SaveRecipe(ctx, older); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := s.SaveRecipe(ctx, newer); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	recipes, err := s.ListRecipes(ctx, false)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(recipes) != 2 || recipes[0].ID != "new" {
		t.Errorf("expected newest first, got %v, %v", recipes[0].ID, recipes[1].ID)
	}
}

func TestCatalogCRUDAndLookup(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item := &common.CatalogItem{
		Name:    "Chicken breast",
		Per100g: common.NutrientProfile{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
	}
	if err := s.CreateCatalogItem(ctx, item); err != nil {
		t.Fatalf("failed to create catalog item: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected assigned id")
	}

	// 名稱查詢不分大小寫
	profile, found, err := s.FindCatalogProfile(ctx, "chicken BREAST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected case-insensitive match")
	}
	if profile.Calories != 165 || profile.Fat != 3.6 {
		t.Errorf("unexpected profile: %+v", profile)
	}

	items, err := s.ListCatalog(ctx)
	if err != nil {
		t.Fatalf("failed to list catalog: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	if err := s.DeleteCatalogItem(ctx, item.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	_, found, err = s.FindCatalogProfile(ctx, "chicken breast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected item to be gone after delete")
	}
}

func TestCatalogBackedNutritionEndToEnd(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item := &common.CatalogItem{
		Name:    "chicken breast",
		Per100g: common.NutrientProfile{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
	}
	if err := s.CreateCatalogItem(ctx, item); err != nil {
		t.Fatalf("failed to create catalog item: %v", err)
	}

	cfg := &config.NutritionConfig{CacheTTL: 24 * time.Hour, NegativeCacheTTL: 10 * time.Minute}
	resolver := nutrition.NewResolver(NewCatalogSearcher(s), nutrition.NewMemoryStore(), cfg)
	aggregator := nutrition.NewAggregator(resolver)

	totals, err := aggregator.Calculate(ctx, []common.Ingredient{
		{Name: "Chicken breast", Quantity: 300},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3.6*3 = 10.8 → 四捨五入為 11
	want := common.NutritionTotals{Calories: 495, Protein: 93, Carbs: 0, Fat: 11}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}
}
