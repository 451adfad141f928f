package common

import (
	"strings"
	"time"
)

// Ingredient 食材（解析後），Quantity 一律為公克
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// NutrientProfile 每 100 公克的營養成分
type NutrientProfile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// IsZero 檢查是否為全零成分
func (p NutrientProfile) IsZero() bool {
	return p.Calories == 0 && p.Protein == 0 && p.Carbs == 0 && p.Fat == 0
}

// NutritionTotals 單一食譜的營養總計（四捨五入後的整數）
type NutritionTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// RecipePreferences 食譜偏好
type RecipePreferences struct {
	Diet string `json:"diet"`
}

// GeneratedRecipe AI 生成的食譜
type GeneratedRecipe struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	Servings    int          `json:"servings"`
	Tags        []string     `json:"tags"`
}

// Macros 三大營養素總計（四捨五入後的整數）
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// Recipe 儲存的食譜紀錄
type Recipe struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []string     `json:"steps"`
	Servings      int          `json:"servings"`
	TotalCalories int          `json:"totalCalories"`
	Macros        Macros       `json:"macros"`
	Tags          []string     `json:"tags"`
	Favorite      bool         `json:"favorite"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CatalogItem 本地食材目錄條目，Per100g 為每 100 公克營養值
type CatalogItem struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Per100g   NutrientProfile `json:"per100g"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FormatIngredientNames 將食材名稱以逗號串接（用於 prompt）
func FormatIngredientNames(ingredients []Ingredient) string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Name == "" {
			continue
		}
		names = append(names, ing.Name)
	}
	return strings.Join(names, ", ")
}
