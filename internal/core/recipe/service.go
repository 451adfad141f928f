package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	// 相同 prompt 的生成結果快取時間
	responseCacheTTL     = 30 * time.Minute
	responseCacheCleanup = 10 * time.Minute
)

// Service 食譜生成服務，透過 Groq（OpenAI 相容）Chat Completions API 生成食譜
// 未設定 GROQ_API_KEY 時回傳固定的模擬食譜，方便離線開發
type Service struct {
	config *config.GroqConfig
	client *resty.Client
	cache  *gocache.Cache
}

// NewService 創建食譜生成服務
func NewService(cfg *config.GroqConfig) *Service {
	client := resty.New().
		SetBaseURL(groqBaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey))

	return &Service{
		config: cfg,
		client: client,
		cache:  gocache.New(responseCacheTTL, responseCacheCleanup),
	}
}

// Generate 以食材清單生成食譜
// AI 只能使用清單中的食材，數量一律為公克
func (s *Service) Generate(ctx context.Context, ingredients []common.Ingredient, preferences common.RecipePreferences) (*common.GeneratedRecipe, error) {
	return s.generate(ctx, buildIngredientPrompt(ingredients, preferences))
}

// GenerateFromDish 以菜名描述生成食譜（例如「make me a vegan dinner」）
func (s *Service) GenerateFromDish(ctx context.Context, dish string, preferences common.RecipePreferences) (*common.GeneratedRecipe, error) {
	return s.generate(ctx, buildDishPrompt(dish, preferences))
}

func (s *Service) generate(ctx context.Context, prompt string) (*common.GeneratedRecipe, error) {
	// 未設定 API Key 時走模擬回應
	if s.config.APIKey == "" {
		common.LogWarn("GROQ_API_KEY 未設定，回傳模擬食譜")
		return mockRecipe(), nil
	}

	// 檢查快取
	cacheKey := cacheKeyForPrompt(prompt)
	if cached, found := s.cache.Get(cacheKey); found {
		common.LogDebug("命中食譜生成快取", zap.String("cache_key", preview(cacheKey)))
		return cached.(*common.GeneratedRecipe), nil
	}

	startTime := time.Now()
	content, err := s.chat(ctx, prompt)
	if err != nil {
		common.LogError("食譜生成失敗", zap.Error(err), zap.Duration("duration", time.Since(startTime)))
		return nil, common.NewError(common.ErrAIServiceError.Code, common.ErrAIServiceError.Message, common.ErrAIServiceError.Status, err)
	}

	recipe, err := parseRecipe(content)
	if err != nil {
		common.LogError("食譜解析失敗", zap.Error(err), zap.String("content_preview", preview(content)))
		return nil, common.NewError(common.ErrAIServiceError.Code, common.ErrAIServiceError.Message, common.ErrAIServiceError.Status, err)
	}

	common.LogInfo("食譜生成完成",
		zap.String("title", recipe.Title),
		zap.Int("ingredient_count", len(recipe.Ingredients)),
		zap.Duration("duration", time.Since(startTime)))

	s.cache.Set(cacheKey, recipe, gocache.DefaultExpiration)
	return recipe, nil
}

// chat 發送 Chat Completions 請求並回傳第一個 choice 的內容
func (s *Service) chat(ctx context.Context, prompt string) (string, error) {
	req := map[string]interface{}{
		"model":       s.config.Model,
		"temperature": 0.7,
		"max_tokens":  s.config.MaxTokens,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to Groq: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Groq API returned error: %d %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Groq response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in Groq response")
	}

	return result.Choices[0].Message.Content, nil
}

// buildIngredientPrompt 構建限定食材的嚴格 JSON prompt
func buildIngredientPrompt(ingredients []common.Ingredient, preferences common.RecipePreferences) string {
	var sb strings.Builder
	sb.WriteString("You are an expert chef.\n\n")
	sb.WriteString("You MUST use ONLY the following ingredients:\n")
	sb.WriteString(common.FormatIngredientNames(ingredients))
	sb.WriteString("\n\nRules (VERY IMPORTANT):\n")
	sb.WriteString("- Use ONLY the ingredients listed above\n")
	sb.WriteString("- Ingredient names must match EXACTLY\n")
	sb.WriteString("- Quantities MUST be in grams (number only)\n")
	sb.WriteString("- Do NOT add new ingredients\n")
	sb.WriteString("- Do NOT include units like tbsp, pieces, tsp\n")
	sb.WriteString("- Do NOT include nutrition\n")
	appendPreferences(&sb, preferences)
	sb.WriteString("\nReturn STRICT JSON ONLY:\n")
	sb.WriteString(recipeJSONShape)
	return sb.String()
}

// buildDishPrompt 構建菜名描述的嚴格 JSON prompt
func buildDishPrompt(dish string, preferences common.RecipePreferences) string {
	var sb strings.Builder
	sb.WriteString("You are an expert chef.\n\n")
	sb.WriteString("Create a recipe for: ")
	sb.WriteString(strings.TrimSpace(dish))
	sb.WriteString("\n\nRules (VERY IMPORTANT):\n")
	sb.WriteString("- Quantities MUST be in grams (number only)\n")
	sb.WriteString("- Use simple, common ingredient names\n")
	sb.WriteString("- Do NOT include units like tbsp, pieces, tsp\n")
	sb.WriteString("- Do NOT include nutrition\n")
	appendPreferences(&sb, preferences)
	sb.WriteString("\nReturn STRICT JSON ONLY:\n")
	sb.WriteString(recipeJSONShape)
	return sb.String()
}

const recipeJSONShape = `{
  "title": "",
  "ingredients": [{ "name": "", "quantity": 0 }],
  "steps": [],
  "servings": 0,
  "tags": []
}`

func appendPreferences(sb *strings.Builder, preferences common.RecipePreferences) {
	if preferences.Diet != "" {
		sb.WriteString("- The recipe must be suitable for a ")
		sb.WriteString(preferences.Diet)
		sb.WriteString(" diet\n")
	}
}

// parseRecipe 從模型輸出擷取 JSON 物件並補上預設值
func parseRecipe(content string) (*common.GeneratedRecipe, error) {
	raw := common.ExtractJSONObject(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var recipe common.GeneratedRecipe
	if err := common.ParseJSON(raw, &recipe); err != nil {
		return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
	}

	if recipe.Title == "" {
		recipe.Title = "AI Generated Recipe"
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 2
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []common.Ingredient{}
	}
	if recipe.Steps == nil {
		recipe.Steps = []string{}
	}
	if recipe.Tags == nil {
		recipe.Tags = []string{}
	}
	return &recipe, nil
}

// mockRecipe 離線模擬食譜，形狀與正式回應相同
func mockRecipe() *common.GeneratedRecipe {
	return &common.GeneratedRecipe{
		Title:       "Mocked AI Pasta",
		Description: "Mock recipe (Groq key missing)",
		Ingredients: []common.Ingredient{
			{Name: "Pasta", Quantity: 200},
			{Name: "Tomato", Quantity: 150},
		},
		Steps:    []string{"Boil pasta", "Make sauce", "Combine"},
		Servings: 2,
		Tags:     []string{"mock"},
	}
}

// cacheKeyForPrompt 以正規化後的 prompt 作為快取鍵
func cacheKeyForPrompt(prompt string) string {
	return strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
}

func preview(content string) string {
	if len(content) > 120 {
		return content[:120]
	}
	return content
}
