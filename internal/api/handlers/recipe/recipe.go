package recipe

import (
	"net/http"
	"strings"
	"time"

	"recipe-nutrition/internal/core/ingredient"
	"recipe-nutrition/internal/core/nutrition"
	recipeService "recipe-nutrition/internal/core/recipe"
	"recipe-nutrition/internal/infrastructure/storage"
	"recipe-nutrition/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRequest 食譜生成請求
// 三種輸入擇一：Text（自由輸入，自動判斷是點菜還是食材清單）、
// Dish（明確點菜）、Ingredients（已解析的食材清單，數量為公克）
type GenerateRequest struct {
	Text        string                   `json:"text,omitempty"`
	Dish        string                   `json:"dish,omitempty"`
	Ingredients []common.Ingredient      `json:"ingredients,omitempty"`
	Preferences common.RecipePreferences `json:"preferences"`
}

// Handler 食譜處理程序
type Handler struct {
	generator  *recipeService.Service
	aggregator *nutrition.Aggregator
	storage    *storage.Storage
}

// NewHandler 創建新的食譜處理程序
func NewHandler(generator *recipeService.Service, aggregator *nutrition.Aggregator, store *storage.Storage) *Handler {
	return &Handler{
		generator:  generator,
		aggregator: aggregator,
		storage:    store,
	}
}

// HandleGenerate 生成食譜並計算營養總計
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 自由輸入先分類：點菜走菜名生成，否則解析為食材清單
	dish := strings.TrimSpace(req.Dish)
	ingredients := req.Ingredients
	if text := strings.TrimSpace(req.Text); text != "" {
		if ingredient.IsDishPrompt(text) {
			dish = text
		} else {
			ingredients = ingredient.Parse(text)
		}
	}

	if dish == "" && len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either dish or ingredients is required"})
		return
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
		zap.Bool("dish_mode", dish != ""),
		zap.Int("ingredient_count", len(ingredients)),
	)

	var aiRecipe *common.GeneratedRecipe
	var err error
	if dish != "" {
		aiRecipe, err = h.generator.GenerateFromDish(c.Request.Context(), dish, req.Preferences)
	} else {
		aiRecipe, err = h.generator.Generate(c.Request.Context(), ingredients, req.Preferences)
	}
	if err != nil {
		common.LogError("食譜生成失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, err)
		return
	}

	// AI 回傳的食材清單優先，為空時退回呼叫端清單
	finalIngredients := aiRecipe.Ingredients
	if len(finalIngredients) == 0 {
		finalIngredients = ingredients
	}

	// 以每 100 公克營養值計算確定性總計
	totals, err := h.aggregator.Calculate(c.Request.Context(), finalIngredients)
	if err != nil {
		common.LogError("營養計算失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, err)
		return
	}

	now := time.Now().UTC()
	recipe := &common.Recipe{
		ID:            common.GenerateUUID(),
		Title:         aiRecipe.Title,
		Description:   aiRecipe.Description,
		Ingredients:   finalIngredients,
		Steps:         aiRecipe.Steps,
		Servings:      aiRecipe.Servings,
		TotalCalories: totals.Calories,
		Macros: common.Macros{
			Protein: totals.Protein,
			Carbs:   totals.Carbs,
			Fat:     totals.Fat,
		},
		Tags:      aiRecipe.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.storage.SaveRecipe(c.Request.Context(), recipe); err != nil {
		common.LogError("食譜儲存失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	common.LogInfo("食譜生成請求完成",
		zap.String("request_id", requestID),
		zap.String("recipe_id", recipe.ID),
		zap.Int("total_calories", recipe.TotalCalories),
	)

	c.JSON(http.StatusCreated, recipe)
}

// HandleList 列出所有食譜（由新到舊）
func (h *Handler) HandleList(c *gin.Context) {
	recipes, err := h.storage.ListRecipes(c.Request.Context(), false)
	if err != nil {
		common.LogError("食譜列表查詢失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// HandleListFavorites 列出收藏的食譜
func (h *Handler) HandleListFavorites(c *gin.Context) {
	recipes, err := h.storage.ListRecipes(c.Request.Context(), true)
	if err != nil {
		common.LogError("收藏列表查詢失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// HandleGet 取得單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	recipe, err := h.storage.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.LogError("食譜查詢失敗", zap.Error(err), zap.String("id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recipe"})
		return
	}
	if recipe == nil {
		respondError(c, common.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// HandleToggleFavorite 切換收藏旗標
func (h *Handler) HandleToggleFavorite(c *gin.Context) {
	recipe, err := h.storage.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.LogError("收藏切換失敗", zap.Error(err), zap.String("id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}
	if recipe == nil {
		respondError(c, common.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
