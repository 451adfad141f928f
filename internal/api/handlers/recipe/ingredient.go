package recipe

import (
	"net/http"
	"strconv"
	"strings"

	"recipe-nutrition/internal/core/ingredient"
	"recipe-nutrition/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseRequest 食材文字解析請求
type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseResponse 解析結果：食材清單（公克）與營養總計
type ParseResponse struct {
	Ingredients []common.Ingredient    `json:"ingredients"`
	Totals      common.NutritionTotals `json:"totals"`
	IsDish      bool                   `json:"isDish"`
}

// HandleParseIngredients 解析多行食材文字並回傳營養總計
func (h *Handler) HandleParseIngredients(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 點菜輸入不做逐行解析，直接告知呼叫端改走生成流程
	if ingredient.IsDishPrompt(req.Text) {
		c.JSON(http.StatusOK, ParseResponse{
			Ingredients: []common.Ingredient{},
			IsDish:      true,
		})
		return
	}

	ingredients := ingredient.Parse(req.Text)
	totals, err := h.aggregator.Calculate(c.Request.Context(), ingredients)
	if err != nil {
		common.LogError("營養計算失敗", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ParseResponse{
		Ingredients: ingredients,
		Totals:      totals,
	})
}

// CatalogItemRequest 食材目錄新增請求，營養值為每 100 公克
type CatalogItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// HandleListCatalog 列出食材目錄
func (h *Handler) HandleListCatalog(c *gin.Context) {
	items, err := h.storage.ListCatalog(c.Request.Context())
	if err != nil {
		common.LogError("食材目錄查詢失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list catalog"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// HandleCreateCatalogItem 新增食材目錄條目
func (h *Handler) HandleCreateCatalogItem(c *gin.Context) {
	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	item := &common.CatalogItem{
		Name: strings.TrimSpace(req.Name),
		Per100g: common.NutrientProfile{
			Calories: req.Calories,
			Protein:  req.Protein,
			Carbs:    req.Carbs,
			Fat:      req.Fat,
		},
	}
	if err := h.storage.CreateCatalogItem(c.Request.Context(), item); err != nil {
		common.LogError("食材目錄新增失敗", zap.Error(err), zap.String("name", item.Name))
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create catalog item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// HandleDeleteCatalogItem 刪除食材目錄條目
func (h *Handler) HandleDeleteCatalogItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid catalog item id"})
		return
	}

	if err := h.storage.DeleteCatalogItem(c.Request.Context(), id); err != nil {
		common.LogError("食材目錄刪除失敗", zap.Error(err), zap.Int64("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete catalog item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
