package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Food 營養查詢協作者回傳的食物紀錄
type Food struct {
	Description   string         `json:"description"`
	FoodNutrients []FoodNutrient `json:"foodNutrients"`
}

// FoodNutrient 單一營養素條目
type FoodNutrient struct {
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
}

// FoodSearcher 營養查詢協作者介面
// 回傳至多一筆紀錄，查無結果時回傳 (nil, nil)
type FoodSearcher interface {
	SearchFood(ctx context.Context, query string) (*Food, error)
}

// USDAClient USDA FoodData Central 查詢客戶端
type USDAClient struct {
	client *resty.Client
	config *config.USDAConfig
}

// NewUSDAClient 創建 USDA 客戶端
// 金鑰缺失視為設定錯誤，直接失敗而不是默默回傳零值
func NewUSDAClient(cfg *config.USDAConfig) (*USDAClient, error) {
	if cfg.APIKey == "" {
		return nil, common.ErrMissingAPIKey
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &USDAClient{
		client: client,
		config: cfg,
	}, nil
}

// SearchFood 以查詢字串搜尋食物，取第一筆結果
func (c *USDAClient) SearchFood(ctx context.Context, query string) (*Food, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":    query,
			"dataType": c.config.DataType,
			"pageSize": strconv.Itoa(1),
			"api_key":  c.config.APIKey,
		}).
		Get("/foods/search")

	if err != nil {
		return nil, fmt.Errorf("failed to send request to USDA: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("USDA API 回傳錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("USDA API error: %d %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result struct {
		Foods []Food `json:"foods"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse USDA response: %w", err)
	}

	if len(result.Foods) == 0 {
		common.LogDebug("USDA 查無結果", zap.String("query", query))
		return nil, nil
	}
	return &result.Foods[0], nil
}

// Close 關閉客戶端
func (c *USDAClient) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
