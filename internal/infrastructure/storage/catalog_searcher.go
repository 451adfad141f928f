package storage

import (
	"context"

	"recipe-nutrition/internal/core/nutrition"
)

// CatalogSearcher 以本地食材目錄實作營養查詢協作者
// 網路查詢的本地替代方案，回傳與 USDA 相同的紀錄形狀
type CatalogSearcher struct {
	storage *Storage
}

// NewCatalogSearcher 創建目錄查詢器
func NewCatalogSearcher(storage *Storage) *CatalogSearcher {
	return &CatalogSearcher{storage: storage}
}

// SearchFood 以名稱不分大小寫查詢目錄，查無結果回傳 (nil, nil)
func (s *CatalogSearcher) SearchFood(ctx context.Context, query string) (*nutrition.Food, error) {
	profile, found, err := s.storage.FindCatalogProfile(ctx, query)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &nutrition.Food{
		Description: query,
		FoodNutrients: []nutrition.FoodNutrient{
			{NutrientName: "Energy", Value: profile.Calories},
			{NutrientName: "Protein", Value: profile.Protein},
			{NutrientName: "Carbohydrate, by difference", Value: profile.Carbs},
			{NutrientName: "Total lipid (fat)", Value: profile.Fat},
		},
	}, nil
}
