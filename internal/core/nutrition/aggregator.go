package nutrition

import (
	"context"
	"math"

	"recipe-nutrition/internal/pkg/common"
)

// Aggregator 營養總計器
// 各食材以 數量/100 為倍率累加未捨入的浮點總和，最後才做一次四捨五入
type Aggregator struct {
	resolver *Resolver
}

// NewAggregator 創建營養總計器
func NewAggregator(resolver *Resolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// Calculate 計算整份食譜的營養總計
// 名稱為空、數量非有限數或小於等於零的項目直接略過；不修改輸入
func (a *Aggregator) Calculate(ctx context.Context, items []common.Ingredient) (common.NutritionTotals, error) {
	var calories, protein, carbs, fat float64

	for _, item := range items {
		if item.Name == "" {
			continue
		}
		if math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) || item.Quantity <= 0 {
			continue
		}

		profile, err := a.resolver.Resolve(ctx, item.Name)
		if err != nil {
			return common.NutritionTotals{}, err
		}

		factor := item.Quantity / 100
		calories += profile.Calories * factor
		protein += profile.Protein * factor
		carbs += profile.Carbs * factor
		fat += profile.Fat * factor
	}

	return common.NutritionTotals{
		Calories: int(math.Round(calories)),
		Protein:  int(math.Round(protein)),
		Carbs:    int(math.Round(carbs)),
		Fat:      int(math.Round(fat)),
	}, nil
}
