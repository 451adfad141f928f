package nutrition

import (
	"context"
	"strings"
	"time"

	"recipe-nutrition/internal/core/ingredient"
	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/pkg/common"

	"go.uber.org/zap"
)

// 營養素名稱（/foods/search 回傳格式，需完全一致）
const (
	nutrientEnergy  = "Energy"
	nutrientProtein = "Protein"
	nutrientCarbs   = "Carbohydrate, by difference"
	nutrientFat     = "Total lipid (fat)"
)

// queryAliases 常見食材對資料庫查詢字串的對照表，未列出的名稱原樣通過
var queryAliases = map[string]string{
	// 蛋白質與主食
	"chicken breast": "Chicken, broilers or fryers, breast, meat only, raw",
	"egg":            "Egg, whole, raw, fresh",
	"milk":           "Milk, whole",
	"rice":           "Rice, white, long-grain, raw",
	"potato":         "Potatoes, raw, skin",
	"cheese":         "Cheese, cheddar",
	"flour":          "Wheat flour, white, all-purpose, unenriched",
	// 油脂
	"olive oil": "Oil, olive, salad or cooking",
	"butter":    "Butter, salted",
	// 蔬菜與辛香料
	"garlic":      "Garlic, raw",
	"clove":       "Garlic, raw",
	"onion":       "Onions, raw",
	"tomato":      "Tomatoes, red, ripe, raw, year round average",
	"bell pepper": "Peppers, sweet, red, raw",
	"carrot":      "Carrots, raw",
	// 調味料
	"salt":  "Salt, table",
	"sugar": "Sugar, granulated",
}

// Resolver 營養成分解析器
// 依序查：快取 → 主查詢 → 備援查詢鏈，查無結果以短存活時間負向快取
type Resolver struct {
	searcher    FoodSearcher
	store       Store
	positiveTTL time.Duration
	negativeTTL time.Duration
}

// NewResolver 創建營養成分解析器
func NewResolver(searcher FoodSearcher, store Store, cfg *config.NutritionConfig) *Resolver {
	return &Resolver{
		searcher:    searcher,
		store:       store,
		positiveTTL: cfg.CacheTTL,
		negativeTTL: cfg.NegativeCacheTTL,
	}
}

// Resolve 解析食材名稱的每 100 公克營養成分
// 查無結果回傳零值成分（不是錯誤）；傳輸層錯誤原樣上拋
func (r *Resolver) Resolve(ctx context.Context, name string) (common.NutrientProfile, error) {
	key := ingredient.Normalize(name)
	if key == "" {
		return common.NutrientProfile{}, nil
	}

	// 對照表換成資料庫友善的查詢字串
	query := key
	if alias, ok := queryAliases[key]; ok {
		query = alias
	}

	// 檢查快取
	if profile, ok := r.store.Get(ctx, query); ok {
		common.LogCacheHit("nutrition", query)
		return profile, nil
	}
	common.LogCacheMiss("nutrition", query)

	// 依序嘗試候選查詢，取第一個非空結果
	var food *Food
	for _, candidate := range candidateQueries(key, query) {
		start := time.Now()
		result, err := r.searcher.SearchFood(ctx, candidate)
		common.LogNutrientLookup(candidate, time.Since(start), err)
		if err != nil {
			return common.NutrientProfile{}, common.NewError(
				common.ErrNutrientLookup.Code, common.ErrNutrientLookup.Message,
				common.ErrNutrientLookup.Status, err)
		}
		if result != nil {
			food = result
			break
		}
	}

	// 全部落空：以短存活時間快取零值成分，避免反覆查詢已知缺漏的食材
	if food == nil {
		common.LogWarn("營養資料庫查無此食材", zap.String("查詢字串", query))
		zero := common.NutrientProfile{}
		r.store.Set(ctx, query, zero, r.negativeTTL)
		return zero, nil
	}

	profile := extractProfile(food)
	r.store.Set(ctx, query, profile, r.positiveTTL)
	return profile, nil
}

// candidateQueries 備援查詢鏈：主查詢 → 去標點的正規化名稱 → 其第一個單字
// 以資料表示重試策略，依序求值、首個命中即停
func candidateQueries(key, query string) []string {
	candidates := []string{query}

	fallback := strings.Join(strings.Fields(strings.ReplaceAll(key, ",", " ")), " ")
	if fallback != "" && fallback != query {
		candidates = append(candidates, fallback)
	}

	if fields := strings.Fields(fallback); len(fields) > 0 {
		firstWord := fields[0]
		if firstWord != fallback && firstWord != query {
			candidates = append(candidates, firstWord)
		}
	}

	return candidates
}

// extractProfile 防禦性取出四項營養素，缺漏或負值一律視為 0
func extractProfile(food *Food) common.NutrientProfile {
	get := func(name string) float64 {
		for _, n := range food.FoodNutrients {
			if n.NutrientName == name {
				if n.Value < 0 {
					return 0
				}
				return n.Value
			}
		}
		return 0
	}

	return common.NutrientProfile{
		Calories: get(nutrientEnergy),
		Protein:  get(nutrientProtein),
		Carbs:    get(nutrientCarbs),
		Fat:      get(nutrientFat),
	}
}
