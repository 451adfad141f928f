package ingredient

import (
	"strings"
)

// 單位換算採經驗近似值，非營養學權威數據：
// 體積一律以水的密度估算（名稱含 oil 時用油的密度），
// 既有食譜的數值依賴這些倍率，修改會破壞相容性。

// massFactors 質量單位對公克的倍率
var massFactors = map[string]float64{
	"g":         1,
	"gram":      1,
	"grams":     1,
	"kg":        1000,
	"kilogram":  1000,
	"kilograms": 1000,
	"oz":        28.3495,
	"ounce":     28.3495,
	"ounces":    28.3495,
}

// volumeFactor 體積單位倍率，水與油分開列
type volumeFactor struct {
	water float64
	oil   float64
}

// volumeFactors 體積單位對公克的倍率
var volumeFactors = map[string]volumeFactor{
	"ml":          {water: 1, oil: 1},
	"milliliter":  {water: 1, oil: 1},
	"milliliters": {water: 1, oil: 1},
	"l":           {water: 1000, oil: 1000},
	"liter":       {water: 1000, oil: 1000},
	"liters":      {water: 1000, oil: 1000},
	"cup":         {water: 240, oil: 216},
	"cups":        {water: 240, oil: 216},
	"tbsp":        {water: 15, oil: 14},
	"tablespoon":  {water: 15, oil: 14},
	"tablespoons": {water: 15, oil: 14},
	"tsp":         {water: 5, oil: 5},
	"teaspoon":    {water: 5, oil: 5},
	"teaspoons":   {water: 5, oil: 5},
}

// pieceDefaults 以「個」計量時的單件重量，依食材名稱查表
var pieceDefaults = map[string]float64{
	"onion":  110,
	"tomato": 125,
}

const (
	gramsPerClove        = 3
	gramsPerEgg          = 50
	gramsPerPieceDefault = 50
)

// ToGrams 將（食材名稱、數量、單位）換算為公克
// 判斷順序：質量單位 → 體積單位 → 件數啟發（單位或名稱）→ 視為公克原樣通過
func ToGrams(name string, quantity float64, unit string) float64 {
	n := Normalize(name)
	u := strings.ToLower(strings.TrimSpace(unit))

	// 質量單位
	if factor, ok := massFactors[u]; ok {
		return quantity * factor
	}

	// 體積單位
	if factor, ok := volumeFactors[u]; ok {
		if strings.Contains(n, "oil") {
			return quantity * factor.oil
		}
		return quantity * factor.water
	}

	// 件數啟發：單位或名稱其一命中即套用
	if strings.HasPrefix(u, "clove") || strings.Contains(n, "clove") {
		return quantity * gramsPerClove
	}
	if strings.HasPrefix(u, "egg") || strings.Contains(n, "egg") {
		return quantity * gramsPerEgg
	}
	if strings.HasPrefix(u, "piece") || strings.HasPrefix(u, "pc") {
		for key, grams := range pieceDefaults {
			if strings.Contains(n, key) {
				return quantity * grams
			}
		}
		return quantity * gramsPerPieceDefault
	}

	// 未知或缺少單位 → 視為已是公克
	return quantity
}
