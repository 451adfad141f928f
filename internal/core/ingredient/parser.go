package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"recipe-nutrition/internal/pkg/common"
)

// defaultQuantityGrams 無法解析的行（例如「適量」）一律視為 100 公克
const defaultQuantityGrams = 100

// unitVocabulary 解析時接受的單位詞彙（含複數變體）
const unitVocabulary = `g|grams?|kg|kilograms?|oz|ounces?|ml|milliliters?|l|liters?|cups?|tbsp|tablespoons?|tsp|teaspoons?|cloves?|pieces?|pcs?|eggs?`

var (
	// linePattern 兩種寫法擇一：<數量> <單位?> <名稱> 或 <名稱> <數量> <單位?>
	linePattern = regexp.MustCompile(
		`(?i)^(\d+(?:\.\d+)?)\s*(` + unitVocabulary + `)?\s+(.+)$` +
			`|^(.+?)\s+(\d+(?:\.\d+)?)\s*(` + unitVocabulary + `)?$`)

	unitTokenPattern = regexp.MustCompile(`(?i)\b(` + unitVocabulary + `)\b`)
	numberPattern    = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// Parse 將每行一項的食材文字解析為結構化清單，數量一律換算為公克
// 解析失敗的行退回整行當名稱、預設 100 公克，永不回傳錯誤
func Parse(text string) []common.Ingredient {
	lines := strings.Split(text, "\n")
	parsed := make([]common.Ingredient, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed = append(parsed, parseLine(line))
	}
	return parsed
}

// parseLine 解析單行
func parseLine(line string) common.Ingredient {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		// 整行視為名稱，套用預設份量
		return common.Ingredient{
			Name:     Normalize(line),
			Quantity: defaultQuantityGrams,
		}
	}

	quantityStr := m[1]
	unit := m[2]
	nameSpan := m[3]
	if quantityStr == "" {
		quantityStr = m[5]
		unit = m[6]
		nameSpan = m[4]
	}

	quantity, err := strconv.ParseFloat(quantityStr, 64)
	if err != nil || quantity < 0 {
		quantity = 0
	}

	grams := ToGrams(nameSpan, quantity, unit)

	// 清理名稱：移除殘留的單位詞彙與數字
	clean := unitTokenPattern.ReplaceAllString(nameSpan, " ")
	clean = numberPattern.ReplaceAllString(clean, " ")
	clean = Normalize(clean)
	if clean == "" {
		// 名稱本身就是單位詞（如 eggs），改用未清理的名稱
		clean = Normalize(nameSpan)
	}

	return common.Ingredient{
		Name:     clean,
		Quantity: math.Round(grams),
	}
}
