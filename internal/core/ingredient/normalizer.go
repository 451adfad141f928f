package ingredient

import (
	"regexp"
	"strings"
)

// singularForms 常見複數的單數對照表，只做完整比對，不做子字串替換
var singularForms = map[string]string{
	"cloves":   "clove",
	"tomatoes": "tomato",
	"onions":   "onion",
	"eggs":     "egg",
	"potatoes": "potato",
	"peppers":  "pepper",
	"carrots":  "carrot",
}

var (
	parenPattern     = regexp.MustCompile(`\(.*?\)`)
	nonLetterPattern = regexp.MustCompile(`[^a-z\s]`)
)

// Normalize 將原始食材名稱正規化為小寫單數的標準名稱
// 步驟：轉小寫 → 移除括號內容 → 非字母字元換成空白 → 壓縮空白 → 單數化
// 未知名稱原樣通過，空白輸入回傳空字串
func Normalize(raw string) string {
	cleaned := strings.ToLower(raw)
	cleaned = parenPattern.ReplaceAllString(cleaned, "")
	cleaned = nonLetterPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if singular, ok := singularForms[cleaned]; ok {
		return singular
	}
	return cleaned
}
