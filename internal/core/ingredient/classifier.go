package ingredient

import (
	"regexp"
	"strings"
)

// dishPromptPatterns 自然語言點菜請求的特徵
var dishPromptPatterns = []*regexp.Regexp{
	// 請求動詞開頭
	regexp.MustCompile(`^(i want|make me|create|i need|give me|suggest)`),
	// 冠詞 + 名詞 + 餐別
	regexp.MustCompile(`^(a|an|some)\s+\w+\s+(dish|meal|recipe|dinner|lunch|breakfast)`),
	// 飲食關鍵字
	regexp.MustCompile(`(healthy|protein|low[- ]?carb|vegan|vegetarian|gluten[- ]?free)`),
}

// IsDishPrompt 判斷輸入是點菜描述還是食材清單
// 含換行視為逐行的食材清單，直接回傳 false
func IsDishPrompt(text string) bool {
	if strings.Contains(text, "\n") {
		return false
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	for _, pattern := range dishPromptPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}
