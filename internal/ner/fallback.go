package ner

import "strings"

// fallbackKeywords are matched case-insensitively as substrings when the
// token-classification model is unavailable.
var fallbackKeywords = map[string][]string{
	CategoryDiseases:  {"치매", "알츠하이머", "파킨슨", "우울증", "조현병"},
	CategoryDrugs:     {"약", "복용", "투약", "의약품"},
	CategoryClothing:  {"상의", "하의", "바지", "치마", "셔츠", "티셔츠", "모자"},
	CategoryColors:    {"빨간", "파란", "노란", "검은", "흰", "회색"},
	CategoryLocations: {"서울", "부산", "대구", "인천", "광주", "대전", "울산"},
	CategoryTransport: {"휠체어", "지팡이", "보행기", "택시", "버스"},
}

// KeywordExtractor is the degraded extraction strategy: any known keyword
// found in the text contributes itself as an entity under its category.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor { return &KeywordExtractor{} }

func (e *KeywordExtractor) Extract(text string) map[string][]string {
	entities := make(map[string][]string)
	if text == "" {
		return entities
	}

	lower := strings.ToLower(text)
	for category, keywords := range fallbackKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				entities[category] = append(entities[category], kw)
			}
		}
	}
	return entities
}
