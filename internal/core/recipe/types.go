package recipe

import (
	"smart-kitchen/internal/pkg/common"
)

// 查詢參數預設值與範圍
const (
	DefaultSuggestMaxTime = 20
	DefaultSearchMaxTime  = 30
	DefaultLimit          = 10
	DefaultMaxCalories    = 10000
	DefaultTimeMinutes    = 15
	DefaultGenerateCount  = 2

	minMaxTime     = 5
	maxMaxTime     = 240
	minLimit       = 1
	maxLimit       = 50
	maxMinProtein  = 200
	minMaxCalories = 1
	maxMaxCalories = 20000
)

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	Ingredients []string
	Cuisine     string
	CalorieCap  *int
	Count       int
}

// SuggestQuery 推薦參數
type SuggestQuery struct {
	MaxTime int
	Limit   int
}

// SuggestResult 推薦結果
type SuggestResult struct {
	Results []common.ScoredRecipe `json:"results"`
	Pantry  []string              `json:"pantry"`
	MaxTime int                   `json:"max_time"`
}

// SearchQuery 搜尋參數
type SearchQuery struct {
	Q           string
	MaxTime     int
	MinProtein  int
	MaxCalories int
	Limit       int
}

// SearchFilters 搜尋條件回顯
type SearchFilters struct {
	MaxTime     int `json:"max_time"`
	MinProtein  int `json:"min_protein"`
	MaxCalories int `json:"max_calories"`
}

// SearchResult 搜尋結果
type SearchResult struct {
	Query   string                `json:"query"`
	Filters SearchFilters         `json:"filters"`
	Pantry  []string              `json:"pantry"`
	Results []common.ScoredRecipe `json:"results"`
}

// RecomputedItem 回填營養的食譜
type RecomputedItem struct {
	ID     uint          `json:"id"`
	Title  string        `json:"title"`
	Macros common.Macros `json:"macros"`
}

// RecomputeResult 營養回填結果
type RecomputeResult struct {
	Updated int              `json:"updated"`
	Items   []RecomputedItem `json:"items"`
}

// NewRecipe 新增食譜輸入
type NewRecipe struct {
	Title        string
	Description  *string
	Ingredients  string
	Instructions *string
	Calories     *int
	Protein      *int
	Carbs        *int
	Fat          *int
	TimeMinutes  *int
}
