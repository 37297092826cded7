package common

import "time"

// PantryItem 食材庫存
type PantryItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:120;not null;index" json:"name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Unit       string    `gorm:"size:32;not null" json:"unit"`
	ExpiryDate *string   `gorm:"size:10" json:"expiry_date"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"-"`
}

// Recipe 食譜
// 四項營養欄位任一為 nil 時視為缺值，需由估算補上
type Recipe struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null;index" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients"` // 逗號分隔
	Instructions *string   `gorm:"type:text" json:"instructions"`
	Calories     *int      `json:"calories"`
	Protein      *int      `json:"protein"`
	Carbs        *int      `json:"carbs"`
	Fat          *int      `json:"fat"`
	TimeMinutes  *int      `json:"time_minutes"`
	CreatedAt    time.Time `json:"-"`
}

// StoredMacros 回傳資料庫中的營養值，四項皆存在時 ok 為 true
func (r *Recipe) StoredMacros() (Macros, bool) {
	if r.Calories == nil || r.Protein == nil || r.Carbs == nil || r.Fat == nil {
		return Macros{}, false
	}
	return Macros{
		Calories: *r.Calories,
		Protein:  *r.Protein,
		Carbs:    *r.Carbs,
		Fat:      *r.Fat,
	}, true
}

// Macros 營養素（整數，單位 kcal / g）
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Sum 四項總和
func (m Macros) Sum() int {
	return m.Calories + m.Protein + m.Carbs + m.Fat
}

// Fit 各項子分數
type Fit struct {
	Ingredients float64  `json:"ingredients"`
	Time        float64  `json:"time"`
	Nutrition   float64  `json:"nutrition"`
	Query       *float64 `json:"query,omitempty"`
}

// ScoredRecipe 排序後的食譜
type ScoredRecipe struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Ingredients string  `json:"ingredients"`
	TimeMinutes *int    `json:"time_minutes"`
	Macros      Macros  `json:"macros"`
	Fit         Fit     `json:"fit"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// GeneratedMacros 模型產生的營養值
type GeneratedMacros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// GeneratedRecipe 模型生成並經正規化的食譜
type GeneratedRecipe struct {
	Title        string          `json:"title"`
	Cuisine      *string         `json:"cuisine"`
	Ingredients  []string        `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	Macros       GeneratedMacros `json:"macros"`
}
