// Package nutrition 以固定營養表估算食譜的熱量與三大營養素
package nutrition

import (
	"math"
	"strings"

	"smart-kitchen/internal/pkg/common"
)

// per100g 每 100 克營養值
type per100g struct {
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}

// nutritionTable 每 100 克的營養值
var nutritionTable = map[string]per100g{
	"egg":       {155, 13, 1.1, 11},
	"rice":      {130, 2.7, 28, 0.3},
	"bread":     {265, 9, 49, 3.2},
	"butter":    {717, 0.9, 0.1, 81},
	"tomato":    {18, 0.9, 3.9, 0.2},
	"paneer":    {321, 21, 3.6, 25},
	"tofu":      {76, 8, 1.9, 4.8},
	"oats":      {389, 17, 66, 7},
	"chickpeas": {164, 9, 27, 2.6},
	"cheese":    {402, 25, 1.3, 33},
	"maggi":     {436, 10, 60, 17},
	"peanut":    {567, 26, 16, 49},
	"curd":      {98, 11, 3.4, 5},
	"milk":      {60, 3.2, 5, 3.3},
	"oil":       {884, 0, 0, 100},
	"soy":       {446, 36, 30, 20},
}

// defaultGrams 每種食材的預設份量（克）
var defaultGrams = map[string]float64{
	"egg":       50,
	"rice":      150,
	"bread":     60,
	"butter":    10,
	"tomato":    100,
	"paneer":    120,
	"tofu":      120,
	"oats":      40,
	"chickpeas": 120,
	"cheese":    40,
	"maggi":     70,
	"peanut":    20,
	"curd":      200,
	"milk":      200,
	"oil":       10,
	"soy":       30,
}

// fallbackGrams 表中有營養值但沒有預設份量時使用
const fallbackGrams = 100.0

// Estimate 由逗號分隔的食材字串估算營養
// 每段取第一個單字對照營養表，查無者貢獻 0，加總後才四捨五入
func Estimate(ingredients string) common.Macros {
	var cal, protein, carbs, fat float64

	for _, part := range strings.Split(ingredients, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		key := strings.Fields(part)[0]
		row, ok := nutritionTable[key]
		if !ok {
			continue
		}
		grams, ok := defaultGrams[key]
		if !ok {
			grams = fallbackGrams
		}
		factor := grams / 100.0
		cal += row.calories * factor
		protein += row.protein * factor
		carbs += row.carbs * factor
		fat += row.fat * factor
	}

	return common.Macros{
		Calories: int(math.Round(cal)),
		Protein:  int(math.Round(protein)),
		Carbs:    int(math.Round(carbs)),
		Fat:      int(math.Round(fat)),
	}
}
