// Package ranker 計算食譜在食材、時間與營養三方面的契合度
package ranker

import (
	"math"

	"smart-kitchen/internal/pkg/common"
)

const (
	// DefaultTargetProtein 預設蛋白質目標（克）
	DefaultTargetProtein = 30.0
	// DefaultCalorieCap 預設熱量上限（kcal）
	DefaultCalorieCap = 600.0

	// 權重
	weightIngredients = 0.5
	weightTime        = 0.2
	weightNutrition   = 0.3

	// 熱量超標時的最低分
	calorieFloor = 0.2
)

// NutritionFit 營養契合度：蛋白質越接近目標越好，熱量超過上限則線性扣分（最低 0.2）
func NutritionFit(m common.Macros, targetProtein, calorieCap float64) float64 {
	if targetProtein <= 0 {
		targetProtein = DefaultTargetProtein
	}
	if calorieCap <= 0 {
		calorieCap = DefaultCalorieCap
	}

	proteinScore := math.Min(float64(m.Protein)/targetProtein, 1.0)
	if proteinScore < 0 {
		proteinScore = 0
	}

	calories := float64(m.Calories)
	calorieScore := 1.0
	if calories > calorieCap {
		calorieScore = math.Max(calorieFloor, 1.0-(calories-calorieCap)/1000.0)
	}

	return common.Round(0.6*proteinScore+0.4*calorieScore, 3)
}

// TimeFit 時間契合度；未知時間給 0.5
func TimeFit(minutes *int, maxTime int) float64 {
	if minutes == nil {
		return 0.5
	}
	t := float64(*minutes)
	limit := float64(maxTime)
	if t <= limit {
		return 1.0
	}
	return common.Round(math.Max(0.0, 1.0-(t-limit)/math.Max(10.0, limit)), 3)
}

// FinalScore 綜合分數 0.5 食材 + 0.2 時間 + 0.3 營養
func FinalScore(ingredients, timeScore, nutrition float64) float64 {
	return common.Round(weightIngredients*ingredients+weightTime*timeScore+weightNutrition*nutrition, 4)
}
