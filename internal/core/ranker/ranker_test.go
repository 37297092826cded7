package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-kitchen/internal/pkg/common"
)

func TestNutritionFit(t *testing.T) {
	tests := []struct {
		name   string
		macros common.Macros
		want   float64
	}{
		{"egg fried rice", common.Macros{Calories: 520, Protein: 18}, 0.76},
		{"protein capped at target", common.Macros{Calories: 400, Protein: 60}, 1.0},
		{"calories over cap decay", common.Macros{Calories: 900, Protein: 30}, 0.88},
		{"calorie floor", common.Macros{Calories: 5000, Protein: 0}, 0.08},
		{"zero everything", common.Macros{}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NutritionFit(tt.macros, DefaultTargetProtein, DefaultCalorieCap)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNutritionFit_DefaultsForNonPositiveTargets(t *testing.T) {
	m := common.Macros{Calories: 520, Protein: 18}
	assert.Equal(t, NutritionFit(m, DefaultTargetProtein, DefaultCalorieCap), NutritionFit(m, 0, 0))
}

func TestTimeFit(t *testing.T) {
	assert.Equal(t, 0.5, TimeFit(nil, 20))
	assert.Equal(t, 1.0, TimeFit(common.IntPtr(18), 20))
	assert.Equal(t, 1.0, TimeFit(common.IntPtr(20), 20))
	assert.InDelta(t, 0.5, TimeFit(common.IntPtr(30), 20), 1e-9)
	assert.InDelta(t, 0.5, TimeFit(common.IntPtr(10), 5), 1e-9)
	assert.Equal(t, 0.0, TimeFit(common.IntPtr(200), 20))
}

func TestFinalScore(t *testing.T) {
	assert.InDelta(t, 0.628, FinalScore(0.4, 1.0, 0.76), 1e-9)
	assert.InDelta(t, 1.0, FinalScore(1, 1, 1), 1e-9)
	assert.Equal(t, 0.0, FinalScore(0, 0, 0))
}

func TestScoresStayInUnitInterval(t *testing.T) {
	for cal := 0; cal <= 3000; cal += 150 {
		for p := 0; p <= 90; p += 9 {
			got := NutritionFit(common.Macros{Calories: cal, Protein: p}, DefaultTargetProtein, DefaultCalorieCap)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	}
	for minutes := 0; minutes <= 300; minutes += 7 {
		got := TimeFit(common.IntPtr(minutes), 20)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestFinalScoreMonotonic(t *testing.T) {
	steps := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	for _, fixed := range steps {
		prevIng, prevTime, prevNut := -1.0, -1.0, -1.0
		for _, v := range steps {
			ing := FinalScore(v, fixed, fixed)
			tm := FinalScore(fixed, v, fixed)
			nut := FinalScore(fixed, fixed, v)
			assert.GreaterOrEqual(t, ing, prevIng)
			assert.GreaterOrEqual(t, tm, prevTime)
			assert.GreaterOrEqual(t, nut, prevNut)
			prevIng, prevTime, prevNut = ing, tm, nut
		}
	}
}
