package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-kitchen/internal/pkg/common"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		want        common.Macros
	}{
		{
			name:        "egg and rice with unknown salt",
			ingredients: "egg, rice, salt",
			want:        common.Macros{Calories: 273, Protein: 11, Carbs: 43, Fat: 6},
		},
		{
			name:        "first token decides the key",
			ingredients: "Paneer cubes, tomato puree",
			want:        common.Macros{Calories: 403, Protein: 26, Carbs: 8, Fat: 30},
		},
		{
			name:        "empty fragments are ignored",
			ingredients: " , oil,, ",
			want:        common.Macros{Calories: 88, Protein: 0, Carbs: 0, Fat: 10},
		},
		{
			name:        "nothing recognised",
			ingredients: "salt, pepper, lemon",
			want:        common.Macros{},
		},
		{
			name:        "empty string",
			ingredients: "",
			want:        common.Macros{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.ingredients))
		})
	}
}

func TestEstimate_RepeatedIngredientsAccumulate(t *testing.T) {
	one := Estimate("egg")
	two := Estimate("egg, egg")
	assert.Equal(t, 78, one.Calories)
	assert.Equal(t, 155, two.Calories)
}
