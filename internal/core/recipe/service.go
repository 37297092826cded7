package recipe

import (
	"context"

	"smart-kitchen/internal/pkg/common"
)

// Store 食譜服務需要的儲存操作
type Store interface {
	CreateRecipe(ctx context.Context, r *common.Recipe) error
	ListRecipes(ctx context.Context) ([]common.Recipe, error)
	ListRecipesMissingMacros(ctx context.Context) ([]common.Recipe, error)
	SaveRecipeMacros(ctx context.Context, id uint, m common.Macros) error
	ListPantryItems(ctx context.Context) ([]common.PantryItem, error)
}

// Generator 生成後端，回傳模型輸出的 JSON 物件
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, traceID string) (map[string]interface{}, error)
}
