package recipe

import (
	"context"
	"strings"

	"smart-kitchen/internal/core/nutrition"
	"smart-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeService 食譜資料維護
type RecipeService struct {
	store Store
}

// NewRecipeService 創建食譜服務
func NewRecipeService(store Store) *RecipeService {
	return &RecipeService{store: store}
}

// AddRecipe 新增食譜，未給時間時預設 15 分鐘
func (s *RecipeService) AddRecipe(ctx context.Context, in NewRecipe) (*common.Recipe, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.InvalidRequestError("title required")
	}
	if strings.TrimSpace(in.Ingredients) == "" {
		return nil, common.InvalidRequestError("ingredients required")
	}

	timeMinutes := in.TimeMinutes
	if timeMinutes == nil {
		timeMinutes = common.IntPtr(DefaultTimeMinutes)
	}

	r := &common.Recipe{
		Title:        title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Calories:     in.Calories,
		Protein:      in.Protein,
		Carbs:        in.Carbs,
		Fat:          in.Fat,
		TimeMinutes:  timeMinutes,
	}
	if err := s.store.CreateRecipe(ctx, r); err != nil {
		return nil, common.InternalError("failed to save recipe", err)
	}

	common.LogInfo("新增食譜", zap.Uint("id", r.ID), zap.String("title", r.Title))
	return r, nil
}

// ListRecipes 列出所有食譜
func (s *RecipeService) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, common.InternalError("failed to list recipes", err)
	}
	return recipes, nil
}

// RecomputeMacros 為缺少營養值的食譜估算並寫回
// 估算總和為 0 的食譜不更新；已有完整營養值的食譜不會被覆寫
func (s *RecipeService) RecomputeMacros(ctx context.Context) (*RecomputeResult, error) {
	missing, err := s.store.ListRecipesMissingMacros(ctx)
	if err != nil {
		return nil, common.InternalError("failed to load recipes", err)
	}

	result := &RecomputeResult{Items: []RecomputedItem{}}
	for _, r := range missing {
		est := nutrition.Estimate(r.Ingredients)
		if est.Sum() == 0 {
			continue
		}
		if err := s.store.SaveRecipeMacros(ctx, r.ID, est); err != nil {
			return nil, common.InternalError("failed to save macros", err)
		}
		result.Updated++
		result.Items = append(result.Items, RecomputedItem{ID: r.ID, Title: r.Title, Macros: est})
	}

	common.LogInfo("營養回填完成",
		zap.Int("candidates", len(missing)),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}
