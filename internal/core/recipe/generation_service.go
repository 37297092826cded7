package recipe

import (
	"context"
	"strings"

	"smart-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

const untitledRecipe = "Untitled Recipe"

// generationState 生成流程狀態
type generationState int

const (
	stateInitialRequest generationState = iota
	stateCuisineRetry
	stateDone
)

func (s generationState) String() string {
	switch s {
	case stateInitialRequest:
		return "INITIAL_REQUEST"
	case stateCuisineRetry:
		return "CUISINE_RETRY"
	default:
		return "DONE"
	}
}

// GenerationService 以本地模型生成食譜
// 每次請求最多呼叫後端兩次：首次請求與一次菜系重試
type GenerationService struct {
	ai Generator
}

// NewGenerationService 創建食譜生成服務
func NewGenerationService(ai Generator) *GenerationService {
	return &GenerationService{ai: ai}
}

// Generate 生成並正規化食譜，不寫入資料庫
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) ([]common.GeneratedRecipe, error) {
	ingredients := cleanList(req.Ingredients)
	if len(ingredients) == 0 {
		return nil, common.InvalidRequestError("ingredients required")
	}

	cuisine := strings.TrimSpace(req.Cuisine)
	count := req.Count
	if count < 1 {
		count = 1
	}

	traceID := common.GenerateUUID()
	basePrompt := BuildPrompt(ingredients, cuisine, req.CalorieCap, count)

	common.LogInfo("開始生成食譜",
		zap.String("trace_id", traceID),
		zap.Int("ingredients", len(ingredients)),
		zap.String("cuisine", cuisine),
		zap.Int("count", count),
	)

	var recipes []map[string]interface{}
	state := stateInitialRequest
	for state != stateDone {
		switch state {
		case stateInitialRequest:
			data, err := s.ai.GenerateJSON(ctx, basePrompt, traceID)
			if err != nil {
				return nil, err
			}
			recipes, err = recipesFromOutput(data)
			if err != nil {
				return nil, err
			}
			state = stateDone
			if cuisine != "" && !allMatchCuisine(recipes, cuisine) {
				state = stateCuisineRetry
			}

		case stateCuisineRetry:
			common.LogInfo("菜系不符，重新生成",
				zap.String("trace_id", traceID),
				zap.Stringer("state", state),
				zap.String("cuisine", cuisine),
			)
			data, err := s.ai.GenerateJSON(ctx, BuildRetryPrompt(basePrompt), traceID)
			switch {
			case err == nil:
				if retried, shapeErr := recipesFromOutput(data); shapeErr == nil {
					recipes = retried
				} else {
					common.LogWarn("重試輸出結構無效，保留首次結果", zap.String("trace_id", traceID))
				}
			case common.IsCode(err, common.ErrCodeGenerationParse):
				common.LogWarn("重試輸出無法解析，保留首次結果", zap.String("trace_id", traceID))
			default:
				return nil, err
			}

			for _, r := range recipes {
				if !cuisineMatches(r, cuisine) {
					r["cuisine"] = cuisine
				}
			}
			state = stateDone
		}
	}

	if len(recipes) > count {
		recipes = recipes[:count]
	}

	out := make([]common.GeneratedRecipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, mapGeneratedRecipe(r, cuisine))
	}

	common.LogInfo("食譜生成完成",
		zap.String("trace_id", traceID),
		zap.Int("recipes", len(out)),
	)
	return out, nil
}

// recipesFromOutput 接受 {"recipes":[...]} 或單一食譜物件
func recipesFromOutput(data map[string]interface{}) ([]map[string]interface{}, error) {
	if data == nil {
		return nil, common.InvalidModelOutputError("model returned no JSON object")
	}

	raw, wrapped := data["recipes"]
	if !wrapped {
		return []map[string]interface{}{data}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, common.InvalidModelOutputError("recipes must be an array")
	}

	recipes := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]interface{}); ok {
			recipes = append(recipes, obj)
		}
	}
	if len(recipes) == 0 {
		return nil, common.InvalidModelOutputError("model returned no recipe objects")
	}
	return recipes, nil
}

// cuisineMatches 菜系欄位或標題包含指定菜系（不分大小寫）
func cuisineMatches(r map[string]interface{}, desired string) bool {
	want := strings.ToLower(strings.TrimSpace(desired))
	if want == "" {
		return true
	}
	title := strings.ToLower(stringify(r["title"]))
	got := strings.ToLower(stringify(r["cuisine"]))
	return strings.Contains(got, want) || strings.Contains(title, want)
}

func allMatchCuisine(recipes []map[string]interface{}, desired string) bool {
	for _, r := range recipes {
		if !cuisineMatches(r, desired) {
			return false
		}
	}
	return true
}

// mapGeneratedRecipe 轉為對外的食譜格式
func mapGeneratedRecipe(r map[string]interface{}, requestedCuisine string) common.GeneratedRecipe {
	title := strings.TrimSpace(stringify(r["title"]))
	if title == "" {
		title = untitledRecipe
	}

	var cuisine *string
	c := strings.TrimSpace(stringify(r["cuisine"]))
	if c == "" {
		c = requestedCuisine
	}
	if c != "" {
		cuisine = &c
	}

	return common.GeneratedRecipe{
		Title:        title,
		Cuisine:      cuisine,
		Ingredients:  ingredientList(r["ingredients"]),
		Instructions: FixInstructions(r["instructions"]),
		Macros:       CoerceMacros(r["macros"]),
	}
}

// ingredientList 食材轉為字串清單；字串以逗號切開
func ingredientList(raw interface{}) []string {
	switch v := raw.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return cleanList(strings.Split(v, ","))
	default:
		return []string{}
	}
}

// cleanList 去除空白與空字串
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
