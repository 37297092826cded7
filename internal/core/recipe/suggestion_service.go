package recipe

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"smart-kitchen/internal/core/nutrition"
	"smart-kitchen/internal/core/ranker"
	"smart-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	weightBase  = 0.85
	weightQuery = 0.15
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// SuggestionService 依庫存、時間、營養排序食譜
type SuggestionService struct {
	store Store
}

// NewSuggestionService 創建新的食譜推薦服務
func NewSuggestionService(store Store) *SuggestionService {
	return &SuggestionService{store: store}
}

// Suggest 以庫存契合度為主的推薦
func (s *SuggestionService) Suggest(ctx context.Context, q SuggestQuery) (*SuggestResult, error) {
	if err := checkRange("max_time", q.MaxTime, minMaxTime, maxMaxTime); err != nil {
		return nil, err
	}
	if err := checkRange("limit", q.Limit, minLimit, maxLimit); err != nil {
		return nil, err
	}

	pantry, recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]common.ScoredRecipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		ings := parseIngredients(r.Ingredients)
		if len(ings) == 0 {
			continue
		}
		have := overlap(ings, pantry)
		ingScore := common.Round(float64(have)/float64(len(ings)), 3)

		macros := MacrosFor(r)
		minutes := timeOrDefault(r.TimeMinutes)
		tScore := ranker.TimeFit(&minutes, q.MaxTime)
		nScore := ranker.NutritionFit(macros, ranker.DefaultTargetProtein, ranker.DefaultCalorieCap)

		scored = append(scored, common.ScoredRecipe{
			ID:          r.ID,
			Title:       r.Title,
			Ingredients: r.Ingredients,
			TimeMinutes: r.TimeMinutes,
			Macros:      macros,
			Fit:         common.Fit{Ingredients: ingScore, Time: tScore, Nutrition: nScore},
			Score:       ranker.FinalScore(ingScore, tScore, nScore),
			Explanation: fmt.Sprintf("Uses %d/%d pantry items · %d min · %dg protein", have, len(ings), minutes, macros.Protein),
		})
	}

	sortByScore(scored)
	common.LogDebug("推薦完成",
		zap.Int("candidates", len(scored)),
		zap.Int("pantry", len(pantry)),
	)

	return &SuggestResult{
		Results: truncate(scored, q.Limit),
		Pantry:  sortedKeys(pantry),
		MaxTime: q.MaxTime,
	}, nil
}

// Search 關鍵字加數值條件的搜尋
func (s *SuggestionService) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if err := checkRange("max_time", q.MaxTime, minMaxTime, maxMaxTime); err != nil {
		return nil, err
	}
	if err := checkRange("min_protein", q.MinProtein, 0, maxMinProtein); err != nil {
		return nil, err
	}
	if err := checkRange("max_calories", q.MaxCalories, minMaxCalories, maxMaxCalories); err != nil {
		return nil, err
	}
	if err := checkRange("limit", q.Limit, minLimit, maxLimit); err != nil {
		return nil, err
	}

	pantry, recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]common.ScoredRecipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		macros := MacrosFor(r)
		if macros.Protein < q.MinProtein || macros.Calories > q.MaxCalories {
			continue
		}

		ings := parseIngredients(r.Ingredients)
		ingScore := 0.0
		if len(ings) > 0 {
			ingScore = common.Round(float64(overlap(ings, pantry))/float64(len(ings)), 3)
		}
		minutes := timeOrDefault(r.TimeMinutes)
		tScore := ranker.TimeFit(&minutes, q.MaxTime)
		nScore := ranker.NutritionFit(macros, ranker.DefaultTargetProtein, ranker.DefaultCalorieCap)
		base := ranker.FinalScore(ingScore, tScore, nScore)

		qScore := QueryMatchScore(q.Q, r.Title, r.Ingredients)
		total := common.Round(weightBase*base+weightQuery*qScore, 4)

		results = append(results, common.ScoredRecipe{
			ID:          r.ID,
			Title:       r.Title,
			Ingredients: r.Ingredients,
			TimeMinutes: r.TimeMinutes,
			Macros:      macros,
			Fit:         common.Fit{Ingredients: ingScore, Time: tScore, Nutrition: nScore, Query: &qScore},
			Score:       total,
			Explanation: fmt.Sprintf("q:%s · ing:%s · time:%s · nut:%s",
				common.FormatScore(qScore), common.FormatScore(ingScore),
				common.FormatScore(tScore), common.FormatScore(nScore)),
		})
	}

	sortByScore(results)

	return &SearchResult{
		Query: q.Q,
		Filters: SearchFilters{
			MaxTime:     q.MaxTime,
			MinProtein:  q.MinProtein,
			MaxCalories: q.MaxCalories,
		},
		Pantry:  sortedKeys(pantry),
		Results: truncate(results, q.Limit),
	}, nil
}

// load 讀取庫存名稱集合與所有食譜
func (s *SuggestionService) load(ctx context.Context) (map[string]struct{}, []common.Recipe, error) {
	items, err := s.store.ListPantryItems(ctx)
	if err != nil {
		return nil, nil, common.InternalError("failed to load pantry", err)
	}
	pantry := make(map[string]struct{}, len(items))
	for _, item := range items {
		pantry[strings.ToLower(item.Name)] = struct{}{}
	}

	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, nil, common.InternalError("failed to load recipes", err)
	}
	return pantry, recipes, nil
}

// MacrosFor 四項營養皆有存值時直接使用，否則即時估算（不寫回）
func MacrosFor(r *common.Recipe) common.Macros {
	if m, ok := r.StoredMacros(); ok {
		return m
	}
	return nutrition.Estimate(r.Ingredients)
}

// QueryMatchScore 查詢字詞與標題、食材字詞的重疊比例
func QueryMatchScore(q, title, ingredients string) float64 {
	qset := tokens(q)
	if len(qset) == 0 {
		return 0
	}
	tset := tokens(title)
	for tok := range tokens(ingredients) {
		tset[tok] = struct{}{}
	}
	if len(tset) == 0 {
		return 0
	}
	return common.Round(float64(overlap(qset, tset))/float64(len(qset)), 3)
}

// parseIngredients 逗號分隔字串轉為小寫集合
func parseIngredients(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			set[part] = struct{}{}
		}
	}
	return set
}

func tokens(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
		set[w] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortByScore(items []common.ScoredRecipe) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

func truncate(items []common.ScoredRecipe, limit int) []common.ScoredRecipe {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func timeOrDefault(minutes *int) int {
	if minutes == nil || *minutes == 0 {
		return DefaultTimeMinutes
	}
	return *minutes
}

// checkRange 查詢參數範圍檢查
func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return common.InvalidRequestError(fmt.Sprintf("%s must be between %d and %d", name, lo, hi))
	}
	return nil
}
