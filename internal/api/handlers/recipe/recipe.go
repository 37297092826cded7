package recipe

import (
	"net/http"
	"strings"

	"smart-kitchen/internal/api/handlers"
	recipeService "smart-kitchen/internal/core/recipe"
	"smart-kitchen/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddRecipeRequest 新增食譜請求
type AddRecipeRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Ingredients  string  `json:"ingredients"` // 逗號分隔
	Instructions *string `json:"instructions"`
	Calories     *int    `json:"calories"`
	Protein      *int    `json:"protein"`
	Carbs        *int    `json:"carbs"`
	Fat          *int    `json:"fat"`
	TimeMinutes  *int    `json:"time_minutes"`
}

// GenerateRequest 以模型生成食譜的請求
type GenerateRequest struct {
	Ingredients []string `json:"ingredients"`
	Cuisine     string   `json:"cuisine"`
	CalorieCap  *int     `json:"calorie_cap"`
	Count       *int     `json:"count"`
}

// GenerateResponse 生成結果
type GenerateResponse struct {
	Recipes []common.GeneratedRecipe `json:"recipes"`
}

// Handler 食譜處理程序
type Handler struct {
	recipeService     *recipeService.RecipeService
	suggestionService *recipeService.SuggestionService
	generationService *recipeService.GenerationService
}

// NewHandler 創建新的食譜處理程序
func NewHandler(
	recipeSvc *recipeService.RecipeService,
	suggestionSvc *recipeService.SuggestionService,
	generationSvc *recipeService.GenerationService,
) *Handler {
	return &Handler{
		recipeService:     recipeSvc,
		suggestionService: suggestionSvc,
		generationService: generationSvc,
	}
}

// HandleAdd POST /recipes/add
func (h *Handler) HandleAdd(c *gin.Context) {
	var req AddRecipeRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.WriteError(c, err)
		return
	}

	r, err := h.recipeService.AddRecipe(c.Request.Context(), recipeService.NewRecipe{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		TimeMinutes:  req.TimeMinutes,
	})
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleList GET /recipes/list
func (h *Handler) HandleList(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// HandleSuggest GET /recipes/suggest?max_time=&limit=
func (h *Handler) HandleSuggest(c *gin.Context) {
	maxTime, err := handlers.QueryInt(c, "max_time", recipeService.DefaultSuggestMaxTime)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	limit, err := handlers.QueryInt(c, "limit", recipeService.DefaultLimit)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	res, err := h.suggestionService.Suggest(c.Request.Context(), recipeService.SuggestQuery{
		MaxTime: maxTime,
		Limit:   limit,
	})
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleSearch GET /recipes/search?q=&max_time=&min_protein=&max_calories=&limit=
func (h *Handler) HandleSearch(c *gin.Context) {
	q := recipeService.SearchQuery{Q: strings.TrimSpace(c.Query("q"))}

	params := []struct {
		name string
		def  int
		dst  *int
	}{
		{"max_time", recipeService.DefaultSearchMaxTime, &q.MaxTime},
		{"min_protein", 0, &q.MinProtein},
		{"max_calories", recipeService.DefaultMaxCalories, &q.MaxCalories},
		{"limit", recipeService.DefaultLimit, &q.Limit},
	}
	for _, p := range params {
		v, err := handlers.QueryInt(c, p.name, p.def)
		if err != nil {
			handlers.WriteError(c, err)
			return
		}
		*p.dst = v
	}

	res, err := h.suggestionService.Search(c.Request.Context(), q)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleRecomputeMacros POST /recipes/recompute_macros
func (h *Handler) HandleRecomputeMacros(c *gin.Context) {
	res, err := h.recipeService.RecomputeMacros(c.Request.Context())
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleGenerate POST /recipes/llm_generate
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.WriteError(c, err)
		return
	}

	count := recipeService.DefaultGenerateCount
	if req.Count != nil {
		count = *req.Count
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("ingredients", len(req.Ingredients)),
		zap.String("cuisine", req.Cuisine),
		zap.Int("count", count),
	)

	recipes, err := h.generationService.Generate(c.Request.Context(), recipeService.GenerateRequest{
		Ingredients: req.Ingredients,
		Cuisine:     req.Cuisine,
		CalorieCap:  req.CalorieCap,
		Count:       count,
	})
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{Recipes: recipes})
}
