package plan

import (
	"fmt"
	"net/http"

	"smart-kitchen/internal/api/handlers"
	"smart-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const (
	DefaultProteinTarget = 120
	DefaultCalorieCap    = 1800
)

// DayPlan 單日餐點規劃
// 目前尚未排入餐點，totals 回報請求的目標值
type DayPlan struct {
	Meals  []common.Recipe `json:"meals"`
	Totals common.Macros   `json:"totals"`
}

// Handler 餐點規劃處理程序
type Handler struct{}

// NewHandler 創建餐點規劃處理程序
func NewHandler() *Handler {
	return &Handler{}
}

// HandleDay GET /plan/day
func (h *Handler) HandleDay(c *gin.Context) {
	protein, err := rangedQuery(c, "protein_target", DefaultProteinTarget, 10, 300)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	calories, err := rangedQuery(c, "calorie_cap", DefaultCalorieCap, 500, 4000)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, DayPlan{
		Meals:  []common.Recipe{},
		Totals: common.Macros{Calories: calories, Protein: protein},
	})
}

func rangedQuery(c *gin.Context, name string, def, lo, hi int) (int, error) {
	v, err := handlers.QueryInt(c, name, def)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, common.InvalidRequestError(fmt.Sprintf("%s must be between %d and %d", name, lo, hi))
	}
	return v, nil
}
