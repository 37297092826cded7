package pantry

import (
	"net/http"

	"smart-kitchen/internal/api/handlers"
	"smart-kitchen/internal/core/pantry"

	"github.com/gin-gonic/gin"
)

// AddItemRequest 新增庫存請求
type AddItemRequest struct {
	Name       string  `json:"name"`
	Quantity   *int    `json:"quantity"`
	Unit       string  `json:"unit"`
	ExpiryDate *string `json:"expiry_date"` // YYYY-MM-DD
}

// Handler 庫存處理程序
type Handler struct {
	service *pantry.Service
}

// NewHandler 創建庫存處理程序
func NewHandler(service *pantry.Service) *Handler {
	return &Handler{service: service}
}

// HandleAdd POST /pantry/add
func (h *Handler) HandleAdd(c *gin.Context) {
	var req AddItemRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.WriteError(c, err)
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), pantry.NewItem{
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// HandleList GET /pantry/list
func (h *Handler) HandleList(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
