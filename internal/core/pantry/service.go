package pantry

import (
	"context"
	"strings"
	"time"

	"smart-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	defaultQuantity = 1
	defaultUnit     = "unit"
	dateLayout      = "2006-01-02"
)

// Store 庫存儲存操作
type Store interface {
	CreatePantryItem(ctx context.Context, item *common.PantryItem) error
	ListPantryItems(ctx context.Context) ([]common.PantryItem, error)
}

// NewItem 新增庫存輸入
type NewItem struct {
	Name       string
	Quantity   *int
	Unit       string
	ExpiryDate *string
}

// Service 庫存服務
type Service struct {
	store Store
}

// NewService 創建庫存服務
func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddItem 新增庫存項目
func (s *Service) AddItem(ctx context.Context, in NewItem) (*common.PantryItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, common.InvalidRequestError("name required")
	}

	quantity := defaultQuantity
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, common.InvalidRequestError("quantity must not be negative")
		}
		quantity = *in.Quantity
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = defaultUnit
	}

	var expiry *string
	if in.ExpiryDate != nil && strings.TrimSpace(*in.ExpiryDate) != "" {
		d := strings.TrimSpace(*in.ExpiryDate)
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, common.InvalidRequestError("expiry_date must be YYYY-MM-DD")
		}
		expiry = &d
	}

	item := &common.PantryItem{
		Name:       name,
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: expiry,
	}
	if err := s.store.CreatePantryItem(ctx, item); err != nil {
		return nil, common.InternalError("failed to save pantry item", err)
	}

	common.LogInfo("新增庫存", zap.Uint("id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// ListItems 列出庫存，最新的在前
func (s *Service) ListItems(ctx context.Context) ([]common.PantryItem, error) {
	items, err := s.store.ListPantryItems(ctx)
	if err != nil {
		return nil, common.InternalError("failed to list pantry", err)
	}
	return items, nil
}
