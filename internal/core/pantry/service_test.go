package pantry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-kitchen/internal/pkg/common"
	"smart-kitchen/internal/testhelpers"
)

type failingStore struct{}

func (failingStore) CreatePantryItem(context.Context, *common.PantryItem) error {
	return errors.New("disk full")
}

func (failingStore) ListPantryItems(context.Context) ([]common.PantryItem, error) {
	return nil, errors.New("disk full")
}

func TestAddItem_Defaults(t *testing.T) {
	svc := NewService(testhelpers.NewSQLiteStore(t))

	item, err := svc.AddItem(context.Background(), NewItem{Name: "  egg "})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "egg", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "unit", item.Unit)
	assert.Nil(t, item.ExpiryDate)
}

func TestAddItem_ExplicitValues(t *testing.T) {
	svc := NewService(testhelpers.NewSQLiteStore(t))

	item, err := svc.AddItem(context.Background(), NewItem{
		Name:       "rice",
		Quantity:   common.IntPtr(0),
		Unit:       "kg",
		ExpiryDate: common.StringPtr("2026-12-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, "kg", item.Unit)
	require.NotNil(t, item.ExpiryDate)
	assert.Equal(t, "2026-12-31", *item.ExpiryDate)
}

func TestAddItem_Validation(t *testing.T) {
	svc := NewService(testhelpers.NewSQLiteStore(t))

	tests := []struct {
		name string
		in   NewItem
	}{
		{"empty name", NewItem{Name: "  "}},
		{"negative quantity", NewItem{Name: "egg", Quantity: common.IntPtr(-1)}},
		{"bad date", NewItem{Name: "egg", ExpiryDate: common.StringPtr("31/12/2026")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(context.Background(), tt.in)
			assert.True(t, common.IsCode(err, common.ErrCodeInvalidRequest))
		})
	}
}

func TestListItems_NewestFirst(t *testing.T) {
	svc := NewService(testhelpers.NewSQLiteStore(t))
	ctx := context.Background()

	for _, name := range []string{"egg", "rice"} {
		_, err := svc.AddItem(ctx, NewItem{Name: name})
		require.NoError(t, err)
	}
	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "rice", items[0].Name)
}

func TestStoreErrors(t *testing.T) {
	svc := NewService(failingStore{})

	_, err := svc.AddItem(context.Background(), NewItem{Name: "egg"})
	assert.True(t, common.IsCode(err, common.ErrCodeInternalError))
	_, err = svc.ListItems(context.Background())
	assert.Equal(t, 500, common.StatusOf(err))
}
