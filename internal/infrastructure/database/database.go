package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smart-kitchen/internal/infrastructure/config"
	"smart-kitchen/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store 以 gorm 實作的食譜與庫存儲存
type Store struct {
	db *gorm.DB
}

// Open 依設定開啟資料庫並自動建表
func Open(cfg config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	store, err := New(db)
	if err != nil {
		return nil, err
	}

	common.LogInfo("資料庫連線完成", zap.String("driver", cfg.Driver))
	return store, nil
}

// New 包裝既有連線並執行 AutoMigrate
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&common.PantryItem{}, &common.Recipe{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// HealthCheck 檢查資料庫是否可用
func (s *Store) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 關閉連線
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreatePantryItem 新增庫存
func (s *Store) CreatePantryItem(ctx context.Context, item *common.PantryItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// ListPantryItems 列出庫存，id 由大到小
func (s *Store) ListPantryItems(ctx context.Context) ([]common.PantryItem, error) {
	var items []common.PantryItem
	if err := s.db.WithContext(ctx).Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateRecipe 新增食譜
func (s *Store) CreateRecipe(ctx context.Context, r *common.Recipe) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// ListRecipes 列出所有食譜
func (s *Store) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	var recipes []common.Recipe
	if err := s.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListRecipesMissingMacros 列出任一營養欄位為空的食譜
func (s *Store) ListRecipesMissingMacros(ctx context.Context) ([]common.Recipe, error) {
	var recipes []common.Recipe
	err := s.db.WithContext(ctx).
		Where("calories IS NULL OR protein IS NULL OR carbs IS NULL OR fat IS NULL").
		Order("id").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SaveRecipeMacros 寫回單一食譜的營養值
func (s *Store) SaveRecipeMacros(ctx context.Context, id uint, m common.Macros) error {
	res := s.db.WithContext(ctx).
		Model(&common.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"calories": m.Calories,
			"protein":  m.Protein,
			"carbs":    m.Carbs,
			"fat":      m.Fat,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindRecipeByTitle 依標題查詢，找不到時回傳 nil
func (s *Store) FindRecipeByTitle(ctx context.Context, title string) (*common.Recipe, error) {
	var r common.Recipe
	err := s.db.WithContext(ctx).Where("title = ?", title).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
