package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

const insertBatchSize = 500

// StockRepository implements domain.StockRepository on PostgreSQL
type StockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// ReplaceSnapshot deletes every stock entry and inserts entries in one transaction
func (r *StockRepository) ReplaceSnapshot(ctx context.Context, entries []domain.StockEntry) (int, error) {
	models := make([]stockEntryModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, stockEntryModel{EAN: e.EAN, Location: e.Location})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx, &stockEntryModel{}); err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace stock snapshot: %w", err)
	}
	return len(models), nil
}

// CurrentSnapshot returns every stock entry in insertion order
func (r *StockRepository) CurrentSnapshot(ctx context.Context) ([]domain.StockEntry, error) {
	var models []stockEntryModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to read stock snapshot: %w", err)
	}

	entries := make([]domain.StockEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, m.toDomain())
	}
	return entries, nil
}

// deleteAll removes every row of model's table
func deleteAll(tx *gorm.DB, model interface{}) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
}
