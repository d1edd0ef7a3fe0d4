package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// ManualListRepository implements domain.ManualListRepository on PostgreSQL
type ManualListRepository struct {
	db *gorm.DB
}

// NewManualListRepository creates a new ManualListRepository
func NewManualListRepository(db *gorm.DB) *ManualListRepository {
	return &ManualListRepository{db: db}
}

// Add inserts an item
func (r *ManualListRepository) Add(ctx context.Context, item *domain.ManualItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	model := newManualItemModel(*item)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to add manual list item: %w", err)
	}
	item.ID = model.ID
	return nil
}

// FindByWorker returns a worker's items newest first
func (r *ManualListRepository) FindByWorker(ctx context.Context, workerName string) ([]domain.ManualItem, error) {
	var models []manualItemModel
	err := r.db.WithContext(ctx).
		Where("worker_name = ?", workerName).
		Order("added_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list manual items: %w", err)
	}

	items := make([]domain.ManualItem, 0, len(models))
	for _, m := range models {
		items = append(items, m.toDomain())
	}
	return items, nil
}

// ReplaceForWorker deletes a worker's items and inserts the new ones in one transaction
func (r *ManualListRepository) ReplaceForWorker(ctx context.Context, workerName string, items []domain.ManualItem) (int, error) {
	now := time.Now().UTC()
	models := make([]manualItemModel, 0, len(items))
	for _, item := range items {
		item.WorkerName = workerName
		if item.AddedAt.IsZero() {
			item.AddedAt = now
		}
		models = append(models, newManualItemModel(item))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("worker_name = ?", workerName).Delete(&manualItemModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace manual list: %w", err)
	}
	return len(models), nil
}
