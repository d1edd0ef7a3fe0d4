package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// PickRepository implements domain.PickRepository on PostgreSQL
type PickRepository struct {
	db *gorm.DB
}

// NewPickRepository creates a new PickRepository
func NewPickRepository(db *gorm.DB) *PickRepository {
	return &PickRepository{db: db}
}

// Save inserts a pick and sets its generated ID
func (r *PickRepository) Save(ctx context.Context, pick *domain.Pick) error {
	model := pickModel{
		WorkerName: pick.WorkerName,
		LineID:     pick.LineID,
		EAN:        pick.EAN,
		ItemID:     pick.ItemID,
		PickedAt:   pick.PickedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save pick: %w", err)
	}
	pick.ID = model.ID
	return nil
}

// FindAll returns picks newest first, optionally for one worker
func (r *PickRepository) FindAll(ctx context.Context, workerName string) ([]domain.Pick, error) {
	query := r.db.WithContext(ctx).Order("picked_at DESC, id DESC")
	if workerName != "" {
		query = query.Where("worker_name = ?", workerName)
	}

	var models []pickModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}

	picks := make([]domain.Pick, 0, len(models))
	for _, m := range models {
		picks = append(picks, m.toDomain())
	}
	return picks, nil
}
