package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// DiscardRepository implements domain.DiscardRepository on PostgreSQL
type DiscardRepository struct {
	db *gorm.DB
}

// NewDiscardRepository creates a new DiscardRepository
func NewDiscardRepository(db *gorm.DB) *DiscardRepository {
	return &DiscardRepository{db: db}
}

func (r *DiscardRepository) Save(ctx context.Context, discard *domain.Discard) error {
	if discard.DiscardedAt.IsZero() {
		discard.DiscardedAt = time.Now().UTC()
	}
	model := discardModel{
		EAN:         discard.EAN,
		ItemID:      discard.ItemID,
		WorkerName:  discard.WorkerName,
		DiscardedAt: discard.DiscardedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save discard: %w", err)
	}
	discard.ID = model.ID
	return nil
}

func (r *DiscardRepository) FindAll(ctx context.Context) ([]domain.Discard, error) {
	var models []discardModel
	if err := r.db.WithContext(ctx).Order("discarded_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list discards: %w", err)
	}

	discards := make([]domain.Discard, 0, len(models))
	for _, m := range models {
		discards = append(discards, m.toDomain())
	}
	return discards, nil
}
