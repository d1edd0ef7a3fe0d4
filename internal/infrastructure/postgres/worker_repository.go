package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// WorkerRepository implements domain.WorkerRepository on PostgreSQL
type WorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// ReplaceAll replaces the roster in one transaction
func (r *WorkerRepository) ReplaceAll(ctx context.Context, workers []domain.Worker) error {
	models := make([]workerModel, 0, len(workers))
	for _, w := range workers {
		models = append(models, workerModel{Name: w.Name})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx, &workerModel{}); err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace workers: %w", err)
	}
	return nil
}

// FindAll returns the roster ordered by name
func (r *WorkerRepository) FindAll(ctx context.Context) ([]domain.Worker, error) {
	var models []workerModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	workers := make([]domain.Worker, 0, len(models))
	for _, m := range models {
		workers = append(workers, domain.Worker{Name: m.Name})
	}
	return workers, nil
}
