package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// QRLocationRepository implements domain.QRLocationRepository on PostgreSQL
type QRLocationRepository struct {
	db *gorm.DB
}

// NewQRLocationRepository creates a new QRLocationRepository
func NewQRLocationRepository(db *gorm.DB) *QRLocationRepository {
	return &QRLocationRepository{db: db}
}

// Upsert inserts entries; a code that already exists gets the new location
func (r *QRLocationRepository) Upsert(ctx context.Context, entries []domain.QRLocation) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	// A batch may name the same code twice; the last row wins like sequential upserts would.
	index := make(map[string]int, len(entries))
	models := make([]qrLocationModel, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Code]; ok {
			models[i].Location = e.Location
			continue
		}
		index[e.Code] = len(models)
		models = append(models, qrLocationModel{Code: e.Code, Location: e.Location})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"location", "updated_at"}),
		}).
		CreateInBatches(&models, insertBatchSize).Error
	if err != nil {
		return 0, fmt.Errorf("failed to upsert qr locations: %w", err)
	}
	return len(models), nil
}

// FindByCode returns the location registered for a code
func (r *QRLocationRepository) FindByCode(ctx context.Context, code string) (*domain.QRLocation, error) {
	return r.first(ctx, domain.ErrQRCodeNotFound, "code = ?", code)
}

// FindByLocation returns the code registered for a location
func (r *QRLocationRepository) FindByLocation(ctx context.Context, location string) (*domain.QRLocation, error) {
	return r.first(ctx, domain.ErrLocationNotFound, "location = ?", location)
}

func (r *QRLocationRepository) first(ctx context.Context, notFound error, query string, arg string) (*domain.QRLocation, error) {
	var model qrLocationModel
	err := r.db.WithContext(ctx).Where(query, arg).Order("code").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", notFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find qr location: %w", err)
	}
	qr := model.toDomain()
	return &qr, nil
}
