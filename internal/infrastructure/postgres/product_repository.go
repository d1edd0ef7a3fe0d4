package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// ProductRepository implements domain.ProductRepository on PostgreSQL
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ReplaceAll replaces the product master in one transaction
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) (int, error) {
	models := make([]productModel, 0, len(products))
	for _, p := range products {
		models = append(models, newProductModel(p))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx, &productModel{}); err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace products: %w", err)
	}
	return len(models), nil
}

// UpdateLocations sets aisle, module and section on every product matching each update's key
func (r *ProductRepository) UpdateLocations(ctx context.Context, key domain.LookupKey, updates []domain.LocationUpdate) (int, error) {
	column := lookupColumn(key)
	matched := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&productModel{}).
				Where(column+" = ?", u.Key).
				Updates(map[string]interface{}{
					"aisle":   u.Aisle,
					"module":  u.Module,
					"section": u.Section,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				matched++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update product locations: %w", err)
	}
	return matched, nil
}

// FindAll returns the product master ordered by id
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, m.toDomain())
	}
	return products, nil
}

func lookupColumn(key domain.LookupKey) string {
	if key == domain.LookupByItemID {
		return "item_id"
	}
	return "ean"
}
