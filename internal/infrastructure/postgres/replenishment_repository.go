package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// productLocations picks one master row per item id so the join never multiplies lines
const productLocations = `LEFT JOIN (
	SELECT DISTINCT ON (item_id) item_id, aisle, module, section
	FROM products
	WHERE item_id <> ''
	ORDER BY item_id, id
) p ON p.item_id = l.item_id`

// ReplenishmentRepository implements domain.ReplenishmentRepository on PostgreSQL
type ReplenishmentRepository struct {
	db *gorm.DB
}

// NewReplenishmentRepository creates a new ReplenishmentRepository
func NewReplenishmentRepository(db *gorm.DB) *ReplenishmentRepository {
	return &ReplenishmentRepository{db: db}
}

// ReplaceLines replaces the list and clears assignments and selections in one transaction
func (r *ReplenishmentRepository) ReplaceLines(ctx context.Context, lines []domain.ReplenishmentLine) (int, error) {
	models := make([]lineModel, 0, len(lines))
	for _, l := range lines {
		models = append(models, newLineModel(l))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&selectionModel{}, &assignmentModel{}, &lineModel{}} {
			if err := deleteAll(tx, model); err != nil {
				return err
			}
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace replenishment lines: %w", err)
	}
	return len(models), nil
}

// ListLines returns every line joined with its master location
func (r *ReplenishmentRepository) ListLines(ctx context.Context) ([]domain.LineView, error) {
	var rows []lineViewRow
	err := r.lineViews(ctx).Order("l.id").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list replenishment lines: %w", err)
	}
	return toLineViews(rows), nil
}

// FindLineByID returns nil when the line does not exist
func (r *ReplenishmentRepository) FindLineByID(ctx context.Context, id int64) (*domain.ReplenishmentLine, error) {
	var model lineModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find replenishment line: %w", err)
	}

	line := model.toDomain()
	return &line, nil
}

// ReplaceAssignments replaces every assignment and clears selections in one transaction
func (r *ReplenishmentRepository) ReplaceAssignments(ctx context.Context, assignments []domain.Assignment) error {
	models := make([]assignmentModel, 0, len(assignments))
	for _, a := range assignments {
		models = append(models, assignmentModel{WorkerName: a.WorkerName, LineID: a.LineID})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx, &selectionModel{}); err != nil {
			return err
		}
		if err := deleteAll(tx, &assignmentModel{}); err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace assignments: %w", err)
	}
	return nil
}

// FindAssigned returns the lines assigned to a worker
func (r *ReplenishmentRepository) FindAssigned(ctx context.Context, workerName string) ([]domain.LineView, error) {
	var rows []lineViewRow
	err := r.lineViews(ctx).
		Joins("JOIN replenishment_assignments a ON a.line_id = l.id").
		Where("a.worker_name = ?", workerName).
		Order("l.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find assigned lines: %w", err)
	}
	return toLineViews(rows), nil
}

// AddSelection stores a selection; selecting the same line twice is a no-op
func (r *ReplenishmentRepository) AddSelection(ctx context.Context, selection domain.Selection) error {
	model := selectionModel{WorkerName: selection.WorkerName, LineID: selection.LineID, SelectedAt: selection.SelectedAt}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to add selection: %w", err)
	}
	return nil
}

// ReplaceSelections replaces a worker's selections in one transaction
func (r *ReplenishmentRepository) ReplaceSelections(ctx context.Context, workerName string, selections []domain.Selection) error {
	models := make([]selectionModel, 0, len(selections))
	for _, s := range selections {
		models = append(models, selectionModel{WorkerName: workerName, LineID: s.LineID, SelectedAt: s.SelectedAt})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("worker_name = ?", workerName).Delete(&selectionModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace selections: %w", err)
	}
	return nil
}

// FindSelections returns the selections of one worker, or all when workerName is empty
func (r *ReplenishmentRepository) FindSelections(ctx context.Context, workerName string) ([]domain.Selection, error) {
	query := r.db.WithContext(ctx).Order("worker_name, line_id")
	if workerName != "" {
		query = query.Where("worker_name = ?", workerName)
	}

	var models []selectionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find selections: %w", err)
	}

	selections := make([]domain.Selection, 0, len(models))
	for _, m := range models {
		selections = append(selections, m.toDomain())
	}
	return selections, nil
}

func (r *ReplenishmentRepository) lineViews(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("replenishment_lines AS l").
		Select("l.*, COALESCE(p.aisle, '') AS aisle, COALESCE(p.module, '') AS module, COALESCE(p.section, '') AS section").
		Joins(productLocations)
}

func toLineViews(rows []lineViewRow) []domain.LineView {
	views := make([]domain.LineView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toDomain())
	}
	return views
}
