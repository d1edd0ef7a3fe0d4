package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

type stockEntryModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	EAN      string `gorm:"size:64;index;not null"`
	Location string `gorm:"size:64"`
}

func (stockEntryModel) TableName() string { return "stock_entries" }

type productModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ItemID    string `gorm:"size:64;index"`
	EAN       string `gorm:"size:64;index"`
	Model     string `gorm:"size:255"`
	Color     string `gorm:"size:100"`
	Size      string `gorm:"size:50"`
	Aisle     string `gorm:"size:20"`
	Module    string `gorm:"size:20"`
	Section   string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (productModel) TableName() string { return "products" }

type lineModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	EAN       string `gorm:"size:64;index"`
	Model     string `gorm:"size:255"`
	Color     string `gorm:"size:100"`
	Size      string `gorm:"size:50"`
	Quantity  int    `gorm:"not null;default:1"`
	ItemID    string `gorm:"size:64;index"`
	CreatedAt time.Time
}

func (lineModel) TableName() string { return "replenishment_lines" }

type assignmentModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	WorkerName string `gorm:"size:64;index;not null"`
	LineID     int64  `gorm:"index;not null"`
}

func (assignmentModel) TableName() string { return "replenishment_assignments" }

type selectionModel struct {
	WorkerName string `gorm:"primaryKey;size:64"`
	LineID     int64  `gorm:"primaryKey"`
	SelectedAt time.Time
}

func (selectionModel) TableName() string { return "replenishment_selections" }

type pickModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	WorkerName string    `gorm:"size:64;index;not null"`
	LineID     int64     `gorm:"not null"`
	EAN        string    `gorm:"size:64"`
	ItemID     string    `gorm:"size:64"`
	PickedAt   time.Time `gorm:"index"`
}

func (pickModel) TableName() string { return "picks" }

type workerModel struct {
	Name      string `gorm:"primaryKey;size:64"`
	CreatedAt time.Time
}

func (workerModel) TableName() string { return "workers" }

type qrLocationModel struct {
	Code      string `gorm:"primaryKey;size:128"`
	Location  string `gorm:"size:64;index;not null"`
	UpdatedAt time.Time
}

func (qrLocationModel) TableName() string { return "qr_locations" }

type manualItemModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	WorkerName string `gorm:"size:64;index;not null"`
	EAN        string `gorm:"size:64;not null"`
	Model      string `gorm:"size:255"`
	Color      string `gorm:"size:100"`
	Size       string `gorm:"size:50"`
	Quantity   int    `gorm:"not null;default:1"`
	Location   string `gorm:"size:64"`
	AddedAt    time.Time
}

func (manualItemModel) TableName() string { return "manual_list_items" }

type discardModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	EAN         string `gorm:"size:64;index"`
	ItemID      string `gorm:"size:64;index"`
	WorkerName  string `gorm:"size:64"`
	DiscardedAt time.Time
}

func (discardModel) TableName() string { return "discarded_products" }

// lineViewRow is the scan target of the line and product master join
type lineViewRow struct {
	lineModel
	Aisle   string
	Module  string
	Section string
}

func (r lineViewRow) toDomain() domain.LineView {
	return domain.NewLineView(r.lineModel.toDomain(), r.Aisle, r.Module, r.Section)
}

// AutoMigrate creates or updates every table of the service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&stockEntryModel{},
		&productModel{},
		&lineModel{},
		&assignmentModel{},
		&selectionModel{},
		&pickModel{},
		&workerModel{},
		&qrLocationModel{},
		&manualItemModel{},
		&discardModel{},
	)
}

func (m stockEntryModel) toDomain() domain.StockEntry {
	return domain.StockEntry{EAN: m.EAN, Location: m.Location}
}

func (m productModel) toDomain() domain.Product {
	return domain.Product{
		ID:      m.ID,
		ItemID:  m.ItemID,
		EAN:     m.EAN,
		Model:   m.Model,
		Color:   m.Color,
		Size:    m.Size,
		Aisle:   m.Aisle,
		Module:  m.Module,
		Section: m.Section,
	}
}

func newProductModel(p domain.Product) productModel {
	return productModel{
		ItemID:  p.ItemID,
		EAN:     p.EAN,
		Model:   p.Model,
		Color:   p.Color,
		Size:    p.Size,
		Aisle:   p.Aisle,
		Module:  p.Module,
		Section: p.Section,
	}
}

func (m lineModel) toDomain() domain.ReplenishmentLine {
	return domain.ReplenishmentLine{
		ID:       m.ID,
		EAN:      m.EAN,
		Model:    m.Model,
		Color:    m.Color,
		Size:     m.Size,
		Quantity: m.Quantity,
		ItemID:   m.ItemID,
	}
}

func newLineModel(l domain.ReplenishmentLine) lineModel {
	return lineModel{
		EAN:      l.EAN,
		Model:    l.Model,
		Color:    l.Color,
		Size:     l.Size,
		Quantity: l.Quantity,
		ItemID:   l.ItemID,
	}
}

func (m selectionModel) toDomain() domain.Selection {
	return domain.Selection{WorkerName: m.WorkerName, LineID: m.LineID, SelectedAt: m.SelectedAt}
}

func (m pickModel) toDomain() domain.Pick {
	return domain.Pick{
		ID:         m.ID,
		WorkerName: m.WorkerName,
		LineID:     m.LineID,
		EAN:        m.EAN,
		ItemID:     m.ItemID,
		PickedAt:   m.PickedAt,
	}
}

func (m qrLocationModel) toDomain() domain.QRLocation {
	return domain.QRLocation{Code: m.Code, Location: m.Location}
}

func (m manualItemModel) toDomain() domain.ManualItem {
	return domain.ManualItem{
		ID:         m.ID,
		WorkerName: m.WorkerName,
		EAN:        m.EAN,
		Model:      m.Model,
		Color:      m.Color,
		Size:       m.Size,
		Quantity:   m.Quantity,
		Location:   m.Location,
		AddedAt:    m.AddedAt,
	}
}

func newManualItemModel(item domain.ManualItem) manualItemModel {
	return manualItemModel{
		WorkerName: item.WorkerName,
		EAN:        item.EAN,
		Model:      item.Model,
		Color:      item.Color,
		Size:       item.Size,
		Quantity:   item.Quantity,
		Location:   item.Location,
		AddedAt:    item.AddedAt,
	}
}

func (m discardModel) toDomain() domain.Discard {
	return domain.Discard{
		ID:          m.ID,
		EAN:         m.EAN,
		ItemID:      m.ItemID,
		WorkerName:  m.WorkerName,
		DiscardedAt: m.DiscardedAt,
	}
}
