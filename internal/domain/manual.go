package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrManualItemEAN is returned when a manual list item has no EAN
var ErrManualItemEAN = errors.New("manual list item requires an ean")

// LocationFields are the header variants of a preformatted A-M-L location column
var LocationFields = []string{"ubicacion", "Ubicación", "location"}

// ManualItem is one entry of a worker's hand-built replenishment list
type ManualItem struct {
	ID         int64     `json:"id"`
	WorkerName string    `json:"workerName"`
	EAN        string    `json:"ean"`
	Model      string    `json:"model"`
	Color      string    `json:"color"`
	Size       string    `json:"size"`
	Quantity   int       `json:"quantity"`
	Location   string    `json:"location"`
	AddedAt    time.Time `json:"addedAt"`
}

// NewManualItem validates and normalises an item for workerName
func NewManualItem(workerName, ean, model, color, size string, quantity int, location string) (ManualItem, error) {
	ean = NormalizeEAN(ean)
	if ean == "" {
		return ManualItem{}, ErrManualItemEAN
	}
	if quantity < 1 {
		quantity = 1
	}
	return ManualItem{
		WorkerName: workerName,
		EAN:        ean,
		Model:      strings.TrimSpace(model),
		Color:      strings.TrimSpace(color),
		Size:       strings.TrimSpace(size),
		Quantity:   quantity,
		Location:   strings.TrimSpace(location),
	}, nil
}

// ManualItemFromRow builds an item from a loose row. ok is false when the row has no EAN.
func ManualItemFromRow(workerName string, row Row) (item ManualItem, ok bool) {
	location := row.Get(LocationFields...)
	if location == "" && row.Get(AisleFields...) != "" {
		location = JoinLocation(
			NormalizeLocationPart(row.Get(AisleFields...)),
			NormalizeLocationPart(row.Get(ModuleFields...)),
			NormalizeLocationPart(row.Get(LevelFields...)),
		)
	}

	item, err := NewManualItem(
		workerName,
		row.Get(EANFields...),
		row.Get(ModelFields...),
		row.Get(ColorFields...),
		row.Get(SizeFields...),
		ParseQuantity(row.Get(QuantityFields...)),
		location,
	)
	return item, err == nil
}
