package domain

import (
	"errors"
	"time"
)

// ErrDiscardKey is returned when a discard names neither an EAN nor an item id
var ErrDiscardKey = errors.New("a discard requires an ean or an item id")

// Discard records a product taken out of circulation, independent of any replenishment line
type Discard struct {
	ID          int64     `json:"id"`
	EAN         string    `json:"ean"`
	ItemID      string    `json:"itemId"`
	WorkerName  string    `json:"workerName,omitempty"`
	DiscardedAt time.Time `json:"discardedAt"`
}

// NewDiscard normalises the keys of a discard. At least one of ean and itemID is required.
func NewDiscard(ean, itemID, workerName string) (Discard, error) {
	d := Discard{
		EAN:        NormalizeEAN(ean),
		ItemID:     NormalizeEAN(itemID),
		WorkerName: workerName,
	}
	if d.EAN == "" && d.ItemID == "" {
		return Discard{}, ErrDiscardKey
	}
	return d, nil
}
