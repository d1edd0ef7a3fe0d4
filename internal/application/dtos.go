package application

import "time"

// StockLoadDTO is the outcome of a snapshot load
type StockLoadDTO struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// StockEntryDTO represents a stock entry in responses
type StockEntryDTO struct {
	EAN      string `json:"ean"`
	Location string `json:"location"`
}

// StockSnapshotDTO represents the current stock snapshot
type StockSnapshotDTO struct {
	Count int             `json:"count"`
	Data  []StockEntryDTO `json:"data"`
}

// ResolutionResultDTO represents the chosen location of one request
type ResolutionResultDTO struct {
	EAN             string  `json:"ean"`
	Model           string  `json:"model"`
	Color           string  `json:"color"`
	Size            string  `json:"size"`
	ChosenLocation  *string `json:"chosenLocation"`
	PickingLocation string  `json:"pickingLocation"`
}

// ProductImportDTO is the outcome of a product master import
type ProductImportDTO struct {
	Inserted int `json:"inserted"`
	Ignored  int `json:"ignored"`
}

// LocationImportDTO is the outcome of a location update import
type LocationImportDTO struct {
	Updated int `json:"updated"`
	Ignored int `json:"ignored"`
}

// ProductDTO represents a product master row
type ProductDTO struct {
	ID      int64  `json:"id"`
	ItemID  string `json:"itemId"`
	EAN     string `json:"ean"`
	Model   string `json:"model"`
	Color   string `json:"color"`
	Size    string `json:"size"`
	Aisle   string `json:"aisle"`
	Module  string `json:"module"`
	Section string `json:"section"`
}

// LineImportDTO is the outcome of a replenishment list import
type LineImportDTO struct {
	Inserted int      `json:"inserted"`
	NotFound []string `json:"notFound"`
}

// LineDTO represents a replenishment line with its location
type LineDTO struct {
	ID       int64  `json:"id"`
	EAN      string `json:"ean"`
	Model    string `json:"model"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	ItemID   string `json:"itemId"`
	Aisle    string `json:"aisle"`
	Module   string `json:"module"`
	Section  string `json:"section"`
	Label    string `json:"label"`
}

// DivisionDTO is the outcome of dividing the list among workers
type DivisionDTO struct {
	Total     int            `json:"total"`
	PerWorker map[string]int `json:"perWorker"`
}

// SelectionDTO represents a worker selection
type SelectionDTO struct {
	WorkerName string    `json:"workerName"`
	LineID     int64     `json:"lineId"`
	SelectedAt time.Time `json:"selectedAt"`
}

// PickDTO represents a recorded pick
type PickDTO struct {
	ID         int64     `json:"id"`
	WorkerName string    `json:"workerName"`
	LineID     int64     `json:"lineId"`
	EAN        string    `json:"ean"`
	ItemID     string    `json:"itemId"`
	PickedAt   time.Time `json:"pickedAt"`
}

// WorkerDTO represents a roster entry
type WorkerDTO struct {
	Name string `json:"name"`
}

// QRImportDTO is the outcome of a QR registry import
type QRImportDTO struct {
	Imported int `json:"imported"`
	Ignored  int `json:"ignored"`
}

// QRLocationDTO pairs a shelf QR code with its location
type QRLocationDTO struct {
	Code     string `json:"code"`
	Location string `json:"location"`
}

// ManualItemDTO represents one item of a worker's manual list
type ManualItemDTO struct {
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

// ManualListReplaceDTO is the outcome of a manual list replacement
type ManualListReplaceDTO struct {
	Saved   int `json:"saved"`
	Ignored int `json:"ignored"`
}

// DiscardDTO represents a discarded product
type DiscardDTO struct {
	ID          int64     `json:"id"`
	EAN         string    `json:"ean"`
	ItemID      string    `json:"itemId"`
	WorkerName  string    `json:"workerName,omitempty"`
	DiscardedAt time.Time `json:"discardedAt"`
}
