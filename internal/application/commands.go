package application

import "github.com/wms-platform/replenishment-service/internal/domain"

// LoadStockCommand replaces the stock snapshot with the given rows
type LoadStockCommand struct {
	Rows []domain.Row
}

// ResolveCommand resolves a stock location for every request row
type ResolveCommand struct {
	Rows []domain.Row
}

// ImportProductsCommand replaces the product master
type ImportProductsCommand struct {
	Rows []domain.Row
}

// ImportLocationsCommand updates product master locations
type ImportLocationsCommand struct {
	Key  domain.LookupKey
	Rows []domain.Row
}

// ImportLinesCommand replaces the replenishment list
type ImportLinesCommand struct {
	Key  domain.LookupKey
	Rows []domain.Row
}

// DivideCommand divides the replenishment list among workers
type DivideCommand struct {
	Workers []string
}

// SelectCommand marks a line as selected by a worker
type SelectCommand struct {
	WorkerName string
	LineID     int64
}

// ReplaceSelectionsCommand replaces a worker's selected lines
type ReplaceSelectionsCommand struct {
	WorkerName string
	LineIDs    []int64
}

// RecordPickCommand records that a worker picked a line
type RecordPickCommand struct {
	WorkerName string
	LineID     int64
}

// ReplaceWorkersCommand replaces the worker roster
type ReplaceWorkersCommand struct {
	Names []string
}

// ImportQRLocationsCommand registers shelf QR codes
type ImportQRLocationsCommand struct {
	Rows []domain.Row
}

// AddManualItemCommand appends an item to a worker's manual list
type AddManualItemCommand struct {
	WorkerName string
	EAN        string
	Model      string
	Color      string
	Size       string
	Quantity   int
	Location   string
}

// ReplaceManualListCommand replaces a worker's manual list
type ReplaceManualListCommand struct {
	WorkerName string
	Rows       []domain.Row
}

// RecordDiscardCommand records a discarded product
type RecordDiscardCommand struct {
	EAN        string
	ItemID     string
	WorkerName string
}
