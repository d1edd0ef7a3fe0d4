package domain

import "context"

// StockRepository stores the stock snapshot
type StockRepository interface {
	// ReplaceSnapshot deletes the current snapshot and inserts entries atomically
	ReplaceSnapshot(ctx context.Context, entries []StockEntry) (int, error)
	CurrentSnapshot(ctx context.Context) ([]StockEntry, error)
}

// ProductRepository stores the product master
type ProductRepository interface {
	ReplaceAll(ctx context.Context, products []Product) (int, error)
	// UpdateLocations applies updates matched by key and returns how many updates matched a product
	UpdateLocations(ctx context.Context, key LookupKey, updates []LocationUpdate) (int, error)
	FindAll(ctx context.Context) ([]Product, error)
}

// ReplenishmentRepository stores the replenishment list, its division and worker selections
type ReplenishmentRepository interface {
	// ReplaceLines replaces the list and clears assignments and selections
	ReplaceLines(ctx context.Context, lines []ReplenishmentLine) (int, error)
	ListLines(ctx context.Context) ([]LineView, error)
	FindLineByID(ctx context.Context, id int64) (*ReplenishmentLine, error)

	// ReplaceAssignments replaces every assignment and clears selections
	ReplaceAssignments(ctx context.Context, assignments []Assignment) error
	FindAssigned(ctx context.Context, workerName string) ([]LineView, error)

	AddSelection(ctx context.Context, selection Selection) error
	ReplaceSelections(ctx context.Context, workerName string, selections []Selection) error
	// FindSelections returns all selections when workerName is empty
	FindSelections(ctx context.Context, workerName string) ([]Selection, error)
}

// PickRepository stores picks
type PickRepository interface {
	Save(ctx context.Context, pick *Pick) error
	// FindAll returns picks newest first, for one worker or all when workerName is empty
	FindAll(ctx context.Context, workerName string) ([]Pick, error)
}

// WorkerRepository stores the worker roster
type WorkerRepository interface {
	ReplaceAll(ctx context.Context, workers []Worker) error
	FindAll(ctx context.Context) ([]Worker, error)
}

// QRLocationRepository stores the shelf QR code registry
type QRLocationRepository interface {
	// Upsert inserts entries, replacing the location of codes already registered
	Upsert(ctx context.Context, entries []QRLocation) (int, error)
	// FindByCode returns ErrQRCodeNotFound on a miss
	FindByCode(ctx context.Context, code string) (*QRLocation, error)
	// FindByLocation returns ErrLocationNotFound on a miss
	FindByLocation(ctx context.Context, location string) (*QRLocation, error)
}

// ManualListRepository stores the hand-built replenishment list of each worker
type ManualListRepository interface {
	// Add inserts an item and sets its ID and AddedAt
	Add(ctx context.Context, item *ManualItem) error
	// FindByWorker returns a worker's items newest first
	FindByWorker(ctx context.Context, workerName string) ([]ManualItem, error)
	// ReplaceForWorker atomically swaps a worker's items for items
	ReplaceForWorker(ctx context.Context, workerName string, items []ManualItem) (int, error)
}

// DiscardRepository stores discarded products
type DiscardRepository interface {
	Save(ctx context.Context, discard *Discard) error
	// FindAll returns discards newest first
	FindAll(ctx context.Context) ([]Discard, error)
}

// SnapshotCache caches the stock snapshot between loads
type SnapshotCache interface {
	// Get returns ok=false on a miss
	Get(ctx context.Context) (entries []StockEntry, ok bool, err error)
	Set(ctx context.Context, entries []StockEntry) error
	Invalidate(ctx context.Context) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
