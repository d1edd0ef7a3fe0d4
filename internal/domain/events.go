package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	// Subject identifies what the event is about; it becomes the message key
	Subject() string
}

// StockSnapshotLoadedEvent is published after the stock snapshot is replaced
type StockSnapshotLoadedEvent struct {
	Inserted int       `json:"inserted"`
	Skipped  int       `json:"skipped"`
	LoadedAt time.Time `json:"loadedAt"`
}

func (e *StockSnapshotLoadedEvent) EventType() string     { return "wms.stock.snapshot-loaded" }
func (e *StockSnapshotLoadedEvent) OccurredAt() time.Time { return e.LoadedAt }
func (e *StockSnapshotLoadedEvent) Subject() string       { return "stock-snapshot" }

// ReplenishmentResolvedEvent is published after a resolve call
type ReplenishmentResolvedEvent struct {
	Requests   int       `json:"requests"`
	Resolved   int       `json:"resolved"`
	Unresolved int       `json:"unresolved"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

func (e *ReplenishmentResolvedEvent) EventType() string     { return "wms.replenishment.resolved" }
func (e *ReplenishmentResolvedEvent) OccurredAt() time.Time { return e.ResolvedAt }
func (e *ReplenishmentResolvedEvent) Subject() string       { return "replenishment" }

// ReplenishmentListImportedEvent is published when the replenishment list is replaced
type ReplenishmentListImportedEvent struct {
	Inserted   int       `json:"inserted"`
	NotFound   []string  `json:"notFound"`
	ImportedAt time.Time `json:"importedAt"`
}

func (e *ReplenishmentListImportedEvent) EventType() string     { return "wms.replenishment.list-imported" }
func (e *ReplenishmentListImportedEvent) OccurredAt() time.Time { return e.ImportedAt }
func (e *ReplenishmentListImportedEvent) Subject() string       { return "replenishment" }

// ReplenishmentDividedEvent is published when lines are divided among workers
type ReplenishmentDividedEvent struct {
	Total     int            `json:"total"`
	Workers   map[string]int `json:"workers"`
	DividedAt time.Time      `json:"dividedAt"`
}

func (e *ReplenishmentDividedEvent) EventType() string     { return "wms.replenishment.divided" }
func (e *ReplenishmentDividedEvent) OccurredAt() time.Time { return e.DividedAt }
func (e *ReplenishmentDividedEvent) Subject() string       { return "replenishment" }

// ItemPickedEvent is published when a worker records a pick
type ItemPickedEvent struct {
	WorkerName string    `json:"workerName"`
	LineID     int64     `json:"lineId"`
	EAN        string    `json:"ean"`
	PickedAt   time.Time `json:"pickedAt"`
}

func (e *ItemPickedEvent) EventType() string     { return "wms.picking.item-picked" }
func (e *ItemPickedEvent) OccurredAt() time.Time { return e.PickedAt }
func (e *ItemPickedEvent) Subject() string       { return e.WorkerName }

// ItemDiscardedEvent is published when a product is discarded outside the list
type ItemDiscardedEvent struct {
	EAN         string    `json:"ean,omitempty"`
	ItemID      string    `json:"itemId,omitempty"`
	WorkerName  string    `json:"workerName,omitempty"`
	DiscardedAt time.Time `json:"discardedAt"`
}

func (e *ItemDiscardedEvent) EventType() string     { return "wms.picking.item-discarded" }
func (e *ItemDiscardedEvent) OccurredAt() time.Time { return e.DiscardedAt }
func (e *ItemDiscardedEvent) Subject() string {
	if e.EAN != "" {
		return e.EAN
	}
	return e.ItemID
}
