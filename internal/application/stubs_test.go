package application

import (
	"context"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

type stubStockRepo struct {
	ReplaceSnapshotFn func(ctx context.Context, entries []domain.StockEntry) (int, error)
	CurrentSnapshotFn func(ctx context.Context) ([]domain.StockEntry, error)
}

func (s *stubStockRepo) ReplaceSnapshot(ctx context.Context, entries []domain.StockEntry) (int, error) {
	if s.ReplaceSnapshotFn != nil {
		return s.ReplaceSnapshotFn(ctx, entries)
	}
	return len(entries), nil
}

func (s *stubStockRepo) CurrentSnapshot(ctx context.Context) ([]domain.StockEntry, error) {
	if s.CurrentSnapshotFn != nil {
		return s.CurrentSnapshotFn(ctx)
	}
	return nil, nil
}

type stubProductRepo struct {
	ReplaceAllFn      func(ctx context.Context, products []domain.Product) (int, error)
	UpdateLocationsFn func(ctx context.Context, key domain.LookupKey, updates []domain.LocationUpdate) (int, error)
	FindAllFn         func(ctx context.Context) ([]domain.Product, error)
}

func (s *stubProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) (int, error) {
	if s.ReplaceAllFn != nil {
		return s.ReplaceAllFn(ctx, products)
	}
	return len(products), nil
}

func (s *stubProductRepo) UpdateLocations(ctx context.Context, key domain.LookupKey, updates []domain.LocationUpdate) (int, error) {
	if s.UpdateLocationsFn != nil {
		return s.UpdateLocationsFn(ctx, key, updates)
	}
	return len(updates), nil
}

func (s *stubProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	if s.FindAllFn != nil {
		return s.FindAllFn(ctx)
	}
	return nil, nil
}

type stubReplenishmentRepo struct {
	ReplaceLinesFn       func(ctx context.Context, lines []domain.ReplenishmentLine) (int, error)
	ListLinesFn          func(ctx context.Context) ([]domain.LineView, error)
	FindLineByIDFn       func(ctx context.Context, id int64) (*domain.ReplenishmentLine, error)
	ReplaceAssignmentsFn func(ctx context.Context, assignments []domain.Assignment) error
	FindAssignedFn       func(ctx context.Context, workerName string) ([]domain.LineView, error)
	AddSelectionFn       func(ctx context.Context, selection domain.Selection) error
	ReplaceSelectionsFn  func(ctx context.Context, workerName string, selections []domain.Selection) error
	FindSelectionsFn     func(ctx context.Context, workerName string) ([]domain.Selection, error)
}

func (s *stubReplenishmentRepo) ReplaceLines(ctx context.Context, lines []domain.ReplenishmentLine) (int, error) {
	if s.ReplaceLinesFn != nil {
		return s.ReplaceLinesFn(ctx, lines)
	}
	return len(lines), nil
}

func (s *stubReplenishmentRepo) ListLines(ctx context.Context) ([]domain.LineView, error) {
	if s.ListLinesFn != nil {
		return s.ListLinesFn(ctx)
	}
	return nil, nil
}

func (s *stubReplenishmentRepo) FindLineByID(ctx context.Context, id int64) (*domain.ReplenishmentLine, error) {
	if s.FindLineByIDFn != nil {
		return s.FindLineByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubReplenishmentRepo) ReplaceAssignments(ctx context.Context, assignments []domain.Assignment) error {
	if s.ReplaceAssignmentsFn != nil {
		return s.ReplaceAssignmentsFn(ctx, assignments)
	}
	return nil
}

func (s *stubReplenishmentRepo) FindAssigned(ctx context.Context, workerName string) ([]domain.LineView, error) {
	if s.FindAssignedFn != nil {
		return s.FindAssignedFn(ctx, workerName)
	}
	return nil, nil
}

func (s *stubReplenishmentRepo) AddSelection(ctx context.Context, selection domain.Selection) error {
	if s.AddSelectionFn != nil {
		return s.AddSelectionFn(ctx, selection)
	}
	return nil
}

func (s *stubReplenishmentRepo) ReplaceSelections(ctx context.Context, workerName string, selections []domain.Selection) error {
	if s.ReplaceSelectionsFn != nil {
		return s.ReplaceSelectionsFn(ctx, workerName, selections)
	}
	return nil
}

func (s *stubReplenishmentRepo) FindSelections(ctx context.Context, workerName string) ([]domain.Selection, error) {
	if s.FindSelectionsFn != nil {
		return s.FindSelectionsFn(ctx, workerName)
	}
	return nil, nil
}

type stubPickRepo struct {
	SaveFn    func(ctx context.Context, pick *domain.Pick) error
	FindAllFn func(ctx context.Context, workerName string) ([]domain.Pick, error)
}

func (s *stubPickRepo) Save(ctx context.Context, pick *domain.Pick) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, pick)
	}
	return nil
}

func (s *stubPickRepo) FindAll(ctx context.Context, workerName string) ([]domain.Pick, error) {
	if s.FindAllFn != nil {
		return s.FindAllFn(ctx, workerName)
	}
	return nil, nil
}

type stubWorkerRepo struct {
	ReplaceAllFn func(ctx context.Context, workers []domain.Worker) error
	FindAllFn    func(ctx context.Context) ([]domain.Worker, error)
}

func (s *stubWorkerRepo) ReplaceAll(ctx context.Context, workers []domain.Worker) error {
	if s.ReplaceAllFn != nil {
		return s.ReplaceAllFn(ctx, workers)
	}
	return nil
}

func (s *stubWorkerRepo) FindAll(ctx context.Context) ([]domain.Worker, error) {
	if s.FindAllFn != nil {
		return s.FindAllFn(ctx)
	}
	return nil, nil
}

type stubQRLocationRepo struct {
	UpsertFn         func(ctx context.Context, entries []domain.QRLocation) (int, error)
	FindByCodeFn     func(ctx context.Context, code string) (*domain.QRLocation, error)
	FindByLocationFn func(ctx context.Context, location string) (*domain.QRLocation, error)
}

func (s *stubQRLocationRepo) Upsert(ctx context.Context, entries []domain.QRLocation) (int, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, entries)
	}
	return len(entries), nil
}

func (s *stubQRLocationRepo) FindByCode(ctx context.Context, code string) (*domain.QRLocation, error) {
	if s.FindByCodeFn != nil {
		return s.FindByCodeFn(ctx, code)
	}
	return nil, domain.ErrQRCodeNotFound
}

func (s *stubQRLocationRepo) FindByLocation(ctx context.Context, location string) (*domain.QRLocation, error) {
	if s.FindByLocationFn != nil {
		return s.FindByLocationFn(ctx, location)
	}
	return nil, domain.ErrLocationNotFound
}

type stubManualListRepo struct {
	AddFn              func(ctx context.Context, item *domain.ManualItem) error
	FindByWorkerFn     func(ctx context.Context, workerName string) ([]domain.ManualItem, error)
	ReplaceForWorkerFn func(ctx context.Context, workerName string, items []domain.ManualItem) (int, error)
}

func (s *stubManualListRepo) Add(ctx context.Context, item *domain.ManualItem) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, item)
	}
	return nil
}

func (s *stubManualListRepo) FindByWorker(ctx context.Context, workerName string) ([]domain.ManualItem, error) {
	if s.FindByWorkerFn != nil {
		return s.FindByWorkerFn(ctx, workerName)
	}
	return nil, nil
}

func (s *stubManualListRepo) ReplaceForWorker(ctx context.Context, workerName string, items []domain.ManualItem) (int, error) {
	if s.ReplaceForWorkerFn != nil {
		return s.ReplaceForWorkerFn(ctx, workerName, items)
	}
	return len(items), nil
}

type stubDiscardRepo struct {
	SaveFn    func(ctx context.Context, discard *domain.Discard) error
	FindAllFn func(ctx context.Context) ([]domain.Discard, error)
}

func (s *stubDiscardRepo) Save(ctx context.Context, discard *domain.Discard) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, discard)
	}
	return nil
}

func (s *stubDiscardRepo) FindAll(ctx context.Context) ([]domain.Discard, error) {
	if s.FindAllFn != nil {
		return s.FindAllFn(ctx)
	}
	return nil, nil
}

// memoryCache is a SnapshotCache backed by a slice
type memoryCache struct {
	entries     []domain.StockEntry
	present     bool
	gets        int
	invalidated int
	getErr      error
	setErr      error
	// invalidateErr fails Invalidate and leaves the cached entries in place
	invalidateErr error
}

func (c *memoryCache) Get(_ context.Context) ([]domain.StockEntry, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.entries, c.present, nil
}

func (c *memoryCache) Set(_ context.Context, entries []domain.StockEntry) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries = entries
	c.present = true
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context) error {
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	c.entries = nil
	c.present = false
	c.invalidated++
	return nil
}

type recordingPublisher struct {
	events []domain.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.DomainEvent) error {
	p.events = append(p.events, event)
	return p.err
}
