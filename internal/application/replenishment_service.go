package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/wms-platform/replenishment-service/pkg/errors"
	"github.com/wms-platform/replenishment-service/pkg/logging"
	"github.com/wms-platform/replenishment-service/pkg/metrics"
	"github.com/wms-platform/replenishment-service/pkg/tracing"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

// Repositories groups the persistence ports of the service
type Repositories struct {
	Stock         domain.StockRepository
	Products      domain.ProductRepository
	Replenishment domain.ReplenishmentRepository
	Picks         domain.PickRepository
	Workers       domain.WorkerRepository
	QRLocations   domain.QRLocationRepository
	ManualLists   domain.ManualListRepository
	Discards      domain.DiscardRepository
}

// ReplenishmentService handles stock, replenishment and picking use cases
type ReplenishmentService struct {
	repos     Repositories
	cache     domain.SnapshotCache
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	logger    *logging.Logger
	tracer    trace.Tracer
	now       func() time.Time

	// snapshotMu keeps snapshot loads and resolutions from interleaving
	snapshotMu sync.RWMutex
}

// NewReplenishmentService creates a new ReplenishmentService.
// cache, publisher and m may be nil.
func NewReplenishmentService(
	repos Repositories,
	cache domain.SnapshotCache,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *ReplenishmentService {
	return &ReplenishmentService{
		repos:     repos,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    logger.WithComponent("replenishment-service"),
		tracer:    otel.Tracer("replenishment-service"),
		now:       time.Now,
	}
}

// LoadStock replaces the stock snapshot
func (s *ReplenishmentService) LoadStock(ctx context.Context, cmd LoadStockCommand) (*StockLoadDTO, error) {
	return tracing.TracedOperation(ctx, s.tracer, "replenishment.load_stock", func(ctx context.Context) (*StockLoadDTO, error) {
		return s.loadStock(ctx, cmd)
	})
}

func (s *ReplenishmentService) loadStock(ctx context.Context, cmd LoadStockCommand) (*StockLoadDTO, error) {
	entries, skipped := domain.StockEntriesFromRows(cmd.Rows)

	s.snapshotMu.Lock()
	defer s.snapshotMu.Unlock()

	inserted, err := s.repos.Stock.ReplaceSnapshot(ctx, entries)
	if err != nil {
		s.logger.WithError(err).Error("Failed to replace stock snapshot", "rows", len(entries))
		return nil, fmt.Errorf("failed to replace stock snapshot: %w", err)
	}

	if s.cache != nil {
		if err := s.refreshCache(ctx, entries); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.RecordStockLoad(inserted, skipped)
	}
	s.publish(ctx, &domain.StockSnapshotLoadedEvent{Inserted: inserted, Skipped: skipped, LoadedAt: s.now().UTC()})

	s.logger.Info("Loaded stock snapshot", "inserted", inserted, "skipped", skipped)
	return &StockLoadDTO{Inserted: inserted, Skipped: skipped}, nil
}

// refreshCache drops the cached snapshot after a load. When the delete fails the
// key is overwritten with the new entries instead, so readers never see the
// previous snapshot. Callers hold snapshotMu exclusively.
func (s *ReplenishmentService) refreshCache(ctx context.Context, entries []domain.StockEntry) error {
	err := s.cache.Invalidate(ctx)
	if err == nil {
		return nil
	}
	s.logger.WithError(err).Warn("Failed to invalidate snapshot cache, overwriting it")

	if err := s.cache.Set(ctx, entries); err != nil {
		s.logger.WithError(err).Error("Failed to overwrite snapshot cache; cached snapshot may be stale")
		return errors.ErrServiceUnavailable("snapshot cache").Wrap(err)
	}
	return nil
}

// CurrentStock returns the current stock snapshot
func (s *ReplenishmentService) CurrentStock(ctx context.Context) (*StockSnapshotDTO, error) {
	s.snapshotMu.RLock()
	defer s.snapshotMu.RUnlock()

	entries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ToStockSnapshotDTO(entries), nil
}

// Resolve chooses a stock location for every request row, in order
func (s *ReplenishmentService) Resolve(ctx context.Context, cmd ResolveCommand) ([]ResolutionResultDTO, error) {
	return tracing.TracedOperation(ctx, s.tracer, "replenishment.resolve", func(ctx context.Context) ([]ResolutionResultDTO, error) {
		return s.resolve(ctx, cmd)
	})
}

func (s *ReplenishmentService) resolve(ctx context.Context, cmd ResolveCommand) ([]ResolutionResultDTO, error) {
	start := time.Now()
	requests := domain.RequestsFromRows(cmd.Rows)

	s.snapshotMu.RLock()
	defer s.snapshotMu.RUnlock()

	stock, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	results := domain.Resolve(stock, requests)

	resolved := 0
	for _, r := range results {
		if r.Resolved() {
			resolved++
		}
	}
	unresolved := len(results) - resolved
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordResolution(resolved, unresolved, duration)
	}
	s.publish(ctx, &domain.ReplenishmentResolvedEvent{
		Requests:   len(requests),
		Resolved:   resolved,
		Unresolved: unresolved,
		ResolvedAt: s.now().UTC(),
	})

	s.logger.WithOperation("resolve").Performance(ctx, "resolve", duration, true, map[string]any{
		"requests":   len(requests),
		"stockRows":  len(stock),
		"unresolved": unresolved,
	})
	return ToResolutionResultDTOs(results), nil
}

// snapshot reads the stock snapshot through the cache. Callers hold snapshotMu.
func (s *ReplenishmentService) snapshot(ctx context.Context) ([]domain.StockEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("Snapshot cache read failed, falling back to database")
		} else if ok {
			return entries, nil
		}
	}

	entries, err := s.repos.Stock.CurrentSnapshot(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read stock snapshot")
		return nil, fmt.Errorf("failed to read stock snapshot: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.logger.WithError(err).Warn("Failed to populate snapshot cache")
		}
	}
	return entries, nil
}

// ImportProducts replaces the product master
func (s *ReplenishmentService) ImportProducts(ctx context.Context, cmd ImportProductsCommand) (*ProductImportDTO, error) {
	products := make([]domain.Product, 0, len(cmd.Rows))
	ignored := 0
	for _, row := range cmd.Rows {
		p, ok := domain.ProductFromRow(row)
		if !ok {
			ignored++
			continue
		}
		products = append(products, p)
	}

	inserted, err := s.repos.Products.ReplaceAll(ctx, products)
	if err != nil {
		s.logger.WithError(err).Error("Failed to replace product master", "rows", len(products))
		return nil, fmt.Errorf("failed to replace product master: %w", err)
	}

	s.logger.Info("Imported product master", "inserted", inserted, "ignored", ignored)
	return &ProductImportDTO{Inserted: inserted, Ignored: ignored}, nil
}

// ImportProductLocations moves master rows to new locations
func (s *ReplenishmentService) ImportProductLocations(ctx context.Context, cmd ImportLocationsCommand) (*LocationImportDTO, error) {
	updates := make([]domain.LocationUpdate, 0, len(cmd.Rows))
	ignored := 0
	for _, row := range cmd.Rows {
		u, ok := domain.LocationUpdateFromRow(cmd.Key, row)
		if !ok {
			ignored++
			continue
		}
		updates = append(updates, u)
	}

	updated, err := s.repos.Products.UpdateLocations(ctx, cmd.Key, updates)
	if err != nil {
		s.logger.WithError(err).Error("Failed to update product locations", "key", string(cmd.Key))
		return nil, fmt.Errorf("failed to update product locations: %w", err)
	}
	ignored += len(updates) - updated

	s.logger.Info("Updated product locations", "key", string(cmd.Key), "updated", updated, "ignored", ignored)
	return &LocationImportDTO{Updated: updated, Ignored: ignored}, nil
}

// ListProducts returns the product master
func (s *ReplenishmentService) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repos.Products.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return ToProductDTOs(products), nil
}

// ImportLines builds the replenishment list from rows matched against the product master
func (s *ReplenishmentService) ImportLines(ctx context.Context, cmd ImportLinesCommand) (*LineImportDTO, error) {
	products, err := s.repos.Products.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read product master")
		return nil, fmt.Errorf("failed to read product master: %w", err)
	}

	index := make(map[string]*domain.Product, len(products))
	for i := range products {
		value := products[i].EAN
		if cmd.Key == domain.LookupByItemID {
			value = products[i].ItemID
		}
		if _, exists := index[value]; value != "" && !exists {
			index[value] = &products[i]
		}
	}

	lines := make([]domain.ReplenishmentLine, 0, len(cmd.Rows))
	notFound := make([]string, 0)
	for _, row := range cmd.Rows {
		value := cmd.Key.KeyFromRow(row)
		if value == "" {
			continue
		}
		product, ok := index[value]
		if !ok {
			notFound = append(notFound, value)
			continue
		}
		lines = append(lines, domain.NewLineFromProduct(product, domain.ParseQuantity(row.Get(domain.QuantityFields...))))
	}

	inserted, err := s.repos.Replenishment.ReplaceLines(ctx, lines)
	if err != nil {
		s.logger.WithError(err).Error("Failed to replace replenishment list", "lines", len(lines))
		return nil, fmt.Errorf("failed to replace replenishment list: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordLinesImported(inserted, len(notFound))
	}
	s.publish(ctx, &domain.ReplenishmentListImportedEvent{Inserted: inserted, NotFound: notFound, ImportedAt: s.now().UTC()})

	s.logger.Info("Imported replenishment list", "inserted", inserted, "notFound", len(notFound))
	return &LineImportDTO{Inserted: inserted, NotFound: notFound}, nil
}

// ListLines returns the replenishment list in location order
func (s *ReplenishmentService) ListLines(ctx context.Context) ([]LineDTO, error) {
	lines, err := s.repos.Replenishment.ListLines(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list replenishment lines")
		return nil, fmt.Errorf("failed to list replenishment lines: %w", err)
	}
	domain.SortByLocation(lines)
	return ToLineDTOs(lines), nil
}

// Divide splits the replenishment list among workers, replacing any previous division
func (s *ReplenishmentService) Divide(ctx context.Context, cmd DivideCommand) (*DivisionDTO, error) {
	lines, err := s.repos.Replenishment.ListLines(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list replenishment lines")
		return nil, fmt.Errorf("failed to list replenishment lines: %w", err)
	}

	assignments, err := domain.Divide(lines, cmd.Workers)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Replenishment.ReplaceAssignments(ctx, assignments); err != nil {
		s.logger.WithError(err).Error("Failed to save assignments", "assignments", len(assignments))
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}

	perWorker := domain.CountByWorker(assignments)
	if s.metrics != nil {
		s.metrics.RecordLinesDivided(len(assignments))
	}
	s.publish(ctx, &domain.ReplenishmentDividedEvent{Total: len(assignments), Workers: perWorker, DividedAt: s.now().UTC()})

	s.logger.Info("Divided replenishment list", "total", len(assignments), "workers", len(perWorker))
	return &DivisionDTO{Total: len(assignments), PerWorker: perWorker}, nil
}

// Assigned returns the lines assigned to a worker in location order
func (s *ReplenishmentService) Assigned(ctx context.Context, workerName string) ([]LineDTO, error) {
	lines, err := s.repos.Replenishment.FindAssigned(ctx, workerName)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get assignments", "worker", workerName)
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	domain.SortByLocation(lines)
	return ToLineDTOs(lines), nil
}

// Select marks one line as selected by a worker
func (s *ReplenishmentService) Select(ctx context.Context, cmd SelectCommand) (*SelectionDTO, error) {
	if _, err := s.findLine(ctx, cmd.LineID); err != nil {
		return nil, err
	}

	selection := domain.Selection{WorkerName: cmd.WorkerName, LineID: cmd.LineID, SelectedAt: s.now().UTC()}
	if err := s.repos.Replenishment.AddSelection(ctx, selection); err != nil {
		s.logger.WithError(err).Error("Failed to save selection", "worker", cmd.WorkerName, "lineId", cmd.LineID)
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}

	return &SelectionDTO{WorkerName: selection.WorkerName, LineID: selection.LineID, SelectedAt: selection.SelectedAt}, nil
}

// ReplaceSelections replaces every selection of a worker
func (s *ReplenishmentService) ReplaceSelections(ctx context.Context, cmd ReplaceSelectionsCommand) ([]SelectionDTO, error) {
	now := s.now().UTC()
	seen := make(map[int64]struct{}, len(cmd.LineIDs))
	selections := make([]domain.Selection, 0, len(cmd.LineIDs))

	for _, id := range cmd.LineIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.findLine(ctx, id); err != nil {
			return nil, err
		}
		selections = append(selections, domain.Selection{WorkerName: cmd.WorkerName, LineID: id, SelectedAt: now})
	}

	if err := s.repos.Replenishment.ReplaceSelections(ctx, cmd.WorkerName, selections); err != nil {
		s.logger.WithError(err).Error("Failed to replace selections", "worker", cmd.WorkerName)
		return nil, fmt.Errorf("failed to replace selections: %w", err)
	}

	s.logger.Info("Replaced selections", "worker", cmd.WorkerName, "count", len(selections))
	return ToSelectionDTOs(selections), nil
}

// Selections returns selections of one worker, or of everyone when workerName is empty
func (s *ReplenishmentService) Selections(ctx context.Context, workerName string) ([]SelectionDTO, error) {
	selections, err := s.repos.Replenishment.FindSelections(ctx, workerName)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get selections", "worker", workerName)
		return nil, fmt.Errorf("failed to get selections: %w", err)
	}
	return ToSelectionDTOs(selections), nil
}

// RecordPick records that a worker picked or discarded a line
func (s *ReplenishmentService) RecordPick(ctx context.Context, cmd RecordPickCommand) (*PickDTO, error) {
	line, err := s.findLine(ctx, cmd.LineID)
	if err != nil {
		return nil, err
	}

	pick := &domain.Pick{
		WorkerName: cmd.WorkerName,
		LineID:     line.ID,
		EAN:        line.EAN,
		ItemID:     line.ItemID,
		PickedAt:   s.now().UTC(),
	}
	if err := s.repos.Picks.Save(ctx, pick); err != nil {
		s.logger.WithError(err).Error("Failed to save pick", "worker", cmd.WorkerName, "lineId", cmd.LineID)
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordItemPicked()
	}
	s.publish(ctx, &domain.ItemPickedEvent{WorkerName: pick.WorkerName, LineID: pick.LineID, EAN: pick.EAN, PickedAt: pick.PickedAt})

	s.logger.Info("Recorded pick", "worker", pick.WorkerName, "lineId", pick.LineID)
	return ToPickDTO(pick), nil
}

// ListPicks returns picks newest first, optionally for one worker
func (s *ReplenishmentService) ListPicks(ctx context.Context, workerName string) ([]PickDTO, error) {
	picks, err := s.repos.Picks.FindAll(ctx, workerName)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list picks", "worker", workerName)
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return ToPickDTOs(picks), nil
}

// ReplaceWorkers replaces the worker roster
func (s *ReplenishmentService) ReplaceWorkers(ctx context.Context, cmd ReplaceWorkersCommand) ([]WorkerDTO, error) {
	names := domain.NormalizeWorkerNames(cmd.Names)
	workers := make([]domain.Worker, 0, len(names))
	for _, name := range names {
		workers = append(workers, domain.Worker{Name: name})
	}

	if err := s.repos.Workers.ReplaceAll(ctx, workers); err != nil {
		s.logger.WithError(err).Error("Failed to replace workers", "count", len(workers))
		return nil, fmt.Errorf("failed to replace workers: %w", err)
	}

	s.logger.Info("Replaced worker roster", "count", len(workers))
	return ToWorkerDTOs(workers), nil
}

// ListWorkers returns the roster ordered by name
func (s *ReplenishmentService) ListWorkers(ctx context.Context) ([]WorkerDTO, error) {
	workers, err := s.repos.Workers.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list workers")
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return ToWorkerDTOs(workers), nil
}

// ImportQRLocations registers shelf QR codes. Rows missing the code or any
// location component are ignored.
func (s *ReplenishmentService) ImportQRLocations(ctx context.Context, cmd ImportQRLocationsCommand) (*QRImportDTO, error) {
	entries := make([]domain.QRLocation, 0, len(cmd.Rows))
	ignored := 0
	for _, row := range cmd.Rows {
		qr, ok := domain.QRLocationFromRow(row)
		if !ok {
			ignored++
			continue
		}
		entries = append(entries, qr)
	}

	imported, err := s.repos.QRLocations.Upsert(ctx, entries)
	if err != nil {
		s.logger.WithError(err).Error("Failed to import qr locations", "rows", len(entries))
		return nil, fmt.Errorf("failed to import qr locations: %w", err)
	}

	s.logger.Info("Imported qr locations", "imported", imported, "ignored", ignored)
	return &QRImportDTO{Imported: imported, Ignored: ignored}, nil
}

// LocationByQR returns the location labelled by a QR code
func (s *ReplenishmentService) LocationByQR(ctx context.Context, code string) (*QRLocationDTO, error) {
	qr, err := s.repos.QRLocations.FindByCode(ctx, domain.NormalizeQRCode(code))
	if err != nil {
		return nil, err
	}
	return ToQRLocationDTO(qr), nil
}

// QRByLocation returns the QR code registered for a location
func (s *ReplenishmentService) QRByLocation(ctx context.Context, location string) (*QRLocationDTO, error) {
	canonical, err := domain.CanonicalLocation(location)
	if err != nil {
		return nil, err
	}
	qr, err := s.repos.QRLocations.FindByLocation(ctx, canonical)
	if err != nil {
		return nil, err
	}
	return ToQRLocationDTO(qr), nil
}

// AddManualItem appends one item to a worker's manual list
func (s *ReplenishmentService) AddManualItem(ctx context.Context, cmd AddManualItemCommand) (*ManualItemDTO, error) {
	item, err := domain.NewManualItem(cmd.WorkerName, cmd.EAN, cmd.Model, cmd.Color, cmd.Size, cmd.Quantity, cmd.Location)
	if err != nil {
		return nil, err
	}
	item.AddedAt = s.now().UTC()

	if err := s.repos.ManualLists.Add(ctx, &item); err != nil {
		s.logger.WithError(err).Error("Failed to add manual list item", "worker", cmd.WorkerName)
		return nil, fmt.Errorf("failed to add manual list item: %w", err)
	}
	return ToManualItemDTO(item), nil
}

// ManualList returns a worker's manual list newest first
func (s *ReplenishmentService) ManualList(ctx context.Context, workerName string) ([]ManualItemDTO, error) {
	items, err := s.repos.ManualLists.FindByWorker(ctx, workerName)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get manual list", "worker", workerName)
		return nil, fmt.Errorf("failed to get manual list: %w", err)
	}
	return ToManualItemDTOs(items), nil
}

// ReplaceManualList swaps a worker's manual list for the given rows. An empty
// list clears it; rows without an EAN are ignored.
func (s *ReplenishmentService) ReplaceManualList(ctx context.Context, cmd ReplaceManualListCommand) (*ManualListReplaceDTO, error) {
	now := s.now().UTC()
	items := make([]domain.ManualItem, 0, len(cmd.Rows))
	ignored := 0
	for _, row := range cmd.Rows {
		item, ok := domain.ManualItemFromRow(cmd.WorkerName, row)
		if !ok {
			ignored++
			continue
		}
		item.AddedAt = now
		items = append(items, item)
	}

	saved, err := s.repos.ManualLists.ReplaceForWorker(ctx, cmd.WorkerName, items)
	if err != nil {
		s.logger.WithError(err).Error("Failed to replace manual list", "worker", cmd.WorkerName)
		return nil, fmt.Errorf("failed to replace manual list: %w", err)
	}

	s.logger.Info("Replaced manual list", "worker", cmd.WorkerName, "saved", saved, "ignored", ignored)
	return &ManualListReplaceDTO{Saved: saved, Ignored: ignored}, nil
}

// RecordDiscard stores a product discarded outside the replenishment list
func (s *ReplenishmentService) RecordDiscard(ctx context.Context, cmd RecordDiscardCommand) (*DiscardDTO, error) {
	discard, err := domain.NewDiscard(cmd.EAN, cmd.ItemID, cmd.WorkerName)
	if err != nil {
		return nil, err
	}
	discard.DiscardedAt = s.now().UTC()

	if err := s.repos.Discards.Save(ctx, &discard); err != nil {
		s.logger.WithError(err).Error("Failed to save discard", "ean", discard.EAN, "itemId", discard.ItemID)
		return nil, fmt.Errorf("failed to save discard: %w", err)
	}

	s.publish(ctx, &domain.ItemDiscardedEvent{
		EAN:         discard.EAN,
		ItemID:      discard.ItemID,
		WorkerName:  discard.WorkerName,
		DiscardedAt: discard.DiscardedAt,
	})
	return ToDiscardDTO(discard), nil
}

// ListDiscards returns discards newest first
func (s *ReplenishmentService) ListDiscards(ctx context.Context) ([]DiscardDTO, error) {
	discards, err := s.repos.Discards.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list discards")
		return nil, fmt.Errorf("failed to list discards: %w", err)
	}
	return ToDiscardDTOs(discards), nil
}

func (s *ReplenishmentService) findLine(ctx context.Context, id int64) (*domain.ReplenishmentLine, error) {
	line, err := s.repos.Replenishment.FindLineByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get replenishment line", "lineId", id)
		return nil, fmt.Errorf("failed to get replenishment line: %w", err)
	}
	if line == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrLineNotFound, id)
	}
	return line, nil
}

// publish sends an event without failing the calling operation
func (s *ReplenishmentService) publish(ctx context.Context, event domain.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithOperation("publish").WithError(err).Warn("Failed to publish event", "eventType", event.EventType())
		return
	}
	s.logger.Event(ctx, event.EventType(), map[string]any{"subject": event.Subject()})
}
