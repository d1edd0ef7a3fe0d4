package application

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/wms-platform/replenishment-service/pkg/errors"
	"github.com/wms-platform/replenishment-service/pkg/logging"
	"github.com/wms-platform/replenishment-service/pkg/metrics"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	stock         *stubStockRepo
	products      *stubProductRepo
	replenishment *stubReplenishmentRepo
	picks         *stubPickRepo
	workers       *stubWorkerRepo
	qrLocations   *stubQRLocationRepo
	manualLists   *stubManualListRepo
	discards      *stubDiscardRepo
	cache         *memoryCache
	publisher     *recordingPublisher
}

func newFixture() *fixture {
	return &fixture{
		stock:         &stubStockRepo{},
		products:      &stubProductRepo{},
		replenishment: &stubReplenishmentRepo{},
		picks:         &stubPickRepo{},
		workers:       &stubWorkerRepo{},
		qrLocations:   &stubQRLocationRepo{},
		manualLists:   &stubManualListRepo{},
		discards:      &stubDiscardRepo{},
		cache:         &memoryCache{},
		publisher:     &recordingPublisher{},
	}
}

func (f *fixture) service() *ReplenishmentService {
	logger := logging.New(logging.DefaultConfig("test"))
	svc := NewReplenishmentService(Repositories{
		Stock:         f.stock,
		Products:      f.products,
		Replenishment: f.replenishment,
		Picks:         f.picks,
		Workers:       f.workers,
		QRLocations:   f.qrLocations,
		ManualLists:   f.manualLists,
		Discards:      f.discards,
	}, f.cache, f.publisher, metrics.New(metrics.DefaultConfig("test")), logger)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func mustRows(t *testing.T, body string) []domain.Row {
	t.Helper()
	rows, err := domain.DecodeRows([]byte(body))
	require.NoError(t, err)
	return rows
}

func requireAppError(t *testing.T, err error, status int) {
	t.Helper()
	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.HTTPStatus)
}

func TestReplenishmentService_LoadStock(t *testing.T) {
	f := newFixture()
	f.cache.present = true
	f.cache.entries = []domain.StockEntry{{EAN: "stale", Location: "1-1-1"}}

	var stored []domain.StockEntry
	f.stock.ReplaceSnapshotFn = func(_ context.Context, entries []domain.StockEntry) (int, error) {
		stored = entries
		return len(entries), nil
	}

	result, err := f.service().LoadStock(context.Background(), LoadStockCommand{Rows: mustRows(t, `[
		{"EAN": "8400000000017.0", "Pasillo": "2", "Modulo": "3", "Altura": "1"},
		{"ean": "", "pasillo": "2"},
		{"Ean": 8400000000024, "pasillo": 4, "módulo": 1, "nivel": 0}
	]`)})

	require.NoError(t, err)
	assert.Equal(t, &StockLoadDTO{Inserted: 2, Skipped: 1}, result)
	assert.Equal(t, []domain.StockEntry{
		{EAN: "8400000000017", Location: "2-3-1"},
		{EAN: "8400000000024", Location: "4-1-0"},
	}, stored)
	assert.Equal(t, 1, f.cache.invalidated)
	assert.False(t, f.cache.present)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, &domain.StockSnapshotLoadedEvent{Inserted: 2, Skipped: 1, LoadedAt: fixedNow}, f.publisher.events[0])
}

func TestReplenishmentService_LoadStock_RepositoryError(t *testing.T) {
	f := newFixture()
	f.stock.ReplaceSnapshotFn = func(context.Context, []domain.StockEntry) (int, error) {
		return 0, errors.New("connection reset")
	}

	_, err := f.service().LoadStock(context.Background(), LoadStockCommand{Rows: mustRows(t, `[{"ean":"1"}]`)})

	assert.ErrorContains(t, err, "connection reset")
	assert.Zero(t, f.cache.invalidated)
	assert.Empty(t, f.publisher.events)
}

func TestReplenishmentService_LoadStock_InvalidateFailureOverwritesCache(t *testing.T) {
	f := newFixture()
	var stored []domain.StockEntry
	f.stock.ReplaceSnapshotFn = func(_ context.Context, entries []domain.StockEntry) (int, error) {
		stored = entries
		return len(entries), nil
	}
	f.stock.CurrentSnapshotFn = func(context.Context) ([]domain.StockEntry, error) {
		return stored, nil
	}
	svc := f.service()
	ctx := context.Background()
	request := ResolveCommand{Rows: mustRows(t, `[{"ean": "X", "pasillo": "1", "modulo": "1"}]`)}

	_, err := svc.LoadStock(ctx, LoadStockCommand{Rows: mustRows(t, `[{"ean": "X", "pasillo": "9", "modulo": "9", "altura": "9"}]`)})
	require.NoError(t, err)
	results, err := svc.Resolve(ctx, request)
	require.NoError(t, err)
	require.True(t, f.cache.present)
	assert.Equal(t, "9-9-9", *results[0].ChosenLocation)

	f.cache.invalidateErr = errors.New("redis: connection refused")
	_, err = svc.LoadStock(ctx, LoadStockCommand{Rows: mustRows(t, `[{"ean": "X", "pasillo": "1", "modulo": "1", "altura": "2"}]`)})
	require.NoError(t, err)

	results, err = svc.Resolve(ctx, request)
	require.NoError(t, err)
	require.NotNil(t, results[0].ChosenLocation)
	assert.Equal(t, "1-1-2", *results[0].ChosenLocation)
	assert.Equal(t, []domain.StockEntry{{EAN: "X", Location: "1-1-2"}}, f.cache.entries)
}

func TestReplenishmentService_LoadStock_CacheUnavailable(t *testing.T) {
	f := newFixture()
	f.cache.present = true
	f.cache.entries = []domain.StockEntry{{EAN: "old", Location: "1-1-1"}}
	f.cache.invalidateErr = errors.New("redis: i/o timeout")
	f.cache.setErr = errors.New("redis: i/o timeout")

	_, err := f.service().LoadStock(context.Background(), LoadStockCommand{Rows: mustRows(t, `[{"ean": "1"}]`)})

	requireAppError(t, err, http.StatusServiceUnavailable)
	assert.Empty(t, f.publisher.events)
}

func TestReplenishmentService_Resolve(t *testing.T) {
	f := newFixture()
	f.stock.CurrentSnapshotFn = func(context.Context) ([]domain.StockEntry, error) {
		return []domain.StockEntry{
			{EAN: "X", Location: "1-1-5"},
			{EAN: "X", Location: "9-9-9"},
			{EAN: "Y", Location: "1-1-5"},
		}, nil
	}
	svc := f.service()

	rows, err := domain.DecodeSelection([]byte(`{"seleccion": [
		{"ean": "X", "modelo": "M", "color": "C", "talla": "S", "pasillo": "1", "modulo": "1"},
		{"ean": "Y", "pasillo": "9", "modulo": "9"},
		{"ean": "Z", "pasillo": "1", "modulo": "1"}
	]}`))
	require.NoError(t, err)

	results, err := svc.Resolve(context.Background(), ResolveCommand{Rows: rows})
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NotNil(t, results[0].ChosenLocation)
	assert.Equal(t, "1-1-5", *results[0].ChosenLocation)
	assert.Equal(t, "1-1-0", results[0].PickingLocation)
	assert.Equal(t, "M", results[0].Model)
	require.NotNil(t, results[1].ChosenLocation)
	assert.Equal(t, "1-1-5", *results[1].ChosenLocation)
	assert.Nil(t, results[2].ChosenLocation)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, &domain.ReplenishmentResolvedEvent{Requests: 3, Resolved: 2, Unresolved: 1, ResolvedAt: fixedNow}, f.publisher.events[0])
	assert.True(t, f.cache.present, "snapshot should be cached after a miss")
}

func TestReplenishmentService_Resolve_UsesCache(t *testing.T) {
	f := newFixture()
	f.cache.present = true
	f.cache.entries = []domain.StockEntry{{EAN: "A", Location: "2-2-2"}}
	f.stock.CurrentSnapshotFn = func(context.Context) ([]domain.StockEntry, error) {
		t.Fatal("database should not be read on a cache hit")
		return nil, nil
	}

	results, err := f.service().Resolve(context.Background(), ResolveCommand{Rows: mustRows(t, `[{"ean":"A","pasillo":"2","modulo":"2"}]`)})

	require.NoError(t, err)
	require.NotNil(t, results[0].ChosenLocation)
	assert.Equal(t, "2-2-2", *results[0].ChosenLocation)
}

func TestReplenishmentService_Resolve_CacheErrorFallsBack(t *testing.T) {
	f := newFixture()
	f.cache.getErr = errors.New("redis down")
	f.stock.CurrentSnapshotFn = func(context.Context) ([]domain.StockEntry, error) {
		return []domain.StockEntry{{EAN: "A", Location: "2-2-2"}}, nil
	}

	results, err := f.service().Resolve(context.Background(), ResolveCommand{Rows: mustRows(t, `[{"ean":"A","pasillo":"1","modulo":"1"}]`)})

	require.NoError(t, err)
	require.NotNil(t, results[0].ChosenLocation)
}

func TestReplenishmentService_Resolve_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("circuit breaker is open")

	results, err := f.service().Resolve(context.Background(), ResolveCommand{Rows: mustRows(t, `[{"ean":"A"}]`)})

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestReplenishmentService_ImportProducts(t *testing.T) {
	f := newFixture()
	var stored []domain.Product
	f.products.ReplaceAllFn = func(_ context.Context, products []domain.Product) (int, error) {
		stored = products
		return len(products), nil
	}

	result, err := f.service().ImportProducts(context.Background(), ImportProductsCommand{Rows: mustRows(t, `[
		{"id_concreto": 1, "ean": "100", "modelo": "A"},
		{"modelo": "no keys"},
		{"id_concreto": 2}
	]`)})

	require.NoError(t, err)
	assert.Equal(t, &ProductImportDTO{Inserted: 2, Ignored: 1}, result)
	require.Len(t, stored, 2)
	assert.Equal(t, "100", stored[0].EAN)
	assert.Equal(t, "2", stored[1].ItemID)
}

func TestReplenishmentService_ImportProductLocations(t *testing.T) {
	f := newFixture()
	f.products.UpdateLocationsFn = func(_ context.Context, key domain.LookupKey, updates []domain.LocationUpdate) (int, error) {
		assert.Equal(t, domain.LookupByItemID, key)
		assert.Len(t, updates, 2)
		return 1, nil
	}

	result, err := f.service().ImportProductLocations(context.Background(), ImportLocationsCommand{
		Key:  domain.LookupByItemID,
		Rows: mustRows(t, `[{"id_concreto": 1, "pasillo": 3}, {"id_concreto": 99, "pasillo": 4}, {"pasillo": 5}]`),
	})

	require.NoError(t, err)
	assert.Equal(t, &LocationImportDTO{Updated: 1, Ignored: 2}, result)
}

func TestReplenishmentService_ImportLines(t *testing.T) {
	f := newFixture()
	f.products.FindAllFn = func(context.Context) ([]domain.Product, error) {
		return []domain.Product{
			{ID: 1, ItemID: "11", EAN: "100", Model: "Camisa", Color: "Azul", Size: "M"},
			{ID: 2, ItemID: "22", EAN: "200", Model: "Falda", Color: "Roja", Size: "S"},
		}, nil
	}
	var stored []domain.ReplenishmentLine
	f.replenishment.ReplaceLinesFn = func(_ context.Context, lines []domain.ReplenishmentLine) (int, error) {
		stored = lines
		return len(lines), nil
	}

	result, err := f.service().ImportLines(context.Background(), ImportLinesCommand{
		Key:  domain.LookupByEAN,
		Rows: mustRows(t, `[{"ean": "200.0", "cantidad": 3}, {"ean": "999"}, {"ean": "100"}, {"modelo": "blank"}]`),
	})

	require.NoError(t, err)
	assert.Equal(t, &LineImportDTO{Inserted: 2, NotFound: []string{"999"}}, result)
	assert.Equal(t, []domain.ReplenishmentLine{
		{EAN: "200", Model: "Falda", Color: "Roja", Size: "S", Quantity: 3, ItemID: "22"},
		{EAN: "100", Model: "Camisa", Color: "Azul", Size: "M", Quantity: 1, ItemID: "11"},
	}, stored)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "wms.replenishment.list-imported", f.publisher.events[0].EventType())
}

func TestReplenishmentService_ImportLines_ByItemID(t *testing.T) {
	f := newFixture()
	f.products.FindAllFn = func(context.Context) ([]domain.Product, error) {
		return []domain.Product{{ItemID: "11", EAN: "100"}}, nil
	}

	result, err := f.service().ImportLines(context.Background(), ImportLinesCommand{
		Key:  domain.LookupByItemID,
		Rows: mustRows(t, `[{"id_concreto": "11"}, {"ean": "100"}]`),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Empty(t, result.NotFound)
}

func TestReplenishmentService_Divide(t *testing.T) {
	f := newFixture()
	f.replenishment.ListLinesFn = func(context.Context) ([]domain.LineView, error) {
		return []domain.LineView{
			domain.NewLineView(domain.ReplenishmentLine{ID: 3}, "2", "1", ""),
			domain.NewLineView(domain.ReplenishmentLine{ID: 1}, "1", "1", ""),
			domain.NewLineView(domain.ReplenishmentLine{ID: 2}, "1", "2", ""),
		}, nil
	}
	var saved []domain.Assignment
	f.replenishment.ReplaceAssignmentsFn = func(_ context.Context, assignments []domain.Assignment) error {
		saved = assignments
		return nil
	}

	result, err := f.service().Divide(context.Background(), DivideCommand{Workers: []string{"ana", "luis"}})

	require.NoError(t, err)
	assert.Equal(t, &DivisionDTO{Total: 3, PerWorker: map[string]int{"ana": 2, "luis": 1}}, result)
	assert.Equal(t, []domain.Assignment{
		{WorkerName: "ana", LineID: 1},
		{WorkerName: "ana", LineID: 2},
		{WorkerName: "luis", LineID: 3},
	}, saved)
}

func TestReplenishmentService_Divide_Errors(t *testing.T) {
	f := newFixture()
	svc := f.service()

	_, err := svc.Divide(context.Background(), DivideCommand{Workers: []string{"ana"}})
	assert.ErrorIs(t, err, domain.ErrNoLines)

	f.replenishment.ListLinesFn = func(context.Context) ([]domain.LineView, error) {
		return []domain.LineView{domain.NewLineView(domain.ReplenishmentLine{ID: 1}, "1", "1", "")}, nil
	}
	_, err = svc.Divide(context.Background(), DivideCommand{Workers: []string{"  "}})
	assert.ErrorIs(t, err, domain.ErrNoWorkers)
}

func TestReplenishmentService_Select(t *testing.T) {
	f := newFixture()
	f.replenishment.FindLineByIDFn = func(_ context.Context, id int64) (*domain.ReplenishmentLine, error) {
		if id == 7 {
			return &domain.ReplenishmentLine{ID: 7}, nil
		}
		return nil, nil
	}
	var added domain.Selection
	f.replenishment.AddSelectionFn = func(_ context.Context, selection domain.Selection) error {
		added = selection
		return nil
	}
	svc := f.service()

	dto, err := svc.Select(context.Background(), SelectCommand{WorkerName: "ana", LineID: 7})
	require.NoError(t, err)
	assert.Equal(t, &SelectionDTO{WorkerName: "ana", LineID: 7, SelectedAt: fixedNow}, dto)
	assert.Equal(t, int64(7), added.LineID)

	_, err = svc.Select(context.Background(), SelectCommand{WorkerName: "ana", LineID: 8})
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestReplenishmentService_ReplaceSelections(t *testing.T) {
	f := newFixture()
	f.replenishment.FindLineByIDFn = func(_ context.Context, id int64) (*domain.ReplenishmentLine, error) {
		return &domain.ReplenishmentLine{ID: id}, nil
	}
	var saved []domain.Selection
	f.replenishment.ReplaceSelectionsFn = func(_ context.Context, worker string, selections []domain.Selection) error {
		assert.Equal(t, "luis", worker)
		saved = selections
		return nil
	}

	dtos, err := f.service().ReplaceSelections(context.Background(), ReplaceSelectionsCommand{WorkerName: "luis", LineIDs: []int64{4, 2, 4}})

	require.NoError(t, err)
	assert.Len(t, dtos, 2)
	require.Len(t, saved, 2)
	assert.Equal(t, int64(4), saved[0].LineID)
	assert.Equal(t, int64(2), saved[1].LineID)
}

func TestReplenishmentService_RecordPick(t *testing.T) {
	f := newFixture()
	f.replenishment.FindLineByIDFn = func(_ context.Context, id int64) (*domain.ReplenishmentLine, error) {
		return &domain.ReplenishmentLine{ID: id, EAN: "100", ItemID: "11"}, nil
	}
	f.picks.SaveFn = func(_ context.Context, pick *domain.Pick) error {
		pick.ID = 42
		return nil
	}

	dto, err := f.service().RecordPick(context.Background(), RecordPickCommand{WorkerName: "ana", LineID: 5})

	require.NoError(t, err)
	assert.Equal(t, &PickDTO{ID: 42, WorkerName: "ana", LineID: 5, EAN: "100", ItemID: "11", PickedAt: fixedNow}, dto)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "ana", f.publisher.events[0].Subject())
}

func TestReplenishmentService_RecordPick_UnknownLine(t *testing.T) {
	f := newFixture()
	f.picks.SaveFn = func(context.Context, *domain.Pick) error {
		t.Fatal("pick must not be saved for an unknown line")
		return nil
	}

	_, err := f.service().RecordPick(context.Background(), RecordPickCommand{WorkerName: "ana", LineID: 5})

	assert.ErrorIs(t, err, domain.ErrLineNotFound)
	assert.EqualError(t, err, "replenishment line not found: id 5")
}

func TestReplenishmentService_ReplaceWorkers(t *testing.T) {
	f := newFixture()
	var saved []domain.Worker
	f.workers.ReplaceAllFn = func(_ context.Context, workers []domain.Worker) error {
		saved = workers
		return nil
	}

	dtos, err := f.service().ReplaceWorkers(context.Background(), ReplaceWorkersCommand{Names: []string{"ana", " luis", "ana", ""}})

	require.NoError(t, err)
	assert.Equal(t, []WorkerDTO{{Name: "ana"}, {Name: "luis"}}, dtos)
	assert.Equal(t, []domain.Worker{{Name: "ana"}, {Name: "luis"}}, saved)
}

func TestReplenishmentService_ListLines_SortsByLocation(t *testing.T) {
	f := newFixture()
	f.replenishment.ListLinesFn = func(context.Context) ([]domain.LineView, error) {
		return []domain.LineView{
			domain.NewLineView(domain.ReplenishmentLine{ID: 1}, "10", "1", ""),
			domain.NewLineView(domain.ReplenishmentLine{ID: 2}, "9", "1", ""),
		}, nil
	}

	lines, err := f.service().ListLines(context.Background())

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(2), lines[0].ID)
	assert.Equal(t, "P09-M01", lines[0].Label)
}

func TestReplenishmentService_ImportQRLocations(t *testing.T) {
	f := newFixture()
	var saved []domain.QRLocation
	f.qrLocations.UpsertFn = func(_ context.Context, entries []domain.QRLocation) (int, error) {
		saved = entries
		return len(entries), nil
	}

	dto, err := f.service().ImportQRLocations(context.Background(), ImportQRLocationsCommand{Rows: mustRows(t, `[
		{"ID Altura":"qr-a1","Pasillo":3.0,"Modulo":"12","Altura":2},
		{"ID Altura":"QR-B2","Pasillo":"4","Modulo":"1"},
		{"Pasillo":"5","Modulo":"1","Altura":"1"}
	]`)})

	require.NoError(t, err)
	assert.Equal(t, &QRImportDTO{Imported: 1, Ignored: 2}, dto)
	assert.Equal(t, []domain.QRLocation{{Code: "QR-A1", Location: "3-12-2"}}, saved)
}

func TestReplenishmentService_QRLookups(t *testing.T) {
	f := newFixture()
	f.qrLocations.FindByCodeFn = func(_ context.Context, code string) (*domain.QRLocation, error) {
		if code == "QR-A1" {
			return &domain.QRLocation{Code: code, Location: "3-12-2"}, nil
		}
		return nil, domain.ErrQRCodeNotFound
	}
	f.qrLocations.FindByLocationFn = func(_ context.Context, location string) (*domain.QRLocation, error) {
		if location == "3-12-2" {
			return &domain.QRLocation{Code: "QR-A1", Location: location}, nil
		}
		return nil, domain.ErrLocationNotFound
	}
	svc := f.service()
	ctx := context.Background()

	dto, err := svc.LocationByQR(ctx, " qr-a1 ")
	require.NoError(t, err)
	assert.Equal(t, &QRLocationDTO{Code: "QR-A1", Location: "3-12-2"}, dto)

	_, err = svc.LocationByQR(ctx, "QR-ZZ")
	assert.ErrorIs(t, err, domain.ErrQRCodeNotFound)

	dto, err = svc.QRByLocation(ctx, "03-12-02")
	require.NoError(t, err)
	assert.Equal(t, "QR-A1", dto.Code)

	_, err = svc.QRByLocation(ctx, "1-1-1")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = svc.QRByLocation(ctx, "shelf")
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestReplenishmentService_AddManualItem(t *testing.T) {
	f := newFixture()
	var added domain.ManualItem
	f.manualLists.AddFn = func(_ context.Context, item *domain.ManualItem) error {
		item.ID = 9
		added = *item
		return nil
	}
	svc := f.service()

	dto, err := svc.AddManualItem(context.Background(), AddManualItemCommand{
		WorkerName: "ana", EAN: "8400000000017.0", Model: "Blazer", Color: "navy", Size: "M",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), dto.ID)
	assert.Equal(t, "8400000000017", dto.EAN)
	assert.Equal(t, 1, dto.Quantity)
	assert.Equal(t, fixedNow, added.AddedAt)

	_, err = svc.AddManualItem(context.Background(), AddManualItemCommand{WorkerName: "ana"})
	assert.ErrorIs(t, err, domain.ErrManualItemEAN)
}

func TestReplenishmentService_ReplaceManualList(t *testing.T) {
	f := newFixture()
	var saved []domain.ManualItem
	f.manualLists.ReplaceForWorkerFn = func(_ context.Context, worker string, items []domain.ManualItem) (int, error) {
		assert.Equal(t, "luis", worker)
		saved = items
		return len(items), nil
	}

	dto, err := f.service().ReplaceManualList(context.Background(), ReplaceManualListCommand{
		WorkerName: "luis",
		Rows: mustRows(t, `[
			{"ean":"100","modelo":"Shirt","cantidad":"3","ubicacion":"2-4-1"},
			{"EAN":"200","Pasillo":"7","Modulo":"1.0","Altura":"3"},
			{"modelo":"no ean"}
		]`),
	})

	require.NoError(t, err)
	assert.Equal(t, &ManualListReplaceDTO{Saved: 2, Ignored: 1}, dto)
	require.Len(t, saved, 2)
	assert.Equal(t, 3, saved[0].Quantity)
	assert.Equal(t, "2-4-1", saved[0].Location)
	assert.Equal(t, "7-1-3", saved[1].Location)
	assert.Equal(t, "luis", saved[1].WorkerName)
}

func TestReplenishmentService_ReplaceManualList_Empty(t *testing.T) {
	f := newFixture()
	called := false
	f.manualLists.ReplaceForWorkerFn = func(_ context.Context, _ string, items []domain.ManualItem) (int, error) {
		called = true
		assert.Empty(t, items)
		return 0, nil
	}

	dto, err := f.service().ReplaceManualList(context.Background(), ReplaceManualListCommand{WorkerName: "ana"})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Zero(t, dto.Saved)
}

func TestReplenishmentService_RecordDiscard(t *testing.T) {
	f := newFixture()
	f.discards.SaveFn = func(_ context.Context, d *domain.Discard) error {
		d.ID = 3
		return nil
	}
	svc := f.service()

	dto, err := svc.RecordDiscard(context.Background(), RecordDiscardCommand{ItemID: "55.0"})

	require.NoError(t, err)
	assert.Equal(t, &DiscardDTO{ID: 3, ItemID: "55", DiscardedAt: fixedNow}, dto)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "wms.picking.item-discarded", f.publisher.events[0].EventType())

	_, err = svc.RecordDiscard(context.Background(), RecordDiscardCommand{})
	assert.ErrorIs(t, err, domain.ErrDiscardKey)
	assert.Len(t, f.publisher.events, 1)
}
