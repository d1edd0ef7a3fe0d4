package main

import (
	"context"
	"sort"

	"github.com/wms-platform/replenishment-service/internal/domain"
)

type memStockRepo struct {
	entries []domain.StockEntry
	err     error
}

func (r *memStockRepo) ReplaceSnapshot(_ context.Context, entries []domain.StockEntry) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.entries = append([]domain.StockEntry(nil), entries...)
	return len(entries), nil
}

func (r *memStockRepo) CurrentSnapshot(_ context.Context) ([]domain.StockEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]domain.StockEntry(nil), r.entries...), nil
}

type memProductRepo struct {
	products []domain.Product
}

func (r *memProductRepo) ReplaceAll(_ context.Context, products []domain.Product) (int, error) {
	r.products = make([]domain.Product, 0, len(products))
	for i, p := range products {
		p.ID = int64(i + 1)
		r.products = append(r.products, p)
	}
	return len(products), nil
}

func (r *memProductRepo) UpdateLocations(_ context.Context, key domain.LookupKey, updates []domain.LocationUpdate) (int, error) {
	matched := 0
	for _, u := range updates {
		hit := false
		for i := range r.products {
			value := r.products[i].EAN
			if key == domain.LookupByItemID {
				value = r.products[i].ItemID
			}
			if value == u.Key {
				r.products[i].Aisle, r.products[i].Module, r.products[i].Section = u.Aisle, u.Module, u.Section
				hit = true
			}
		}
		if hit {
			matched++
		}
	}
	return matched, nil
}

func (r *memProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), r.products...), nil
}

func (r *memProductRepo) locationOf(itemID string) (aisle, module, section string) {
	for _, p := range r.products {
		if itemID != "" && p.ItemID == itemID {
			return p.Aisle, p.Module, p.Section
		}
	}
	return "", "", ""
}

type memReplenishmentRepo struct {
	products    *memProductRepo
	lines       []domain.ReplenishmentLine
	nextID      int64
	assignments []domain.Assignment
	selections  []domain.Selection
}

func (r *memReplenishmentRepo) ReplaceLines(_ context.Context, lines []domain.ReplenishmentLine) (int, error) {
	r.lines, r.assignments, r.selections = nil, nil, nil
	for _, l := range lines {
		r.nextID++
		l.ID = r.nextID
		r.lines = append(r.lines, l)
	}
	return len(lines), nil
}

func (r *memReplenishmentRepo) ListLines(_ context.Context) ([]domain.LineView, error) {
	views := make([]domain.LineView, 0, len(r.lines))
	for _, l := range r.lines {
		views = append(views, r.view(l))
	}
	return views, nil
}

func (r *memReplenishmentRepo) FindLineByID(_ context.Context, id int64) (*domain.ReplenishmentLine, error) {
	for _, l := range r.lines {
		if l.ID == id {
			line := l
			return &line, nil
		}
	}
	return nil, nil
}

func (r *memReplenishmentRepo) ReplaceAssignments(_ context.Context, assignments []domain.Assignment) error {
	r.assignments = append([]domain.Assignment(nil), assignments...)
	r.selections = nil
	return nil
}

func (r *memReplenishmentRepo) FindAssigned(_ context.Context, workerName string) ([]domain.LineView, error) {
	var views []domain.LineView
	for _, a := range r.assignments {
		if a.WorkerName != workerName {
			continue
		}
		for _, l := range r.lines {
			if l.ID == a.LineID {
				views = append(views, r.view(l))
			}
		}
	}
	return views, nil
}

func (r *memReplenishmentRepo) AddSelection(_ context.Context, selection domain.Selection) error {
	for _, s := range r.selections {
		if s.WorkerName == selection.WorkerName && s.LineID == selection.LineID {
			return nil
		}
	}
	r.selections = append(r.selections, selection)
	return nil
}

func (r *memReplenishmentRepo) ReplaceSelections(_ context.Context, workerName string, selections []domain.Selection) error {
	kept := r.selections[:0]
	for _, s := range r.selections {
		if s.WorkerName != workerName {
			kept = append(kept, s)
		}
	}
	r.selections = append(kept, selections...)
	return nil
}

func (r *memReplenishmentRepo) FindSelections(_ context.Context, workerName string) ([]domain.Selection, error) {
	out := make([]domain.Selection, 0, len(r.selections))
	for _, s := range r.selections {
		if workerName == "" || s.WorkerName == workerName {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkerName != out[j].WorkerName {
			return out[i].WorkerName < out[j].WorkerName
		}
		return out[i].LineID < out[j].LineID
	})
	return out, nil
}

func (r *memReplenishmentRepo) view(l domain.ReplenishmentLine) domain.LineView {
	aisle, module, section := r.products.locationOf(l.ItemID)
	return domain.NewLineView(l, aisle, module, section)
}

type memPickRepo struct {
	picks []domain.Pick
}

func (r *memPickRepo) Save(_ context.Context, pick *domain.Pick) error {
	pick.ID = int64(len(r.picks) + 1)
	r.picks = append(r.picks, *pick)
	return nil
}

func (r *memPickRepo) FindAll(_ context.Context, workerName string) ([]domain.Pick, error) {
	var out []domain.Pick
	for i := len(r.picks) - 1; i >= 0; i-- {
		if workerName == "" || r.picks[i].WorkerName == workerName {
			out = append(out, r.picks[i])
		}
	}
	return out, nil
}

type memWorkerRepo struct {
	workers []domain.Worker
}

func (r *memWorkerRepo) ReplaceAll(_ context.Context, workers []domain.Worker) error {
	r.workers = append([]domain.Worker(nil), workers...)
	sort.Slice(r.workers, func(i, j int) bool { return r.workers[i].Name < r.workers[j].Name })
	return nil
}

func (r *memWorkerRepo) FindAll(_ context.Context) ([]domain.Worker, error) {
	return append([]domain.Worker(nil), r.workers...), nil
}

type memQRLocationRepo struct {
	byCode map[string]string
}

func (r *memQRLocationRepo) Upsert(_ context.Context, entries []domain.QRLocation) (int, error) {
	if r.byCode == nil {
		r.byCode = make(map[string]string)
	}
	for _, e := range entries {
		r.byCode[e.Code] = e.Location
	}
	return len(entries), nil
}

func (r *memQRLocationRepo) FindByCode(_ context.Context, code string) (*domain.QRLocation, error) {
	location, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrQRCodeNotFound
	}
	return &domain.QRLocation{Code: code, Location: location}, nil
}

func (r *memQRLocationRepo) FindByLocation(_ context.Context, location string) (*domain.QRLocation, error) {
	for code, l := range r.byCode {
		if l == location {
			return &domain.QRLocation{Code: code, Location: l}, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}

type memManualListRepo struct {
	items  []domain.ManualItem
	nextID int64
}

func (r *memManualListRepo) Add(_ context.Context, item *domain.ManualItem) error {
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, *item)
	return nil
}

func (r *memManualListRepo) FindByWorker(_ context.Context, workerName string) ([]domain.ManualItem, error) {
	var out []domain.ManualItem
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].WorkerName == workerName {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memManualListRepo) ReplaceForWorker(_ context.Context, workerName string, items []domain.ManualItem) (int, error) {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.WorkerName != workerName {
			kept = append(kept, item)
		}
	}
	r.items = kept
	for _, item := range items {
		r.nextID++
		item.ID = r.nextID
		item.WorkerName = workerName
		r.items = append(r.items, item)
	}
	return len(items), nil
}

type memDiscardRepo struct {
	discards []domain.Discard
}

func (r *memDiscardRepo) Save(_ context.Context, discard *domain.Discard) error {
	discard.ID = int64(len(r.discards) + 1)
	r.discards = append(r.discards, *discard)
	return nil
}

func (r *memDiscardRepo) FindAll(_ context.Context) ([]domain.Discard, error) {
	out := make([]domain.Discard, 0, len(r.discards))
	for i := len(r.discards) - 1; i >= 0; i-- {
		out = append(out, r.discards[i])
	}
	return out, nil
}
