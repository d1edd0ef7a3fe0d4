package application

import "github.com/wms-platform/replenishment-service/internal/domain"

// ToStockSnapshotDTO converts stock entries to a snapshot DTO
func ToStockSnapshotDTO(entries []domain.StockEntry) *StockSnapshotDTO {
	data := make([]StockEntryDTO, 0, len(entries))
	for _, e := range entries {
		data = append(data, StockEntryDTO{EAN: e.EAN, Location: e.Location})
	}
	return &StockSnapshotDTO{Count: len(data), Data: data}
}

// ToResolutionResultDTOs converts resolver output preserving order
func ToResolutionResultDTOs(results []domain.ResolutionResult) []ResolutionResultDTO {
	dtos := make([]ResolutionResultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, ResolutionResultDTO{
			EAN:             r.EAN,
			Model:           r.Model,
			Color:           r.Color,
			Size:            r.Size,
			ChosenLocation:  r.ChosenLocation,
			PickingLocation: r.PickingLocation,
		})
	}
	return dtos
}

// ToProductDTOs converts product master rows
func ToProductDTOs(products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductDTO{
			ID:      p.ID,
			ItemID:  p.ItemID,
			EAN:     p.EAN,
			Model:   p.Model,
			Color:   p.Color,
			Size:    p.Size,
			Aisle:   p.Aisle,
			Module:  p.Module,
			Section: p.Section,
		})
	}
	return dtos
}

// ToLineDTOs converts line views
func ToLineDTOs(lines []domain.LineView) []LineDTO {
	dtos := make([]LineDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, LineDTO{
			ID:       l.ID,
			EAN:      l.EAN,
			Model:    l.Model,
			Color:    l.Color,
			Size:     l.Size,
			Quantity: l.Quantity,
			ItemID:   l.ItemID,
			Aisle:    l.Aisle,
			Module:   l.Module,
			Section:  l.Section,
			Label:    l.Label,
		})
	}
	return dtos
}

// ToSelectionDTOs converts selections
func ToSelectionDTOs(selections []domain.Selection) []SelectionDTO {
	dtos := make([]SelectionDTO, 0, len(selections))
	for _, s := range selections {
		dtos = append(dtos, SelectionDTO{WorkerName: s.WorkerName, LineID: s.LineID, SelectedAt: s.SelectedAt})
	}
	return dtos
}

// ToPickDTO converts a pick
func ToPickDTO(p *domain.Pick) *PickDTO {
	if p == nil {
		return nil
	}
	return &PickDTO{
		ID:         p.ID,
		WorkerName: p.WorkerName,
		LineID:     p.LineID,
		EAN:        p.EAN,
		ItemID:     p.ItemID,
		PickedAt:   p.PickedAt,
	}
}

// ToPickDTOs converts picks
func ToPickDTOs(picks []domain.Pick) []PickDTO {
	dtos := make([]PickDTO, 0, len(picks))
	for i := range picks {
		dtos = append(dtos, *ToPickDTO(&picks[i]))
	}
	return dtos
}

// ToWorkerDTOs converts the roster
func ToWorkerDTOs(workers []domain.Worker) []WorkerDTO {
	dtos := make([]WorkerDTO, 0, len(workers))
	for _, w := range workers {
		dtos = append(dtos, WorkerDTO{Name: w.Name})
	}
	return dtos
}

func ToQRLocationDTO(qr *domain.QRLocation) *QRLocationDTO {
	if qr == nil {
		return nil
	}
	return &QRLocationDTO{Code: qr.Code, Location: qr.Location}
}

// ToManualItemDTO converts a manual list item
func ToManualItemDTO(item domain.ManualItem) *ManualItemDTO {
	return &ManualItemDTO{
		ID:         item.ID,
		WorkerName: item.WorkerName,
		EAN:        item.EAN,
		Model:      item.Model,
		Color:      item.Color,
		Size:       item.Size,
		Quantity:   item.Quantity,
		Location:   item.Location,
		AddedAt:    item.AddedAt,
	}
}

// ToManualItemDTOs converts a manual list
func ToManualItemDTOs(items []domain.ManualItem) []ManualItemDTO {
	dtos := make([]ManualItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, *ToManualItemDTO(item))
	}
	return dtos
}

func ToDiscardDTO(d domain.Discard) *DiscardDTO {
	return &DiscardDTO{
		ID:          d.ID,
		EAN:         d.EAN,
		ItemID:      d.ItemID,
		WorkerName:  d.WorkerName,
		DiscardedAt: d.DiscardedAt,
	}
}

func ToDiscardDTOs(discards []domain.Discard) []DiscardDTO {
	dtos := make([]DiscardDTO, 0, len(discards))
	for _, d := range discards {
		dtos = append(dtos, *ToDiscardDTO(d))
	}
	return dtos
}
