package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Accepted header variants per field. Matching is done on normalised names.
var (
	EANFields      = []string{"EAN", "Ean", "ean", "Cód. EAN", "codigo ean", "barcode"}
	AisleFields    = []string{"Pasillo", "pasillo", "aisle", "pickingAisle"}
	ModuleFields   = []string{"Modulo", "Módulo", "module", "pickingModule"}
	LevelFields    = []string{"Altura", "altura", "level", "nivel"}
	ModelFields    = []string{"Modelo", "modelo", "model"}
	ColorFields    = []string{"Color", "color", "colour"}
	SizeFields     = []string{"Talla", "talla", "size"}
	SectionFields  = []string{"Seccion", "Sección", "seccion", "section"}
	ItemIDFields   = []string{"id_concreto", "Id Concreto", "itemId"}
	QuantityFields = []string{"Cantidad", "cantidad", "quantity", "qty"}
	IDFields       = []string{"id"}
)

// selectionKeys wrap a request array in an object body
var selectionKeys = []string{"seleccion", "selection"}

// Row is one loosely-typed input record keyed by normalised header name
type Row map[string]string

// NormalizeHeader lowercases a header and drops spaces, dots, underscores and hyphens
func NormalizeHeader(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '.', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Get returns the first non-empty value among the given header variants
func (r Row) Get(aliases ...string) string {
	for _, alias := range aliases {
		if v := r[NormalizeHeader(alias)]; v != "" {
			return v
		}
	}
	return ""
}

// NewRow builds a Row from a decoded JSON object
func NewRow(obj map[string]any) Row {
	row := make(Row, len(obj))
	for k, v := range obj {
		key := NormalizeHeader(k)
		if _, exists := row[key]; exists && row[key] != "" {
			continue
		}
		row[key] = stringValue(v)
	}
	return row
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// DecodeRows decodes a JSON array of objects. Anything else is ErrInvalidInput.
func DecodeRows(data []byte) ([]Row, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, ErrInvalidInput
	}
	return rowsFromList(list)
}

// DecodeSelection decodes resolve request rows: a bare array, or an object
// carrying the array under "seleccion" or "selection".
func DecodeSelection(data []byte) ([]Row, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}

	switch body := raw.(type) {
	case []any:
		return rowsFromList(body)
	case map[string]any:
		for _, key := range selectionKeys {
			if list, ok := body[key].([]any); ok {
				return rowsFromList(list)
			}
		}
	}
	return nil, ErrInvalidInput
}

func decodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return raw, nil
}

func rowsFromList(list []any) ([]Row, error) {
	rows := make([]Row, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidInput, i)
		}
		rows = append(rows, NewRow(obj))
	}
	return rows, nil
}

// NormalizeEAN trims the value and drops everything from the first '.'
func NormalizeEAN(raw string) string {
	return truncateDecimal(raw)
}

// NormalizeLocationPart normalises an aisle, module or level value. Spreadsheet
// exports turn 3 into "3.0", which would otherwise never parse as a coordinate.
func NormalizeLocationPart(raw string) string {
	return truncateDecimal(raw)
}

func truncateDecimal(raw string) string {
	v := strings.TrimSpace(raw)
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}
	return v
}

// ParseQuantity returns a positive quantity, defaulting to 1
func ParseQuantity(raw string) int {
	q, err := strconv.Atoi(truncateDecimal(raw))
	if err != nil || q < 1 {
		return 1
	}
	return q
}

// StockEntryFromRow builds a stock entry. ok is false when the row has no usable EAN.
func StockEntryFromRow(row Row) (entry StockEntry, ok bool) {
	ean := NormalizeEAN(row.Get(EANFields...))
	if ean == "" {
		return StockEntry{}, false
	}
	return StockEntry{
		EAN:      ean,
		Location: JoinLocation(
			NormalizeLocationPart(row.Get(AisleFields...)),
			NormalizeLocationPart(row.Get(ModuleFields...)),
			NormalizeLocationPart(row.Get(LevelFields...)),
		),
	}, true
}

// StockEntriesFromRows converts rows to stock entries and counts the skipped ones
func StockEntriesFromRows(rows []Row) (entries []StockEntry, skipped int) {
	entries = make([]StockEntry, 0, len(rows))
	for _, row := range rows {
		entry, ok := StockEntryFromRow(row)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

// RequestFromRow builds a replenishment request
func RequestFromRow(row Row) ReplenishmentRequest {
	return ReplenishmentRequest{
		EAN:           NormalizeEAN(row.Get(EANFields...)),
		Model:         row.Get(ModelFields...),
		Color:         row.Get(ColorFields...),
		Size:          row.Get(SizeFields...),
		PickingAisle:  NormalizeLocationPart(row.Get(AisleFields...)),
		PickingModule: NormalizeLocationPart(row.Get(ModuleFields...)),
	}
}

// RequestsFromRows converts every row to a request
func RequestsFromRows(rows []Row) []ReplenishmentRequest {
	requests := make([]ReplenishmentRequest, len(rows))
	for i, row := range rows {
		requests[i] = RequestFromRow(row)
	}
	return requests
}
