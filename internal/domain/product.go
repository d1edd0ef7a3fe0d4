package domain

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when no product master row matches a key
var ErrProductNotFound = errors.New("product not found")

// LookupKey selects which product master column identifies a row
type LookupKey string

const (
	LookupByEAN    LookupKey = "ean"
	LookupByItemID LookupKey = "id"
)

// ParseLookupKey parses a lookup key, defaulting to EAN
func ParseLookupKey(s string) (LookupKey, error) {
	switch LookupKey(s) {
	case "", LookupByEAN:
		return LookupByEAN, nil
	case LookupByItemID:
		return LookupByItemID, nil
	default:
		return "", fmt.Errorf("invalid lookup key %q: must be ean or id", s)
	}
}

// KeyFromRow extracts the lookup value of a row for this key
func (k LookupKey) KeyFromRow(row Row) string {
	if k == LookupByItemID {
		return NormalizeEAN(row.Get(ItemIDFields...))
	}
	return NormalizeEAN(row.Get(EANFields...))
}

// Product is one row of the product master
type Product struct {
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

// ProductFromRow builds a product master row. ok is false when the row has
// neither an EAN nor an item id.
func ProductFromRow(row Row) (product Product, ok bool) {
	p := Product{
		ItemID:  NormalizeEAN(row.Get(ItemIDFields...)),
		EAN:     NormalizeEAN(row.Get(EANFields...)),
		Model:   row.Get(ModelFields...),
		Color:   row.Get(ColorFields...),
		Size:    row.Get(SizeFields...),
		Aisle:   NormalizeLocationPart(row.Get(AisleFields...)),
		Module:  NormalizeLocationPart(row.Get(ModuleFields...)),
		Section: row.Get(SectionFields...),
	}
	if p.EAN == "" && p.ItemID == "" {
		return Product{}, false
	}
	return p, true
}

// LocationUpdate moves the product identified by Key to a new aisle, module and section
type LocationUpdate struct {
	Key     string
	Aisle   string
	Module  string
	Section string
}

// LocationUpdateFromRow builds an update. ok is false when the key is missing.
func LocationUpdateFromRow(key LookupKey, row Row) (update LocationUpdate, ok bool) {
	u := LocationUpdate{
		Key:     key.KeyFromRow(row),
		Aisle:   NormalizeLocationPart(row.Get(AisleFields...)),
		Module:  NormalizeLocationPart(row.Get(ModuleFields...)),
		Section: row.Get(SectionFields...),
	}
	if u.Key == "" {
		return LocationUpdate{}, false
	}
	return u, true
}
