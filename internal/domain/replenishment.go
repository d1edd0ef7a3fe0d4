package domain

import (
	"errors"
	"strings"
	"time"
)

// Errors
var (
	ErrNoLines      = errors.New("no replenishment lines to divide")
	ErrNoWorkers    = errors.New("at least one worker is required")
	ErrLineNotFound = errors.New("replenishment line not found")
)

// ReplenishmentLine is one line of the consolidated replenishment list
type ReplenishmentLine struct {
	ID       int64  `json:"id"`
	EAN      string `json:"ean"`
	Model    string `json:"model"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	ItemID   string `json:"itemId"`
}

// NewLineFromProduct copies the descriptive fields of a master row into a line
func NewLineFromProduct(p *Product, quantity int) ReplenishmentLine {
	if quantity < 1 {
		quantity = 1
	}
	return ReplenishmentLine{
		EAN:      p.EAN,
		Model:    p.Model,
		Color:    p.Color,
		Size:     p.Size,
		Quantity: quantity,
		ItemID:   p.ItemID,
	}
}

// LineView is a line joined with its master location
type LineView struct {
	ReplenishmentLine
	Aisle   string `json:"aisle"`
	Module  string `json:"module"`
	Section string `json:"section"`
	Label   string `json:"label"`
}

// NewLineView joins a line with a location. Label is empty unless both aisle and module are set.
func NewLineView(line ReplenishmentLine, aisle, module, section string) LineView {
	return LineView{
		ReplenishmentLine: line,
		Aisle:             aisle,
		Module:            module,
		Section:           section,
		Label:             LocationLabel(aisle, module),
	}
}

// LocationLabel renders "Pxx-Myy"
func LocationLabel(aisle, module string) string {
	if aisle == "" || module == "" {
		return ""
	}
	return "P" + padLeft(aisle, 2) + "-M" + padLeft(module, 2)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Assignment gives one line to one worker
type Assignment struct {
	WorkerName string `json:"workerName"`
	LineID     int64  `json:"lineId"`
}

// Selection marks a line a worker has chosen to fetch
type Selection struct {
	WorkerName string    `json:"workerName"`
	LineID     int64     `json:"lineId"`
	SelectedAt time.Time `json:"selectedAt"`
}

// Pick records that a worker picked or discarded a line
type Pick struct {
	ID         int64     `json:"id"`
	WorkerName string    `json:"workerName"`
	LineID     int64     `json:"lineId"`
	EAN        string    `json:"ean"`
	ItemID     string    `json:"itemId"`
	PickedAt   time.Time `json:"pickedAt"`
}

// Worker is a member of the picking roster
type Worker struct {
	Name string `json:"name"`
}

// NormalizeWorkerNames trims names and drops blanks and repeats, keeping first-seen order
func NormalizeWorkerNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
