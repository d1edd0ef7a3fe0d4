package domain

import (
	"errors"
	"math"
	"sort"
)

// ErrInvalidInput is returned when a request body is not a list of rows
var ErrInvalidInput = errors.New("invalid input: expected an array of rows")

// StockEntry is one unit of inventory at a location
type StockEntry struct {
	EAN      string `json:"ean"`
	Location string `json:"location"`
}

// ReplenishmentRequest is one requested pick
type ReplenishmentRequest struct {
	EAN           string `json:"ean"`
	Model         string `json:"model"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	PickingAisle  string `json:"pickingAisle"`
	PickingModule string `json:"pickingModule"`
}

// PickingLocation returns the level-0 location the request is delivered to
func (r ReplenishmentRequest) PickingLocation() string {
	return PickingLocation(r.PickingAisle, r.PickingModule)
}

// ResolutionResult is the outcome for one request. ChosenLocation is nil when nothing matched.
type ResolutionResult struct {
	EAN             string  `json:"ean"`
	Model           string  `json:"model"`
	Color           string  `json:"color"`
	Size            string  `json:"size"`
	ChosenLocation  *string `json:"chosenLocation"`
	PickingLocation string  `json:"pickingLocation"`
}

// Resolved reports whether a location was chosen
func (r ResolutionResult) Resolved() bool {
	return r.ChosenLocation != nil
}

type candidate struct {
	location string
	distance float64
}

// Resolve picks a stock location for every request.
//
// A location's frequency is the number of requests that list it as a candidate.
// Each request takes its candidate with the highest frequency, then the shortest
// distance to its picking point, then the lowest location string. Results keep
// the order of requests.
func Resolve(stock []StockEntry, requests []ReplenishmentRequest) []ResolutionResult {
	byEAN := make(map[string][]string)
	for _, entry := range stock {
		if entry.Location == "" {
			continue
		}
		byEAN[entry.EAN] = append(byEAN[entry.EAN], entry.Location)
	}

	candidates := make([][]candidate, len(requests))
	frequency := make(map[string]int)

	for i, req := range requests {
		picking := req.PickingLocation()
		seen := make(map[string]struct{})
		for _, location := range byEAN[req.EAN] {
			d := Distance(picking, location)
			if math.IsInf(d, 1) {
				continue
			}
			candidates[i] = append(candidates[i], candidate{location: location, distance: d})
			if _, ok := seen[location]; !ok {
				seen[location] = struct{}{}
				frequency[location]++
			}
		}
	}

	results := make([]ResolutionResult, len(requests))
	for i, req := range requests {
		results[i] = ResolutionResult{
			EAN:             req.EAN,
			Model:           req.Model,
			Color:           req.Color,
			Size:            req.Size,
			PickingLocation: req.PickingLocation(),
		}

		list := candidates[i]
		if len(list) == 0 {
			continue
		}

		sort.SliceStable(list, func(a, b int) bool {
			fa, fb := frequency[list[a].location], frequency[list[b].location]
			if fa != fb {
				return fa > fb
			}
			if list[a].distance != list[b].distance {
				return list[a].distance < list[b].distance
			}
			return list[a].location < list[b].location
		})

		chosen := list[0].location
		results[i].ChosenLocation = &chosen
	}

	return results
}
