package domain

import (
	"sort"
	"strconv"
	"strings"
)

// SortByLocation orders lines by numeric aisle, numeric module, then id.
// Missing or non-numeric components sort as 0.
func SortByLocation(lines []LineView) {
	sort.SliceStable(lines, func(i, j int) bool {
		ai, aj := numericOrZero(lines[i].Aisle), numericOrZero(lines[j].Aisle)
		if ai != aj {
			return ai < aj
		}
		mi, mj := numericOrZero(lines[i].Module), numericOrZero(lines[j].Module)
		if mi != mj {
			return mi < mj
		}
		return lines[i].ID < lines[j].ID
	})
}

func numericOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ShareSizes returns how many of total lines each of n workers receives.
// Every worker gets total/n and the first total%n get one more.
func ShareSizes(total, n int) []int {
	if n <= 0 {
		return nil
	}
	sizes := make([]int, n)
	base, rest := total/n, total%n
	for i := range sizes {
		sizes[i] = base
		if i < rest {
			sizes[i]++
		}
	}
	return sizes
}

// Divide splits the lines among workers as contiguous runs in location order,
// so each worker walks one stretch of the warehouse.
func Divide(lines []LineView, workers []string) ([]Assignment, error) {
	workers = NormalizeWorkerNames(workers)
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	ordered := make([]LineView, len(lines))
	copy(ordered, lines)
	SortByLocation(ordered)

	assignments := make([]Assignment, 0, len(ordered))
	start := 0
	for i, size := range ShareSizes(len(ordered), len(workers)) {
		for _, line := range ordered[start : start+size] {
			assignments = append(assignments, Assignment{WorkerName: workers[i], LineID: line.ID})
		}
		start += size
	}
	return assignments, nil
}

// CountByWorker tallies assignments per worker
func CountByWorker(assignments []Assignment) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.WorkerName]++
	}
	return counts
}
