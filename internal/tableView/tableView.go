// Package tableView filters and sorts display rows the same way the dashboard script does,
// so the server-rendered table and the JS table agree.
package tableView

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

type Row []string

var numericNoise = strings.NewReplacer(",", "", "%", "", " ", "", "\u00a0", "", "\u202f", "")

// Filter keeps rows where any cell contains query, case-insensitively.
// An empty query keeps every row. rows is not modified.
func Filter(rows []Row, query string) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if query == "" || matches(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Row, query string) bool {
	for _, cell := range r {
		if strings.Contains(strings.ToLower(cell), query) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy of rows ordered by column col.
// Out of range columns leave the order unchanged.
func Sort(rows []Row, col int, desc bool) []Row {
	out := slices.Clone(rows)
	if out == nil {
		out = []Row{}
	}
	slices.SortStableFunc(out, func(a, b Row) int {
		c := Compare(cellAt(a, col), cellAt(b, col))
		if desc {
			return -c
		}
		return c
	})
	return out
}

func cellAt(r Row, col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Compare orders two cells numerically when both parse as numbers after removing
// thousands separators, percent signs and spaces. Non-numeric cells sort before numeric ones
// and compare lexicographically with each other.
func Compare(a, b string) int {
	na, aok := Numeric(a)
	nb, bok := Numeric(b)
	switch {
	case aok && bok:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case aok:
		return 1
	case bok:
		return -1
	}
	return strings.Compare(a, b)
}

// Numeric parses a display cell as a number.
func Numeric(s string) (float64, bool) {
	s = numericNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
