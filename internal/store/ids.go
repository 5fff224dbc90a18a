package store

import (
	"math"
	"strconv"
	"strings"
)

// NextID returns the identifier for a new item: "1" for an empty collection,
// otherwise one more than the largest numeric id. Ids that do not parse as a
// finite number count as 0.
func NextID[T any](items []T, idOf func(T) string) string {
	if len(items) == 0 {
		return "1"
	}

	var max float64
	for _, item := range items {
		if n := numericID(idOf(item)); n > max {
			max = n
		}
	}
	return strconv.FormatFloat(max+1, 'f', -1, 64)
}

func numericID(id string) float64 {
	s := strings.TrimSpace(id)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
