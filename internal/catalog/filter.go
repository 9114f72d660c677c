package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultOGThreshold is the number of days an item must have been absent to
// count as a rare ("OG") item.
const DefaultOGThreshold = 100

func sortKey(it Item) string {
	if it.Bundle {
		return strings.ToLower(it.Name)
	}
	return strings.ToLower(it.ID)
}

// Order returns the items in mosaic order: single items by id, then bundles by
// name. The input slice is not modified.
func Order(items []Item) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		if a.Bundle != b.Bundle {
			if a.Bundle {
				return 1
			}
			return -1
		}
		return cmp.Compare(sortKey(a), sortKey(b))
	})
	return out
}

// SelectOG returns the items that have been absent for at least threshold
// days, preserving order. New items never qualify.
func SelectOG(items []Item, threshold int) []Item {
	var out []Item
	for _, it := range items {
		if it.Recency.New {
			continue
		}
		if it.Recency.Days >= threshold {
			out = append(out, it)
		}
	}
	return out
}

// Rarest returns the item with the longest absence.
func Rarest(items []Item) (Item, bool) {
	var best Item
	found := false
	for _, it := range items {
		if it.Recency.New {
			continue
		}
		if !found || it.Recency.Days > best.Recency.Days {
			best = it
			found = true
		}
	}
	return best, found
}
