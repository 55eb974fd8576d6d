package view

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects a display ordering.
type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortTitleAZ      SortKey = "title-a-z"
	SortTitleZA      SortKey = "title-z-a"
)

// titleCollator gives locale-aware title ordering instead of raw byte
// comparison.
var titleCollator = collate.New(language.English, collate.Loose)

// Sort returns a stably sorted copy of products. An unrecognized key
// returns the input order untouched.
func Sort(products []DisplayProduct, key SortKey) []DisplayProduct {
	out := make([]DisplayProduct, len(products))
	copy(out, products)

	var less func(a, b DisplayProduct) bool
	switch key {
	case SortPriceLowHigh:
		less = func(a, b DisplayProduct) bool { return a.Price.Cmp(b.Price) < 0 }
	case SortPriceHighLow:
		less = func(a, b DisplayProduct) bool { return b.Price.Cmp(a.Price) < 0 }
	case SortTitleAZ:
		less = func(a, b DisplayProduct) bool { return titleCollator.CompareString(a.Title, b.Title) < 0 }
	case SortTitleZA:
		less = func(a, b DisplayProduct) bool { return titleCollator.CompareString(b.Title, a.Title) < 0 }
	case SortNewest:
		less = func(a, b DisplayProduct) bool { return b.CreatedAt.Before(a.CreatedAt) }
	case SortOldest:
		less = func(a, b DisplayProduct) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
