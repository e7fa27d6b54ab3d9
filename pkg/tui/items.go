package tui

import (
	"github.com/stefanpenner/receipt/pkg/ledger"
)

// WishItem is one row of the wishlist in the settings pane.
type WishItem struct {
	Index    int // 1-based position in the list
	Wish     ledger.Wish
	IsActive bool // currently receiving money
}

// BuildWishItems converts the committed wishlist into rows. Live session
// earnings only show up through IsActive.
func BuildWishItems(snap ledger.Snapshot) []WishItem {
	items := make([]WishItem, 0, len(snap.Committed))
	for i, w := range snap.Committed {
		items = append(items, WishItem{
			Index:    i + 1,
			Wish:     w,
			IsActive: w.ID == snap.Active,
		})
	}
	return items
}

// clampCursor keeps cursor within [0, n-1], or 0 for an empty list.
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
