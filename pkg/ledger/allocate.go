package ledger

import "github.com/shopspring/decimal"

// Allocation is the result of distributing a pool across the wishlist.
type Allocation struct {
	Wishes   []Wish
	Leftover decimal.Decimal
	// Active is the first wish still open after allocation, SavingsTarget
	// when the pool overflows into savings, or empty when nothing is being
	// funded.
	Active string
	// Completed lists the ids of wishes this allocation completed.
	Completed []string
}

// Allocate distributes pool across wishes in list order. Completed wishes
// are skipped, each open wish is funded in full while the pool covers it,
// the first one it cannot cover is funded partially, and whatever is left
// after the last wish becomes Leftover. The input slice is not modified.
func Allocate(pool decimal.Decimal, wishes []Wish) Allocation {
	out := make([]Wish, len(wishes))
	copy(out, wishes)

	remaining := pool
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	var completed []string
	for i := range out {
		if !remaining.IsPositive() {
			break
		}
		w := &out[i]
		if w.Completed {
			continue
		}

		needed := w.Remaining()
		if remaining.GreaterThanOrEqual(needed) {
			remaining = remaining.Sub(needed)
			w.Paid = w.Price
			w.Completed = true
			completed = append(completed, w.ID)
			continue
		}

		w.Paid = w.Paid.Add(remaining)
		remaining = decimal.Zero
	}

	return Allocation{
		Wishes:    out,
		Leftover:  remaining,
		Active:    activeTarget(out, remaining),
		Completed: completed,
	}
}

func activeTarget(wishes []Wish, leftover decimal.Decimal) string {
	for _, w := range wishes {
		if !w.Completed {
			return w.ID
		}
	}
	if leftover.IsPositive() {
		return SavingsTarget
	}
	return ""
}
