package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// State represents the session clock state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// SavingsTarget is the Active value reported when money flows into savings
// rather than a wish.
const SavingsTarget = "SAVINGS"

var hundred = decimal.NewFromInt(100)

// Wish is a purchase goal on the wishlist.
type Wish struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Price     decimal.Decimal `json:"price" yaml:"price"`
	Paid      decimal.Decimal `json:"paid" yaml:"paid"`
	Completed bool            `json:"completed" yaml:"completed"`
}

// Progress returns the funded percentage in [0, 100].
func (w Wish) Progress() float64 {
	if !w.Price.IsPositive() {
		return 0
	}
	return w.Paid.Div(w.Price).Mul(hundred).InexactFloat64()
}

// Remaining returns how much is still needed to complete the wish.
func (w Wish) Remaining() decimal.Decimal {
	return w.Price.Sub(w.Paid)
}

// Statistics holds the running totals. Every amount only grows.
type Statistics struct {
	EarnedToday     decimal.Decimal  `json:"earned_today"`
	EarnedThisWeek  decimal.Decimal  `json:"earned_this_week"`
	EarnedThisMonth decimal.Decimal  `json:"earned_this_month"`
	TotalSavings    decimal.Decimal  `json:"total_savings"`
	SavingsGoal     *decimal.Decimal `json:"savings_goal,omitempty"`
}

// Session is the transient state of the current work interval.
type Session struct {
	State          State           `json:"state"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	ElapsedSeconds int             `json:"elapsed_seconds"`
	Earnings       decimal.Decimal `json:"earnings"`

	// Generation changes on every start so ticks scheduled for an
	// earlier session can be recognised and dropped.
	Generation uint64 `json:"-"`
}

// IsRunning returns true while a session is in progress.
func (s Session) IsRunning() bool {
	return s.State == StateRunning
}

// Commit describes the effect of ending a session.
type Commit struct {
	Amount    decimal.Decimal `json:"amount"`
	Completed []string        `json:"completed,omitempty"`
	Leftover  decimal.Decimal `json:"leftover"`
	Elapsed   int             `json:"elapsed_seconds"`
}

// Snapshot is a read-only view of the ledger with the live preview applied.
type Snapshot struct {
	Session       Session         `json:"session"`
	Stats         Statistics      `json:"stats"`
	Config        WorkConfig      `json:"config"`
	DailyTarget   decimal.Decimal `json:"daily_target"`
	PerSecondRate decimal.Decimal `json:"per_second_rate"`

	// Wishes carries live-preview progress; the stored list is untouched.
	Wishes []Wish `json:"wishes"`
	// Committed is the stored wishlist, without the live preview.
	Committed []Wish `json:"committed_wishes"`
	// Active is the id of the first open wish, SavingsTarget while session
	// earnings overflow into savings, or empty when every wish is complete
	// and nothing is flowing.
	Active string `json:"active,omitempty"`

	DisplayToday     decimal.Decimal `json:"display_today"`
	DisplayWeek      decimal.Decimal `json:"display_week"`
	DisplayMonth     decimal.Decimal `json:"display_month"`
	RealTimeSavings  decimal.Decimal `json:"real_time_savings"`
	SavingsProgress  float64         `json:"savings_progress"`
	HasSavingsTarget bool            `json:"has_savings_goal"`
}

// ActiveWish returns the wish currently being funded, if any.
func (s Snapshot) ActiveWish() (Wish, bool) {
	for _, w := range s.Wishes {
		if w.ID == s.Active {
			return w, true
		}
	}
	return Wish{}, false
}
