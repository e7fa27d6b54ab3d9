package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger owns the wishlist, the running totals and the current session.
// All mutation goes through its methods.
type Ledger struct {
	mu      sync.Mutex
	config  WorkConfig
	wishes  []Wish
	stats   Statistics
	session Session
	newID   func() string
}

// New creates a Ledger for the given work config.
func New(cfg WorkConfig) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Ledger{
		config:  cfg,
		session: Session{State: StateIdle},
		newID:   uuid.NewString,
	}, nil
}

// NewWish validates name and price and returns an unfunded wish.
func NewWish(name string, price decimal.Decimal) (Wish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Wish{}, ErrEmptyName
	}
	if !price.IsPositive() {
		return Wish{}, fmt.Errorf("%w: %s", ErrNonPositivePrice, price)
	}
	return Wish{
		ID:    uuid.NewString(),
		Name:  name,
		Price: price,
	}, nil
}

// Start begins a session. It returns false if one is already running.
func (l *Ledger) Start(now time.Time) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session.IsRunning() {
		return l.session.Generation, false
	}
	l.session = Session{
		State:      StateRunning,
		StartedAt:  &now,
		Earnings:   decimal.Zero,
		Generation: l.session.Generation + 1,
	}
	return l.session.Generation, true
}

// Tick accrues one second of pay for the session with the given
// generation. Ticks for any other generation, or while idle, are ignored.
func (l *Ledger) Tick(generation uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.session.IsRunning() || l.session.Generation != generation {
		return false
	}
	l.session.ElapsedSeconds++
	l.session.Earnings = l.session.Earnings.Add(l.config.PerSecondRate())
	return true
}

// Stop ends the session and commits a full daily target regardless of how
// long the session ran. It returns false if no session was running.
func (l *Ledger) Stop() (Commit, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.session.IsRunning() {
		return Commit{}, false
	}

	amount := l.config.DailyTarget()
	l.stats.EarnedToday = l.stats.EarnedToday.Add(amount)
	l.stats.EarnedThisWeek = l.stats.EarnedThisWeek.Add(amount)
	l.stats.EarnedThisMonth = l.stats.EarnedThisMonth.Add(amount)

	alloc := Allocate(amount, l.wishes)
	l.wishes = alloc.Wishes
	l.stats.TotalSavings = l.stats.TotalSavings.Add(alloc.Leftover)

	commit := Commit{
		Amount:   amount,
		Leftover: alloc.Leftover,
		Elapsed:  l.session.ElapsedSeconds,
	}
	for _, id := range alloc.Completed {
		if w, ok := l.find(id); ok {
			commit.Completed = append(commit.Completed, w.Name)
		}
	}

	l.session = Session{
		State:      StateIdle,
		Earnings:   decimal.Zero,
		Generation: l.session.Generation,
	}
	return commit, true
}

// AddWish appends a new wish to the end of the list.
func (l *Ledger) AddWish(name string, price decimal.Decimal) (Wish, error) {
	w, err := NewWish(name, price)
	if err != nil {
		return Wish{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	w.ID = l.newID()
	l.wishes = append(l.wishes, w)
	return w, nil
}

// RemoveWish deletes a wish. Money already paid into it is not returned.
func (l *Ledger) RemoveWish(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, w := range l.wishes {
		if w.ID == id {
			l.wishes = append(l.wishes[:i:i], l.wishes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWishNotFound, id)
}

// UpdateConfig applies a partial config. Past totals are not recomputed.
func (l *Ledger) UpdateConfig(patch ConfigPatch) (WorkConfig, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := patch.Apply(l.config)
	if err := next.Validate(); err != nil {
		return l.config, err
	}
	l.config = next
	return next, nil
}

// SetSavingsGoal sets the savings goal; nil clears it.
func (l *Ledger) SetSavingsGoal(goal *decimal.Decimal) error {
	if goal != nil && !goal.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidGoal, goal)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if goal == nil {
		l.stats.SavingsGoal = nil
		return nil
	}
	g := *goal
	l.stats.SavingsGoal = &g
	return nil
}

// Wishes returns a copy of the stored wishlist without the live preview.
func (l *Ledger) Wishes() []Wish {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Wish, len(l.wishes))
	copy(out, l.wishes)
	return out
}

// Snapshot returns the current state with the session earnings previewed
// against the wishlist. The stored wishlist is not modified.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	earnings := l.session.Earnings
	preview := Allocate(earnings, l.wishes)

	snap := Snapshot{
		Session:         l.session,
		Stats:           l.stats,
		Config:          l.config,
		DailyTarget:     l.config.DailyTarget(),
		PerSecondRate:   l.config.PerSecondRate(),
		Wishes:          preview.Wishes,
		Committed:       append([]Wish(nil), l.wishes...),
		Active:          preview.Active,
		DisplayToday:    l.stats.EarnedToday.Add(earnings),
		DisplayWeek:     l.stats.EarnedThisWeek.Add(earnings),
		DisplayMonth:    l.stats.EarnedThisMonth.Add(earnings),
		RealTimeSavings: l.stats.TotalSavings.Add(preview.Leftover),
	}
	if l.session.StartedAt != nil {
		t := *l.session.StartedAt
		snap.Session.StartedAt = &t
	}
	if goal := l.stats.SavingsGoal; goal != nil {
		g := *goal
		snap.Stats.SavingsGoal = &g
		snap.HasSavingsTarget = true
		snap.SavingsProgress = snap.RealTimeSavings.Div(g).Mul(hundred).InexactFloat64()
	}
	return snap
}

func (l *Ledger) find(id string) (Wish, bool) {
	for _, w := range l.wishes {
		if w.ID == id {
			return w, true
		}
	}
	return Wish{}, false
}
