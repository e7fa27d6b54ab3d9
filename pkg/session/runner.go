package session

import (
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stefanpenner/receipt/pkg/clock"
	"github.com/stefanpenner/receipt/pkg/ledger"
)

// Runner drives a Ledger with a Scheduler: it starts the clock when a
// session starts and stops it before the session is committed.
type Runner struct {
	ledger    *ledger.Ledger
	scheduler clock.Scheduler
	logger    *slog.Logger
	now       func() time.Time
	onTick    func()
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithNow overrides the time source used for session start times.
func WithNow(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// OnTick registers a hook called after every accepted tick. The hook runs
// on the scheduler goroutine and must not block.
func OnTick(fn func()) Option {
	return func(r *Runner) { r.onTick = fn }
}

// NewRunner creates a Runner over l. A nil scheduler uses a one-second
// clock.Interval.
func NewRunner(l *ledger.Ledger, s clock.Scheduler, opts ...Option) *Runner {
	if s == nil {
		s = clock.NewInterval(clock.DefaultInterval)
	}
	r := &Runner{
		ledger:    l,
		scheduler: s,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetOnTick replaces the tick hook. Used when the hook target (e.g. a
// tea.Program) only exists after the Runner.
func (r *Runner) SetOnTick(fn func()) {
	r.onTick = fn
}

// Ledger returns the underlying ledger.
func (r *Runner) Ledger() *ledger.Ledger {
	return r.ledger
}

// Start begins a session. It returns false if one is already running.
func (r *Runner) Start() bool {
	gen, ok := r.ledger.Start(r.now())
	if !ok {
		return false
	}
	r.scheduler.Start(func() {
		if r.ledger.Tick(gen) && r.onTick != nil {
			r.onTick()
		}
	})
	r.logger.Info("session started", "generation", gen)
	return true
}

// Stop ends the session and commits the daily target.
func (r *Runner) Stop() (ledger.Commit, bool) {
	r.scheduler.Stop()
	commit, ok := r.ledger.Stop()
	if !ok {
		return commit, false
	}
	r.logger.Info("session committed",
		"amount", commit.Amount.String(),
		"leftover", commit.Leftover.String(),
		"completed", len(commit.Completed),
		"elapsed", commit.Elapsed,
	)
	return commit, true
}

// Toggle starts an idle session or stops a running one. The commit is
// returned when a session was stopped.
func (r *Runner) Toggle() *ledger.Commit {
	if r.ledger.Snapshot().Session.IsRunning() {
		if commit, ok := r.Stop(); ok {
			return &commit
		}
		return nil
	}
	r.Start()
	return nil
}

// Close stops the clock. A running session is dropped uncommitted.
func (r *Runner) Close() {
	r.scheduler.Stop()
	if r.ledger.Snapshot().Session.IsRunning() {
		r.logger.Warn("session discarded on close")
	}
}

// AddWish adds a wish to the end of the wishlist.
func (r *Runner) AddWish(name string, price decimal.Decimal) (ledger.Wish, error) {
	w, err := r.ledger.AddWish(name, price)
	if err != nil {
		r.logger.Debug("wish rejected", "name", name, "price", price.String(), "error", err)
		return w, err
	}
	r.logger.Info("wish added", "id", w.ID, "name", w.Name, "price", w.Price.String())
	return w, nil
}

// RemoveWish removes a wish by id.
func (r *Runner) RemoveWish(id string) error {
	if err := r.ledger.RemoveWish(id); err != nil {
		return err
	}
	r.logger.Info("wish removed", "id", id)
	return nil
}

// UpdateConfig applies a partial work config.
func (r *Runner) UpdateConfig(patch ledger.ConfigPatch) (ledger.WorkConfig, error) {
	cfg, err := r.ledger.UpdateConfig(patch)
	if err != nil {
		return cfg, err
	}
	r.logger.Info("config updated",
		"annual_salary", cfg.AnnualSalary.String(),
		"days_per_year", cfg.DaysPerYear.String(),
		"hours_per_day", cfg.HoursPerDay.String(),
	)
	return cfg, nil
}

// SetSavingsGoal sets or clears the savings goal.
func (r *Runner) SetSavingsGoal(goal *decimal.Decimal) error {
	if err := r.ledger.SetSavingsGoal(goal); err != nil {
		return err
	}
	if goal == nil {
		r.logger.Info("savings goal cleared")
	} else {
		r.logger.Info("savings goal set", "goal", goal.String())
	}
	return nil
}

// Snapshot returns the ledger snapshot.
func (r *Runner) Snapshot() ledger.Snapshot {
	return r.ledger.Snapshot()
}
