package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() WorkConfig {
	return WorkConfig{
		AnnualSalary: dec("250000"),
		DaysPerYear:  dec("250"),
		HoursPerDay:  dec("8"),
	}
}

func setupTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(testConfig())
	require.NoError(t, err)
	n := 0
	l.newID = func() string {
		n++
		return fmt.Sprintf("w%d", n)
	}
	return l
}

func TestWorkConfigRates(t *testing.T) {
	cfg := testConfig()
	assertDecimal(t, "1000", cfg.DailyTarget())
	assertDecimal(t, "1000", cfg.PerSecondRate().Mul(dec("28800")).Round(8))
}

func TestWorkConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		patch func(c *WorkConfig)
	}{
		{"zero salary", func(c *WorkConfig) { c.AnnualSalary = decimal.Zero }},
		{"negative days", func(c *WorkConfig) { c.DaysPerYear = dec("-1") }},
		{"zero hours", func(c *WorkConfig) { c.HoursPerDay = decimal.Zero }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.patch(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
	assert.NoError(t, testConfig().Validate())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(WorkConfig{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAddWishValidation(t *testing.T) {
	l := setupTestLedger(t)

	_, err := l.AddWish("  ", dec("10"))
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = l.AddWish("bike", decimal.Zero)
	assert.ErrorIs(t, err, ErrNonPositivePrice)

	_, err = l.AddWish("bike", dec("-3"))
	assert.ErrorIs(t, err, ErrNonPositivePrice)

	w, err := l.AddWish(" bike ", dec("300"))
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)
	assert.Equal(t, "bike", w.Name)
	assert.Len(t, l.Wishes(), 1)
}

func TestRemoveWish(t *testing.T) {
	l := setupTestLedger(t)
	a, _ := l.AddWish("a", dec("10"))
	b, _ := l.AddWish("b", dec("20"))

	require.NoError(t, l.RemoveWish(a.ID))
	wishes := l.Wishes()
	require.Len(t, wishes, 1)
	assert.Equal(t, b.ID, wishes[0].ID)

	err := l.RemoveWish("missing")
	assert.True(t, errors.Is(err, ErrWishNotFound))
}

func TestRemovePartiallyFundedWishDoesNotRefund(t *testing.T) {
	l := setupTestLedger(t)
	a, _ := l.AddWish("big", dec("1500"))

	l.Start(time.Now())
	l.Stop()
	require.NoError(t, l.RemoveWish(a.ID))

	snap := l.Snapshot()
	assertDecimal(t, "0", snap.Stats.TotalSavings)
	assertDecimal(t, "1000", snap.Stats.EarnedToday)
	assert.Empty(t, snap.Wishes)
}

func TestStopCommitsDailyTargetRegardlessOfElapsed(t *testing.T) {
	l := setupTestLedger(t)
	w, _ := l.AddWish("laptop", dec("1000"))

	gen, ok := l.Start(time.Now())
	require.True(t, ok)
	l.Tick(gen)

	commit, ok := l.Stop()
	require.True(t, ok)
	assertDecimal(t, "1000", commit.Amount)
	assertDecimal(t, "0", commit.Leftover)
	assert.Equal(t, []string{"laptop"}, commit.Completed)
	assert.Equal(t, 1, commit.Elapsed)

	wishes := l.Wishes()
	require.Len(t, wishes, 1)
	assert.Equal(t, w.ID, wishes[0].ID)
	assert.True(t, wishes[0].Completed)
	assert.InDelta(t, 100.0, wishes[0].Progress(), 1e-9)

	snap := l.Snapshot()
	assert.Equal(t, StateIdle, snap.Session.State)
	assert.Equal(t, 0, snap.Session.ElapsedSeconds)
	assert.Nil(t, snap.Session.StartedAt)
	assertDecimal(t, "0", snap.Session.Earnings)
	assertDecimal(t, "1000", snap.Stats.EarnedToday)
	assertDecimal(t, "1000", snap.Stats.EarnedThisWeek)
	assertDecimal(t, "1000", snap.Stats.EarnedThisMonth)
	assertDecimal(t, "0", snap.Stats.TotalSavings)
}

func TestStopRoutesLeftoverToSavings(t *testing.T) {
	l := setupTestLedger(t)
	_, _ = l.AddWish("headphones", dec("400"))

	l.Start(time.Now())
	commit, _ := l.Stop()
	assertDecimal(t, "600", commit.Leftover)

	l.Start(time.Now())
	l.Stop()
	assertDecimal(t, "1600", l.Snapshot().Stats.TotalSavings)
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	l := setupTestLedger(t)

	_, ok := l.Stop()
	assert.False(t, ok, "stop while idle is a no-op")
	assertDecimal(t, "0", l.Snapshot().Stats.EarnedToday)

	gen, ok := l.Start(time.Now())
	require.True(t, ok)
	l.Tick(gen)

	again, ok := l.Start(time.Now())
	assert.False(t, ok, "start while running is a no-op")
	assert.Equal(t, gen, again)
	assert.Equal(t, 1, l.Snapshot().Session.ElapsedSeconds)
}

func TestTickAccruesPerSecondRate(t *testing.T) {
	l := setupTestLedger(t)
	gen, _ := l.Start(time.Now())

	for i := 0; i < 3600; i++ {
		require.True(t, l.Tick(gen))
	}

	snap := l.Snapshot()
	assert.Equal(t, 3600, snap.Session.ElapsedSeconds)
	assertDecimal(t, "125", snap.Session.Earnings.Round(6))
	assertDecimal(t, "125", snap.DisplayToday.Round(6))
}

func TestStaleTickIgnored(t *testing.T) {
	l := setupTestLedger(t)
	gen, _ := l.Start(time.Now())
	l.Stop()

	assert.False(t, l.Tick(gen), "tick after stop")

	next, _ := l.Start(time.Now())
	assert.NotEqual(t, gen, next)
	assert.False(t, l.Tick(gen), "tick from previous session")
	assert.True(t, l.Tick(next))
	assert.Equal(t, 1, l.Snapshot().Session.ElapsedSeconds)
}

func TestSnapshotPreviewDoesNotMutateWishes(t *testing.T) {
	l := setupTestLedger(t)
	_, _ = l.AddWish("a", dec("100"))
	_, _ = l.AddWish("b", dec("100"))
	_, err := l.UpdateConfig(ConfigPatch{HoursPerDay: ptr(dec("0.01"))})
	require.NoError(t, err)
	gen, _ := l.Start(time.Now())

	// 36 seconds at 1000/36 per second funds a fully and b partially.
	for i := 0; i < 5; i++ {
		l.Tick(gen)
		_ = l.Snapshot()
	}
	for i := 0; i < 31; i++ {
		l.Tick(gen)
	}

	snap := l.Snapshot()
	assert.True(t, snap.Wishes[0].Completed)
	assert.True(t, snap.Wishes[1].Completed)
	assert.Equal(t, SavingsTarget, snap.Active)
	assert.True(t, snap.RealTimeSavings.GreaterThan(dec("799")))

	for _, w := range l.Wishes() {
		assertDecimal(t, "0", w.Paid)
		assert.False(t, w.Completed)
	}
	assertDecimal(t, "0", snap.Stats.TotalSavings)
}

func TestSnapshotActiveWish(t *testing.T) {
	l := setupTestLedger(t)
	_, _ = l.AddWish("a", dec("5000"))

	snap := l.Snapshot()
	active, ok := snap.ActiveWish()
	require.True(t, ok)
	assert.Equal(t, "a", active.Name)
	assert.InDelta(t, 0.0, active.Progress(), 1e-9)
}

func TestSnapshotIdleWithNothingOpenHasNoTarget(t *testing.T) {
	l := setupTestLedger(t)
	assert.Equal(t, "", l.Snapshot().Active)

	_, _ = l.AddWish("a", dec("500"))
	gen, _ := l.Start(time.Now())
	l.Tick(gen)
	_, _ = l.Stop()

	snap := l.Snapshot()
	assert.True(t, snap.Wishes[0].Completed)
	assert.Equal(t, "", snap.Active)
	_, ok := snap.ActiveWish()
	assert.False(t, ok)
}

func TestSnapshotCommittedWishesExcludePreview(t *testing.T) {
	l := setupTestLedger(t)
	_, _ = l.AddWish("a", dec("0.01"))
	gen, _ := l.Start(time.Now())
	l.Tick(gen)

	snap := l.Snapshot()
	assert.True(t, snap.Wishes[0].Completed)
	require.Len(t, snap.Committed, 1)
	assert.False(t, snap.Committed[0].Completed)
	assertDecimal(t, "0", snap.Committed[0].Paid)
}

func TestSavingsGoal(t *testing.T) {
	l := setupTestLedger(t)

	assert.False(t, l.Snapshot().HasSavingsTarget)

	assert.ErrorIs(t, l.SetSavingsGoal(ptr(decimal.Zero)), ErrInvalidGoal)

	require.NoError(t, l.SetSavingsGoal(ptr(dec("4000"))))
	l.Start(time.Now())
	l.Stop()

	snap := l.Snapshot()
	require.True(t, snap.HasSavingsTarget)
	assert.InDelta(t, 25.0, snap.SavingsProgress, 1e-9)

	require.NoError(t, l.SetSavingsGoal(nil))
	assert.False(t, l.Snapshot().HasSavingsTarget)
}

func TestUpdateConfigAffectsOnlyFutureTicks(t *testing.T) {
	l := setupTestLedger(t)
	gen, _ := l.Start(time.Now())
	l.Tick(gen)
	before := l.Snapshot().Session.Earnings

	cfg, err := l.UpdateConfig(ConfigPatch{AnnualSalary: ptr(dec("500000"))})
	require.NoError(t, err)
	assertDecimal(t, "2000", cfg.DailyTarget())
	assert.True(t, l.Snapshot().Session.Earnings.Equal(before))

	l.Tick(gen)
	after := l.Snapshot().Session.Earnings
	assert.True(t, after.Sub(before).GreaterThan(before))

	_, err = l.UpdateConfig(ConfigPatch{DaysPerYear: ptr(decimal.Zero)})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assertDecimal(t, "2000", l.Snapshot().DailyTarget)
}

func TestStatisticsNeverDecrease(t *testing.T) {
	l := setupTestLedger(t)
	_, _ = l.AddWish("a", dec("2500"))

	prev := l.Snapshot().Stats
	for i := 0; i < 5; i++ {
		l.Start(time.Now())
		l.Stop()
		cur := l.Snapshot().Stats
		assert.True(t, cur.EarnedToday.GreaterThanOrEqual(prev.EarnedToday))
		assert.True(t, cur.TotalSavings.GreaterThanOrEqual(prev.TotalSavings))
		prev = cur
	}
	assertDecimal(t, "2500", prev.TotalSavings)
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
