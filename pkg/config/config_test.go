package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stefanpenner/receipt/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Work.Ledger().DailyTarget().Equal(decimal.NewFromInt(1200)))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `work:
  annual_salary: 250000
  days_per_year: 250
  hours_per_day: 8
savings_goal: 0
wishes:
  - name: Laptop
    price: 1000
tick: 500ms
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, cfg.Work.AnnualSalary)
	assert.Equal(t, []WishConfig{{Name: "Laptop", Price: 1000}}, cfg.Wishes)
	assert.Equal(t, 500*time.Millisecond, cfg.Tick)
	assert.Nil(t, cfg.Goal())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RECEIPT_ANNUAL_SALARY", "500000")
	t.Setenv("RECEIPT_SAVINGS_GOAL", "1234.5")
	t.Setenv("RECEIPT_LOG_LEVEL", "warn")
	t.Setenv("RECEIPT_LOG_PATH", "/tmp/receipt.log")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500000.0, cfg.Work.AnnualSalary)
	require.NotNil(t, cfg.Goal())
	assert.True(t, cfg.Goal().Equal(decimal.RequireFromString("1234.5")))
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
	assert.Equal(t, "/tmp/receipt.log", cfg.Log.Path)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("RECEIPT_HOURS_PER_DAY", "eight")
	_, err := Load("")
	assert.ErrorContains(t, err, "RECEIPT_HOURS_PER_DAY")
}

func TestLoadRejectsNonFiniteEnv(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("RECEIPT_ANNUAL_SALARY", v)
			var err error
			assert.NotPanics(t, func() { _, err = Load("") })
			assert.ErrorContains(t, err, "RECEIPT_ANNUAL_SALARY")
		})
	}
}

func TestNewLedgerRejectsNonFinite(t *testing.T) {
	cfg := Default()
	cfg.Work.DaysPerYear = math.Inf(1)
	_, err := cfg.NewLedger()
	assert.ErrorIs(t, err, ledger.ErrInvalidConfig)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIs  error
	}{
		{"zero days", "work: {annual_salary: 1, days_per_year: 0, hours_per_day: 8}\n", ledger.ErrInvalidConfig},
		{"free wish", "wishes: [{name: gift, price: 0}]\n", ledger.ErrNonPositivePrice},
		{"nameless wish", "wishes: [{name: '', price: 10}]\n", ledger.ErrEmptyName},
		{"infinite salary", "work: {annual_salary: .inf, days_per_year: 250, hours_per_day: 8}\n", ledger.ErrInvalidConfig},
		{"nan hours", "work: {annual_salary: 1, days_per_year: 250, hours_per_day: .nan}\n", ledger.ErrInvalidConfig},
		{"nan goal", "savings_goal: .nan\n", ledger.ErrInvalidConfig},
		{"infinite wish", "wishes: [{name: gift, price: -.inf}]\n", ledger.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work: [unclosed"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Default().Save(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNewLedgerSeedsWishesAndGoal(t *testing.T) {
	l, err := Default().NewLedger()
	require.NoError(t, err)

	wishes := l.Wishes()
	require.Len(t, wishes, 2)
	assert.Equal(t, "New iPhone", wishes[0].Name)
	assert.Equal(t, "Five-day Japan trip", wishes[1].Name)

	snap := l.Snapshot()
	assert.True(t, snap.HasSavingsTarget)
	assert.True(t, snap.DailyTarget.Equal(decimal.NewFromInt(1200)))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel(""))
}
