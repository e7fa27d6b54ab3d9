package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stefanpenner/receipt/pkg/ledger"
	"gopkg.in/yaml.v3"
)

// Config is the receipt configuration file.
type Config struct {
	Work        WorkConfig    `yaml:"work"`
	SavingsGoal float64       `yaml:"savings_goal,omitempty"` // 0 means no goal
	Wishes      []WishConfig  `yaml:"wishes,omitempty"`
	Tick        time.Duration `yaml:"tick,omitempty"`
	Log         LogConfig     `yaml:"log"`
}

type WorkConfig struct {
	AnnualSalary float64 `yaml:"annual_salary"`
	DaysPerYear  float64 `yaml:"days_per_year"`
	HoursPerDay  float64 `yaml:"hours_per_day"`
}

type WishConfig struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Work: WorkConfig{
			AnnualSalary: 300000,
			DaysPerYear:  250,
			HoursPerDay:  8,
		},
		SavingsGoal: 50000,
		Wishes: []WishConfig{
			{Name: "New iPhone", Price: 8999},
			{Name: "Five-day Japan trip", Price: 15000},
		},
		Tick: time.Second,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path (if it exists) and environment
// variables, on top of Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	floats := []struct {
		env string
		dst *float64
	}{
		{"RECEIPT_ANNUAL_SALARY", &cfg.Work.AnnualSalary},
		{"RECEIPT_DAYS_PER_YEAR", &cfg.Work.DaysPerYear},
		{"RECEIPT_HOURS_PER_DAY", &cfg.Work.HoursPerDay},
		{"RECEIPT_SAVINGS_GOAL", &cfg.SavingsGoal},
	}
	for _, f := range floats {
		s := os.Getenv(f.env)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.env, err)
		}
		if !finite(v) {
			return fmt.Errorf("invalid %s: %q is not a finite number", f.env, s)
		}
		*f.dst = v
	}

	if level := os.Getenv("RECEIPT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if p := os.Getenv("RECEIPT_LOG_PATH"); p != "" {
		cfg.Log.Path = p
	}
	return nil
}

// Validate checks the work settings, savings goal and seed wishes.
func (c Config) Validate() error {
	// decimal.NewFromFloat panics on NaN and Inf, so reject them first.
	type number struct {
		field string
		v     float64
	}
	numbers := []number{
		{"work.annual_salary", c.Work.AnnualSalary},
		{"work.days_per_year", c.Work.DaysPerYear},
		{"work.hours_per_day", c.Work.HoursPerDay},
		{"savings_goal", c.SavingsGoal},
	}
	for i, w := range c.Wishes {
		numbers = append(numbers, number{fmt.Sprintf("wishes[%d].price", i), w.Price})
	}
	for _, n := range numbers {
		if !finite(n.v) {
			return fmt.Errorf("%w: %s is not a finite number", ledger.ErrInvalidConfig, n.field)
		}
	}

	if err := c.Work.Ledger().Validate(); err != nil {
		return err
	}
	if c.SavingsGoal < 0 {
		return fmt.Errorf("savings_goal must not be negative: %v", c.SavingsGoal)
	}
	for i, w := range c.Wishes {
		if _, err := ledger.NewWish(w.Name, decimal.NewFromFloat(w.Price)); err != nil {
			return fmt.Errorf("wishes[%d]: %w", i, err)
		}
	}
	if c.Tick < 0 {
		return fmt.Errorf("tick must not be negative: %s", c.Tick)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Ledger converts the work section to a ledger.WorkConfig.
func (w WorkConfig) Ledger() ledger.WorkConfig {
	return ledger.WorkConfig{
		AnnualSalary: decimal.NewFromFloat(w.AnnualSalary),
		DaysPerYear:  decimal.NewFromFloat(w.DaysPerYear),
		HoursPerDay:  decimal.NewFromFloat(w.HoursPerDay),
	}
}

// Goal returns the savings goal, or nil when unset.
func (c Config) Goal() *decimal.Decimal {
	if c.SavingsGoal <= 0 {
		return nil
	}
	g := decimal.NewFromFloat(c.SavingsGoal)
	return &g
}

// NewLedger builds a ledger seeded with the configured wishes and goal.
func (c Config) NewLedger() (*ledger.Ledger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	l, err := ledger.New(c.Work.Ledger())
	if err != nil {
		return nil, err
	}
	for _, w := range c.Wishes {
		if _, err := l.AddWish(w.Name, decimal.NewFromFloat(w.Price)); err != nil {
			return nil, fmt.Errorf("seeding wish %q: %w", w.Name, err)
		}
	}
	if err := l.SetSavingsGoal(c.Goal()); err != nil {
		return nil, err
	}
	return l, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LogLevel maps the configured level name to a slog.Level.
func (c Config) LogLevel() slog.Level {
	return ParseLogLevel(c.Log.Level)
}

// ParseLogLevel maps debug/warn/error to their slog levels; anything else
// is info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
