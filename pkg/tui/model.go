package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stefanpenner/receipt/pkg/config"
	"github.com/stefanpenner/receipt/pkg/ledger"
	"github.com/stefanpenner/receipt/pkg/session"
)

// TickMsg is sent after the session clock accrues a second of pay.
type TickMsg struct{}

// ConfigChangedMsg is sent when the file watcher detects a config edit.
type ConfigChangedMsg struct{}

type inputKind int

const (
	inputNone inputKind = iota
	inputWishName
	inputWishPrice
	inputSalary
	inputGoal
)

// Model is the Bubble Tea model for the salary receipt.
type Model struct {
	runner     *session.Runner
	configPath string
	logger     *slog.Logger
	keys       KeyMap
	now        func() time.Time
	width      int
	height     int
	snap       ledger.Snapshot
	cursor     int

	showSettings bool
	showMonth    bool // week total otherwise

	// Modal state
	showHelpModal     bool
	showDeleteConfirm bool
	deleteID          string
	deleteName        string

	// Input mode
	input       inputKind
	textInput   textinput.Model
	pendingName string

	// Status message
	statusMsg     string
	statusTimeout time.Time
}

// NewModel creates a new TUI model. configPath is re-read on reload and
// when the watcher reports a change.
func NewModel(r *session.Runner, configPath string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ti := textinput.New()
	ti.CharLimit = 64

	m := Model{
		runner:     r,
		configPath: configPath,
		logger:     logger,
		keys:       DefaultKeyMap(),
		now:        time.Now,
		textInput:  ti,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, tea.ClearScreen

	case TickMsg:
		m.refresh()
		return m, nil

	case ConfigChangedMsg:
		m.reloadConfig()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		next, cmd := m.handleKeyMsg(msg)
		nm := next.(Model)
		nm.refresh()
		return nm, cmd
	}

	if m.input != inputNone {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.handleInput(msg)
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "Y":
			if err := m.runner.RemoveWish(m.deleteID); err != nil {
				m.setStatus("Delete failed: " + err.Error())
			} else {
				m.setStatus("Deleted: " + m.deleteName)
			}
			m.showDeleteConfirm = false
		case "n", "N", "esc":
			m.showDeleteConfirm = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if commit := m.runner.Toggle(); commit != nil {
			m.setStatus(commitStatus(*commit))
		} else {
			m.setStatus("Clocked in")
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Committed)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Settings):
		m.showSettings = !m.showSettings

	case key.Matches(msg, m.keys.Range):
		m.showMonth = !m.showMonth

	case key.Matches(msg, m.keys.Add):
		m.showSettings = true
		return m, m.beginInput(inputWishName, "wish name", "")

	case key.Matches(msg, m.keys.Salary):
		m.showSettings = true
		return m, m.beginInput(inputSalary, "annual salary", m.snap.Config.AnnualSalary.String())

	case key.Matches(msg, m.keys.Goal):
		m.showSettings = true
		current := ""
		if g := m.snap.Stats.SavingsGoal; g != nil {
			current = g.String()
		}
		return m, m.beginInput(inputGoal, "savings goal (0 clears)", current)

	case key.Matches(msg, m.keys.Delete):
		if !m.showSettings {
			m.setStatus("Open settings (s) to manage wishes")
			break
		}
		if m.cursor < len(m.snap.Committed) {
			w := m.snap.Committed[m.cursor]
			m.deleteID = w.ID
			m.deleteName = w.Name
			m.showDeleteConfirm = true
		}

	case key.Matches(msg, m.keys.Reload):
		if m.reloadConfig() {
			m.setStatus("Config reloaded")
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

func (m *Model) beginInput(kind inputKind, placeholder, value string) tea.Cmd {
	m.input = kind
	m.textInput.Reset()
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.Focus()
	return textinput.Blink
}

func (m *Model) endInput() {
	m.input = inputNone
	m.pendingName = ""
	m.textInput.Blur()
}

// handleInput handles key messages while a prompt is open.
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endInput()
		return m, nil
	case tea.KeyEnter:
		return m.submitInput()
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.textInput.Value())

	switch m.input {
	case inputWishName:
		if value == "" {
			m.setStatus("Error: " + ledger.ErrEmptyName.Error())
			m.endInput()
			return m, nil
		}
		name := value
		cmd := m.beginInput(inputWishPrice, "price for "+name, "")
		m.pendingName = name
		return m, cmd

	case inputWishPrice:
		price, err := parseAmount(value)
		if err == nil {
			var w ledger.Wish
			w, err = m.runner.AddWish(m.pendingName, price)
			if err == nil {
				m.setStatus("Added: " + w.Name)
			}
		}
		if err != nil {
			m.setStatus("Error: " + err.Error())
		}

	case inputSalary:
		salary, err := parseAmount(value)
		if err == nil {
			_, err = m.runner.UpdateConfig(ledger.ConfigPatch{AnnualSalary: &salary})
		}
		if err != nil {
			m.setStatus("Error: " + err.Error())
		} else {
			m.setStatus("Annual salary: " + currency + ledger.FormatMoney(salary))
		}

	case inputGoal:
		var goal *decimal.Decimal
		if value != "" {
			g, err := parseAmount(value)
			if err != nil {
				m.setStatus("Error: " + err.Error())
				m.endInput()
				return m, nil
			}
			if !g.IsZero() {
				goal = &g
			}
		}
		if err := m.runner.SetSavingsGoal(goal); err != nil {
			m.setStatus("Error: " + err.Error())
		} else if goal == nil {
			m.setStatus("Savings goal cleared")
		} else {
			m.setStatus("Savings goal: " + currency + ledger.FormatMoney(*goal))
		}
	}

	m.endInput()
	return m, nil
}

// reloadConfig re-reads the config file and applies the work settings and
// savings goal. The wishlist is owned by the ledger and is not re-seeded.
func (m *Model) reloadConfig() bool {
	if m.configPath == "" {
		return false
	}
	cfg, err := config.Load(m.configPath)
	if err != nil {
		m.logger.Warn("config reload failed", "path", m.configPath, "error", err)
		m.setStatus("Config error: " + err.Error())
		return false
	}
	if _, err := m.runner.UpdateConfig(ledger.PatchFrom(cfg.Work.Ledger())); err != nil {
		m.setStatus("Config error: " + err.Error())
		return false
	}
	if err := m.runner.SetSavingsGoal(cfg.Goal()); err != nil {
		m.setStatus("Config error: " + err.Error())
		return false
	}
	return true
}

func (m *Model) refresh() {
	m.snap = m.runner.Snapshot()
	m.cursor = clampCursor(m.cursor, len(m.snap.Committed))
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = m.now().Add(3 * time.Second)
}

func commitStatus(c ledger.Commit) string {
	s := fmt.Sprintf("Day paid: %s%s", currency, ledger.FormatMoney(c.Amount))
	if len(c.Completed) > 0 {
		s += " · done: " + strings.Join(c.Completed, ", ")
	}
	if c.Leftover.IsPositive() {
		s += fmt.Sprintf(" · saved %s%s", currency, ledger.FormatMoney(c.Leftover))
	}
	return s
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), currency)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	return d, nil
}
