package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stefanpenner/receipt/pkg/ledger"
)

const minWidth = receiptWidth + 4
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}
	if m.showDeleteConfirm {
		return placeOverlay(m.renderDeleteModal(), w, h)
	}

	sections := []string{
		m.renderHeader(),
		divider(),
		m.renderSession(),
		divider(),
		m.renderGoals(),
		m.renderTotals(),
		divider(),
	}
	if m.showSettings {
		sections = append(sections, m.renderSettings())
	}
	sections = append(sections, m.renderStatus(), m.renderFooter())

	receipt := strings.Join(sections, "\n")
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, receipt)
}

func (m Model) renderHeader() string {
	lines := []string{
		center(TitleStyle.Render("SALARY RECEIPT")),
		center(SubtitleStyle.Render("PERSONAL LEDGER")),
		center(SubtitleStyle.Render(m.now().Format("2006-01-02 15:04:05"))),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSession() string {
	s := m.snap.Session
	var b strings.Builder

	b.WriteString(spread(LabelStyle.Render("WORKED TODAY"), LabelStyle.Render("EARNING LIVE")))
	b.WriteString("\n")
	b.WriteString(spread(
		ValueStyle.Render(ledger.FormatElapsed(s.ElapsedSeconds)),
		EarningStyle.Render(money(s.Earnings)),
	))
	b.WriteString("\n")

	if s.IsRunning() {
		b.WriteString(StopButtonStyle.Render(IconStop + " END WORK DAY"))
	} else {
		b.WriteString(StartButtonStyle.Render(IconPlay + " START WORK DAY"))
	}
	b.WriteString("\n")
	b.WriteString(spread(
		FooterStyle.Render(money(m.snap.PerSecondRate)+"/s"),
		FooterStyle.Render("day "+money(m.snap.DailyTarget)),
	))
	return b.String()
}

func (m Model) renderGoals() string {
	var lines []string
	lines = append(lines, LabelStyle.Bold(true).Render("GOAL PROGRESS"))

	if w, ok := m.snap.ActiveWish(); ok {
		lines = append(lines,
			spread(LabelStyle.Render("NOW CHASING"), LabelStyle.Render("PRICE")),
			spread(ValueStyle.Render(truncate(w.Name, receiptWidth-16)), ValueStyle.Render(money(w.Price))),
			spread(LabelStyle.Render("LIVE PROGRESS"), LabelStyle.Render(fmt.Sprintf("%.2f%%", w.Progress()))),
			renderBar(w.Progress(), barStyle(m.snap.Session.IsRunning(), false)),
		)
	}

	savingLive := m.snap.Active == ledger.SavingsTarget
	title := "FUTURE RESERVE"
	if savingLive {
		title = "FOCUS: SAVINGS MODE"
	}
	right := ""
	if savingLive && m.snap.Session.IsRunning() {
		right = SavingLiveStyle.Render("SAVING LIVE")
	}
	lines = append(lines,
		"",
		spread(LabelStyle.Bold(true).Render(title), right),
		spread(LabelStyle.Render("TOTAL SAVED"), ValueStyle.Render(money(m.snap.RealTimeSavings))),
	)

	if m.snap.HasSavingsTarget && m.snap.Stats.SavingsGoal != nil {
		pct := m.snap.SavingsProgress
		pctStyle := LabelStyle
		if pct > 100 {
			pctStyle = SavingLiveStyle
		}
		lines = append(lines,
			spread(LabelStyle.Render("GOAL "+money(*m.snap.Stats.SavingsGoal)), pctStyle.Render(fmt.Sprintf("%.2f%%", pct))),
			renderBar(pct, barStyle(false, pct > 100)),
		)
	} else {
		lines = append(lines, FooterStyle.Italic(true).Render("no savings goal set"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTotals() string {
	label, amount := "THIS WEEK TOTAL", m.snap.DisplayWeek
	if m.showMonth {
		label, amount = "THIS MONTH TOTAL", m.snap.DisplayMonth
	}
	lines := []string{
		"",
		spread(LabelStyle.Render("TODAY TOTAL"), ValueStyle.Render(money(m.snap.DisplayToday))),
		spread(LabelStyle.Underline(true).Render(label)+FooterStyle.Render(" ›t"), ValueStyle.Render(money(amount))),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSettings() string {
	var lines []string

	cfg := m.snap.Config
	lines = append(lines,
		LabelStyle.Bold(true).Render("SETTINGS"),
		spread(LabelStyle.Render("annual salary ($)"), ValueStyle.Render(money(cfg.AnnualSalary))),
		spread(LabelStyle.Render("days / year · hours / day"), ValueStyle.Render(cfg.DaysPerYear.String()+" · "+cfg.HoursPerDay.String())),
	)
	goal := "none"
	if g := m.snap.Stats.SavingsGoal; g != nil {
		goal = money(*g)
	}
	lines = append(lines, spread(LabelStyle.Render("savings goal (g)"), ValueStyle.Render(goal)), "")

	lines = append(lines, LabelStyle.Bold(true).Render("WISHLIST"))
	items := BuildWishItems(m.snap)
	if len(items) == 0 {
		lines = append(lines, FooterStyle.Render("No wishes yet. Press 'a' to add one."))
	}
	for i, item := range items {
		lines = append(lines, m.renderWishItem(item, i == m.cursor))
	}

	if m.input != inputNone {
		lines = append(lines, InputPromptStyle.Render("> ")+m.textInput.View())
	}

	return SettingsStyle.Width(receiptWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderWishItem(item WishItem, isSelected bool) string {
	icon := OpenStyle.Render(IconOpen)
	nameStyle := OpenStyle
	switch {
	case item.Wish.Completed:
		icon = BarDoneStyle.Render(IconComplete)
		nameStyle = CompleteStyle
	case item.IsActive:
		icon = EarningStyle.Render(IconActive)
		nameStyle = EarningStyle
	}
	cursor := " "
	if isSelected {
		cursor = IconCursor
	}

	inner := receiptWidth - 6
	name := fmt.Sprintf("%d. %s", item.Index, item.Wish.Name)
	right := money(item.Wish.Price)
	name = truncate(name, inner-lipgloss.Width(right)-4)

	line := cursor + icon + " " + nameStyle.Render(name)
	gap := inner - lipgloss.Width(line) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line += strings.Repeat(" ", gap) + FooterStyle.Render(right)

	if isSelected {
		return SelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderStatus() string {
	if m.statusMsg != "" && m.now().Before(m.statusTimeout) {
		return StatusStyle.Render(truncate(m.statusMsg, receiptWidth))
	}
	return ""
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp()
	switch {
	case m.input != inputNone:
		help = "enter confirm  esc cancel"
	case m.showSettings:
		help = "↑↓ select  a add  d delete  $ salary  g goal  s close"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(14)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Today/week/month are running totals; they do not reset."))
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Delete Wish"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete '%s'? Money already put into it is not returned.\n\n", m.deleteName))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

// Helper functions

func money(d decimal.Decimal) string {
	return currency + ledger.FormatMoney(d)
}

func divider() string {
	return DividerStyle.Render(strings.Repeat("- ", receiptWidth/2))
}

func center(s string) string {
	return lipgloss.PlaceHorizontal(receiptWidth, lipgloss.Center, s)
}

// spread places left and right at the edges of a receipt line.
func spread(left, right string) string {
	gap := receiptWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func barStyle(live, over bool) lipgloss.Style {
	switch {
	case over:
		return BarDoneStyle
	case live:
		return BarLiveStyle
	default:
		return BarFillStyle
	}
}

// renderBar draws a progress bar; percent is clamped to [0, 100].
func renderBar(percent float64, fill lipgloss.Style) string {
	return fill.Render(strings.Repeat(BarFull, barCells(percent, barWidth))) +
		BarEmptyStyle.Render(strings.Repeat(BarEmpty, barWidth-barCells(percent, barWidth)))
}

func barCells(percent float64, width int) int {
	if math.IsNaN(percent) || percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return width
	}
	return int(math.Round(percent / 100 * float64(width)))
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
