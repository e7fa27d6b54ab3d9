package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple   = lipgloss.Color("#7D56F4")
	ColorGreen    = lipgloss.Color("#25A065")
	ColorRed      = lipgloss.Color("#E05252")
	ColorYellow   = lipgloss.Color("#E5C07B")
	ColorGray     = lipgloss.Color("#626262")
	ColorGrayDim  = lipgloss.Color("#404040")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorOffWhite = lipgloss.Color("#D0D0D0")
	ColorBlue     = lipgloss.Color("#4285F4")
	ColorCyan     = lipgloss.Color("#56B6C2")
	ColorSelectBg = lipgloss.Color("#2D3B4D")
)

// Receipt layout
const (
	receiptWidth = 44
	barWidth     = receiptWidth
	currency     = "¥"
)

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorOffWhite)

	EarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorGrayDim)
)

// Button styles
var (
	StartButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorOffWhite).
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorOffWhite).
				Width(receiptWidth - 2).
				Align(lipgloss.Center)

	StopButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorRed).
			Width(receiptWidth - 2).
			Align(lipgloss.Center)
)

// Progress styles
var (
	BarFillStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	BarLiveStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	BarDoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorGrayDim)

	SavingLiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)
)

// Wishlist styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectBg)

	CompleteStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(ColorGray)

	OpenStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	SettingsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGrayDim).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
		Foreground(ColorPurple).
		Bold(true)
)

const (
	IconPlay     = "▶"
	IconStop     = "■"
	IconComplete = "✓"
	IconOpen     = "○"
	IconActive   = "◐"
	IconCursor   = "›"
	BarFull      = "█"
	BarEmpty     = "░"
)
