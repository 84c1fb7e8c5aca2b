package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
const (
	colorAccent   = lipgloss.Color("57")
	colorSelected = lipgloss.Color("229")
	colorSubtle   = lipgloss.Color("241")
	colorCritical = lipgloss.Color("196")
	colorInfo     = lipgloss.Color("39")
)

// Shared styles.
var (
	//nolint:gochecknoglobals // Style constants.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInfo)
	//nolint:gochecknoglobals // Style constants.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	//nolint:gochecknoglobals // Style constants.
	TableSelectedStyle = lipgloss.NewStyle().Foreground(colorSelected).Background(colorAccent)
	//nolint:gochecknoglobals // Style constants.
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	//nolint:gochecknoglobals // Style constants.
	CriticalStyle = lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	//nolint:gochecknoglobals // Style constants.
	InfoStyle = lipgloss.NewStyle().Foreground(colorInfo)
	//nolint:gochecknoglobals // Style constants.
	CurrentPageStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSelected).Background(colorAccent)
)
