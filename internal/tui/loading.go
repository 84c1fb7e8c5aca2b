package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingState is a spinner with a message.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a dot spinner with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading..."}
}

// SetMessage changes the text shown next to the spinner.
func (l *LoadingState) SetMessage(msg string) {
	l.message = msg
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading returns the spinner line. A nil state renders plain text.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return fmt.Sprintf("%s %s", loading.spinner.View(), loading.message)
}
