package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"github.com/quizgame/quizadmin/internal/listview"
	"github.com/quizgame/quizadmin/internal/logging"
	"github.com/quizgame/quizadmin/internal/quiz"
	"github.com/quizgame/quizadmin/internal/source"
)

// ViewState is the mode of a list screen.
type ViewState int

// View states.
const (
	ViewStateList ViewState = iota
	ViewStateConfirmDelete
	ViewStateQuitting
)

const (
	filterInputCharLimit = 100
	filterInputWidth     = 40
	maxColumnWidth       = 32
	columnGap            = "  "
	sortAsc              = "▲"
	sortDesc             = "▼"
)

// FetchedMsg carries a finished fetch back to the model.
type FetchedMsg[T any] struct {
	Result source.Result[T]
}

// DeletedMsg reports a finished delete.
type DeletedMsg struct {
	ID  string
	Err error
}

// ListModel is an interactive, searchable, sortable and paged list of one
// screen's records.
type ListModel[T any] struct {
	ctx     context.Context
	screen  quiz.Screen[T]
	title   string
	loader  *source.Loader[T]
	engine  *listview.Engine[T]
	printer *message.Printer

	state     ViewState
	search    textinput.Model
	searching bool
	loading   *LoadingState
	cursor    int
	pendingID string

	notice    string
	noticeErr bool

	width int
}

// NewListModel returns a model for screen fed by loader. Fetches and deletes
// run with ctx.
func NewListModel[T any](ctx context.Context, screen quiz.Screen[T], loader *source.Loader[T]) *ListModel[T] {
	return &ListModel[T]{
		ctx:     ctx,
		screen:  screen,
		title:   screen.Title,
		loader:  loader,
		engine:  loader.Engine(),
		printer: quiz.NewPrinter(),
		search:  newSearchInput(),
		loading: NewLoadingState(),
	}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/ "
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// SetTitle overrides the screen title.
func (m *ListModel[T]) SetTitle(title string) {
	m.title = title
}

// Engine returns the engine the model renders.
func (m *ListModel[T]) Engine() *listview.Engine[T] {
	return m.engine
}

// Cursor returns the selected row index within the current page.
func (m *ListModel[T]) Cursor() int {
	return m.cursor
}

// State returns the current mode.
func (m *ListModel[T]) State() ViewState {
	return m.state
}

// Searching reports whether the search input has focus.
func (m *ListModel[T]) Searching() bool {
	return m.searching
}

// Notice returns the transient status line.
func (m *ListModel[T]) Notice() string {
	return m.notice
}

// Selected returns the record under the cursor.
func (m *ListModel[T]) Selected() (T, bool) {
	rows := m.engine.View().Records
	if m.cursor < 0 || m.cursor >= len(rows) {
		var zero T
		return zero, false
	}
	return rows[m.cursor], true
}

// Init starts the spinner and the first fetch. A loader that already holds
// data is shown as is.
func (m *ListModel[T]) Init() tea.Cmd {
	if m.loader.Loaded() {
		return nil
	}
	return tea.Batch(m.loading.Init(), m.Refresh())
}

// Refresh begins a fetch and returns the command that performs it.
func (m *ListModel[T]) Refresh() tea.Cmd {
	token := m.loader.Begin()
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return FetchedMsg[T]{Result: loader.Fetch(ctx, token)}
	}
}

func (m *ListModel[T]) deleteCmd(id string) tea.Cmd {
	src, ctx := m.loader.Source(), m.ctx
	return func() tea.Msg {
		return DeletedMsg{ID: id, Err: src.DeleteOne(ctx, id)}
	}
}

// Update handles messages and updates the model state.
func (m *ListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case FetchedMsg[T]:
		return m.handleFetched(msg)
	case DeletedMsg:
		return m.handleDeleted(msg)
	case tea.KeyMsg:
		switch {
		case msg.String() == keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case m.state == ViewStateConfirmDelete:
			return m.handleConfirmKey(msg)
		case m.searching:
			return m.handleSearchKey(msg)
		default:
			return m.handleListKey(msg)
		}
	}

	var cmds []tea.Cmd
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.loader.Loading() {
		cmds = append(cmds, m.loading.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *ListModel[T]) handleFetched(msg FetchedMsg[T]) (tea.Model, tea.Cmd) {
	err := m.loader.ApplyResult(m.ctx, msg.Result)
	switch {
	case errors.Is(err, source.ErrStale):
		return m, nil
	case err != nil:
		m.setNotice(fmt.Sprintf("refresh failed: %v", err), true)
	case m.noticeErr:
		m.clearNotice()
	}
	m.clampCursor()
	return m, nil
}

func (m *ListModel[T]) handleDeleted(msg DeletedMsg) (tea.Model, tea.Cmd) {
	logger := logging.FromContext(m.ctx)
	if msg.Err != nil {
		logger.Warn().Str("component", "tui").Str("id", msg.ID).Err(msg.Err).Msg("delete failed")
		m.setNotice(fmt.Sprintf("delete %s failed: %v", msg.ID, msg.Err), true)
		return m, nil
	}
	logger.Info().Str("component", "tui").Str("screen", m.screen.Name).Str("id", msg.ID).Msg("record deleted")
	m.setNotice(fmt.Sprintf("deleted %s", msg.ID), false)
	return m, m.Refresh()
}

func (m *ListModel[T]) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingID
	m.state = ViewStateList
	m.pendingID = ""
	if msg.String() == keyYes {
		m.setNotice(fmt.Sprintf("deleting %s...", id), false)
		return m, m.deleteCmd(id)
	}
	m.clearNotice()
	return m, nil
}

func (m *ListModel[T]) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.setSearch(after)
	}
	return m, cmd
}

func (m *ListModel[T]) setSearch(term string) {
	m.engine.SetSearchTerm(term)
	m.engine.SetPage(listview.DefaultPage)
	m.cursor = 0
}

//nolint:gocyclo // One case per key binding.
func (m *ListModel[T]) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	view := m.engine.View()
	page := m.engine.State().Page

	switch key {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.searching = true
		return m, m.search.Focus()
	case keyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.setSearch("")
		}
	case keyLeft, keyH:
		if page > 1 {
			m.goToPage(min(page-1, max(view.TotalPages, 1)))
		}
	case keyRight, keyL:
		if page < view.TotalPages {
			m.goToPage(page + 1)
		}
	case keyFirst:
		m.goToPage(listview.DefaultPage)
	case keyLast:
		m.goToPage(max(view.TotalPages, 1))
	case keyUp, keyK:
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, keyJ:
		if m.cursor < len(view.Records)-1 {
			m.cursor++
		}
	case keyDelete:
		if r, ok := m.Selected(); ok {
			m.pendingID = m.screen.ID(r)
			m.state = ViewStateConfirmDelete
			m.setNotice(fmt.Sprintf("delete %s? (y/n)", m.pendingID), false)
		}
	case keyReload:
		if err := source.Invalidate(m.loader.Source()); err != nil {
			logging.FromContext(m.ctx).Warn().Str("component", "tui").Err(err).Msg("cache invalidation failed")
		}
		return m, tea.Batch(m.loading.Init(), m.Refresh())
	default:
		if n, ok := columnNumber(key); ok {
			if col := m.screen.ColumnKey(n - 1); col != "" {
				m.engine.RequestSort(col)
			}
		}
	}
	return m, nil
}

// columnNumber maps "1".."9" to 1..9.
func columnNumber(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}

func (m *ListModel[T]) goToPage(page int) {
	m.engine.SetPage(page)
	m.cursor = 0
}

func (m *ListModel[T]) clampCursor() {
	n := len(m.engine.View().Records)
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *ListModel[T]) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *ListModel[T]) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}

// View renders the screen.
func (m *ListModel[T]) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	view := m.engine.View()
	state := m.engine.State()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title))
	if m.loader.Loading() {
		b.WriteString("  " + RenderLoading(m.loading))
	}
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderTable(view, state.Sort))

	b.WriteString("\n")
	footer := []string{}
	if pager := renderPager(view.Page, view.TotalPages); pager != "" {
		footer = append(footer, pager)
	}
	footer = append(footer, m.printer.Sprintf("%d items", view.TotalMatching))
	b.WriteString(strings.Join(footer, "   "))
	b.WriteString("\n")

	if m.notice != "" {
		style := InfoStyle
		if m.noticeErr {
			style = CriticalStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(SubtleStyle.Render(helpText))
	b.WriteString("\n")

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m *ListModel[T]) renderTable(view listview.DerivedView[T], sort *listview.SortSpec) string {
	cols := m.screen.Columns
	headers := make([]string, len(cols))
	for i, c := range cols {
		h := fmt.Sprintf("%d %s", i+1, c.Header)
		if sort != nil && sort.Key == c.Key {
			if sort.Direction == listview.Descending {
				h += " " + sortDesc
			} else {
				h += " " + sortAsc
			}
		}
		headers[i] = h
	}

	rows := make([][]string, len(view.Records))
	for i, r := range view.Records {
		rows[i] = m.screen.Row(m.printer, r)
	}

	widths := make([]int, len(cols))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], min(lipgloss.Width(cell), maxColumnWidth))
		}
	}

	var b strings.Builder
	headerCells := make([]string, len(cols))
	for i, h := range headers {
		headerCells[i] = pad(h, widths[i], cols[i].Right)
	}
	b.WriteString(TableHeaderStyle.Render(strings.Join(headerCells, columnGap)))
	b.WriteString("\n")

	if len(rows) == 0 {
		if m.loader.Loaded() || !m.loader.Loading() {
			b.WriteString(SubtleStyle.Render("No matching records."))
			b.WriteString("\n")
		}
		return b.String()
	}

	for ri, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(truncate(cell, maxColumnWidth), widths[i], cols[i].Right)
		}
		line := strings.Join(cells, columnGap)
		if ri == m.cursor {
			line = TableSelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
