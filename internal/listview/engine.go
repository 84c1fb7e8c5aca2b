package listview

// Engine owns one screen's backing collection and ViewState.
//
// It is not safe for concurrent use: all mutations are expected to come from a
// single UI event loop. Fetching happens outside the engine; see source.Loader
// for the last-write-wins handoff into ReplaceData.
type Engine[T any] struct {
	fields  Fields[T]
	records []T
	state   ViewState
}

// New creates an empty engine on page 1 with the given page size.
func New[T any](fields Fields[T], pageSize int) *Engine[T] {
	return &Engine[T]{
		fields: fields,
		state:  NewViewState(pageSize),
	}
}

// SetSearchTerm stores term verbatim. It does not reset the page; callers that
// want the usual "new search starts at page 1" behaviour call SetPage(1).
func (e *Engine[T]) SetSearchTerm(term string) {
	e.state.SearchTerm = term
}

// RequestSort toggles the sort for key following NextSort.
func (e *Engine[T]) RequestSort(key string) {
	e.state.Sort = NextSort(e.state.Sort, key)
}

// ClearSort removes any explicit ordering.
func (e *Engine[T]) ClearSort() {
	e.state.Sort = nil
}

// SetSort sets the sort spec directly, e.g. from a --sort flag.
func (e *Engine[T]) SetSort(spec *SortSpec) {
	if spec == nil {
		e.state.Sort = nil
		return
	}
	s := *spec
	e.state.Sort = &s
}

// SetPage stores page without range validation.
func (e *Engine[T]) SetPage(page int) {
	e.state.Page = page
}

// ReplaceData swaps the backing collection wholesale. Search, sort and page are
// left untouched.
func (e *Engine[T]) ReplaceData(records []T) {
	e.records = records
}

// Len returns the size of the backing collection.
func (e *Engine[T]) Len() int {
	return len(e.records)
}

// State returns a copy of the current view state.
func (e *Engine[T]) State() ViewState {
	s := e.state
	if s.Sort != nil {
		spec := *s.Sort
		s.Sort = &spec
	}
	return s
}

// Fields returns the screen's field table.
func (e *Engine[T]) Fields() Fields[T] {
	return e.fields
}

// View derives the visible records for the current state.
func (e *Engine[T]) View() DerivedView[T] {
	return Derive(e.records, e.fields, e.state)
}
