package listview_test

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgame/quizadmin/internal/listview"
)

type row struct {
	ID    int
	Name  string
	Score int
	At    time.Time
}

func rowFields() listview.Fields[row] {
	return listview.NewFields(
		listview.NumberField("id", func(r row) int { return r.ID }).WithSearch(false),
		listview.StringField("name", func(r row) string { return r.Name }),
		listview.NumberField("score", func(r row) int { return r.Score }),
		listview.TimeField("at", func(r row) time.Time { return r.At }),
	)
}

func makeRows(n int) []row {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{
			ID:    i + 1,
			Name:  fmt.Sprintf("user-%02d", i+1),
			Score: (i * 7) % 5,
			At:    base.Add(time.Duration(i) * time.Hour),
		}
	}
	return rows
}

func ids(rows []row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestNextSort(t *testing.T) {
	tests := []struct {
		name    string
		current *listview.SortSpec
		key     string
		want    listview.SortSpec
	}{
		{
			name: "no current sort",
			key:  "score",
			want: listview.SortSpec{Key: "score", Direction: listview.Ascending},
		},
		{
			name:    "same key ascending flips",
			current: &listview.SortSpec{Key: "score", Direction: listview.Ascending},
			key:     "score",
			want:    listview.SortSpec{Key: "score", Direction: listview.Descending},
		},
		{
			name:    "same key descending goes back to ascending",
			current: &listview.SortSpec{Key: "score", Direction: listview.Descending},
			key:     "score",
			want:    listview.SortSpec{Key: "score", Direction: listview.Ascending},
		},
		{
			name:    "different key resets to ascending",
			current: &listview.SortSpec{Key: "score", Direction: listview.Ascending},
			key:     "name",
			want:    listview.SortSpec{Key: "name", Direction: listview.Ascending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listview.NextSort(tt.current, tt.key)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestEngine_RequestSortCycle(t *testing.T) {
	e := listview.New(rowFields(), 10)

	var seen []listview.Direction
	for range 3 {
		e.RequestSort("score")
		seen = append(seen, e.State().Sort.Direction)
	}

	assert.Equal(t, []listview.Direction{
		listview.Ascending, listview.Descending, listview.Ascending,
	}, seen)
}

func TestEngine_RequestSortScoreThenName(t *testing.T) {
	e := listview.New(rowFields(), 10)
	e.SetSort(&listview.SortSpec{Key: "score", Direction: listview.Ascending})

	e.RequestSort("score")
	assert.Equal(t, listview.SortSpec{Key: "score", Direction: listview.Descending}, *e.State().Sort)

	e.RequestSort("name")
	assert.Equal(t, listview.SortSpec{Key: "name", Direction: listview.Ascending}, *e.State().Sort)
}

func TestEngine_TwelveItemsTwoPages(t *testing.T) {
	e := listview.New(rowFields(), 10)
	e.ReplaceData(makeRows(12))

	view := e.View()
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(view.Records))
	assert.Equal(t, 12, view.TotalMatching)
	assert.Equal(t, 2, view.TotalPages)
	assert.False(t, view.HasPrevious())
	assert.True(t, view.HasNext())

	e.SetPage(2)
	view = e.View()
	assert.Equal(t, []int{11, 12}, ids(view.Records))
	assert.True(t, view.HasPrevious())
	assert.False(t, view.HasNext())
}

func TestEngine_SearchIsCaseInsensitive(t *testing.T) {
	rows := []row{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	}

	for _, term := range []string{"lic", "LIC", "Lic"} {
		t.Run(term, func(t *testing.T) {
			e := listview.New(rowFields(), 10)
			e.ReplaceData(rows)
			e.SetSearchTerm(term)

			view := e.View()
			assert.Equal(t, []int{1}, ids(view.Records))
			assert.Equal(t, 1, view.TotalMatching)
		})
	}
}

func TestEngine_SearchTermNotTrimmed(t *testing.T) {
	e := listview.New(rowFields(), 10)
	e.ReplaceData([]row{{ID: 1, Name: "Alice"}})
	e.SetSearchTerm(" alice")

	assert.Equal(t, " alice", e.State().SearchTerm)
	assert.Empty(t, e.View().Records)
}

func TestEngine_SearchSkipsUnsearchableFields(t *testing.T) {
	e := listview.New(rowFields(), 10)
	e.ReplaceData([]row{{ID: 42, Name: "Alice"}, {ID: 7, Name: "Bob"}})
	e.SetSearchTerm("42")

	assert.Empty(t, e.View().Records, "id is not searchable")
}

func TestEngine_SearchMatchesNumbersAndTimes(t *testing.T) {
	e := listview.New(rowFields(), 10)
	e.ReplaceData(makeRows(3))

	e.SetSearchTerm("2024-05-01T10")
	assert.Equal(t, []int{2}, ids(e.View().Records))

	e.ReplaceData([]row{{ID: 1, Name: "a", Score: 17}, {ID: 2, Name: "b", Score: 3}})
	e.SetSearchTerm("17")
	assert.Equal(t, []int{1}, ids(e.View().Records))
}

func TestEngine_ReplaceDataKeepsState(t *testing.T) {
	e := listview.New(rowFields(), 10)
	e.ReplaceData(makeRows(30))
	e.SetSearchTerm("user")
	e.RequestSort("name")
	e.SetPage(3)
	require.Len(t, e.View().Records, 10)

	e.ReplaceData(makeRows(5))

	state := e.State()
	assert.Equal(t, "user", state.SearchTerm)
	assert.Equal(t, 3, state.Page)
	require.NotNil(t, state.Sort)
	assert.Equal(t, "name", state.Sort.Key)

	view := e.View()
	assert.Empty(t, view.Records, "page past the end derives an empty slice")
	assert.NotNil(t, view.Records)
	assert.Equal(t, 5, view.TotalMatching)
	assert.Equal(t, 1, view.TotalPages)
}

func TestEngine_StateIsACopy(t *testing.T) {
	e := listview.New(rowFields(), 10)
	e.RequestSort("name")

	s := e.State()
	s.Sort.Direction = listview.Descending
	s.Page = 9

	assert.Equal(t, listview.Ascending, e.State().Sort.Direction)
	assert.Equal(t, 1, e.State().Page)
}

func TestFilter_EmptyTermKeepsOrder(t *testing.T) {
	rows := makeRows(7)
	got := listview.Filter(rows, rowFields(), "")

	assert.Equal(t, rows, got)
	got[0].Name = "changed"
	assert.Equal(t, "user-01", rows[0].Name, "filter must not alias its input")
}

func TestFilter_SubsetProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	fields := rowFields()
	letters := []string{"a", "b", "c", "A", "B", "ab", "BA", ""}

	for i := range 50 {
		rows := make([]row, rng.IntN(20))
		for j := range rows {
			var sb strings.Builder
			for range rng.IntN(4) {
				sb.WriteString(letters[rng.IntN(len(letters))])
			}
			rows[j] = row{ID: j, Name: sb.String(), Score: rng.IntN(100)}
		}
		term := letters[rng.IntN(len(letters))]

		got := listview.Filter(rows, fields, term)

		assert.LessOrEqual(t, len(got), len(rows), "case %d", i)
		needle := strings.ToLower(term)
		for _, r := range got {
			assert.Contains(t, rows, r)
			hit := strings.Contains(strings.ToLower(r.Name), needle) ||
				strings.Contains(fmt.Sprint(r.Score), needle) ||
				strings.Contains(strings.ToLower(fields.At(3).Text(r)), needle)
			assert.True(t, hit, "case %d: %+v does not contain %q", i, r, term)
		}
	}
}

func TestSort_IsStablePermutation(t *testing.T) {
	rows := makeRows(20)
	fields := rowFields()

	for _, dir := range []listview.Direction{listview.Ascending, listview.Descending} {
		t.Run(dir.String(), func(t *testing.T) {
			sorted := listview.Sort(rows, fields, &listview.SortSpec{Key: "score", Direction: dir})

			assert.ElementsMatch(t, rows, sorted)
			for i := 1; i < len(sorted); i++ {
				prev, cur := sorted[i-1], sorted[i]
				if dir == listview.Ascending {
					require.LessOrEqual(t, prev.Score, cur.Score)
				} else {
					require.GreaterOrEqual(t, prev.Score, cur.Score)
				}
				if prev.Score == cur.Score {
					assert.Less(t, prev.ID, cur.ID, "ties keep original order")
				}
			}
		})
	}
}

func TestSort_NilAndUnknownKeyKeepOrder(t *testing.T) {
	rows := makeRows(5)
	fields := rowFields()

	assert.Equal(t, rows, listview.Sort(rows, fields, nil))
	assert.Equal(t, rows, listview.Sort(rows, fields, &listview.SortSpec{Key: "missing"}))
}

func TestSort_Time(t *testing.T) {
	rows := makeRows(4)
	sorted := listview.Sort(rows, rowFields(), &listview.SortSpec{Key: "at", Direction: listview.Descending})
	assert.Equal(t, []int{4, 3, 2, 1}, ids(sorted))
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "page 1", page: 1, pageSize: 3, want: []int{0, 1, 2}},
		{name: "page 2", page: 2, pageSize: 3, want: []int{3, 4, 5}},
		{name: "last partial page", page: 4, pageSize: 3, want: []int{9}},
		{name: "out of bounds page", page: 10, pageSize: 3, want: []int{}},
		{name: "page zero", page: 0, pageSize: 3, want: []int{}},
		{name: "negative page", page: -2, pageSize: 3, want: []int{}},
		{name: "pagination disabled", page: 1, pageSize: 0, want: items},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listview.Paginate(items, tt.page, tt.pageSize))
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 10, 2},
		{101, 10, 11},
		{5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.pageSize), func(t *testing.T) {
			assert.Equal(t, tt.want, listview.TotalPages(tt.total, tt.pageSize))
		})
	}
}

func TestDerive_NoMatchesHasZeroPages(t *testing.T) {
	view := listview.Derive(makeRows(3), rowFields(), listview.ViewState{
		SearchTerm: "nobody",
		Page:       1,
		PageSize:   10,
	})

	assert.Equal(t, 0, view.TotalMatching)
	assert.Equal(t, 0, view.TotalPages)
	assert.Empty(t, view.Records)
	assert.False(t, view.HasNext())
	assert.False(t, view.HasPrevious())
}

func TestDerive_FilterBeforeSortBeforePage(t *testing.T) {
	rows := []row{
		{ID: 1, Name: "ann", Score: 3},
		{ID: 2, Name: "bob", Score: 9},
		{ID: 3, Name: "anna", Score: 1},
		{ID: 4, Name: "hannah", Score: 5},
	}

	view := listview.Derive(rows, rowFields(), listview.ViewState{
		SearchTerm: "ann",
		Sort:       &listview.SortSpec{Key: "score", Direction: listview.Descending},
		Page:       1,
		PageSize:   2,
	})

	assert.Equal(t, []int{4, 1}, ids(view.Records))
	assert.Equal(t, 3, view.TotalMatching)
	assert.Equal(t, 2, view.TotalPages)
}

func TestParseDirection(t *testing.T) {
	d, err := listview.ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, listview.Descending, d)

	d, err = listview.ParseDirection("asc")
	require.NoError(t, err)
	assert.Equal(t, listview.Ascending, d)

	_, err = listview.ParseDirection("up")
	require.ErrorIs(t, err, listview.ErrInvalidDirection)
}

func TestNumberField_Text(t *testing.T) {
	type m struct{ F float64 }
	f := listview.NumberField("f", func(r m) float64 { return r.F })
	assert.Equal(t, "1.5", f.Text(m{F: 1.5}))
	assert.Equal(t, "3", f.Text(m{F: 3}))

	type minutes int
	type s struct{ T minutes }
	g := listview.NumberField("t", func(r s) minutes { return r.T })
	assert.Equal(t, "-4", g.Text(s{T: -4}))
	assert.Equal(t, "15", g.Text(s{T: 15}))
}
