package quiz

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/quizgame/quizadmin/internal/listview"
)

// DefaultPageSize is the number of rows per page on every screen.
const DefaultPageSize = 10

// Screen names.
const (
	ScreenScore    = "score"
	ScreenTopic    = "topic"
	ScreenSubtopic = "subtopic"
)

// DisplayTimeLayout is how timestamps are shown in tables.
const DisplayTimeLayout = "2006-01-02 15:04"

// Column is one visible, sortable table column.
type Column struct {
	Key    string
	Header string
	Right  bool
}

// Screen describes how one entity type is listed.
type Screen[T any] struct {
	Name     string
	Title    string
	PageSize int
	Fields   listview.Fields[T]
	Columns  []Column
	// Row formats a record's cells in Columns order.
	Row func(p *message.Printer, r T) []string
	// ID returns the key used for deletes.
	ID func(r T) string
}

// Headers returns the column headers in order.
func (s Screen[T]) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

// ColumnKey returns the field key of the nth column (0-based), or "" when n
// is out of range.
func (s Screen[T]) ColumnKey(n int) string {
	if n < 0 || n >= len(s.Columns) {
		return ""
	}
	return s.Columns[n].Key
}

// NewPrinter returns the number printer used for table cells.
func NewPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// ScreenNames lists the registered screens.
func ScreenNames() []string {
	return []string{ScreenScore, ScreenTopic, ScreenSubtopic}
}

// ScoreScreen lists scores. Every field is searchable, the id included,
// though the id is not shown as a column.
func ScoreScreen() Screen[Score] {
	return Screen[Score]{
		Name:     ScreenScore,
		Title:    "Scores",
		PageSize: DefaultPageSize,
		Fields: listview.NewFields(
			listview.TimeField("createOn", func(s Score) time.Time { return s.CreateOn }),
			listview.StringField("name", func(s Score) string { return s.Name }),
			listview.StringField("username", func(s Score) string { return s.Username }),
			listview.StringField("category", func(s Score) string { return s.Category }),
			listview.StringField("topic", func(s Score) string { return s.Topic }),
			listview.StringField("subtopic", func(s Score) string { return s.Subtopic }),
			listview.NumberField("score", func(s Score) int { return s.Score }),
			listview.StringField("_id", func(s Score) string { return s.ID }),
		),
		Columns: []Column{
			{Key: "createOn", Header: "PLAYED"},
			{Key: "name", Header: "NAME"},
			{Key: "username", Header: "USERNAME"},
			{Key: "category", Header: "CATEGORY"},
			{Key: "topic", Header: "TOPIC"},
			{Key: "subtopic", Header: "SUBTOPIC"},
			{Key: "score", Header: "SCORE", Right: true},
		},
		Row: func(p *message.Printer, s Score) []string {
			return []string{
				formatTime(s.CreateOn),
				s.Name,
				s.Username,
				s.Category,
				s.Topic,
				s.Subtopic,
				p.Sprintf("%d", s.Score),
			}
		},
		ID: func(s Score) string { return s.ID },
	}
}

// TopicScreen lists topics.
func TopicScreen() Screen[Topic] {
	return Screen[Topic]{
		Name:     ScreenTopic,
		Title:    "Topics",
		PageSize: DefaultPageSize,
		Fields: listview.NewFields(
			listview.StringField("topicName", func(t Topic) string { return t.TopicName }),
			listview.StringField("category", func(t Topic) string { return t.Category }),
			listview.StringField("_id", func(t Topic) string { return t.ID }).WithSearch(false),
		),
		Columns: []Column{
			{Key: "topicName", Header: "TOPIC"},
			{Key: "category", Header: "CATEGORY"},
			{Key: "_id", Header: "ID"},
		},
		Row: func(_ *message.Printer, t Topic) []string {
			return []string{t.TopicName, t.Category, t.ID}
		},
		ID: func(t Topic) string { return t.ID },
	}
}

// SubtopicScreen lists the subtopics of one topic. Only the name is
// searchable.
func SubtopicScreen() Screen[Subtopic] {
	return Screen[Subtopic]{
		Name:     ScreenSubtopic,
		Title:    "Subtopics",
		PageSize: DefaultPageSize,
		Fields: listview.NewFields(
			listview.StringField("subtopicName", func(s Subtopic) string { return s.SubtopicName }),
			listview.NumberField("time", func(s Subtopic) int { return s.Time }).WithSearch(false),
			listview.StringField("_id", func(s Subtopic) string { return s.ID }).WithSearch(false),
		),
		Columns: []Column{
			{Key: "subtopicName", Header: "SUBTOPIC"},
			{Key: "time", Header: "TIME (MIN)", Right: true},
			{Key: "_id", Header: "ID"},
		},
		Row: func(p *message.Printer, s Subtopic) []string {
			return []string{s.SubtopicName, p.Sprintf("%d", s.Time), s.ID}
		},
		ID: func(s Subtopic) string { return s.ID },
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DisplayTimeLayout)
}

// TopicTitle is the subtopic screen heading for a topic.
func TopicTitle(t Topic) string {
	if t.Category == "" {
		return fmt.Sprintf("Subtopics of %s", t.TopicName)
	}
	return fmt.Sprintf("Subtopics of %s (%s)", t.TopicName, t.Category)
}
