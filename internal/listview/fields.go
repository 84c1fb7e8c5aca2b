package listview

import (
	"cmp"
	"strconv"
	"time"
)

// Number is the set of numeric types NumberField accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Field is a typed accessor for one logical column of T.
// It knows how to render the value as search text and how to order two records.
type Field[T any] struct {
	// Name is the logical field name used as the sort key.
	Name string

	// Searchable reports whether the field takes part in search matching.
	Searchable bool

	text    func(T) string
	compare func(a, b T) int
}

// Text returns the field's value of r as text.
func (f Field[T]) Text(r T) string {
	if f.text == nil {
		return ""
	}
	return f.text(r)
}

// Compare orders a and b by this field: negative when a < b, zero when equal,
// positive when a > b.
func (f Field[T]) Compare(a, b T) int {
	if f.compare == nil {
		return 0
	}
	return f.compare(a, b)
}

// WithSearch returns a copy of f with search participation set to enabled.
func (f Field[T]) WithSearch(enabled bool) Field[T] {
	f.Searchable = enabled
	return f
}

// StringField declares a searchable text field ordered lexically.
func StringField[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name:       name,
		Searchable: true,
		text:       get,
		compare: func(a, b T) int {
			return cmp.Compare(get(a), get(b))
		},
	}
}

// NumberField declares a searchable numeric field ordered numerically.
func NumberField[T any, N Number](name string, get func(T) N) Field[T] {
	return Field[T]{
		Name:       name,
		Searchable: true,
		text: func(r T) string {
			return formatNumber(get(r))
		},
		compare: func(a, b T) int {
			return cmp.Compare(get(a), get(b))
		},
	}
}

// TimeField declares a searchable timestamp field ordered chronologically.
// Its search text is the RFC 3339 form of the timestamp, as the API sends it.
func TimeField[T any](name string, get func(T) time.Time) Field[T] {
	return Field[T]{
		Name:       name,
		Searchable: true,
		text: func(r T) string {
			t := get(r)
			if t.IsZero() {
				return ""
			}
			return t.Format(time.RFC3339)
		},
		compare: func(a, b T) int {
			return get(a).Compare(get(b))
		},
	}
}

func formatNumber[N Number](n N) string {
	// Converting a non-constant 0.5 truncates to zero for integer kinds only.
	half := 0.5
	if N(half) != 0 {
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	}
	if n < 0 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatUint(uint64(n), 10)
}

// Fields is the per-screen table of field accessors, in column order.
type Fields[T any] struct {
	order  []Field[T]
	byName map[string]int
}

// NewFields builds a field table. Later fields with a duplicate name replace
// earlier ones in lookups but keep their column position.
func NewFields[T any](fields ...Field[T]) Fields[T] {
	fs := Fields[T]{
		order:  make([]Field[T], len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	copy(fs.order, fields)
	for i, f := range fs.order {
		fs.byName[f.Name] = i
	}
	return fs
}

// Lookup returns the field with the given name.
func (fs Fields[T]) Lookup(name string) (Field[T], bool) {
	i, ok := fs.byName[name]
	if !ok {
		return Field[T]{}, false
	}
	return fs.order[i], true
}

// Has reports whether name is a declared field.
func (fs Fields[T]) Has(name string) bool {
	_, ok := fs.byName[name]
	return ok
}

// Len returns the number of declared fields.
func (fs Fields[T]) Len() int {
	return len(fs.order)
}

// At returns the i-th field in column order.
func (fs Fields[T]) At(i int) Field[T] {
	return fs.order[i]
}

// Names returns field names in column order.
func (fs Fields[T]) Names() []string {
	names := make([]string, len(fs.order))
	for i, f := range fs.order {
		names[i] = f.Name
	}
	return names
}

// searchable returns the fields that take part in search matching.
func (fs Fields[T]) searchable() []Field[T] {
	out := make([]Field[T], 0, len(fs.order))
	for _, f := range fs.order {
		if f.Searchable {
			out = append(out, f)
		}
	}
	return out
}
