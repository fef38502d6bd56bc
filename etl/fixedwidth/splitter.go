package fixedwidth

import "strings"

// Splitter cuts one line into the layout's columns.
//
// By default it is lenient, matching the historical loader: a short line
// yields empty strings for the columns beyond its end, and characters past
// the layout width are discarded. Strict mode instead rejects any line
// whose length differs from the layout width.
type Splitter struct {
	layout *Layout
	strict bool
}

// SplitterOption configures a Splitter.
type SplitterOption func(*Splitter)

// WithStrictLength makes length mismatches an error instead of being
// silently tolerated.
func WithStrictLength() SplitterOption {
	return func(s *Splitter) { s.strict = true }
}

// NewSplitter builds a splitter for the given layout.
func NewSplitter(layout *Layout, opts ...SplitterOption) *Splitter {
	s := &Splitter{layout: layout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SplitRaw cuts the line into untrimmed column substrings. Offsets are in
// characters, not bytes, so accented data does not shift columns.
func (s *Splitter) SplitRaw(line string) ([]string, error) {
	runes := []rune(line)
	if s.strict && len(runes) != LineWidth {
		return nil, ErrBadLineLength().
			WithDetail("expected", LineWidth).
			WithDetail("got", len(runes))
	}

	cols := make([]string, 0, s.layout.Columns())
	for _, iv := range s.layout.intervals {
		start, end := iv.Start, iv.End
		if start > len(runes) {
			start = len(runes)
		}
		if end > len(runes) {
			end = len(runes)
		}
		cols = append(cols, string(runes[start:end]))
	}
	return cols, nil
}

// Split cuts the line into columns with trailing whitespace removed.
// Leading whitespace is kept: right-aligned values keep their padding until
// a field-specific trim downstream.
func (s *Splitter) Split(line string) ([]string, error) {
	cols, err := s.SplitRaw(line)
	if err != nil {
		return nil, err
	}
	for i, c := range cols {
		cols[i] = strings.TrimRight(c, " \t\r")
	}
	return cols, nil
}
