// Package fixedwidth parses the 1615-character fixed-width customer files
// delivered by the insurer. A line is cut into 22 columns by character
// offsets; column semantics live in the transform package.
package fixedwidth

// Interval is a half-open [Start, End) character range within a line.
type Interval struct {
	Start int
	End   int
}

// Width returns the number of characters the interval covers.
func (i Interval) Width() int { return i.End - i.Start }

const (
	// LineWidth is the nominal width of one record line.
	LineWidth = 1615

	// ColumnCount is the number of fixed-width columns per line.
	ColumnCount = 22
)

// defaultIntervals is the single hardcoded schema of the source files.
var defaultIntervals = []Interval{
	{0, 10}, {10, 13}, {13, 28}, {28, 128}, {128, 143}, {143, 165}, {165, 187},
	{187, 201}, {201, 221}, {221, 226}, {226, 241}, {241, 256}, {256, 271},
	{271, 321}, {321, 371}, {371, 494}, {494, 548}, {548, 568}, {568, 575},
	{575, 615}, {615, 625}, {625, 1615},
}

// Layout is an ordered, immutable set of column intervals.
type Layout struct {
	intervals []Interval
}

// NewLayout validates and builds a layout. The interval count and total
// width are startup invariants: a mismatch means the binary was built with
// a broken schema and must not parse anything.
func NewLayout(intervals []Interval) (*Layout, error) {
	if len(intervals) != ColumnCount {
		return nil, ErrBadLayout().
			WithDetail("expected_columns", ColumnCount).
			WithDetail("got_columns", len(intervals))
	}
	total := 0
	for _, iv := range intervals {
		if iv.Width() <= 0 {
			return nil, ErrBadLayout().
				WithDetail("interval", iv).
				WithDetail("reason", "non-positive width")
		}
		total += iv.Width()
	}
	if total != LineWidth {
		return nil, ErrBadLayout().
			WithDetail("expected_width", LineWidth).
			WithDetail("got_width", total)
	}

	copied := make([]Interval, len(intervals))
	copy(copied, intervals)
	return &Layout{intervals: copied}, nil
}

var defaultLayout = func() *Layout {
	l, err := NewLayout(defaultIntervals)
	if err != nil {
		panic(err)
	}
	return l
}()

// DefaultLayout returns the process-wide layout of the source files. It is
// read-only and safe for concurrent use.
func DefaultLayout() *Layout { return defaultLayout }

// Columns returns the number of intervals.
func (l *Layout) Columns() int { return len(l.intervals) }

// Widths returns the per-column widths in order.
func (l *Layout) Widths() []int {
	out := make([]int, len(l.intervals))
	for i, iv := range l.intervals {
		out[i] = iv.Width()
	}
	return out
}

// Intervals returns a copy of the column intervals in order.
func (l *Layout) Intervals() []Interval {
	out := make([]Interval, len(l.intervals))
	copy(out, l.intervals)
	return out
}
