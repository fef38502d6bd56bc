package fixedwidth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
)

// buildLine fills each column with a marker character padded to its width,
// producing an exactly 1615-character line.
func buildLine(t *testing.T, fill func(col int, width int) string) string {
	t.Helper()
	var b strings.Builder
	for i, w := range DefaultLayout().Widths() {
		cell := fill(i, w)
		require.LessOrEqual(t, len([]rune(cell)), w)
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", w-len([]rune(cell))))
	}
	line := b.String()
	require.Len(t, []rune(line), LineWidth)
	return line
}

func TestSplitRoundTrip(t *testing.T) {
	line := buildLine(t, func(col, width int) string {
		return strings.Repeat(string(rune('A'+col%26)), width)
	})

	s := NewSplitter(DefaultLayout())
	cols, err := s.SplitRaw(line)
	require.NoError(t, err)
	require.Len(t, cols, ColumnCount)

	// Concatenating the raw columns reproduces the line exactly.
	assert.Equal(t, line, strings.Join(cols, ""))
	for i, w := range DefaultLayout().Widths() {
		assert.Len(t, []rune(cols[i]), w)
	}
}

func TestSplitTrimsTrailingOnly(t *testing.T) {
	line := buildLine(t, func(col, width int) string {
		if col == 2 {
			return "  padded"
		}
		return "x"
	})

	cols, err := NewSplitter(DefaultLayout()).Split(line)
	require.NoError(t, err)
	assert.Equal(t, "  padded", cols[2])
	assert.Equal(t, "x", cols[0])
}

func TestSplitLenientShortLine(t *testing.T) {
	// 500 characters covers the first columns and leaves the rest empty.
	short := strings.Repeat("z", 500)

	cols, err := NewSplitter(DefaultLayout()).SplitRaw(short)
	require.NoError(t, err)
	require.Len(t, cols, ColumnCount)

	assert.Equal(t, strings.Repeat("z", 10), cols[0])
	// Column 15 is [371, 494): fully covered. Column 16 is [494, 548):
	// cut off at 500.
	assert.Len(t, []rune(cols[15]), 123)
	assert.Equal(t, strings.Repeat("z", 6), cols[16])
	for i := 17; i < ColumnCount; i++ {
		assert.Empty(t, cols[i], "column %d", i)
	}
}

func TestSplitLenientLongLine(t *testing.T) {
	long := strings.Repeat("q", LineWidth+40)

	cols, err := NewSplitter(DefaultLayout()).SplitRaw(long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("q", 990), cols[21])
}

func TestSplitStrictRejectsLengthMismatch(t *testing.T) {
	s := NewSplitter(DefaultLayout(), WithStrictLength())

	_, err := s.SplitRaw(strings.Repeat("z", 500))
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeBadLineLength))

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, LineWidth, e.Details["expected"])
	assert.Equal(t, 500, e.Details["got"])

	ok := buildLine(t, func(int, int) string { return "a" })
	_, err = s.SplitRaw(ok)
	assert.NoError(t, err)
}

func TestSplitCountsRunesNotBytes(t *testing.T) {
	// Accented characters are multi-byte; offsets must still be by rune.
	line := buildLine(t, func(col, width int) string {
		if col == 3 {
			return "JOSÉ ÑÁÑEZ"
		}
		return "1"
	})

	cols, err := NewSplitter(DefaultLayout()).Split(line)
	require.NoError(t, err)
	assert.Equal(t, "JOSÉ ÑÁÑEZ", cols[3])
	assert.Equal(t, "1", cols[4])
}
