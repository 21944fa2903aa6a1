package meter

import "golang.org/x/exp/constraints"

func ceilDiv[T constraints.Integer](a, b T) T {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Rows is the number of grid rows needed for count cells in columns columns.
func Rows(count, columns int) int {
	if columns < 1 {
		columns = 1
	}
	return ceilDiv(count, columns)
}

// Cell maps pool index i to its grid position. Cells fill column-major:
// each column's rows are used before moving to the next column.
func Cell(i, nrows int) (col, row int) {
	if nrows < 1 {
		return 0, i
	}
	return i / nrows, i % nrows
}

// ColumnOffset is the x offset of column col when width is split into
// columns of base width and the first rem columns absorb one extra unit.
func ColumnOffset(col, base, rem int) int {
	return base*col + min(col, rem)
}

// ColumnWidths returns the span of each column between consecutive
// offsets. The spans always sum to width.
func ColumnWidths(width, columns int) []int {
	if columns < 1 {
		return nil
	}
	base, rem := width/columns, width%columns
	widths := make([]int, columns)
	for c := range widths {
		widths[c] = ColumnOffset(c+1, base, rem) - ColumnOffset(c, base, rem)
	}
	return widths
}
