// Package format provides fixed-width numeric formatting for tabular CLI
// output.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatToFixedWidthString renders n right-aligned in a w character column.
func FloatToFixedWidthString(n float64, w int) string {
	wStr := strconv.Itoa(w)
	s := fmt.Sprintf("%"+wStr+"."+wStr+"f", n)
	trimed := strings.TrimRight(s[:w], "0")
	trimed = strings.TrimRight(trimed, ".")
	return strings.Repeat(" ", w-len(trimed)) + trimed
}

// VectorToFixedWidthString renders the components of a vector in w
// character columns.
func VectorToFixedWidthString(v [3]float64, w int) string {
	parts := make([]string, 3)
	for i, n := range v {
		parts[i] = FloatToFixedWidthString(n, w)
	}
	return strings.Join(parts, " ")
}
