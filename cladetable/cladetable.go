// Package cladetable renders aggregated clade sums as a tab-delimited table.
package cladetable

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/cladesum/aggregate"
	"github.com/carbocation/pfx"
)

const (
	DefaultLabel  = "Clade"
	DefaultPrefix = "ANIsp_"
	Delim         = "\t"
)

type Options struct {
	// Label heads the first column. Defaults to DefaultLabel.
	Label string

	// Prefix is prepended to the zero-padded group index. nil means
	// DefaultPrefix; a pointer to "" gives bare numeric labels.
	Prefix *string
}

func (o Options) label() string {
	if o.Label == "" {
		return DefaultLabel
	}

	return o.Label
}

func (o Options) prefix() string {
	if o.Prefix == nil {
		return DefaultPrefix
	}

	return *o.Prefix
}

// CladeName is the row label for group index g, e.g. ANIsp_007.
func CladeName(prefix string, g int) string {
	return fmt.Sprintf("%s%03d", prefix, g)
}

// Write prints the header line and then one line per group that received at
// least one row, in ascending group order. Groups without rows are skipped,
// not zero-filled.
func Write(w io.Writer, t *aggregate.Table, opts Options) error {
	prefix := opts.prefix()

	header := append([]string{opts.label()}, t.Header...)
	if _, err := fmt.Fprintln(w, strings.Join(header, Delim)); err != nil {
		return pfx.Err(err)
	}

	for g, max := 0, t.MaxIndex(); g <= max; g++ {
		sums, exists := t.Sums[g]
		if !exists {
			continue
		}

		row := make([]string, 0, len(sums)+1)
		row = append(row, CladeName(prefix, g))
		for _, v := range sums {
			row = append(row, FormatValue(v))
		}

		if _, err := fmt.Fprintln(w, strings.Join(row, Delim)); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}

// FormatValue prints v with the shortest digits that round-trip, always
// keeping a fractional part (4 -> "4.0"). Magnitudes below 1e-4 or at least
// 1e16 use exponent form such as "1.0e-05".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	if abs := math.Abs(v); v != 0 && (abs < 1e-4 || abs >= 1e16) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exponent, _ := strings.Cut(s, "e")
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		return mantissa + "e" + exponent
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
