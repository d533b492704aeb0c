package aggregate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(?:_\d+)*)?(\.\d+(?:_\d+)*)?(?:[eE][+-]?\d+(?:_\d+)*)?`)

// ParseValue converts an abundance cell to a float. It never fails: leading
// whitespace is skipped, the longest leading decimal number is used, and text
// with no leading number (NA, empty, NaN, Inf) is 0.
func ParseValue(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	m := numericPrefix.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(m[0], "_", ""), 64)
	if errors.Is(err, strconv.ErrRange) {
		// Overflow to ±Inf, underflow to 0
		return f
	} else if err != nil {
		return 0
	}

	return f
}
