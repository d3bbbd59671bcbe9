package utils

import (
	"fmt"
	"strings"
)

// FormatAmount renders an amount in minor units (Rappen) as a Swiss-style
// currency string, e.g. 123450 -> "CHF 1'234.50". Division by 100 happens
// only here, at the presentation boundary; amounts stay integers everywhere
// else.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	francs := minor / 100
	rappen := minor % 100

	digits := fmt.Sprintf("%d", francs)
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	return fmt.Sprintf("CHF %s%s.%02d", sign, strings.Join(groups, "'"), rappen)
}
