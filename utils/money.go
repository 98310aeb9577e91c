package utils

import (
	"fmt"
	"strings"
)

// Money amounts are carried as int64 minor units throughout the app, so
// splits reconcile exactly instead of drifting through float division.

// SplitEven divides total across n shares using the largest-remainder rule:
// every share gets total/n and the first total%n shares get one extra unit.
// The shares always sum back to total.
func SplitEven(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}

	base := total / int64(n)
	remainder := total % int64(n)
	if total < 0 && remainder != 0 {
		// Keep remainder non-negative so distribution stays deterministic.
		base--
		remainder += int64(n)
	}

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}

// FormatCurrency renders an amount with es-AR thousand separators,
// e.g. 1234500 -> "$ 1.234.500".
func FormatCurrency(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	return sign + "$ " + strings.Join(groups, ".")
}
