package models

import (
	"fmt"
	"strconv"
)

// Money is an amount in cents.
type Money int64

// Dollars builds a Money value from whole currency units.
func Dollars(d int64) Money {
	return Money(d * 100)
}

// Cents returns the raw amount in cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Float returns the amount in currency units, for display and JSON.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// String formats the amount as "$1,234.50" (negative amounts as "-$12.00").
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(v/100), v%100)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
