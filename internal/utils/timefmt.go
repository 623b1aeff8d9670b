package utils

import (
	"strconv"
	"time"
)

// FormatLongDateTime renders t as "January 2nd 2006, 3:04 pm".
func FormatLongDateTime(t time.Time) string {
	return t.Format("January") + " " + Ordinal(t.Day()) + t.Format(" 2006, 3:04 pm")
}

// Ordinal returns n with its English ordinal suffix (1st, 2nd, 11th, 23rd).
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
