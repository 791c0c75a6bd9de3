package chart

import (
	"fmt"
	"strings"
)

// Period is a chart look-back window.
type Period string

const (
	PeriodOneDay      Period = "1d"
	PeriodOneWeek     Period = "1w"
	PeriodOneMonth    Period = "1m"
	PeriodThreeMonths Period = "3m"
	PeriodOneYear     Period = "1y"
	PeriodFiveYears   Period = "5y"
	PeriodMax         Period = "max"
)

// Days returns the period length in days. The second return is false for
// PeriodMax, which has no fixed length.
func (p Period) Days() (int, bool) {
	switch p {
	case PeriodOneDay:
		return 1, true
	case PeriodOneWeek:
		return 7, true
	case PeriodOneMonth:
		return 30, true
	case PeriodThreeMonths:
		return 90, true
	case PeriodOneYear:
		return 365, true
	case PeriodFiveYears:
		return 1825, true
	default:
		return 0, false
	}
}

// ParsePeriod parses a period from its string form. It is lenient about case.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(s) {
	case "1d", "day":
		return PeriodOneDay, nil
	case "1w", "week":
		return PeriodOneWeek, nil
	case "1m", "month":
		return PeriodOneMonth, nil
	case "3m":
		return PeriodThreeMonths, nil
	case "1y", "year":
		return PeriodOneYear, nil
	case "5y":
		return PeriodFiveYears, nil
	case "max", "all":
		return PeriodMax, nil
	default:
		return PeriodMax, fmt.Errorf("unknown period %q", s)
	}
}
