package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Date field reasons. These texts are part of the API contract.
var (
	errDateFormat      = errors.New("Invalid date format. Must be DD-MM-YYYY.")
	errDateYear        = errors.New("Year must be 1900 or later.")
	errDateMonth       = errors.New("Month must be between 1 and 12.")
	errFebLeapDay      = errors.New("Invalid day for February in a leap year. Must be between 1 and 29.")
	errFebDay          = errors.New("Invalid day for February in a non-leap year. Must be between 1 and 28.")
	thirtyOneDayMonths = map[int]bool{1: true, 3: true, 5: true, 7: true, 8: true, 10: true, 12: true}
)

// ValidateDate checks that s is a calendar-valid DD-MM-YYYY date with year >= 1900.
// The first failing check determines the returned reason.
func ValidateDate(s string) error {
	day, month, year, ok := splitDate(s)
	if !ok {
		return NewValidationError(errDateFormat)
	}

	if year < 1900 {
		return NewValidationError(errDateYear)
	}
	if month < 1 || month > 12 {
		return NewValidationError(errDateMonth)
	}

	switch {
	case thirtyOneDayMonths[month]:
		if day < 1 || day > 31 {
			return NewValidationError(fmt.Errorf("Invalid day for month %d. Must be between 1 and 31.", month))
		}
	case month == 2:
		if isLeapYear(year) {
			if day < 1 || day > 29 {
				return NewValidationError(errFebLeapDay)
			}
		} else if day < 1 || day > 28 {
			return NewValidationError(errFebDay)
		}
	default:
		if day < 1 || day > 30 {
			return NewValidationError(fmt.Errorf("Invalid day for month %d. Must be between 1 and 30.", month))
		}
	}
	return nil
}

// isLeapYear applies the Gregorian rule: divisible by 4 and
// (not divisible by 100 or divisible by 400).
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func splitDate(s string) (day, month, year int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) < 1 || len(parts[1]) > 2 || len(parts[2]) != 4 {
		return 0, 0, 0, false
	}
	for _, part := range parts {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, 0, 0, false
			}
		}
	}
	day, _ = strconv.Atoi(parts[0])
	month, _ = strconv.Atoi(parts[1])
	year, _ = strconv.Atoi(parts[2])
	return day, month, year, true
}
