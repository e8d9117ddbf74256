package account

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
)

// NumberLength is the fixed length of public student and staff numbers.
const NumberLength = 10

var (
	errUsernameTooShort = errors.New("Invalid username. Must be at least 3 characters long.")
	errEmailFormat      = errors.New("Invalid email format.")
	errPasswordTooShort = errors.New("Password must be at least 6 characters long.")
	errDistrictTooShort = errors.New("Invalid district. Must be at least 5 characters long.")
	errAddressTooShort  = errors.New("Invalid address. Must be at least 5 characters long.")
)

// ValidateIdentityFields applies the registration field rules in order and
// returns the first failing check's reason. Lengths count runes, not bytes.
func ValidateIdentityFields(username, email, password, district, address, birthDate string) error {
	if utf8.RuneCountInString(username) < 3 {
		return core.NewValidationError(errUsernameTooShort)
	}
	if !validEmail(email) {
		return core.NewValidationError(errEmailFormat)
	}
	if utf8.RuneCountInString(password) < 6 {
		return core.NewValidationError(errPasswordTooShort)
	}
	if utf8.RuneCountInString(district) < 5 {
		return core.NewValidationError(errDistrictTooShort)
	}
	if utf8.RuneCountInString(address) < 5 {
		return core.NewValidationError(errAddressTooShort)
	}
	return core.ValidateDate(birthDate)
}

// validEmail requires an "@" and a "." somewhere after the last "@".
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

// ValidateNumericID checks that value consists solely of digits and has
// exactly length characters. label names the field in the reason text.
func ValidateNumericID(value string, length int, label string) error {
	if len(value) != length || !allDigits(value) {
		return core.NewValidationError(
			fmt.Errorf("Invalid %s. Must be a numeric value with exactly %d digits.", label, length))
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
