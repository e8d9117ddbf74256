package core

import (
	"encoding/json"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NumberString decodes from either a JSON string or a bare JSON number, so
// clients may send public student/staff numbers unquoted. Digit validation
// happens separately.
type NumberString string

func (n *NumberString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberString(s)
		return nil
	}
	if string(b) == "null" {
		*n = ""
		return nil
	}
	*n = NumberString(b)
	return nil
}

func (n NumberString) String() string {
	return string(n)
}
