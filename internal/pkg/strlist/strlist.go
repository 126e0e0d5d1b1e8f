package strlist

import (
	"encoding/json"
	"strings"
)

// ToString converts []string to a JSON string (safe for DB columns).
func ToString(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// FromString converts a DB string back to []string, falling back to
// comma-separated parsing for non-JSON values.
func FromString(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return strings.Split(s, ",")
	}
	return values
}
