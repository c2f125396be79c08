package mysql

import (
	"encoding/json"
	"strings"
)

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// encodeFlags serializes red_flags for the JSON column; never nil on disk.
func encodeFlags(flags []string) string {
	if flags == nil {
		flags = []string{}
	}
	b, err := json.Marshal(flags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeFlags is tolerant of bad rows: anything unparsable becomes empty.
func decodeFlags(raw string) []string {
	flags := []string{}
	if strings.TrimSpace(raw) == "" {
		return flags
	}
	_ = json.Unmarshal([]byte(raw), &flags)
	if flags == nil {
		flags = []string{}
	}
	return flags
}
