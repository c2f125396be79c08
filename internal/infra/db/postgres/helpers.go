package postgres

import (
	"encoding/json"
	"strings"
)

func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

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
