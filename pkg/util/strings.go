package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// IntIn reports whether v is one of allowed.
func IntIn(v int, allowed []int) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
