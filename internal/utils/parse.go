// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"strings"
)

// ID parses a path identifier: a base-10 integer strictly greater than
// zero. Surrounding whitespace is not trimmed, so " 4" is rejected like any
// other malformed value.
//
// Example:
//
//	n, ok := utils.ID("42") // 42, true
//	_, ok = utils.ID("0")   // false
//	_, ok = utils.ID("x")   // false
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// SplitCSV splits a comma-separated list, trimming entries and dropping
// empty ones. It returns nil for an empty input.
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
