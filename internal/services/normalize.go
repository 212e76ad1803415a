package services

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeKey trims s and converts it to NFC so that slugs and usernames
// typed with combining marks match the stored, precomposed form.
func normalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := normalizeKey(*p)
	return &v
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
