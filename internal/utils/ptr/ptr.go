// Package ptr has helpers for the optional string fields on cards.
package ptr

import "strings"

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// String creates a pointer to the given string value.
func String(s string) *string {
	return &s
}

// NonEmpty returns nil for an empty or blank string, and a pointer otherwise.
func NonEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Deref returns *p, or fallback when p is nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// First returns a pointer to the first element of s, or nil when s is empty.
func First(s []string) *string {
	if len(s) == 0 {
		return nil
	}
	return NonEmpty(s[0])
}
