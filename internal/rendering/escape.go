package rendering

import (
	"sort"
	"strings"
)

// SanitizeCSSValue strips characters that could terminate a declaration or
// escape the style attribute: ; { } < > \ and control characters.
// Script-capable constructs are dropped entirely.
func SanitizeCSSValue(value string) string {
	if value == "" {
		return ""
	}

	lower := strings.ToLower(value)
	if strings.Contains(lower, "expression(") || strings.Contains(lower, "javascript:") {
		return ""
	}

	var result strings.Builder
	result.Grow(len(value))

	for _, r := range value {
		switch {
		case r == ';', r == '{', r == '}', r == '<', r == '>', r == '\\':
			continue
		case r < 0x20 || r == 0x7f:
			continue
		default:
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// validProperty accepts lowercase property names and custom properties.
func validProperty(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// StyleString serializes a style map with sorted property names so output
// is deterministic. Invalid properties and values that sanitize to empty are dropped.
func StyleString(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		if validProperty(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v := SanitizeCSSValue(style[k])
		if v == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteString(";")
	}
	return sb.String()
}
