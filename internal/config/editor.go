package config

import "strings"

// lineKey returns the key of an assignment line, or false for blanks,
// comments and malformed lines.
func lineKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	key, _, ok := strings.Cut(trimmed, "=")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(key), true
}

// inlineComment returns a trailing " # ..." comment of an assignment, if any.
func inlineComment(line string) string {
	_, value, _ := strings.Cut(line, "=")
	if strings.HasPrefix(strings.TrimSpace(value), `"`) {
		return ""
	}
	if idx := strings.Index(value, " #"); idx >= 0 {
		return strings.TrimSpace(value[idx:])
	}
	return ""
}

// Set assigns key in lines, keeping comments and order. It reports whether
// an existing assignment was updated rather than appended.
func Set(lines []string, key, value string) ([]string, bool) {
	for i, line := range lines {
		k, ok := lineKey(line)
		if !ok || k != key {
			continue
		}
		if comment := inlineComment(line); comment != "" {
			lines[i] = key + "=" + value + " " + comment
		} else {
			lines[i] = key + "=" + value
		}
		return lines, true
	}

	return append(lines, key+"="+value), false
}

// Unset removes every assignment of key. It reports whether any was found.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false

	for _, line := range lines {
		if k, ok := lineKey(line); ok && k == key {
			removed = true
			continue
		}
		out = append(out, line)
	}

	return out, removed
}
