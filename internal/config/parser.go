package config

import (
	"fmt"
	"strings"
)

// Parse reads key=value lines. Blank lines and lines starting with '#' are
// skipped, a leading BOM is stripped, and values wrapped in double quotes
// are unquoted. An unquoted value ends at " #". The last occurrence of a
// key wins.
func Parse(lines []string) (map[string]string, error) {
	out := make(map[string]string)

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key=value", i+1)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", i+1)
		}

		value = strings.TrimSpace(value)
		if idx := strings.Index(value, " #"); idx >= 0 && !strings.HasPrefix(value, `"`) {
			value = strings.TrimSpace(value[:idx])
		}
		if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
			value = value[1 : len(value)-1]
		}

		out[key] = value
	}

	return out, nil
}
