package validators

import "strings"

// SanitizeString trims free-text query inputs, such as the catalog's
// category filter, and caps their length.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
