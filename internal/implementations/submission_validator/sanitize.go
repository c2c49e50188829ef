package submissionvalidator

import (
	"regexp"
	"strings"
)

var (
	angleBrackets  = regexp.MustCompile(`[<>]`)
	javascriptURI  = regexp.MustCompile(`(?i)javascript:`)
	eventAttribute = regexp.MustCompile(`(?i)on\w+=`)
)

// SanitizeString strips markup characters, script URIs and inline event
// handler attributes, then trims surrounding whitespace.
func SanitizeString(s string) string {
	s = angleBrackets.ReplaceAllString(s, "")
	s = javascriptURI.ReplaceAllString(s, "")
	s = eventAttribute.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Sanitize walks decoded JSON and sanitizes every string it finds.
// Other values are returned unchanged.
func Sanitize(value any) any {
	switch v := value.(type) {
	case string:
		return SanitizeString(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Sanitize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Sanitize(item)
		}
		return out
	default:
		return value
	}
}
