package news

import (
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var tagPattern = regexp.MustCompile(`(?s)<[^>]*>`)

// StripHTML removes markup tags and decodes entities.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// Truncate shortens s to maxRunes runes followed by "...".
func Truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var rfc822Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
}

// ParseDate understands ISO-8601 and RFC-822 style timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	layouts := rfc822Layouts
	if strings.Contains(s, "T") && !strings.Contains(s, ",") {
		layouts = isoLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as YYYY-MM-DD; unparsable input is returned verbatim.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DateLayout)
}
