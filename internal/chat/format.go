package chat

import (
	"html"
	"regexp"
	"strings"
)

var (
	urlPattern  = regexp.MustCompile(`https?://[^\s<]+`)
	boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// FormatMessage turns assistant text into the display fragment: HTML is
// escaped, then URLs become links, **spans** become <strong>, and newlines
// become <br>.
func FormatMessage(text string) string {
	out := html.EscapeString(text)
	out = urlPattern.ReplaceAllString(out, `<a href="$0" target="_blank" rel="noopener">$0</a>`)
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return out
}
