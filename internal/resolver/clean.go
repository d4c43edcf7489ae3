package resolver

import (
	"html"
	"strconv"
	"strings"
)

// titleSuffixes are app-branding tails appended to page titles.
var titleSuffixes = []string{
	" - 抖音",
	" - 小红书",
	" - YouTube",
	"_哔哩哔哩_bilibili",
	" / X",
	" | TikTok",
	" on Instagram",
}

// CleanTitle decodes entities, collapses whitespace and strips known
// platform suffixes.
func CleanTitle(title string) string {
	title = strings.Join(strings.Fields(html.UnescapeString(title)), " ")
	for changed := true; changed; {
		changed = false
		for _, suffix := range titleSuffixes {
			if trimmed := strings.TrimSuffix(title, suffix); trimmed != title {
				title = strings.TrimSpace(trimmed)
				changed = true
			}
		}
	}
	return title
}

// CleanText decodes entities and collapses whitespace.
func CleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// NormalizeImageURL makes protocol-relative URLs absolute and unescapes
// JSON-escaped slashes.
func NormalizeImageURL(u string) string {
	u = strings.TrimSpace(html.UnescapeString(u))
	u = strings.ReplaceAll(u, `\u002F`, "/")
	u = strings.ReplaceAll(u, `\u002f`, "/")
	u = strings.ReplaceAll(u, `\/`, "/")
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return u
}

// unquoteJSON decodes the escapes of a raw JSON string body. Invalid input
// is returned unchanged.
func unquoteJSON(raw string) string {
	if s, err := strconv.Unquote(`"` + raw + `"`); err == nil {
		return s
	}
	return raw
}
