// Package platform maps links to free-form platform labels.
package platform

import "strings"

// Well-known platform labels.
const (
	YouTube     = "YouTube"
	XiaoHongShu = "XiaoHongShu"
	Douyin      = "Douyin"
	TikTok      = "TikTok"
	Bilibili    = "Bilibili"
	Twitter     = "Twitter"
	Instagram   = "Instagram"
)

// rule is a single classification rule. A rule matches when any of its
// fragments occurs in the lower-cased URL.
type rule struct {
	label     string
	fragments []string
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{label: YouTube, fragments: []string{"youtube.com", "youtu.be"}},
	{label: XiaoHongShu, fragments: []string{"xiaohongshu.com", "xhslink.com"}},
	{label: Douyin, fragments: []string{"douyin.com", "iesdouyin.com"}},
	{label: TikTok, fragments: []string{"tiktok.com"}},
	{label: Bilibili, fragments: []string{"bilibili.com", "b23.tv"}},
	{label: Twitter, fragments: []string{"twitter.com", "//x.com", ".x.com"}},
	{label: Instagram, fragments: []string{"instagram.com"}},
}

// Classify returns the platform label for rawURL. The second return value is
// false when no rule matched. Classify is pure and accepts any string.
func Classify(rawURL string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	if lower == "" {
		return "", false
	}
	for _, r := range rules {
		for _, fragment := range r.fragments {
			if strings.Contains(lower, fragment) {
				return r.label, true
			}
		}
	}
	return "", false
}

// ClassifyOr returns the platform label for rawURL, or current when no rule
// matched.
func ClassifyOr(rawURL, current string) string {
	if label, ok := Classify(rawURL); ok {
		return label
	}
	return current
}
