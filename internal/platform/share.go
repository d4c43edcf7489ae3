package platform

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	linkPattern = regexp.MustCompile(`https?://[^\s]+`)

	// Share-sheet boilerplate added by the Douyin and XiaoHongShu apps.
	shareNoise = []*regexp.Regexp{
		regexp.MustCompile(`%.*`),
		regexp.MustCompile(`复制打开抖音`),
		regexp.MustCompile(`复制打开小红书`),
		regexp.MustCompile(`，看看.*?作品`),
		regexp.MustCompile(`[0-9]{1,2}\.[0-9]{1,2}\s+[A-Za-z0-9]+\s+`),
	}
)

// Share is the result of splitting pasted share text.
type Share struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// ParseShare splits text copied from a share sheet into a link and a title
// candidate. When text contains no link the whole input is returned as URL.
// Title is only set when the remaining text is longer than two characters.
func ParseShare(text string) Share {
	link := linkPattern.FindString(text)
	if link == "" {
		return Share{URL: text}
	}

	rest := strings.Replace(text, link, "", 1)
	for _, re := range shareNoise {
		rest = re.ReplaceAllString(rest, "")
	}
	rest = strings.TrimSpace(rest)

	share := Share{URL: link}
	if utf8.RuneCountInString(rest) > 2 {
		share.Title = rest
	}
	return share
}
