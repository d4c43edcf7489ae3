package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Embedded-JSON patterns used when a page has no usable meta tags. Douyin
// pages carry a RENDER_DATA blob with "url_list" image arrays; Xiaohongshu
// pages carry "urlDefault" image URLs.
var (
	urlListPattern    = regexp.MustCompile(`"url_list"\s*:\s*\[\s*"([^"]+)"`)
	urlDefaultPattern = regexp.MustCompile(`"urlDefault"\s*:\s*"([^"]+)"`)
	descPattern       = regexp.MustCompile(`"desc"\s*:\s*"((?:[^"\\]|\\.)+)"`)
)

// Extract pulls a preview out of an HTML payload: open-graph tags first,
// then twitter cards and plain meta tags, then the <title> element, then
// platform embedded JSON. Text is entity-decoded and titles are cleaned.
func Extract(body string) Metadata {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return extractEmbedded(body, Metadata{})
	}

	md := Metadata{
		Title: firstMeta(doc,
			`meta[property="og:title"]`,
			`meta[name="og:title"]`,
			`meta[name="twitter:title"]`,
			`meta[property="twitter:title"]`,
		),
		Description: firstMeta(doc,
			`meta[property="og:description"]`,
			`meta[name="description"]`,
			`meta[name="twitter:description"]`,
		),
		ThumbnailURL: firstMeta(doc,
			`meta[property="og:image"]`,
			`meta[property="og:image:secure_url"]`,
			`meta[name="og:image"]`,
			`meta[name="twitter:image"]`,
			`meta[property="twitter:image"]`,
		),
	}
	if md.ThumbnailURL == "" {
		if href, ok := doc.Find(`link[rel="image_src"]`).First().Attr("href"); ok {
			md.ThumbnailURL = strings.TrimSpace(href)
		}
	}
	if md.Title == "" {
		md.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if !md.Complete() {
		embedded := body
		if blob := doc.Find(`script#RENDER_DATA`).First().Text(); blob != "" {
			if decoded, err := url.QueryUnescape(blob); err == nil {
				embedded = decoded + "\n" + body
			}
		}
		md = extractEmbedded(embedded, md)
	}

	md.Title = CleanTitle(md.Title)
	md.Description = CleanText(md.Description)
	if md.ThumbnailURL != "" {
		md.ThumbnailURL = NormalizeImageURL(md.ThumbnailURL)
	}
	return md
}

// extractEmbedded fills missing fields from inline JSON.
func extractEmbedded(body string, md Metadata) Metadata {
	if md.ThumbnailURL == "" {
		for _, re := range []*regexp.Regexp{urlListPattern, urlDefaultPattern} {
			if m := re.FindStringSubmatch(body); m != nil {
				md.ThumbnailURL = NormalizeImageURL(unquoteJSON(m[1]))
				break
			}
		}
	}
	if md.Title == "" {
		if m := descPattern.FindStringSubmatch(body); m != nil {
			md.Title = CleanTitle(unquoteJSON(m[1]))
		}
	}
	return md
}

func firstMeta(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}
