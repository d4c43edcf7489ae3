package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func page(head, body string) string {
	return "<!DOCTYPE html><html><head>" + head + "</head><body>" + body +
		strings.Repeat("<p>filler</p>", 60) + "</body></html>"
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Metadata
	}{
		{
			name: "open graph tags",
			html: page(`<title>ignored</title>
				<meta property="og:title" content="Tom &amp; Jerry - YouTube">
				<meta property="og:description" content="  A   classic  ">
				<meta property="og:image" content="//cdn.example.com/a.jpg">`, ""),
			want: Metadata{
				Title:        "Tom & Jerry",
				Description:  "A classic",
				ThumbnailURL: "https://cdn.example.com/a.jpg",
			},
		},
		{
			name: "twitter card and meta description",
			html: page(`<meta name="twitter:title" content="Thread / X">
				<meta name="description" content="hello">
				<meta name="twitter:image" content="https://pbs.example.com/x.png">`, ""),
			want: Metadata{
				Title:        "Thread",
				Description:  "hello",
				ThumbnailURL: "https://pbs.example.com/x.png",
			},
		},
		{
			name: "title element fallback",
			html: page(`<title>夜景拍摄技巧 - 抖音</title>`, ""),
			want: Metadata{Title: "夜景拍摄技巧"},
		},
		{
			name: "douyin url_list",
			html: page(`<title>video - 抖音</title>`, `<script>{"cover":{"url_list":["https:\u002F\u002Fp3.douyinpic.com\u002Fimg.jpeg"]}}</script>`),
			want: Metadata{Title: "video", ThumbnailURL: "https://p3.douyinpic.com/img.jpeg"},
		},
		{
			name: "xiaohongshu urlDefault",
			html: page(`<title>穿搭 - 小红书</title>`, `<script>{"imageList":[{"urlDefault":"http:\u002F\u002Fsns-img.xhscdn.com\u002Fabc"}]}</script>`),
			want: Metadata{Title: "穿搭", ThumbnailURL: "http://sns-img.xhscdn.com/abc"},
		},
		{
			name: "render data blob",
			html: page("", `<script id="RENDER_DATA" type="application/json">%7B%22desc%22%3A%22hello%20world%22%2C%22url_list%22%3A%5B%22https%3A%2F%2Fp.example.com%2Fc.jpg%22%5D%7D</script>`),
			want: Metadata{Title: "hello world", ThumbnailURL: "https://p.example.com/c.jpg"},
		},
		{
			name: "meta tags win over embedded json",
			html: page(`<meta property="og:image" content="https://og.example.com/i.jpg"><title>t</title>`, `<script>{"url_list":["https://other.example.com/x.jpg"]}</script>`),
			want: Metadata{Title: "t", ThumbnailURL: "https://og.example.com/i.jpg"},
		},
		{
			name: "nothing found",
			html: page("", "<p>plain</p>"),
			want: Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.html))
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Hello   World  ", want: "Hello World"},
		{in: "Fish &amp; Chips", want: "Fish & Chips"},
		{in: "Clip - YouTube", want: "Clip"},
		{in: "番剧_哔哩哔哩_bilibili", want: "番剧"},
		{in: "Dance | TikTok", want: "Dance"},
		{in: "YouTube", want: "YouTube"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanTitle(tt.in), "CleanTitle(%q)", tt.in)
	}
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "//img.example.com/a.jpg", want: "https://img.example.com/a.jpg"},
		{in: `https:\u002F\u002Fimg.example.com\u002Fa.jpg`, want: "https://img.example.com/a.jpg"},
		{in: `https:\/\/img.example.com\/a.jpg`, want: "https://img.example.com/a.jpg"},
		{in: "https://img.example.com/a.jpg?x=1&amp;y=2", want: "https://img.example.com/a.jpg?x=1&y=2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeImageURL(tt.in), "NormalizeImageURL(%q)", tt.in)
	}
}

func TestValidPayload(t *testing.T) {
	long := strings.Repeat("a", minPayloadLength)
	assert.True(t, validPayload(long))
	assert.False(t, validPayload("short"))
	assert.False(t, validPayload(long+"请完成验证码"))
	assert.False(t, validPayload(long+"<p>安全验证</p>"))
	assert.False(t, validPayload("<html><head><title>Attention Required! CAPTCHA</title></head><body>"+long+"</body></html>"))

	page := `<html><head><title>Weekend recipes</title>
<meta property="og:title" content="Weekend recipes">
<script src="https://www.google.com/recaptcha/api.js" async defer></script>
</head><body><form><div class="g-recaptcha" data-sitekey="x"></div></form>` + long + `</body></html>`
	assert.True(t, validPayload(page), "pages embedding a reCAPTCHA widget are real pages")
}

func TestUnwrapContents(t *testing.T) {
	assert.Equal(t, "<html></html>", unwrapContents(`{"contents":"<html></html>","status":{"http_code":200}}`))
	assert.Equal(t, `{"other":1}`, unwrapContents(`{"other":1}`))
	assert.Equal(t, "<html>", unwrapContents("<html>"))
}
