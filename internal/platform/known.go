package platform

import "strings"

// Known describes how a well-known platform is displayed. It is used only for
// rendering hints, never to validate platform labels.
type Known struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var known = map[string]Known{
	strings.ToLower(YouTube):     {Name: YouTube, Icon: "youtube", Color: "#FF0000"},
	strings.ToLower(XiaoHongShu): {Name: XiaoHongShu, Icon: "xiaohongshu", Color: "#FF2442"},
	strings.ToLower(Douyin):      {Name: Douyin, Icon: "douyin", Color: "#000000"},
	strings.ToLower(TikTok):      {Name: TikTok, Icon: "tiktok", Color: "#000000"},
	strings.ToLower(Bilibili):    {Name: Bilibili, Icon: "bilibili", Color: "#00A1D6"},
	strings.ToLower(Twitter):     {Name: Twitter, Icon: "twitter", Color: "#1DA1F2"},
	strings.ToLower(Instagram):   {Name: Instagram, Icon: "instagram", Color: "#E1306C"},
}

// Lookup returns display hints for label. Labels are matched
// case-insensitively; unknown labels get a generic link icon.
func Lookup(label string) (Known, bool) {
	k, ok := known[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return Known{Name: label, Icon: "link", Color: "#71717A"}, false
	}
	return k, true
}
