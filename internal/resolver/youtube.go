package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)

// VideoID extracts the YouTube video id from watch, short-link, shorts,
// embed and live URLs. It returns "" when none is found.
func VideoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case host == "youtu.be":
		id = segments[0]
	case host == "youtube.com" || host == "music.youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			id = v
		} else if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				id = segments[1]
			}
		}
	}
	if !videoIDPattern.MatchString(id) {
		return ""
	}
	return id
}

// ThumbnailURL returns the deterministic thumbnail for a video id.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Error        string `json:"error"`
}

func (r *Resolver) fetchOEmbed(ctx context.Context, target string) (Metadata, error) {
	if r.opts.OEmbedURL == "" {
		return Metadata{}, nil
	}
	endpoint, err := withQuery(r.opts.OEmbedURL, "url", target)
	if err != nil {
		return Metadata{}, err
	}

	body, err := r.get(ctx, endpoint)
	if err != nil {
		return Metadata{}, err
	}

	var resp oembedResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode oembed response: %w", err)
	}
	if resp.Error != "" {
		return Metadata{}, fmt.Errorf("oembed: %s", resp.Error)
	}
	return Metadata{
		Title:        CleanTitle(resp.Title),
		ThumbnailURL: NormalizeImageURL(resp.ThumbnailURL),
	}, nil
}

// withQuery sets key=value on the endpoint URL.
func withQuery(endpoint, key, value string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
