package resolver

import (
	"context"
	"encoding/json"
	"fmt"
)

type microlinkResponse struct {
	Status string `json:"status"`
	Data   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       *struct {
			URL string `json:"url"`
		} `json:"image"`
		Logo *struct {
			URL string `json:"url"`
		} `json:"logo"`
	} `json:"data"`
}

// fetchMicrolink asks a rendering JSON service for the preview.
func (r *Resolver) fetchMicrolink(ctx context.Context, target string) (Metadata, error) {
	if r.opts.MicrolinkURL == "" {
		return Metadata{}, nil
	}
	endpoint, err := withQuery(r.opts.MicrolinkURL, "url", target)
	if err != nil {
		return Metadata{}, err
	}

	body, err := r.get(ctx, endpoint)
	if err != nil {
		return Metadata{}, err
	}

	var resp microlinkResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode microlink response: %w", err)
	}
	if resp.Status != "success" {
		return Metadata{}, fmt.Errorf("microlink status %q", resp.Status)
	}

	md := Metadata{
		Title:       CleanTitle(resp.Data.Title),
		Description: CleanText(resp.Data.Description),
	}
	if resp.Data.Image != nil {
		md.ThumbnailURL = NormalizeImageURL(resp.Data.Image.URL)
	}
	return md, nil
}
