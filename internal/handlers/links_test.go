package handlers

import (
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"linkloom/internal/resolver"
	"linkloom/internal/service/mocks"
)

func TestLinksHandler_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResolver := mocks.NewMockResolver(ctrl)
	h := NewLinksHandler(mockResolver)

	mockResolver.EXPECT().Resolve(gomock.Any(), "https://example.com/a").Return(resolver.Metadata{
		Title:        "A",
		ThumbnailURL: "https://img.example.com/a.jpg",
		Source:       "microlink",
	})

	w := serve(http.MethodPost, "/api/resolve", h.Resolve, "/api/resolve", ResolveRequest{URL: "  https://example.com/a "})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	resp := decode[ResolveResponse](t, w)
	if resp.URL != "https://example.com/a" || resp.Title != "A" || resp.ThumbnailURL == "" {
		t.Errorf("response = %+v", resp)
	}

	w = serve(http.MethodPost, "/api/resolve", h.Resolve, "/api/resolve", ResolveRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty url status = %d, want 400", w.Code)
	}
}

func TestLinksHandler_Classify(t *testing.T) {
	h := NewLinksHandler(nil)

	tests := []struct {
		url         string
		wantLabel   string
		wantMatched bool
	}{
		{url: "https://youtu.be/abc", wantLabel: "YouTube", wantMatched: true},
		{url: "https://x.com/someone/status/1", wantLabel: "Twitter", wantMatched: true},
		{url: "https://example.com", wantLabel: "Other", wantMatched: false},
		{url: "", wantLabel: "Other", wantMatched: false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := serve(http.MethodGet, "/api/classify", h.Classify, "/api/classify?url="+tt.url, nil)
			got := decode[ClassifyResponse](t, w)
			if got.Platform != tt.wantLabel || got.Matched != tt.wantMatched {
				t.Errorf("classify(%q) = %+v, want %s/%v", tt.url, got, tt.wantLabel, tt.wantMatched)
			}
			if got.Display.Icon == "" {
				t.Error("display icon is empty")
			}
		})
	}
}

func TestLinksHandler_Share(t *testing.T) {
	h := NewLinksHandler(nil)

	w := serve(http.MethodPost, "/api/share", h.Share, "/api/share", ShareRequest{
		Text: "Amazing noodles http://xhslink.com/a/Bc9 复制打开小红书",
	})
	got := decode[ShareResponse](t, w)
	if got.URL != "http://xhslink.com/a/Bc9" {
		t.Errorf("url = %q", got.URL)
	}
	if got.Title != "Amazing noodles" {
		t.Errorf("title = %q, want Amazing noodles", got.Title)
	}
	if got.Platform != "XiaoHongShu" {
		t.Errorf("platform = %q, want XiaoHongShu", got.Platform)
	}
}
