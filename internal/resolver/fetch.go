package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// maxBodyBytes caps how much of any response is read.
	maxBodyBytes = 2 << 20
	userAgent    = "Mozilla/5.0 (compatible; linkloom/1.0; +https://github.com/linkloom)"
)

// blockedMarkers identify verification interstitials anywhere in a body.
var blockedMarkers = []string{"验证码", "安全验证"}

// blockedTitleMarkers identify verification walls by their <title>. Normal
// pages embed CAPTCHA widgets, so these are not matched against the body.
var blockedTitleMarkers = []string{"captcha", "verify you are human", "attention required", "just a moment"}

// minPayloadLength is the shortest body accepted as a real page.
const minPayloadLength = 500

func (r *Resolver) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

// validPayload reports whether body looks like a real page rather than an
// error stub or a verification wall.
func validPayload(body string) bool {
	if len(body) < minPayloadLength {
		return false
	}
	for _, marker := range blockedMarkers {
		if strings.Contains(body, marker) {
			return false
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return true
	}
	title := strings.ToLower(doc.Find("title").First().Text())
	for _, marker := range blockedTitleMarkers {
		if strings.Contains(title, marker) {
			return false
		}
	}
	return true
}
