package resolver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/proto"
)

// renderer loads pages in a remote headless Chrome, for sites that only
// produce their meta tags after running scripts.
type renderer struct {
	controlURL string

	mu      sync.Mutex
	browser *rod.Browser
	conn    *cdp.WebSocket
}

func newRenderer(controlURL string) *renderer {
	if controlURL == "" {
		return nil
	}
	return &renderer{controlURL: controlURL}
}

func (r *renderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}
	// The connection outlives any single request, so it is not bound to ctx.
	conn := &cdp.WebSocket{}
	if err := conn.Connect(context.Background(), r.controlURL, handshakeHeader()); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	browser := rod.New().Client(cdp.New().Start(conn))
	if err := browser.Connect(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	r.browser = browser
	r.conn = conn
	return browser, nil
}

// handshakeHeader carries a random RFC 6455 key, which strict websocket
// proxies in front of Chrome require.
func handshakeHeader() http.Header {
	key := make([]byte, 16)
	_, _ = rand.Read(key)
	return http.Header{"Sec-WebSocket-Key": {base64.StdEncoding.EncodeToString(key)}}
}

// render returns the HTML of target after the page finished loading.
func (r *renderer) render(ctx context.Context, target string) (string, error) {
	browser, err := r.connect()
	if err != nil {
		return "", err
	}

	incognito, err := browser.Context(ctx).Incognito()
	if err != nil {
		r.reset()
		return "", fmt.Errorf("incognito context: %w", err)
	}
	defer func() {
		_ = incognito.Close()
	}()

	page, err := incognito.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}
	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}
	return html, nil
}

func (r *renderer) fetch(ctx context.Context, target string) (Metadata, error) {
	html, err := r.render(ctx, target)
	if err != nil {
		return Metadata{}, err
	}
	if !validPayload(html) {
		return Metadata{}, errInvalidPayload
	}
	return Extract(html), nil
}

// reset drops a connection that stopped working so the next call redials.
func (r *renderer) reset() {
	_ = r.close()
}

// close disconnects from Chrome. The browser itself is shared and keeps
// running; render disposes its own incognito contexts.
func (r *renderer) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.browser = nil
	r.conn = nil
	return err
}
