package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// URLPlaceholder is replaced by the escaped target URL in proxy templates.
const URLPlaceholder = "{url}"

// DefaultProxyURLs are the public fetch proxies tried in order.
var DefaultProxyURLs = []string{
	"https://api.codetabs.com/v1/proxy?quest={url}",
	"https://api.allorigins.win/raw?url={url}",
}

var errInvalidPayload = errors.New("payload failed validity check")

// fetchViaProxies walks the proxy chain and extracts from the first payload
// that passes the validity check.
func (r *Resolver) fetchViaProxies(ctx context.Context, target string) (Metadata, error) {
	var errs []error
	for _, tmpl := range r.opts.ProxyURLs {
		body, err := r.fetchProxy(ctx, tmpl, target)
		if err != nil {
			r.logger.DebugContext(ctx, "proxy stage failed", "proxy", proxyHost(tmpl), "error", err)
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return Extract(body), nil
	}
	if len(errs) == 0 {
		return Metadata{}, nil
	}
	return Metadata{}, errors.Join(errs...)
}

func (r *Resolver) fetchProxy(ctx context.Context, tmpl, target string) (string, error) {
	endpoint := strings.ReplaceAll(tmpl, URLPlaceholder, url.QueryEscape(target))
	body, err := r.get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	body = unwrapContents(body)
	if !validPayload(body) {
		return "", fmt.Errorf("%s: %w", proxyHost(tmpl), errInvalidPayload)
	}
	return body, nil
}

// unwrapContents returns the "contents" field of proxies that wrap the page
// in a JSON envelope, or body unchanged.
func unwrapContents(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return body
	}
	var envelope struct {
		Contents *string `json:"contents"`
	}
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil || envelope.Contents == nil {
		return body
	}
	return *envelope.Contents
}

func proxyHost(tmpl string) string {
	u, err := url.Parse(strings.ReplaceAll(tmpl, URLPlaceholder, ""))
	if err != nil {
		return tmpl
	}
	return u.Host
}
