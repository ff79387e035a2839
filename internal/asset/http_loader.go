package asset

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

// maxHeaderBytes is enough of an image to read its dimensions.
const maxHeaderBytes = 1 << 20

// HTTPLoader fetches assets from a server that exposes the bank's roots,
// resolving each relative asset URL against a base URL.
type HTTPLoader struct {
	base   *url.URL
	client *http.Client // reused across calls
}

// NewHTTPLoader creates a loader for the server at baseURL, e.g.
// "http://localhost:8080/".
func NewHTTPLoader(baseURL string, client *http.Client) (*HTTPLoader, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPLoader{base: base, client: client}, nil
}

// Resolve returns the absolute address of a relative asset URL.
func (l *HTTPLoader) Resolve(rawURL string) (string, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return l.base.ResolveReference(ref).String(), nil
}

func (l *HTTPLoader) Load(ctx context.Context, a questionbank.Asset, rawURL string) error {
	target, err := l.Resolve(rawURL)
	if err != nil {
		return &LoadError{Asset: a, URL: rawURL, Reason: ReasonTransport, Wrapped: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &LoadError{Asset: a, URL: rawURL, Reason: ReasonTransport, Wrapped: err}
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		if ctxErr := contextError(ctx, a, rawURL); ctxErr != nil {
			return ctxErr
		}
		return &LoadError{Asset: a, URL: rawURL, Reason: ReasonTransport, Wrapped: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &LoadError{Asset: a, URL: rawURL, Reason: ReasonNotFound}
	case resp.StatusCode != http.StatusOK:
		return &LoadError{
			Asset:   a,
			URL:     rawURL,
			Reason:  ReasonStatus,
			Wrapped: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if _, _, err := image.DecodeConfig(io.LimitReader(resp.Body, maxHeaderBytes)); err != nil {
		return &LoadError{Asset: a, URL: rawURL, Reason: ReasonDecode, Wrapped: err}
	}
	return nil
}
