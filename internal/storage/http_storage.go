// Package storage fetches image payloads for URL-based analysis requests.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ImageFetcher retrieves raw image bytes from a remote location.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, string, error)
}

// HTTPImageFetcher fetches images over HTTP(S) with bounded retries.
type HTTPImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPImageFetcher(maxBytes int64) *HTTPImageFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchImage downloads the image, retrying up to three times on transient
// errors. 4xx responses fail immediately. Returns the payload and the
// response content type.
func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/bmp, image/tiff, */*")
	req.Header.Set("User-Agent", "WordFlow/1.0")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		resp, err = h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusOK {
			break
		}

		resp.Body.Close()
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, "", fmt.Errorf("client error: status code %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
		resp = nil
	}
	if resp == nil {
		return nil, "", fmt.Errorf("fetch failed after retries: %w", lastErr)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("unexpected content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > h.maxBytes {
		return nil, "", fmt.Errorf("image exceeds the %d byte limit", h.maxBytes)
	}
	return body, contentType, nil
}
