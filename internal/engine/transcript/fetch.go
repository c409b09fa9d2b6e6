package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// defaultMaxCaptionBytes caps caption documents; hour-long videos stay well under it.
const defaultMaxCaptionBytes = 4 * 1024 * 1024

// ErrCaptionsTooLarge is returned when a caption document exceeds the size cap.
var ErrCaptionsTooLarge = errors.New("caption document too large")

// Fetcher retrieves a caption document outside the browser session.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// HTTPFetcher fetches caption documents with a plain net/http client.
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return "", fmt.Errorf("build caption request: %w", err)
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept", "text/xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("fetch captions: HTTP %d: %s", resp.StatusCode, snippet)
	}

	limit := maxBytes(f.MaxBytes)
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}
	if int64(len(body)) > limit {
		return "", fmt.Errorf("%w: over %d bytes", ErrCaptionsTooLarge, limit)
	}
	return string(body), nil
}

// StealthFetcher fetches caption documents through the Chrome-fingerprinted
// TLS client, for hosts that reject Go's default handshake.
type StealthFetcher struct {
	Client   *engine.BrowserClient
	MaxBytes int64
}

func (f *StealthFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	type result struct {
		data   []byte
		status int
		err    error
	}
	// BrowserClient.Do takes no context; the client's own timeout bounds it.
	ch := make(chan result, 1)
	go func() {
		headers := engine.ChromeHeaders()
		headers["accept"] = "text/xml,application/xml;q=0.9,*/*;q=0.8"
		data, _, status, err := f.Client.Do(http.MethodGet, locator, headers, nil)
		ch <- result{data: data, status: status, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("fetch captions: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("fetch captions: %w", r.err)
		}
		if r.status < 200 || r.status > 299 {
			return "", fmt.Errorf("fetch captions: HTTP %d", r.status)
		}
		if limit := maxBytes(f.MaxBytes); int64(len(r.data)) > limit {
			return "", fmt.Errorf("%w: %d bytes, limit %d", ErrCaptionsTooLarge, len(r.data), limit)
		}
		return string(r.data), nil
	}
}

func maxBytes(n int64) int64 {
	if n <= 0 {
		return defaultMaxCaptionBytes
	}
	return n
}
