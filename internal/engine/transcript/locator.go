package transcript

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

// captionTracksRE extracts the first caption track base URL from a watch
// page or player response body.
var captionTracksRE = regexp.MustCompile(`"captionTracks":\[\{"baseUrl":"([^"]+)"`)

// ExtractCaptionURL scans body for an embedded caption track locator.
// ok is false when the body carries no caption tracks; that is a normal
// outcome for most responses, not an error.
func ExtractCaptionURL(body []byte) (locator string, ok bool) {
	m := captionTracksRE.FindSubmatch(body)
	if len(m) < 2 {
		return "", false
	}
	locator = strings.ReplaceAll(string(m[1]), `\u0026`, "&")
	if locator == "" {
		return "", false
	}
	return locator, true
}

// IsWatchResponse reports whether a response URL is the page's own watch
// document, the only response type worth scanning for caption metadata.
func IsWatchResponse(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, "/watch")
}

// locatorResult is a single-assignment result shared between concurrent
// response observers and the waiting acquirer. The first resolve wins.
type locatorResult struct {
	once  sync.Once
	done  chan struct{}
	value string
}

func newLocatorResult() *locatorResult {
	return &locatorResult{done: make(chan struct{})}
}

// resolve records v if nothing has been recorded yet. Reports whether v won.
func (r *locatorResult) resolve(v string) bool {
	won := false
	r.once.Do(func() {
		r.value = v
		won = true
		close(r.done)
	})
	return won
}

// wait blocks until resolved, the window elapses, or ctx is done.
func (r *locatorResult) wait(ctx context.Context, window time.Duration) (string, bool) {
	timer := time.NewTimer(window)
	defer timer.Stop()
	select {
	case <-r.done:
		return r.value, true
	case <-timer.C:
	case <-ctx.Done():
	}
	// A resolve may have raced the timer.
	select {
	case <-r.done:
		return r.value, true
	default:
		return "", false
	}
}
