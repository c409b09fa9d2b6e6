package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// fakeBrowser replays canned responses instead of launching Chrome.
type fakeBrowser struct {
	responses []Response
	async     bool          // deliver each response on its own goroutine
	lateDelay time.Duration // deliver responses this long after Navigate returns
	navErr    error
	launchErr error
	html      string

	mu       sync.Mutex
	sessions []*fakeSession
}

func (b *fakeBrowser) NewSession(ctx context.Context) (Session, error) {
	if b.launchErr != nil {
		return nil, b.launchErr
	}
	s := &fakeSession{b: b}
	b.mu.Lock()
	b.sessions = append(b.sessions, s)
	b.mu.Unlock()
	return s, nil
}

// openSessions counts sessions that were never closed.
func (b *fakeBrowser) openSessions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, s := range b.sessions {
		if s.closed.Load() == 0 {
			n++
		}
	}
	return n
}

func (b *fakeBrowser) sessionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

type fakeSession struct {
	b       *fakeBrowser
	observe func(Response)
	navURL  string
	closed  atomic.Int32
}

func (s *fakeSession) OnResponse(fn func(Response)) { s.observe = fn }

func (s *fakeSession) Navigate(ctx context.Context, pageURL string) error {
	s.navURL = pageURL
	if s.b.navErr != nil {
		return s.b.navErr
	}
	if s.observe == nil {
		return nil
	}
	deliver := func() {
		for _, r := range s.b.responses {
			if s.b.async {
				go s.observe(r)
			} else {
				s.observe(r)
			}
		}
	}
	if s.b.lateDelay > 0 {
		time.AfterFunc(s.b.lateDelay, deliver)
		return nil
	}
	deliver()
	return nil
}

func (s *fakeSession) HTML(ctx context.Context) (string, error) {
	if s.closed.Load() != 0 {
		return "", errors.New("session closed")
	}
	return s.b.html, nil
}

func (s *fakeSession) Close() error {
	s.closed.Add(1)
	return nil
}

// fakeFetcher records the locator it was asked for.
type fakeFetcher struct {
	doc string
	err error

	mu      sync.Mutex
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, locator)
	f.mu.Unlock()
	return f.doc, f.err
}

func (f *fakeFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func staticResponse(u, body string) Response {
	return Response{URL: u, Body: func(context.Context) ([]byte, error) { return []byte(body), nil }}
}

func failingResponse(u string) Response {
	return Response{URL: u, Body: func(context.Context) ([]byte, error) {
		return nil, errors.New("No resource with given identifier found")
	}}
}

// escapeAmp escapes '&' the way the page's embedded JSON does.
func escapeAmp(u string) string {
	return strings.ReplaceAll(u, "&", `\`+"u0026")
}

// watchBody renders a watch page body embedding locator as the first caption track.
func watchBody(locator string) string {
	return fmt.Sprintf(`<script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s","name":{"simpleText":"English"}}]}}};</script>`,
		escapeAmp(locator))
}
