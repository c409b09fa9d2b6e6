package transcript

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Timeouts used when an AcquirerConfig field is zero.
const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultSettleTimeout     = 5 * time.Second
	DefaultFetchTimeout      = 15 * time.Second
)

// AcquirerConfig bounds each phase of an acquisition.
type AcquirerConfig struct {
	NavigationTimeout time.Duration
	// SettleTimeout is how long to keep watching traffic for the caption
	// track after the page has loaded.
	SettleTimeout time.Duration
	FetchTimeout  time.Duration
}

func (c AcquirerConfig) withDefaults() AcquirerConfig {
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = DefaultNavigationTimeout
	}
	if c.SettleTimeout <= 0 {
		c.SettleTimeout = DefaultSettleTimeout
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	return c
}

// Acquirer drives a headless browser to a video page and recovers the raw
// caption document from the page's own network traffic.
type Acquirer struct {
	browser Browser
	fetcher Fetcher
	cfg     AcquirerConfig
}

// NewAcquirer builds an Acquirer. Zero config fields fall back to defaults.
func NewAcquirer(browser Browser, fetcher Fetcher, cfg AcquirerConfig) *Acquirer {
	return &Acquirer{browser: browser, fetcher: fetcher, cfg: cfg.withDefaults()}
}

// FetchRawCaptions returns the timed-text document for the video at pageURL.
// Every failure is a KindAcquisition *Error; a page with no caption track
// additionally matches ErrNoCaptions. The browser session is closed before
// returning on every path.
func (a *Acquirer) FetchRawCaptions(ctx context.Context, pageURL string) (string, error) {
	engine.IncrTranscriptRequests()
	log := slog.With(slog.String("req", uuid.NewString()), slog.String("url", pageURL))

	var locator string
	err := a.withSession(ctx, log, func(s Session) error {
		found := newLocatorResult()
		s.OnResponse(func(r Response) {
			scanResponse(ctx, log, r, found)
		})

		navCtx, cancel := context.WithTimeout(ctx, a.cfg.NavigationTimeout)
		err := s.Navigate(navCtx, pageURL)
		cancel()
		if err != nil {
			return acquisitionErr("navigation failed", err)
		}

		loc, ok := found.wait(ctx, a.cfg.SettleTimeout)
		if !ok {
			if ctx.Err() != nil {
				return acquisitionErr("acquisition aborted", ctx.Err())
			}
			engine.IncrCaptionsNotFound()
			return acquisitionErr("", ErrNoCaptions)
		}
		locator = loc
		return nil
	})
	if err != nil {
		log.Warn("transcript: acquisition failed", slog.Any("error", err))
		return "", err
	}
	log.Debug("transcript: caption locator found")

	fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()
	engine.IncrCaptionFetches()
	doc, err := a.fetcher.Fetch(fetchCtx, locator)
	if err != nil {
		engine.IncrCaptionFetchErrors()
		log.Warn("transcript: caption fetch failed", slog.Any("error", err))
		return "", acquisitionErr("caption fetch failed", err)
	}
	return doc, nil
}

// scanResponse inspects one watch-page response for the caption locator.
// Read failures are logged and skipped; only the first match is kept.
func scanResponse(ctx context.Context, log *slog.Logger, r Response, found *locatorResult) {
	if !IsWatchResponse(r.URL) {
		return
	}
	body, err := r.Body(ctx)
	if err != nil {
		log.Warn("transcript: skipping unreadable response",
			slog.String("response_url", r.URL), slog.Any("error", err))
		return
	}
	if loc, ok := ExtractCaptionURL(body); ok {
		if found.resolve(loc) {
			log.Debug("transcript: caption track matched", slog.String("response_url", r.URL))
		}
	}
}

// withSession opens a browser session, runs fn and always closes the session.
func (a *Acquirer) withSession(ctx context.Context, log *slog.Logger, fn func(Session) error) error {
	s, err := a.browser.NewSession(ctx)
	if err != nil {
		return acquisitionErr("browser launch failed", err)
	}
	engine.IncrBrowserSessions()
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.Warn("transcript: browser close failed", slog.Any("error", cerr))
		}
		engine.IncrBrowserSessionsClosed()
	}()
	return fn(s)
}
