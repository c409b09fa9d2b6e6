package transcript

import "context"

// Response is a finished network response observed by a Session.
// Body reads the response payload from the browser; it may fail for
// redirects, evicted buffers, or a session that has already closed.
type Response struct {
	URL  string
	Body func(ctx context.Context) ([]byte, error)
}

// Browser opens isolated page sessions, one per acquisition.
type Browser interface {
	// NewSession starts a fresh browser with network observation already
	// enabled, so no response that arrives during navigation is missed.
	NewSession(ctx context.Context) (Session, error)
}

// Session is a single headless page. Close tears down the browser process
// and must be safe to call more than once.
type Session interface {
	// OnResponse registers the observer for finished responses. Call it
	// before Navigate. The observer may run concurrently with itself.
	OnResponse(fn func(Response))
	// Navigate loads pageURL and returns once the page load event fires.
	Navigate(ctx context.Context, pageURL string) error
	// HTML returns the rendered document markup.
	HTML(ctx context.Context) (string, error)
	Close() error
}
