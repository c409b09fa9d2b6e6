package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromeOptions configures the headless Chrome launcher.
type ChromeOptions struct {
	ExecPath  string // empty = chromedp default lookup
	Headless  bool
	NoSandbox bool // containers without user namespaces need this
	UserAgent string
	ProxyURL  string
}

// ChromeBrowser launches one Chrome process per session over the DevTools protocol.
type ChromeBrowser struct {
	opts ChromeOptions
}

// NewChromeBrowser returns a Browser backed by chromedp.
func NewChromeBrowser(opts ChromeOptions) *ChromeBrowser {
	return &ChromeBrowser{opts: opts}
}

// flags returns the Chrome command-line switches added on top of chromedp's defaults.
func (b *ChromeBrowser) flags() map[string]any {
	f := map[string]any{
		"headless":        b.opts.Headless,
		"mute-audio":      true,
		"autoplay-policy": "user-gesture-required",
	}
	if b.opts.NoSandbox {
		f["no-sandbox"] = true
		f["disable-setuid-sandbox"] = true
	}
	if b.opts.UserAgent != "" {
		f["user-agent"] = b.opts.UserAgent
	}
	if b.opts.ProxyURL != "" {
		f["proxy-server"] = b.opts.ProxyURL
	}
	return f
}

func (b *ChromeBrowser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for name, value := range b.flags() {
		opts = append(opts, chromedp.Flag(name, value))
	}
	if b.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.opts.ExecPath))
	}
	return opts
}

// NewSession launches Chrome, opens a tab and enables the Network domain.
// Cancelling ctx kills the browser process.
func (b *ChromeBrowser) NewSession(ctx context.Context) (Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			slog.Debug("chromedp: " + fmt.Sprintf(format, args...))
		}),
	)

	s := &chromeSession{
		ctx:         tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		pending:     make(map[network.RequestID]string),
	}
	chromedp.ListenTarget(tabCtx, s.onEvent)

	// The first Run on tabCtx starts the browser. Network.enable goes out
	// before any navigation so early responses are not lost.
	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		s.Close()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return s, nil
}

type chromeSession struct {
	ctx         context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc

	mu      sync.Mutex
	pending map[network.RequestID]string // request id → response URL
	observe func(Response)

	closeOnce sync.Once
	closeErr  error
}

func (s *chromeSession) OnResponse(fn func(Response)) {
	s.mu.Lock()
	s.observe = fn
	s.mu.Unlock()
}

// onEvent runs on chromedp's event loop and must not block; body reads are
// dispatched to their own goroutine.
func (s *chromeSession) onEvent(ev any) {
	switch ev := ev.(type) {
	case *network.EventResponseReceived:
		if ev.Response == nil {
			return
		}
		s.mu.Lock()
		s.pending[ev.RequestID] = ev.Response.URL
		s.mu.Unlock()

	case *network.EventLoadingFailed:
		s.mu.Lock()
		delete(s.pending, ev.RequestID)
		s.mu.Unlock()

	case *network.EventLoadingFinished:
		s.mu.Lock()
		respURL, ok := s.pending[ev.RequestID]
		delete(s.pending, ev.RequestID)
		fn := s.observe
		s.mu.Unlock()
		if !ok || fn == nil {
			return
		}
		go fn(Response{URL: respURL, Body: s.bodyReader(ev.RequestID)})
	}
}

func (s *chromeSession) bodyReader(id network.RequestID) func(context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		c := chromedp.FromContext(s.ctx)
		if c == nil || c.Target == nil {
			return nil, errors.New("chrome target not attached")
		}
		runCtx, cancel := s.bind(ctx)
		defer cancel()
		return network.GetResponseBody(id).Do(cdp.WithExecutor(runCtx, c.Target))
	}
}

// bind derives a context from the session that also ends when ctx ends.
// chromedp actions must run on a context descending from the tab context.
func (s *chromeSession) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(s.ctx)
	if dl, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, dl)
		prev := cancel
		cancel = func() { cancelDeadline(); prev() }
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (s *chromeSession) Navigate(ctx context.Context, pageURL string) error {
	runCtx, cancel := s.bind(ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.Navigate(pageURL)); err != nil {
		return fmt.Errorf("navigate %s: %w", pageURL, err)
	}
	return nil
}

func (s *chromeSession) HTML(ctx context.Context) (string, error) {
	runCtx, cancel := s.bind(ctx)
	defer cancel()
	var out string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &out, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}
	return out, nil
}

// Close shuts the browser down gracefully, then releases the allocator,
// which kills the process if it is still running.
func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = err
		}
		s.tabCancel()
		s.allocCancel()
	})
	return s.closeErr
}
