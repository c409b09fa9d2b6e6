// Package toolutil provides the shared transcript pipeline used by the MCP
// tools, the REST API and the CLI.
package toolutil

import (
	"context"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// ProcessOutput is the result of running one video through the pipeline.
type ProcessOutput struct {
	Success      bool                 `json:"success" yaml:"success"`
	ProcessedURL string               `json:"processedUrl" yaml:"processed_url"`
	Timestamp    string               `json:"timestamp" yaml:"timestamp"`
	Transcript   string               `json:"transcript,omitempty" yaml:"transcript,omitempty"`
	PlainText    string               `json:"-" yaml:"-"`
	Segments     []transcript.Segment `json:"-" yaml:"-"`
}

// Pipeline validates a URL, acquires its captions and parses them.
type Pipeline struct {
	acq *transcript.Acquirer
	now func() time.Time
}

// NewPipeline wraps an Acquirer.
func NewPipeline(acq *transcript.Acquirer) *Pipeline {
	return &Pipeline{acq: acq, now: time.Now}
}

// NewAcquirer builds a Chrome-backed Acquirer from the engine config.
// The stealth TLS client fetches captions when configured, net/http otherwise.
func NewAcquirer(c *engine.Config) *transcript.Acquirer {
	browser := transcript.NewChromeBrowser(transcript.ChromeOptions{
		ExecPath:  c.ChromePath,
		Headless:  c.BrowserHeadless,
		NoSandbox: c.BrowserNoSandbox,
		UserAgent: engine.UserAgentChrome,
		ProxyURL:  c.BrowserProxyURL,
	})

	var fetcher transcript.Fetcher = &transcript.HTTPFetcher{Client: c.HTTPClient, MaxBytes: c.MaxCaptionBytes}
	if c.BrowserClient != nil {
		fetcher = &transcript.StealthFetcher{Client: c.BrowserClient, MaxBytes: c.MaxCaptionBytes}
	}

	return transcript.NewAcquirer(browser, fetcher, transcript.AcquirerConfig{
		NavigationTimeout: c.NavigationTimeout,
		SettleTimeout:     c.SettleTimeout,
		FetchTimeout:      c.FetchTimeout,
	})
}

// Process runs rawURL through validation, acquisition and parsing.
// Errors are *transcript.Error values carrying their Kind.
func (p *Pipeline) Process(ctx context.Context, rawURL string) (*ProcessOutput, error) {
	pageURL, err := transcript.CheckVideoURL(rawURL)
	if err != nil {
		return nil, err
	}

	var doc string
	err = engine.TrackOperation(ctx, "fetch_raw_captions", 20*time.Second, func(ctx context.Context) error {
		var ferr error
		doc, ferr = p.acq.FetchRawCaptions(ctx, pageURL)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	res, err := transcript.Parse(doc)
	if err != nil {
		return nil, err
	}

	return &ProcessOutput{
		Success:      true,
		ProcessedURL: rawURL,
		Timestamp:    p.now().UTC().Format(time.RFC3339Nano),
		Transcript:   res.FormattedText,
		PlainText:    res.PlainText,
		Segments:     res.Segments,
	}, nil
}

// VideoInfo validates rawURL and scrapes the watch page metadata.
func (p *Pipeline) VideoInfo(ctx context.Context, rawURL string) (*transcript.VideoInfo, error) {
	pageURL, err := transcript.CheckVideoURL(rawURL)
	if err != nil {
		return nil, err
	}
	return p.acq.FetchVideoInfo(ctx, pageURL)
}
