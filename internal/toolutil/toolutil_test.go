package toolutil

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

const doc = `<transcript><text start="0" dur="2.5">Hello&amp;#39;s</text><text start="2.5" dur="3">world</text></transcript>`

type stubBrowser struct{ body string }

func (b stubBrowser) NewSession(context.Context) (transcript.Session, error) {
	return &stubSession{body: b.body}, nil
}

type stubSession struct {
	body    string
	observe func(transcript.Response)
}

func (s *stubSession) OnResponse(fn func(transcript.Response)) { s.observe = fn }

func (s *stubSession) Navigate(context.Context, string) error {
	s.observe(transcript.Response{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Body: func(context.Context) ([]byte, error) {
		return []byte(s.body), nil
	}})
	return nil
}

func (s *stubSession) HTML(context.Context) (string, error) { return "<html></html>", nil }
func (s *stubSession) Close() error                         { return nil }

type stubFetcher struct{ doc string }

func (f stubFetcher) Fetch(context.Context, string) (string, error) { return f.doc, nil }

func newTestPipeline(body, document string) *Pipeline {
	acq := transcript.NewAcquirer(stubBrowser{body: body}, stubFetcher{doc: document}, transcript.AcquirerConfig{
		SettleTimeout: 20 * time.Millisecond,
	})
	p := NewPipeline(acq)
	p.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestProcess(t *testing.T) {
	p := newTestPipeline(`"captionTracks":[{"baseUrl":"https://captions.example/t"}]`, doc)
	out, err := p.Process(context.Background(), "youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Success {
		t.Error("expected success")
	}
	if out.ProcessedURL != "youtu.be/dQw4w9WgXcQ" {
		t.Errorf("ProcessedURL = %q", out.ProcessedURL)
	}
	if out.Timestamp != "2026-10-19T12:00:00Z" {
		t.Errorf("Timestamp = %q", out.Timestamp)
	}
	if out.Transcript != "[0:00] Hello's\n[0:02] world" {
		t.Errorf("Transcript = %q", out.Transcript)
	}
	if out.PlainText != "Hello's world" || len(out.Segments) != 2 {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestProcessInvalidURL(t *testing.T) {
	p := newTestPipeline("", doc)
	_, err := p.Process(context.Background(), "https://example.com/video")
	if transcript.KindOf(err) != transcript.KindInvalidInput {
		t.Errorf("kind = %v, want invalid input", transcript.KindOf(err))
	}
}

func TestProcessNoCaptions(t *testing.T) {
	p := newTestPipeline("<html></html>", doc)
	_, err := p.Process(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if !errors.Is(err, transcript.ErrNoCaptions) {
		t.Errorf("expected ErrNoCaptions, got %v", err)
	}
}

func TestProcessParseError(t *testing.T) {
	p := newTestPipeline(`"captionTracks":[{"baseUrl":"https://captions.example/t"}]`, "<html>consent</html>")
	_, err := p.Process(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if transcript.KindOf(err) != transcript.KindParse {
		t.Errorf("kind = %v, want parse", transcript.KindOf(err))
	}
}

func TestVideoInfoDefaults(t *testing.T) {
	p := newTestPipeline("", doc)
	info, err := p.VideoInfo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("VideoInfo: %v", err)
	}
	if !strings.HasPrefix(info.Title, "Unknown") {
		t.Errorf("Title = %q", info.Title)
	}
}
