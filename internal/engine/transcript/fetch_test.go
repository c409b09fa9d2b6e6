package transcript

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPFetcher(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(sampleTimedText))
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client()}
	doc, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc != sampleTimedText {
		t.Errorf("doc = %q", doc)
	}
	if gotUA == "" || strings.HasPrefix(gotUA, "Go-http-client") {
		t.Errorf("expected browser user agent, got %q", gotUA)
	}
}

func TestHTTPFetcherStatus(t *testing.T) {
	for _, code := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		_, err := (&HTTPFetcher{Client: srv.Client()}).Fetch(context.Background(), srv.URL)
		srv.Close()
		if err == nil {
			t.Errorf("status %d: expected error", code)
		}
	}
}

func TestHTTPFetcherMaxBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	_, err := (&HTTPFetcher{Client: srv.Client(), MaxBytes: 10}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrCaptionsTooLarge) {
		t.Fatalf("expected ErrCaptionsTooLarge, got %v", err)
	}

	doc, err := (&HTTPFetcher{Client: srv.Client(), MaxBytes: 100}).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch at limit: %v", err)
	}
	if len(doc) != 100 {
		t.Errorf("len(doc) = %d, want 100", len(doc))
	}
}

func TestHTTPFetcherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := (&HTTPFetcher{Client: srv.Client()}).Fetch(ctx, srv.URL); err == nil {
		t.Error("expected timeout error")
	}
}

func TestMaxBytesDefault(t *testing.T) {
	if got := maxBytes(0); got != defaultMaxCaptionBytes {
		t.Errorf("maxBytes(0) = %d", got)
	}
	if got := maxBytes(42); got != 42 {
		t.Errorf("maxBytes(42) = %d", got)
	}
}
