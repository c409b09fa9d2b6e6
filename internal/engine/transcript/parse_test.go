package transcript

import (
	"math"
	"regexp"
	"strings"
	"testing"
)

const sampleTimedText = `<?xml version="1.0" encoding="utf-8" ?><transcript><text start="0" dur="2.5">Hello&amp;#39;s</text><text start="2.5" dur="3">world</text></transcript>`

func TestParseSample(t *testing.T) {
	res, err := Parse(sampleTimedText)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Segment{
		{Start: 0, Duration: 2.5, Text: "Hello's"},
		{Start: 2.5, Duration: 3, Text: "world"},
	}
	if len(res.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(res.Segments), len(want))
	}
	for i, w := range want {
		if res.Segments[i] != w {
			t.Errorf("segment %d = %+v, want %+v", i, res.Segments[i], w)
		}
	}
	if res.PlainText != "Hello's world" {
		t.Errorf("PlainText = %q", res.PlainText)
	}
	if res.FormattedText != "[0:00] Hello's\n[0:02] world" {
		t.Errorf("FormattedText = %q", res.FormattedText)
	}
}

func TestParseProjections(t *testing.T) {
	doc := `<transcript>
  <text start="0.4" dur="1.2">  one  </text>
  <text start="59.99" dur="2">two</text>
  <text start="125.7" dur="3">three</text>
  <text start="3600" dur="1">four</text>
</transcript>`
	res, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Segments) != 4 {
		t.Fatalf("got %d segments, want 4", len(res.Segments))
	}

	texts := make([]string, len(res.Segments))
	for i, s := range res.Segments {
		texts[i] = s.Text
	}
	if res.PlainText != strings.Join(texts, " ") {
		t.Errorf("PlainText %q is not the space-joined segment texts", res.PlainText)
	}

	lines := strings.Split(res.FormattedText, "\n")
	if len(lines) != len(res.Segments) {
		t.Fatalf("got %d lines, want %d", len(lines), len(res.Segments))
	}
	lineRE := regexp.MustCompile(`^\[\d+:\d{2}\] .*$`)
	wantPrefix := []string{"[0:00] one", "[0:59] two", "[2:05] three", "[60:00] four"}
	for i, line := range lines {
		if !lineRE.MatchString(line) {
			t.Errorf("line %d %q does not match %s", i, line, lineRE)
		}
		if line != wantPrefix[i] {
			t.Errorf("line %d = %q, want %q", i, line, wantPrefix[i])
		}
	}
}

func TestParseEntityDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"double escaped", "it&amp;#39;s", "it's"},
		{"single escaped", "it&#39;s", "it's"},
		{"unrelated entity kept", "rock &amp;amp; roll", "rock &amp; roll"},
		{"plain text unchanged", "nothing to decode", "nothing to decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(`<transcript><text start="1" dur="1">` + tt.raw + `</text></transcript>`)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := res.Segments[0].Text; got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"not xml", "captions unavailable"},
		{"wrong root", `<timedtext><text start="0" dur="1">x</text></timedtext>`},
		{"no segments", `<transcript></transcript>`},
		{"non-numeric start", `<transcript><text start="0" dur="1">a</text><text start="abc" dur="1">b</text></transcript>`},
		{"missing dur", `<transcript><text start="0">a</text></transcript>`},
		{"missing start", `<transcript><text dur="1">a</text></transcript>`},
		{"negative start", `<transcript><text start="-1" dur="1">a</text></transcript>`},
		{"NaN dur", `<transcript><text start="0" dur="NaN">a</text></transcript>`},
		{"huge start", `<transcript><text start="1e300" dur="1">a</text></transcript>`},
		{"infinite dur", `<transcript><text start="0" dur="+Inf">a</text></transcript>`},
		{"truncated xml", `<transcript><text start="0" dur="1">a</text>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.doc)
			if err == nil {
				t.Fatalf("expected error, got %+v", res)
			}
			if res != nil {
				t.Errorf("expected no partial result, got %+v", res)
			}
			if KindOf(err) != KindParse {
				t.Errorf("kind = %v, want %v", KindOf(err), KindParse)
			}
			if err.Error() != "failed to parse transcript" {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "[0:00]"},
		{2.5, "[0:02]"},
		{59.999, "[0:59]"},
		{60, "[1:00]"},
		{125.7, "[2:05]"},
		{3599, "[59:59]"},
		{7265, "[121:05]"},
		{-5, "[0:00]"},
		{1e300, "[525600:00]"},
		{math.Inf(1), "[525600:00]"},
	}
	for _, tt := range tests {
		if got := Timestamp(tt.in); got != tt.want {
			t.Errorf("Timestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
