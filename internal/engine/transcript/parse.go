package transcript

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// apostropheReplacer decodes the apostrophe entity in both its single-
// and double-escaped forms. Other entities are left as-is.
var apostropheReplacer = strings.NewReplacer("&amp;#39;", "'", "&#39;", "'")

// Parse converts a timed-text caption document into ordered segments plus
// plain and timestamped renderings. It is all-or-nothing: any structural
// problem yields a KindParse error and no segments.
func Parse(doc string) (*Result, error) {
	segments, err := parseSegments(doc)
	if err != nil {
		engine.IncrParseErrors()
		slog.Warn("transcript: parse failed", slog.Any("error", err))
		return nil, parseErr()
	}
	return &Result{
		Segments:      segments,
		PlainText:     PlainText(segments),
		FormattedText: FormattedText(segments),
	}, nil
}

func parseSegments(doc string) ([]Segment, error) {
	var tt timedText
	if err := xml.Unmarshal([]byte(doc), &tt); err != nil {
		return nil, fmt.Errorf("decode timedtext XML: %w", err)
	}
	if len(tt.Lines) == 0 {
		return nil, errors.New("no text segments")
	}

	segments := make([]Segment, 0, len(tt.Lines))
	for i, line := range tt.Lines {
		start, err := parseSeconds(line.Start)
		if err != nil {
			return nil, fmt.Errorf("segment %d start: %w", i, err)
		}
		dur, err := parseSeconds(line.Dur)
		if err != nil {
			return nil, fmt.Errorf("segment %d dur: %w", i, err)
		}
		segments = append(segments, Segment{
			Start:    start,
			Duration: dur,
			Text:     decodeText(line.Text),
		})
	}
	return segments, nil
}

// maxSeconds bounds segment timings; one year is far beyond any real video.
const maxSeconds = 365 * 24 * 60 * 60

// parseSeconds parses a non-negative, finite seconds attribute no larger than maxSeconds.
func parseSeconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > maxSeconds {
		return 0, fmt.Errorf("out of range: %q", s)
	}
	return v, nil
}

func decodeText(s string) string {
	return strings.TrimSpace(apostropheReplacer.Replace(s))
}
