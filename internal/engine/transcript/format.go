package transcript

import (
	"fmt"
	"math"
	"strings"
)

// PlainText joins segment texts with a single space.
func PlainText(segments []Segment) string {
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}

// FormattedText renders one "[m:ss] text" line per segment.
func FormattedText(segments []Segment) string {
	var sb strings.Builder
	for i, s := range segments {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(Timestamp(s.Start))
		sb.WriteByte(' ')
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Timestamp formats seconds as "[m:ss]". Minutes are not padded and may exceed 59.
// Values outside [0, maxSeconds] are clamped.
func Timestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	seconds = math.Min(seconds, maxSeconds)
	minutes := int64(math.Floor(seconds / 60))
	secs := int64(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("[%d:%02d]", minutes, secs)
}
