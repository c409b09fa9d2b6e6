package toolserver

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

const defaultMaxChars = 20000

// TranscriptOutput is the structured result of youtube_transcript.
type TranscriptOutput struct {
	URL          string               `json:"url"`
	VideoID      string               `json:"video_id"`
	Format       string               `json:"format"`
	SegmentCount int                  `json:"segment_count"`
	Transcript   string               `json:"transcript,omitempty"`
	Segments     []transcript.Segment `json:"segments,omitempty"`
	Truncated    bool                 `json:"truncated"`
	Summary      string               `json:"summary,omitempty"`
}

// RegisterTools registers the transcript tools on the given MCP server:
// youtube_transcript, youtube_video_info.
func RegisterTools(server *mcp.Server, p *toolutil.Pipeline) {
	registerTranscript(server, p)
	registerVideoInfo(server, p)
}

func registerTranscript(server *mcp.Server, p *toolutil.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Extract the caption transcript of a YouTube video by rendering the watch page in a headless browser. Returns timestamped lines ([m:ss] text), a plain paragraph, or structured segments with start/duration in seconds. Optionally adds a short LLM summary with timestamps. Fails if the video has no captions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		out, err := p.Process(ctx, input.URL)
		if err != nil {
			return nil, TranscriptOutput{}, toolError(err)
		}
		return nil, buildTranscriptOutput(ctx, out, input), nil
	})
}

func buildTranscriptOutput(ctx context.Context, out *toolutil.ProcessOutput, input engine.TranscriptInput) TranscriptOutput {
	format := engine.NormFormat(input.Format)
	var videoID string
	if pageURL, err := transcript.CheckVideoURL(out.ProcessedURL); err == nil {
		videoID, _ = transcript.VideoID(pageURL)
	}
	res := TranscriptOutput{
		URL:          out.ProcessedURL,
		VideoID:      videoID,
		Format:       format,
		SegmentCount: len(out.Segments),
	}

	maxChars := input.MaxChars
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}

	switch format {
	case engine.FormatSegments:
		res.Segments = out.Segments
	case engine.FormatPlain:
		res.Transcript, res.Truncated = truncate(out.PlainText, maxChars)
	default:
		res.Transcript, res.Truncated = truncate(out.Transcript, maxChars)
	}

	if input.Summarize {
		summary, err := engine.SummarizeTranscript(ctx, out.Transcript, 0)
		if err != nil {
			slog.Warn("youtube_transcript: summary failed", slog.Any("error", err))
			res.Summary = "Summary unavailable: " + err.Error()
		} else {
			res.Summary = summary
		}
	}
	return res
}

func truncate(s string, maxChars int) (string, bool) {
	if utf8.RuneCountInString(s) <= maxChars {
		return s, false
	}
	return engine.TruncateRunes(s, maxChars, "..."), true
}

func registerVideoInfo(server *mcp.Server, p *toolutil.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_video_info",
		Description: "Get metadata for a YouTube video (title, views, likes, description, channel name, publish date) from the rendered watch page. Missing fields are returned as 'Unknown ...' placeholders.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoInfoInput) (*mcp.CallToolResult, *transcript.VideoInfo, error) {
		info, err := p.VideoInfo(ctx, input.URL)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, info, nil
	})
}

// toolError turns pipeline failures into messages an agent can act on.
func toolError(err error) error {
	switch {
	case errors.Is(err, transcript.ErrNoCaptions):
		return errors.New("this video has no captions available")
	case transcript.KindOf(err) == transcript.KindInvalidInput:
		return errors.New("url must be a YouTube video URL (youtube.com/watch?v=ID or youtu.be/ID)")
	}
	return err
}
