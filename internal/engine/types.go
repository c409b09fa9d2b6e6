package engine

// --- MCP tool inputs ---

type TranscriptInput struct {
	URL       string `json:"url" jsonschema:"YouTube video URL (youtube.com/watch?v=ID or youtu.be/ID)"`
	Format    string `json:"format,omitempty" jsonschema:"Output format: timed ([m:ss] per line, default), plain (single paragraph), segments (structured start/duration/text list)"`
	MaxChars  int    `json:"max_chars,omitempty" jsonschema:"Truncate transcript text to this many characters (default: 20000, 0 = default)"`
	Summarize bool   `json:"summarize,omitempty" jsonschema:"Also return a short LLM summary with timestamps (requires LLM configuration)"`
}

type VideoInfoInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL (youtube.com/watch?v=ID or youtu.be/ID)"`
}

// Transcript output formats.
const (
	FormatTimed    = "timed"
	FormatPlain    = "plain"
	FormatSegments = "segments"
)

// NormFormat normalises the transcript format field: empty → "timed".
func NormFormat(f string) string {
	switch f {
	case FormatPlain, FormatSegments:
		return f
	}
	return FormatTimed
}
