package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// ErrLLMDisabled is returned when no LLM client is configured.
var ErrLLMDisabled = errors.New("llm not configured")

// maxSummaryInputRunes bounds the transcript text sent to the LLM.
const maxSummaryInputRunes = 60000

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// SummarizeTranscript asks the LLM for a short summary of a formatted transcript.
func SummarizeTranscript(ctx context.Context, formatted string, maxPoints int) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrLLMDisabled
	}
	if maxPoints <= 0 {
		maxPoints = 6
	}
	prompt := fmt.Sprintf(summarizeTranscriptPrompt, maxPoints,
		TruncateRunes(formatted, maxSummaryInputRunes, "\n[...]"))

	metrics.LLMCalls.Add(1)
	raw, err := cfg.LLMClient.Complete(ctx, "", prompt,
		llm.WithChatTemperature(0.3),
	)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", fmt.Errorf("summarize: %w", err)
	}
	return stripFences(raw), nil
}
