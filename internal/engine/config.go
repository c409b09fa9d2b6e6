package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	ChromePath        string // empty = look up Chrome on PATH
	BrowserHeadless   bool
	BrowserNoSandbox  bool
	BrowserProxyURL   string
	NavigationTimeout time.Duration
	SettleTimeout     time.Duration // how long to watch traffic for caption tracks after load
	FetchTimeout      time.Duration
	MaxCaptionBytes   int64
	LLMAPIKey         string
	LLMAPIBase        string
	LLMModel          string
	LLMMaxTokens      int
	HTTPClient        *http.Client
	BrowserClient     *BrowserClient // nil = caption fetch uses HTTPClient
	LLMClient         *llm.Client    // nil = summaries disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (transcript, toolutil).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
