// go_transcript — YouTube transcript MCP server.
//
// Exposes two MCP tools: youtube_transcript, youtube_video_info.
// When API_KEY is set, also serves POST /api/process on API_PORT.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/api"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolserver"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}

	mcpPort := env.Str("MCP_PORT", "8892")
	initEngine()
	pipeline := toolutil.NewPipeline(toolutil.NewAcquirer(engine.Cfg))

	if key := env.Str("API_KEY", ""); key != "" {
		go serveAPI(pipeline, key)
	} else {
		slog.Info("API_KEY not set, REST endpoint disabled")
	}

	slog.Info("starting go_transcript", slog.String("port", mcpPort))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	toolserver.RegisterTools(server, pipeline)
	slog.Info("tools registered", slog.Int("count", 2))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 180 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func serveAPI(p *toolutil.Pipeline, key string) {
	port := env.Str("API_PORT", "3000")
	app := api.New(p, api.Config{
		APIKey:       key,
		RateLimit:    env.Float("API_RATE_LIMIT", 1),
		RateBurst:    env.Int("API_RATE_BURST", 5),
		WriteTimeout: 120 * time.Second,
	})
	slog.Info("REST API listening", slog.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		slog.Error("REST API failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		ChromePath:        env.Str("CHROME_PATH", ""),
		BrowserHeadless:   env.Str("BROWSER_HEADLESS", "true") != "false",
		BrowserNoSandbox:  env.Str("BROWSER_NO_SANDBOX", "false") == "true",
		BrowserProxyURL:   env.Str("BROWSER_PROXY_URL", ""),
		NavigationTimeout: env.Duration("NAVIGATION_TIMEOUT", 30*time.Second),
		SettleTimeout:     env.Duration("SETTLE_TIMEOUT", 5*time.Second),
		FetchTimeout:      env.Duration("FETCH_TIMEOUT", 15*time.Second),
		MaxCaptionBytes:   int64(env.Int("MAX_CAPTION_BYTES", 4<<20)),
		LLMAPIKey:         env.Str("LLM_API_KEY", ""),
		LLMAPIBase:        env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:          env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMMaxTokens:      env.Int("LLM_MAX_TOKENS", 2048),
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	if env.Str("USE_STEALTH_FETCH", "false") == "true" {
		initStealth(&c)
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(env.List("LLM_API_KEY_FALLBACKS", "")),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(env.Float("LLM_TEMPERATURE", 0.3)),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
		slog.Info("llm client initialized", slog.String("model", c.LLMModel))
	}

	engine.Init(c)
}

// initStealth sets up the TLS-fingerprinted client used for caption fetches.
func initStealth(c *engine.Config) {
	opts := []stealth.ClientOption{stealth.WithTimeout(15)}

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed", slog.Any("error", err))
		return
	}
	c.BrowserClient = bc
	slog.Info("stealth browser client initialized")
}
