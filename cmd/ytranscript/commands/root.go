package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

var (
	// Global flags
	verbose    bool
	chromePath string
	showWindow bool
	noSandbox  bool
	navTimeout time.Duration
	settle     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "ytranscript",
	Short: "Extract YouTube transcripts with a headless browser",
	Long: `ytranscript - fetch the captions of a YouTube video.

The watch page is rendered in headless Chrome and the caption track the
player requests is fetched and parsed.

Examples:
  ytranscript transcript https://www.youtube.com/watch?v=dQw4w9WgXcQ
  ytranscript transcript youtu.be/dQw4w9WgXcQ --format plain
  ytranscript transcript youtu.be/dQw4w9WgXcQ --format yaml > segments.yaml
  ytranscript info https://youtu.be/dQw4w9WgXcQ`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	_ = godotenv.Load()

	f := rootCmd.PersistentFlags()
	f.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	f.StringVar(&chromePath, "chrome", env.Str("CHROME_PATH", ""), "path to the Chrome executable")
	f.BoolVar(&showWindow, "show-browser", false, "run Chrome with a visible window")
	f.BoolVar(&noSandbox, "no-sandbox", env.Str("BROWSER_NO_SANDBOX", "false") == "true", "disable the Chrome sandbox (containers)")
	f.DurationVar(&navTimeout, "timeout", env.Duration("NAVIGATION_TIMEOUT", 30*time.Second), "page navigation timeout")
	f.DurationVar(&settle, "settle", env.Duration("SETTLE_TIMEOUT", 5*time.Second), "how long to wait for the caption track after load")
}

func setup(*cobra.Command, []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	engine.Init(engine.Config{
		ChromePath:        chromePath,
		BrowserHeadless:   !showWindow,
		BrowserNoSandbox:  noSandbox,
		BrowserProxyURL:   env.Str("BROWSER_PROXY_URL", ""),
		NavigationTimeout: navTimeout,
		SettleTimeout:     settle,
		FetchTimeout:      env.Duration("FETCH_TIMEOUT", 15*time.Second),
		MaxCaptionBytes:   int64(env.Int("MAX_CAPTION_BYTES", 4<<20)),
	})
	return nil
}

func newPipeline() *toolutil.Pipeline {
	return toolutil.NewPipeline(toolutil.NewAcquirer(engine.Cfg))
}
