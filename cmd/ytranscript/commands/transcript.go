package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

var transcriptFormat string

var transcriptCmd = &cobra.Command{
	Use:   "transcript <url>",
	Short: "Print the caption transcript of a video",
	Long: `Print the caption transcript of a video.

Formats:
  timed  one "[m:ss] text" line per caption (default)
  plain  all caption text as a single paragraph
  yaml   segments with start/duration in seconds
  json   segments with start/duration in seconds`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	transcriptCmd.Flags().StringVarP(&transcriptFormat, "format", "F", "timed", "output format: timed, plain, yaml, json")
	rootCmd.AddCommand(transcriptCmd)
}

func runTranscript(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(strings.TrimSpace(transcriptFormat))
	switch format {
	case "timed", "plain", "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q (want timed, plain, yaml or json)", transcriptFormat)
	}

	out, err := newPipeline().Process(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeTranscript(cmd.OutOrStdout(), out, format)
}

// writeTranscript renders a processed transcript in the given format.
func writeTranscript(w io.Writer, out *toolutil.ProcessOutput, format string) error {
	switch format {
	case "plain":
		_, err := fmt.Fprintln(w, out.PlainText)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out.Segments); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out.Segments); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, out.Transcript)
		return err
	}
}
