// Package main provides the ytranscript CLI.
//
// Usage:
//
//	ytranscript [flags] <command> <url>
//
// Commands:
//
//	transcript - print the caption transcript of a video
//	info       - print video metadata
//
// Browser and timeout settings are read from the same environment variables
// as the MCP server (CHROME_PATH, NAVIGATION_TIMEOUT, ...), overridable by flags.
package main

import (
	"fmt"
	"os"

	"github.com/anatolykoptev/go_transcript/cmd/ytranscript/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
