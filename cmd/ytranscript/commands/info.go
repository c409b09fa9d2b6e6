package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

var infoCmd = &cobra.Command{
	Use:   "info <url>",
	Short: "Print video metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := newPipeline().VideoInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeInfo(cmd.OutOrStdout(), info)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func writeInfo(w io.Writer, info *transcript.VideoInfo) error {
	_, err := fmt.Fprintf(w, "Title:     %s\nChannel:   %s\nPublished: %s\nViews:     %s\nLikes:     %s\n\n%s\n",
		info.Title, info.ChannelName, info.PublishDate, info.Views, info.Likes, info.Description)
	return err
}
