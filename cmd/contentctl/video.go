package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contentportal/internal/content"
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Video record operations",
}

var videoWatchCmd = &cobra.Command{
	Use:   "watch <recordId> <videoId>",
	Short: "Poll the video service until the render is ready and mark the record completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, videoID := args[0], args[1]
		err := runtime.Content.WatchVideo(cmd.Context(), recordID, videoID)
		return reportWatch(cmd, recordID, err)
	},
}

func init() {
	videoCmd.AddCommand(videoWatchCmd)
}

func reportWatch(cmd *cobra.Command, recordID string, err error) error {
	out := cmd.OutOrStdout()
	switch {
	case err == nil:
		fmt.Fprintf(out, "record %s completed\n", recordID)
		return nil
	case errors.Is(err, content.ErrStillProcessing):
		fmt.Fprintf(out, "record %s is still processing; try again later\n", recordID)
		return nil
	case errors.Is(err, content.ErrVideoFailed):
		return fmt.Errorf("record %s: video service reported a render error", recordID)
	default:
		return fmt.Errorf("watch record %s: %w", recordID, err)
	}
}
