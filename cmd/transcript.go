// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"fmt"

	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/transcript"
	"github.com/vidclip-cli/vidclip/util"
	"github.com/vidclip-cli/vidclip/youtube"
	"github.com/vidclip-cli/vidclip/ytdlp"
)

func init() {
	rootCmd.AddCommand(transcriptCmd)

	transcriptCmd.Flags().String("from", "", "Keep lines from this timestamp on (e.g. 1:30)")
	transcriptCmd.Flags().String("to", "", "Keep lines up to this timestamp")
}

var transcriptCmd = &cobra.Command{
	Use:               "transcript <url-or-id>",
	Short:             "Print the automatic captions of a YouTube video",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies(key.YtdlpBinary)

		id := youtube.ExtractVideoID(args[0]).OrElse(args[0])

		ctx, cancel := signalContext()
		defer cancel()

		text, err := transcript.Fetch(ctx, ytdlp.New(runner), id)
		handleErr(err)

		from, to := lo.Must(cmd.Flags().GetString("from")), lo.Must(cmd.Flags().GetString("to"))
		if from != "" || to != "" {
			start, end := 0, 1<<31-1
			if from != "" {
				start, err = transcript.TimeToSeconds(from)
				handleErr(err)
			}
			if to != "" {
				end, err = transcript.TimeToSeconds(to)
				handleErr(err)
			}
			text = transcript.Truncate(text, start, end)
		}

		if asJSON() {
			printJSON(map[string]string{"video_id": id, "transcript": text})
			return
		}

		if width, _, err := util.TerminalSize(); err == nil && width > 0 {
			text = wordwrap.String(text, width)
		}
		fmt.Println(text)
	},
}
