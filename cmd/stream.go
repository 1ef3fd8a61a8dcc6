// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/open"
	"github.com/vidclip-cli/vidclip/query"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/ytdlp"
)

func init() {
	rootCmd.AddCommand(streamCmd)

	streamCmd.Flags().Bool("open", false, "Hand the URL to the system's default player")
}

var streamCmd = &cobra.Command{
	Use:               "stream <url>",
	Short:             "Print a direct, time-limited playback URL",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies(key.YtdlpBinary)

		ctx, cancel := signalContext()
		defer cancel()

		stream, err := ytdlp.New(runner).StreamingURL(ctx, args[0])
		handleErr(err)
		_ = query.Remember(args[0], 1)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(stream.StreamingURL))
		}

		if asJSON() {
			printJSON(stream)
			return
		}

		fmt.Println(stream.StreamingURL)
		fmt.Printf("%s %s %s\n", icon.Get(icon.Link), style.Faint("expires"), style.Fg(color.Yellow)(stream.ExpireDate))
	},
}
