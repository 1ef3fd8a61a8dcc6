// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/network"
	"github.com/vidclip-cli/vidclip/query"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/transcript"
	"github.com/vidclip-cli/vidclip/where"
	"github.com/vidclip-cli/vidclip/workspace"
	"github.com/vidclip-cli/vidclip/ytdlp"
)

func init() {
	rootCmd.AddCommand(metadataCmd)

	metadataCmd.Flags().Bool("no-cache", false, "Ignore cached metadata and ask the extractor again")
	metadataCmd.Flags().BoolP("thumbnail", "t", false, "Save the thumbnail into the output directory")
}

var metadataCmd = &cobra.Command{
	Use:               "metadata <url>",
	Short:             "Show title, author, duration and available formats of a video",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies(key.YtdlpBinary)

		ctx, cancel := signalContext()
		defer cancel()

		url := args[0]
		video, err := ytdlp.New(runner).CachedMetadata(ctx, url, !lo.Must(cmd.Flags().GetBool("no-cache")))
		handleErr(err)
		_ = query.Remember(url, 1)

		if lo.Must(cmd.Flags().GetBool("thumbnail")) && video.Thumbnail != "" {
			ext := path.Ext(strings.SplitN(video.Thumbnail, "?", 2)[0])
			if ext == "" {
				ext = ".jpg"
			}
			dst := filepath.Join(where.Downloads(), workspace.SanitizeStem(video.Title)+ext)
			handleErr(network.Default.Save(ctx, video.Thumbnail, dst))

			if !asJSON() {
				fmt.Printf("%s thumbnail saved to %s\n", icon.Get(icon.Success), dst)
			}
		}

		if asJSON() {
			printJSON(video)
			return
		}

		printVideo(video)
	},
}

func printVideo(video *media.Video) {
	faint := style.Faint
	fmt.Printf("%s %s\n", icon.Get(icon.Video), style.Bold(video.Title))
	fmt.Printf("%s %s\n", faint("by"), style.Fg(color.Purple)(video.Author))
	fmt.Printf("%s %s\n\n", faint("duration"), transcript.FormatTime(video.Duration))

	for _, f := range video.Formats {
		size := "?"
		if bytes, ok := f.Filesize.Get(); ok {
			size = fmt.Sprintf("%.1fMiB", float64(bytes)/(1<<20))
		}

		fmt.Printf("  %-8s %-5s %-10s %-12s %s\n",
			style.Fg(color.Yellow)(f.FormatID),
			f.Ext,
			f.Resolution,
			f.Quality,
			faint(size),
		)
	}
}
