// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/history"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/inline"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/open"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/query"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/tui"
	"github.com/vidclip-cli/vidclip/util"
	"github.com/vidclip-cli/vidclip/ytdlp"
	"golang.org/x/term"
)

func addDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Format ID, or one of best, worst, first, last, index:N")
	lo.Must0(cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"best", "worst", "first", "last"}, cobra.ShellCompDirectiveNoFileComp
	}))
	cmd.Flags().StringP("name", "n", "", "Output file name; the video title is used when empty")
	cmd.Flags().Bool("open", false, "Open the finished file with the default player")
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	addDownloadFlags(downloadCmd)

	rootCmd.AddCommand(clipCmd)
	addDownloadFlags(clipCmd)
	clipCmd.Flags().String("start", "", "Clip start, as SS, M:SS or H:MM:SS")
	clipCmd.Flags().String("end", "", "Clip end, as SS, M:SS or H:MM:SS")
	lo.Must0(clipCmd.MarkFlagRequired("start"))
	lo.Must0(clipCmd.MarkFlagRequired("end"))
}

var downloadCmd = &cobra.Command{
	Use:               "download <url>",
	Short:             "Download a whole video as a playback-compatible MP4",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		runDownload(cmd, pipeline.Request{URL: args[0], Kind: media.KindFull})
	},
}

var clipCmd = &cobra.Command{
	Use:               "clip <url>",
	Short:             "Download a time range of a video as a playback-compatible MP4",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Example:           "  vidclip clip https://youtu.be/dQw4w9WgXcQ --start 0:43 --end 1:05 -f best",
	Run: func(cmd *cobra.Command, args []string) {
		runDownload(cmd, pipeline.Request{
			URL:   args[0],
			Kind:  media.KindClip,
			Start: lo.Must(cmd.Flags().GetString("start")),
			End:   lo.Must(cmd.Flags().GetString("end")),
		})
	},
}

func runDownload(cmd *cobra.Command, req pipeline.Request) {
	CheckDependencies(key.YtdlpBinary, key.FfmpegBinary)

	ctx, cancel := signalContext()
	defer cancel()

	var (
		format = lo.Must(cmd.Flags().GetString("format"))
		name   = lo.Must(cmd.Flags().GetString("name"))
		title  = name
		client = ytdlp.New(runner)
	)

	if format == "" || inline.IsSelector(format) || name == "" {
		video, err := client.CachedMetadata(ctx, req.URL, true)
		handleErr(err)

		title = video.Title
		if name == "" {
			name = video.Title
		}

		if format == "" || inline.IsSelector(format) {
			chosen, err := chooseFormat(format, video.Formats)
			handleErr(err)
			format = chosen.FormatID
		}
	}

	req.FormatID = format
	req.Filename = name
	req.OutputDir = viper.GetString(key.DownloadsDir)

	job, err := pipeline.NewJob(req)
	handleErr(err)

	output, err := execute(ctx, job, title)

	if viper.GetBool(key.DownloadsSaveHistory) {
		if err := history.Save(history.Finished(job, title, output, err)); err != nil {
			log.Warnf("saving history: %v", err)
		}
	}
	_ = query.Remember(req.URL, 1)
	handleErr(err)

	if lo.Must(cmd.Flags().GetBool("open")) || viper.GetBool(key.DownloadsOpenAfter) {
		handleErr(open.File(output))
	}
}

// execute picks the presentation: the progress view on a terminal,
// event lines otherwise.
func execute(ctx context.Context, job *pipeline.Job, title string) (string, error) {
	p := pipeline.New(runner)

	if !asJSON() && util.IsInteractive() {
		output, err := tui.Run(ctx, p, job, &tui.Options{Title: title})
		if err == nil {
			fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), output)
		}
		return output, err
	}

	return inline.Run(ctx, p, job, &inline.Options{
		Out:  os.Stdout,
		JSON: asJSON() || !term.IsTerminal(int(os.Stdout.Fd())),
	})
}

// chooseFormat resolves the --format flag against formats, asking
// interactively when the flag is empty and a terminal is attached.
func chooseFormat(description string, formats []media.Format) (media.Format, error) {
	if len(formats) == 0 {
		return media.Format{}, fmt.Errorf("no downloadable formats")
	}

	if description == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			description = "best"
		} else {
			return askFormat(formats)
		}
	}

	picker, err := inline.ParseFormatPicker(description)
	if err != nil {
		return media.Format{}, err
	}

	chosen, ok := picker(formats).Get()
	if !ok {
		return media.Format{}, fmt.Errorf("no format matches %q", description)
	}
	return chosen, nil
}

func askFormat(formats []media.Format) (media.Format, error) {
	options := lo.Map(formats, func(f media.Format, _ int) string {
		return fmt.Sprintf("%-8s %-5s %-10s %s", f.FormatID, f.Ext, f.Resolution, f.Quality)
	})

	var idx int
	err := survey.AskOne(&survey.Select{
		Message:  "Format",
		Options:  options,
		PageSize: 15,
	}, &idx)
	if err != nil {
		return media.Format{}, err
	}
	return formats[idx], nil
}
