// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/style"
)

// installHints maps a tool to its install command per platform.
var installHints = map[string]map[string]string{
	"yt-dlp": {
		constant.Darwin:  "brew install yt-dlp",
		constant.Linux:   "pipx install yt-dlp",
		constant.Windows: "scoop install yt-dlp",
	},
	"ffmpeg": {
		constant.Darwin:  "brew install ffmpeg",
		constant.Linux:   "sudo apt install ffmpeg",
		constant.Windows: "scoop install ffmpeg",
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the extractor and encoder are installed",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies(key.YtdlpBinary, key.FfmpegBinary)
		fmt.Printf("%s all dependencies found\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

// CheckDependencies exits with a boxed error when any binary configured
// under the given keys cannot be found in PATH.
func CheckDependencies(keys ...string) {
	var binaries []string
	for _, k := range keys {
		binaries = append(binaries, viper.GetString(k))
	}

	missing := process.Missing(binaries...)
	if len(missing) == 0 {
		return
	}

	for _, dep := range missing {
		printMissingDependencyError(dep)
	}
	os.Exit(1)
}

func printMissingDependencyError(dep string) {
	installCmd := installHints[dep][runtime.GOOS]

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
