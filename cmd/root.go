// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/inline"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/query"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/version"
	"github.com/vidclip-cli/vidclip/where"
	"github.com/vidclip-cli/vidclip/workspace"
)

// runner spawns the external tools for every command.
var runner process.Runner = process.Exec{}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("output", "o", "", "Directory finished videos are written to")
	lo.Must0(rootCmd.MarkPersistentFlagDirname("output"))
	lo.Must0(viper.BindPFlag(key.DownloadsDir, rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.PersistentFlags().BoolP("json", "j", false, "Print machine-readable JSON instead of styled output")
	lo.Must0(viper.BindPFlag(key.CliJSON, rootCmd.PersistentFlags().Lookup("json")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// caption scratch dirs of runs that were killed before they could clean up
	go func() {
		_, _ = workspace.Sweep(where.Temp(), workspace.StaleAfter)
	}()
}

// rootCmd defines the entry point for the vidclip application.
var rootCmd = &cobra.Command{
	Use:   constant.Vidclip,
	Short: "Download videos and clips, fetch transcripts and stream URLs",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Download videos and clips, fetch transcripts and stream URLs"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// signalContext is cancelled on interrupt or termination.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func asJSON() bool {
	return viper.GetBool(key.CliJSON)
}

func printJSON(v any) {
	handleErr(inline.WriteJSON(os.Stdout, v))
}

// completionURLs suggests previously used URLs.
func completionURLs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}
