// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/history"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/server"
	"github.com/vidclip-cli/vidclip/style"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServerAddress, serveCmd.Flags().Lookup("address")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve metadata, transcripts, stream URLs and downloads over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies(key.YtdlpBinary, key.FfmpegBinary)

		ctx, cancel := signalContext()
		defer cancel()

		s := server.New(runner)
		s.OnFinish = func(job *pipeline.Job, output string, err error) {
			if !viper.GetBool(key.DownloadsSaveHistory) {
				return
			}
			if err := history.Save(history.Finished(job, "", output, err)); err != nil {
				log.Warnf("saving history: %v", err)
			}
		}

		address := viper.GetString(key.ServerAddress)
		fmt.Printf("%s listening on %s\n", icon.Get(icon.Link), style.Bold("http://"+address))
		handleErr(s.Run(ctx, address))
	},
}
