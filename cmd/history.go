// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/history"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/style"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Bool("clear", false, "Forget every recorded download")
}

var historyCmd = &cobra.Command{
	Use:   "history [filter]",
	Short: "List finished and failed downloads, newest first",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(history.Clear())
			fmt.Printf("%s history cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		var (
			records []*history.Record
			err     error
		)
		if len(args) == 1 {
			records, err = history.Find(args[0])
		} else {
			records, err = history.List()
		}
		handleErr(err)

		if asJSON() {
			printJSON(records)
			return
		}

		if len(records) == 0 {
			fmt.Println(style.Faint("no downloads yet"))
			return
		}

		for _, r := range records {
			status := style.Fg(color.Green)(icon.Get(icon.Success))
			detail := r.Output
			if !r.Succeeded() {
				status = style.Fg(color.Red)(icon.Get(icon.Fail))
				detail = r.Error
			}

			fmt.Printf("%s %s %s\n", status, style.Bold(r.String()), style.Faint(r.FinishedAt.Format("2006-01-02 15:04")))
			fmt.Printf("  %s\n", style.Faint(detail))
		}
	},
}
