// Package cmd implements the command-line interface for vidclip.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/internal/cache"
	"github.com/vidclip-cli/vidclip/util"
	"github.com/vidclip-cli/vidclip/where"
	"github.com/vidclip-cli/vidclip/workspace"
)

// clearTarget defines a resource eligible for cleanup.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

func removePath(location func() string) func() error {
	return func() error {
		return util.Delete(location())
	}
}

// clearTargets registry of all application artifacts that can be selectively cleared.
var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), removePath(where.Cache)},
	{"metadata cache", "metadata", mo.Some("m"), cache.Clear},
	{"history file", "history", mo.Some("s"), removePath(where.History)},
	{"url suggestions", "queries", mo.Some("q"), removePath(where.Queries)},
	{"abandoned workspaces", "workspaces", mo.Some("w"), func() error {
		n, err := workspace.Sweep(where.Downloads(), workspace.StaleAfter)
		if n > 0 {
			fmt.Printf("%s removed %s\n", icon.Get(icon.Warn), util.Quantify(n, "workspace", "workspaces"))
		}
		return err
	}},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd manages the cleanup of temporary and cached application artifacts.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear temporary and cached application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), util.Capitalize(target.name)))
			err := target.clear()
			e()
			// nothing to clear is not a failure
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
