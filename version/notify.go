package version

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/network"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/util"
)

// Notify prints a notice when a newer release than the running one exists.
// Lookup failures are silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx, network.Default)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(ReleasesURL+"/tag/v"+latest),
	)
}
