// Package main is the entry point for the vidclip application.
package main

import (
	"github.com/samber/lo"
	"github.com/vidclip-cli/vidclip/cmd"
	"github.com/vidclip-cli/vidclip/config"
	"github.com/vidclip-cli/vidclip/internal/cache"
	"github.com/vidclip-cli/vidclip/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
