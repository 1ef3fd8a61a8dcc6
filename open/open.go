// Package open hands finished files and stream URLs to the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/log"
)

// File opens a local file, failing early when it does not exist.
func File(path string) error {
	if _, err := filesystem.API().Stat(path); err != nil {
		return err
	}
	return Start(path)
}

// Start launches the default handler for input without waiting for it.
func Start(input string) error {
	cmd, err := Command(runtime.GOOS, input)
	if err != nil {
		return err
	}

	log.Debugf("open: %s", cmd.String())
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() { _ = cmd.Wait() }()
	return nil
}

// Command builds the opener invocation for goos.
func Command(goos, input string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
	case constant.Darwin:
		return exec.Command("open", input), nil
	case constant.Linux:
		return exec.Command("xdg-open", input), nil
	case constant.Android:
		return exec.Command("termux-open", input), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
