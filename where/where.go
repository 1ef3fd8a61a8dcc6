// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/util"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "VIDCLIP_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The VIDCLIP_CONFIG_PATH environment variable takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Vidclip))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Vidclip))
}

// Metadata resolves the directory holding cached video descriptions.
func Metadata() string {
	return ensureDir(filepath.Join(Cache(), "metadata"))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the path of the download history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queries resolves the path of the recently used URL registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Downloads resolves the configured output directory, expanding a leading ~.
func Downloads() string {
	return ensureDir(util.ExpandHome(viper.GetString(key.DownloadsDir)))
}

// Temp resolves a volatile scratch directory for caption files and other short-lived artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Vidclip))
}
