// Package version tracks the application release and checks for newer ones.
package version

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/network"
	"github.com/vidclip-cli/vidclip/where"
)

// ReleasesURL lists published releases.
const ReleasesURL = "https://github.com/vidclip-cli/vidclip/releases"

var latestURL = "https://api.github.com/repos/vidclip-cli/vidclip/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest published version without its "v" prefix.
// Answers are cached for two days.
func Latest(ctx context.Context, client *network.Client) (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := client.JSON(ctx, latestURL, &release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	version := strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher.Set(version)
	return version, nil
}
