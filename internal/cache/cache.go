// Package cache keeps extracted video metadata on disk so repeated lookups skip the extractor.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/where"
)

const tmpSuffix = ".tmp"

// TTL is how long an entry stays fresh.
func TTL() time.Duration {
	return time.Duration(viper.GetInt(key.MetadataCacheTTLHours)) * time.Hour
}

// Enabled reports whether metadata caching is switched on.
func Enabled() bool {
	return viper.GetBool(key.MetadataCache)
}

// GenerateKey derives a stable file name from a video URL.
func GenerateKey(url string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return hex.EncodeToString(hash[:])
}

// Read decodes a fresh entry into target and reports whether it did.
func Read(key string, target any) bool {
	path := filepath.Join(where.Metadata(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL() {
		return false
	}

	data, err := afero.ReadFile(filesystem.API(), path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.Warnf("discarding unreadable cache entry %s: %v", key, err)
		return false
	}
	return true
}

// Write stores data under key, replacing the previous entry atomically.
func Write(key string, data any) error {
	path := filepath.Join(where.Metadata(), key)
	tmp := path + tmpSuffix

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(filesystem.API(), tmp, encoded, 0o644); err != nil {
		return err
	}
	return filesystem.API().Rename(tmp, path)
}

// CollectGarbage removes entries older than TTL and returns how many it deleted.
func CollectGarbage() int {
	var removed int
	_ = afero.Walk(filesystem.API(), where.Metadata(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL() || strings.HasSuffix(path, tmpSuffix) {
			if filesystem.API().Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return removed
}

// Clear removes every entry.
func Clear() error {
	return filesystem.API().RemoveAll(where.Metadata())
}
