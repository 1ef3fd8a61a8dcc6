// Package workspace manages the per-job scratch directories downloads are assembled in
// and names the artifacts they produce.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/log"
)

const (
	// DirPrefix starts the name of every workspace directory.
	DirPrefix = "temp_"

	// OutputPrefix starts the name of the file the extractor writes into a workspace.
	OutputPrefix = "temp."

	partialSuffix = ".part"

	// StaleAfter is how old a workspace must be before Sweep treats it as abandoned.
	StaleAfter = 24 * time.Hour
)

// Workspace is a uniquely named directory owned by exactly one job.
type Workspace struct {
	Path string
}

// Create makes a fresh workspace under baseDir, creating baseDir when needed.
func Create(baseDir string) (*Workspace, error) {
	name := fmt.Sprintf("%s%d_%s", DirPrefix, time.Now().Unix(), ksuid.New().String())
	path := filepath.Join(baseDir, name)

	if err := filesystem.API().MkdirAll(path, os.ModePerm); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", fault.ErrWorkspaceIO, path, err)
	}

	log.Debugf("workspace created: %s", path)
	return &Workspace{Path: path}, nil
}

// OutputTemplate is the extractor output template that lands files inside the workspace.
func (w *Workspace) OutputTemplate() string {
	return filepath.Join(w.Path, OutputPrefix+"%(ext)s")
}

// Output looks for the file the extractor produced. Finished files are
// preferred over leftover partial downloads; ok is false when nothing
// carrying OutputPrefix exists.
func (w *Workspace) Output() (path string, ok bool, err error) {
	entries, err := afero.ReadDir(filesystem.API(), w.Path)
	if err != nil {
		return "", false, fmt.Errorf("%w: read %s: %v", fault.ErrWorkspaceIO, w.Path, err)
	}

	candidates := lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && strings.HasPrefix(e.Name(), OutputPrefix)
	})
	if len(candidates) == 0 {
		return "", false, nil
	}

	name, found := lo.Find(candidates, func(n string) bool { return !strings.HasSuffix(n, partialSuffix) })
	if !found {
		name = candidates[0]
	}
	return filepath.Join(w.Path, name), true, nil
}

// Destroy removes the workspace and everything in it.
// Failures are logged and otherwise ignored.
func (w *Workspace) Destroy() {
	if w == nil || w.Path == "" {
		return
	}

	if err := filesystem.API().RemoveAll(w.Path); err != nil {
		log.Warnf("workspace cleanup of %s failed: %v", w.Path, err)
		return
	}
	log.Debugf("workspace removed: %s", w.Path)
}

// Sweep removes workspace directories left in baseDir by interrupted runs
// and returns how many were deleted. Only directories named the way Create
// names them and created more than olderThan ago are touched.
func Sweep(baseDir string, olderThan time.Duration) (int, error) {
	entries, err := afero.ReadDir(filesystem.API(), baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	var removed int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		created, ok := createdAt(e.Name())
		if !ok || time.Since(created) < olderThan {
			continue
		}

		if err := filesystem.API().RemoveAll(filepath.Join(baseDir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// createdAt recovers the creation time embedded in a workspace directory name.
// ok is false for anything Create would not have produced.
func createdAt(name string) (time.Time, bool) {
	rest, found := strings.CutPrefix(name, DirPrefix)
	if !found {
		return time.Time{}, false
	}

	stamp, id, found := strings.Cut(rest, "_")
	if !found {
		return time.Time{}, false
	}

	seconds, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	if _, err := ksuid.Parse(id); err != nil {
		return time.Time{}, false
	}

	return time.Unix(seconds, 0), true
}
