// Package history persists a record of every download the application finished.
package history

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/where"
	"golang.org/x/exp/slices"
)

// mu serializes read-modify-write cycles; the map gache hands out is shared.
var mu sync.Mutex

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns a copy of every stored record keyed by job ID.
func Get() (map[string]*Record, error) {
	mu.Lock()
	defer mu.Unlock()
	return load()
}

func load() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return lo.Assign(cached), nil
}

// List returns the stored records, most recent first.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	slices.SortFunc(records, func(a, b *Record) int {
		return b.FinishedAt.Compare(a.FinishedAt)
	})
	return records, nil
}

// Find returns the records whose title, URL or output path fuzzily match query, most recent first.
func Find(query string) ([]*Record, error) {
	records, err := List()
	if err != nil || query == "" {
		return records, err
	}

	query = strings.ToLower(query)
	return lo.Filter(records, func(r *Record, _ int) bool {
		return lo.SomeBy([]string{r.Title, r.URL, r.Output}, func(s string) bool {
			return fuzzy.MatchFold(query, s)
		})
	}), nil
}

// Save stores record, replacing an earlier one for the same job.
func Save(record *Record) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := load()
	if err != nil {
		return err
	}

	saved[record.JobID] = record
	return cacher.Set(saved)
}

// Remove deletes the record of a job.
func Remove(jobID string) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := load()
	if err != nil {
		return err
	}

	delete(saved, jobID)
	return cacher.Set(saved)
}

// Clear deletes every record.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()
	return cacher.Set(make(map[string]*Record))
}
