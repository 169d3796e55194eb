// Package history persists playback positions so a target can be resumed later.
package history

import (
	"cmp"
	"slices"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/where"
)

// options resolves the store on every call, through the active filesystem backend.
func options() *gache.Options {
	return &gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	}
}

func load() (map[string]Entry, error) {
	cached, expired, err := gache.New[map[string]Entry](options()).Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]Entry), nil
	}
	return cached, nil
}

func store(entries map[string]Entry) error {
	return gache.New[map[string]Entry](options()).Set(entries)
}

// Get returns every entry keyed by normalized target.
func Get() (map[string]Entry, error) {
	return load()
}

// List returns every entry, most recently updated first.
func List() ([]Entry, error) {
	entries, err := load()
	if err != nil {
		return nil, err
	}

	list := lo.Values(entries)
	slices.SortFunc(list, func(a, b Entry) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(a.Path, b.Path))
	})

	return list, nil
}

// Save stores entry, replacing any previous entry for the same target.
// A zero UpdatedAt is set to the current time.
func Save(entry Entry) error {
	entries, err := load()
	if err != nil {
		return err
	}

	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}
	entry.Path = entry.encode()

	entries[entry.Path] = entry
	return store(entries)
}

// Find returns the entry saved for path.
func Find(path string) (mo.Option[Entry], error) {
	entries, err := load()
	if err != nil {
		return mo.None[Entry](), err
	}

	entry, ok := entries[encode(path)]
	return mo.TupleToOption(entry, ok), nil
}

// Latest returns the most recently updated entry.
func Latest() (mo.Option[Entry], error) {
	list, err := List()
	if err != nil {
		return mo.None[Entry](), err
	}

	if len(list) == 0 {
		return mo.None[Entry](), nil
	}
	return mo.Some(list[0]), nil
}

// Remove deletes the entry for path. Removing a missing entry is not an error.
func Remove(path string) error {
	entries, err := load()
	if err != nil {
		return err
	}

	delete(entries, encode(path))
	return store(entries)
}

// Clear deletes every entry.
func Clear() error {
	return store(make(map[string]Entry))
}
