package images

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Searcher is what the cache calls on a miss. Both lookups degrade to
// placeholder strings rather than erroring.
type Searcher interface {
	Banner(ctx context.Context, companyName string) string
	Logo(ctx context.Context, companyName string) string
}

// Entry is the cached pair for one company name.
type Entry struct {
	ImageURL string `json:"imageurl"`
	LogoURL  string `json:"logourl"`
}

// Cache maps exact company names to image/logo URLs, backed by one JSON
// file. Entries are written once and never refreshed. The flock guards
// the file's read-modify-write against other processes; two concurrent
// in-process misses for the same key may still both hit the search API,
// with the second write winning.
type Cache struct {
	path   string
	search Searcher
	logger *zap.Logger
	lock   *flock.Flock
}

func NewCache(path string, search Searcher, logger *zap.Logger) *Cache {
	return &Cache{
		path:   path,
		search: search,
		logger: logger,
		lock:   flock.New(path + ".lock"),
	}
}

// GetOrFetch returns the cached entry for companyName, computing and
// persisting it on first request. The key is case-sensitive and exact.
func (c *Cache) GetOrFetch(ctx context.Context, companyName string) (Entry, error) {
	entries, err := c.load()
	if err != nil {
		return Entry{}, err
	}
	if entry, ok := entries[companyName]; ok {
		return entry, nil
	}

	var entry Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entry.ImageURL = c.search.Banner(gctx, companyName)
		return nil
	})
	g.Go(func() error {
		entry.LogoURL = c.search.Logo(gctx, companyName)
		return nil
	})
	_ = g.Wait()

	if err := c.store(companyName, entry); err != nil {
		return Entry{}, err
	}

	c.logger.Info("image cache filled",
		zap.String("company", companyName),
		zap.String("imageurl", entry.ImageURL),
		zap.String("logourl", entry.LogoURL))
	return entry, nil
}

func (c *Cache) load() (map[string]Entry, error) {
	if err := c.lock.Lock(); err != nil {
		return nil, err
	}
	defer func() { _ = c.lock.Unlock() }()
	return c.read()
}

// store re-reads under the lock so entries written by another process
// since our miss are kept, then rewrites the whole file atomically.
func (c *Cache) store(companyName string, entry Entry) error {
	if err := c.lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = c.lock.Unlock() }()

	entries, err := c.read()
	if err != nil {
		return err
	}
	entries[companyName] = entry

	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

func (c *Cache) read() (map[string]Entry, error) {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := map[string]Entry{}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
