package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/internal/options"
	"github.com/oasnav/oasnav/navigation"
	"github.com/oasnav/oasnav/search"
	"github.com/oasnav/oasnav/workspace"
)

// specInput represents the two ways an OAS document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
	Name    string `json:"name,omitempty"    jsonschema:"Document name; its slug prefixes every id (default: file base name, or api)"`
}

// navOptions are the per-call traversal settings. Unset fields use the
// OASNAV_* defaults.
type navOptions struct {
	HideModels       *bool  `json:"hide_models,omitempty"       jsonschema:"Omit the Models section"`
	Examples         *bool  `json:"examples,omitempty"          jsonschema:"Attach example entries to operations"`
	OperationsSorter string `json:"operations_sorter,omitempty" jsonschema:"Order inside a tag: alpha, method or none"`
	TagsSorter       string `json:"tags_sorter,omitempty"       jsonschema:"Order of top-level tags: alpha or none"`
}

type resolvedOptions struct {
	hideModels bool
	examples   bool
	opsSorter  navigation.OperationsSorter
	tagsSorter navigation.TagsSorter
}

func (o navOptions) resolve() (resolvedOptions, error) {
	r := resolvedOptions{hideModels: cfg.HideModels, examples: cfg.Examples}
	if o.HideModels != nil {
		r.hideModels = *o.HideModels
	}
	if o.Examples != nil {
		r.examples = *o.Examples
	}
	opsName := o.OperationsSorter
	if opsName == "" {
		opsName = cfg.OperationsSorter
	}
	tagsName := o.TagsSorter
	if tagsName == "" {
		tagsName = cfg.TagsSorter
	}
	var err error
	if r.opsSorter, err = navigation.ParseOperationsSorter(opsName); err != nil {
		return r, err
	}
	if r.tagsSorter, err = navigation.ParseTagsSorter(tagsName); err != nil {
		return r, err
	}
	return r, nil
}

// options returns the traversal options; the workspace adds the id strategy.
func (r resolvedOptions) options() []navigation.Option {
	return []navigation.Option{
		navigation.WithHideModels(r.hideModels),
		navigation.WithExamples(r.examples),
		navigation.WithOperationsSorter(r.opsSorter),
		navigation.WithTagsSorter(r.tagsSorter),
		navigation.WithLogger(logger),
	}
}

// key identifies the option set inside a cache key.
func (r resolvedOptions) key() string {
	return strings.Join([]string{
		strconv.FormatBool(r.hideModels),
		strconv.FormatBool(r.examples),
		r.opsSorter.Name(),
		r.tagsSorter.Name(),
	}, ",")
}

// loaded is one traversed document with everything the tools read.
type loaded struct {
	name    string
	slug    string
	parse   *document.ParseResult
	store   *workspace.Store
	entries []*navigation.Entry
	index   *search.Index
	opts    []navigation.Option
}

// root returns the document entry.
func (l *loaded) root() *navigation.Entry {
	return l.entries[0]
}

// cacheEntry holds a cached navigation result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *loaded
	insertAt  time.Time
	expiresAt time.Time
}

// navCacheStore provides a session-scoped cache of traversed documents,
// keyed by the SHA-256 of the input bytes plus the option set. Entries have
// per-input-kind TTLs and a background sweeper removes expired entries.
type navCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
	group          singleflight.Group
}

var navCache = &navCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *navCacheStore) get(key string) *loaded {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result with a specific TTL, evicting the least
// recently used entry if at capacity.
func (c *navCacheStore) putWithTTL(key string, result *loaded, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *navCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled.
func (c *navCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *navCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *navCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// read returns the raw input bytes and a default document name.
func (s specInput) read() ([]byte, string, error) {
	if err := options.ValidateSingleInputSource("spec",
		options.Source{Name: "file", Set: s.File != ""},
		options.Source{Name: "content", Set: s.Content != ""},
	); err != nil {
		return nil, "", err
	}

	if s.Content != "" {
		if int64(len(s.Content)) > cfg.MaxInputSize {
			return nil, "", fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASNAV_MAX_INPUT_SIZE to increase",
				len(s.Content), cfg.MaxInputSize)
		}
		return []byte(s.Content), "api", nil
	}

	info, err := os.Stat(s.File)
	if err != nil {
		return nil, "", err
	}
	if info.Size() > cfg.MaxInputSize {
		return nil, "", fmt.Errorf("file size %d bytes exceeds maximum %d bytes; set OASNAV_MAX_INPUT_SIZE to increase",
			info.Size(), cfg.MaxInputSize)
	}
	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, "", err
	}
	base := filepath.Base(s.File)
	return data, strings.TrimSuffix(base, filepath.Ext(base)), nil
}

// resolve parses and traverses the input, using the cache when enabled.
// Concurrent calls for the same input and options share one traversal.
func (s specInput) resolve(nav navOptions) (*loaded, error) {
	opts, err := nav.resolve()
	if err != nil {
		return nil, err
	}
	data, defaultName, err := s.read()
	if err != nil {
		return nil, err
	}
	name := s.Name
	if name == "" {
		name = defaultName
	}

	h := sha256.Sum256(data)
	key := fmt.Sprintf("%s:%s:%s", hex.EncodeToString(h[:]), name, opts.key())
	ttl := cfg.CacheContentTTL
	if s.File != "" {
		ttl = cfg.CacheFileTTL
	}

	if cfg.CacheEnabled {
		if cached := navCache.get(key); cached != nil {
			logger.Debug("mcpserver: cache hit", "name", name)
			return cached, nil
		}
	}

	v, err, _ := navCache.group.Do(key, func() (any, error) {
		result, err := load(name, s.File, data, opts)
		if err != nil {
			return nil, err
		}
		if cfg.CacheEnabled {
			navCache.putWithTTL(key, result, ttl)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*loaded), nil
}

func load(name, path string, data []byte, opts resolvedOptions) (*loaded, error) {
	parseOpts := []document.Option{document.WithBytes(data), document.WithLogger(logger)}
	if path != "" {
		parseOpts = append(parseOpts, document.WithSourceName(path))
	}
	result, err := document.ParseWithOptions(parseOpts...)
	if err != nil {
		return nil, err
	}

	store := workspace.New(workspace.WithLogger(logger))
	if err := store.Add(name, result.Document); err != nil {
		return nil, err
	}
	navOpts := opts.options()
	entries, err := store.Navigation(navOpts...)
	if err != nil {
		return nil, err
	}
	index, err := search.Build(store, navOpts...)
	if err != nil {
		return nil, err
	}
	d, _ := store.Get(name)
	return &loaded{
		name:    name,
		slug:    d.Slug,
		parse:   result,
		store:   store,
		entries: entries,
		index:   index,
		opts:    navOpts,
	}, nil
}
