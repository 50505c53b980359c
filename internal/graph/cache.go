package graph

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Cache holds the most recently built Index for one todo.json path, rebuilt
// lazily on first access after the file changes. A fsnotify watcher (falling
// back to no-op if the watch cannot be established, e.g. inside containers
// without inotify) invalidates the cache as soon as the file is rewritten,
// so callers never need to reason about staleness themselves.
type Cache struct {
	mu       sync.Mutex
	path     string
	index    *Index
	modified time.Time
	watcher  *fsnotify.Watcher
}

// NewCache starts watching path for changes and returns a Cache that lazily
// rebuilds its Index from the rebuild function the caller passes to Get.
func NewCache(path string) *Cache {
	c := &Cache{path: path}
	if w, err := fsnotify.NewWatcher(); err == nil {
		c.watcher = w
		_ = w.Add(path)
		go c.watch()
	}
	return c
}

func (c *Cache) watch() {
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				c.invalidate()
			}
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (c *Cache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = nil
}

// Get returns the cached Index, rebuilding it with build if none is cached.
func (c *Cache) Get(build func() (*Index, error)) (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil {
		return c.index, nil
	}
	idx, err := build()
	if err != nil {
		return nil, err
	}
	c.index = idx
	c.modified = time.Now()
	return idx, nil
}

// Close stops the underlying filesystem watch, if one was established.
func (c *Cache) Close() error {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}
