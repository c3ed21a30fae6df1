package invoice

import (
	"container/list"
	"os"
	"sync"
	"time"
)

// TemplateCache keeps the raw bytes of recently used templates. An entry is
// reused only while the file on disk has the same size and modification
// time, so edits to a template are picked up on the next invoice. Every
// invoice still parses its own Document from the cached bytes.
type TemplateCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	lru     *list.List
	maxSize int
}

type cacheEntry struct {
	path    string
	source  []byte
	size    int64
	modTime time.Time
	element *list.Element
}

// NewTemplateCache creates a cache holding at most maxSize templates.
// A maxSize of 0 disables caching.
func NewTemplateCache(maxSize int) *TemplateCache {
	return &TemplateCache{
		entries: make(map[string]*cacheEntry),
		lru:     list.New(),
		maxSize: maxSize,
	}
}

// Load returns the template bytes at path, from cache when the file is
// unchanged. A missing or unreadable file yields a TemplateError.
func (tc *TemplateCache) Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, NewTemplateError(path, err)
	}
	if info.IsDir() {
		return nil, NewTemplateError(path, os.ErrNotExist)
	}

	if tc.maxSize > 0 {
		tc.mu.Lock()
		entry, ok := tc.entries[path]
		if ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
			tc.lru.MoveToFront(entry.element)
			tc.mu.Unlock()
			return entry.source, nil
		}
		tc.mu.Unlock()
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, NewTemplateError(path, err)
	}
	tc.set(path, source, info)
	return source, nil
}

func (tc *TemplateCache) set(path string, source []byte, info os.FileInfo) {
	if tc.maxSize <= 0 {
		return
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	if existing, ok := tc.entries[path]; ok {
		existing.source = source
		existing.size = info.Size()
		existing.modTime = info.ModTime()
		tc.lru.MoveToFront(existing.element)
		return
	}

	if tc.lru.Len() >= tc.maxSize {
		if oldest := tc.lru.Back(); oldest != nil {
			old := oldest.Value.(*cacheEntry)
			delete(tc.entries, old.path)
			tc.lru.Remove(oldest)
		}
	}

	entry := &cacheEntry{
		path:    path,
		source:  source,
		size:    info.Size(),
		modTime: info.ModTime(),
	}
	entry.element = tc.lru.PushFront(entry)
	tc.entries[path] = entry
}

// Remove drops a template from the cache
func (tc *TemplateCache) Remove(path string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	entry, ok := tc.entries[path]
	if !ok {
		return
	}
	delete(tc.entries, path)
	tc.lru.Remove(entry.element)
}

// Clear empties the cache
func (tc *TemplateCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.entries = make(map[string]*cacheEntry)
	tc.lru = list.New()
}

// Size returns the current number of cached templates
func (tc *TemplateCache) Size() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.entries)
}
