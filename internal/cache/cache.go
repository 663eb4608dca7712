// Package cache keeps recently viewed document bodies resident in memory,
// bounded by an LRU policy that never evicts the current selection.
package cache

import (
	"container/list"
	"os"

	"github.com/notare-dev/notare/internal/note"
)

// DefaultCapacity bounds the resident set unless configured otherwise.
const DefaultCapacity = 10

type entry struct {
	path string
	body string
}

// Cache lazily loads document bodies keyed by document identity (absolute
// path). Eviction is least-recently-used with a single pinned slot for the
// selected document; indices are never used as keys because they shift
// under re-sort and filtering.
type Cache struct {
	capacity int
	recency  *list.List // front = most recently used
	items    map[string]*list.Element
	pinned   string
}

// New creates a cache bounded to capacity resident bodies.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		recency:  list.New(),
		items:    make(map[string]*list.Element),
	}
}

// GetOrLoad returns the body for n, reading the file on a miss. Hits and
// misses both promote the entry to most recently used. Read failures are
// returned to the caller and never cached.
func (c *Cache) GetOrLoad(n note.Note) (string, error) {
	if ele, ok := c.items[n.Path]; ok {
		c.recency.MoveToFront(ele)
		return ele.Value.(*entry).body, nil
	}

	data, err := os.ReadFile(n.Path)
	if err != nil {
		return "", err
	}
	body := string(data)

	ele := c.recency.PushFront(&entry{path: n.Path, body: body})
	c.items[n.Path] = ele
	c.evict()
	return body, nil
}

// Pin marks the document at path as the active selection, exempting it
// from eviction. An empty path clears the pin.
func (c *Cache) Pin(path string) {
	c.pinned = path
}

// Resident reports whether a body for path is currently cached.
func (c *Cache) Resident(path string) bool {
	_, ok := c.items[path]
	return ok
}

// Body returns the cached body for path without touching recency.
// Rendering peeks at bodies this way so drawing never causes I/O.
func (c *Cache) Body(path string) (string, bool) {
	ele, ok := c.items[path]
	if !ok {
		return "", false
	}
	return ele.Value.(*entry).body, true
}

// Invalidate drops every resident body. Used after a rescan, when file
// content may have changed on disk.
func (c *Cache) Invalidate() {
	c.recency.Init()
	c.items = make(map[string]*list.Element)
}

// Len reports the resident body count.
func (c *Cache) Len() int {
	return c.recency.Len()
}

func (c *Cache) evict() {
	for c.recency.Len() > c.capacity {
		ele := c.recency.Back()
		for ele != nil && ele.Value.(*entry).path == c.pinned {
			ele = ele.Prev()
		}
		if ele == nil {
			return
		}
		c.recency.Remove(ele)
		delete(c.items, ele.Value.(*entry).path)
	}
}
