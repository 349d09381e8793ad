// Package cache keeps generated statements so that an unchanged query
// tree is not compiled twice.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/satishbabariya/sqltree/node"
)

// Stats represents cache statistics
type Stats struct {
	Hits      int64
	Misses    int64
	Size      int
	MaxSize   int
	Evictions int64
}

// HitRate returns the percentage of lookups that were hits.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

type entry struct {
	key       string
	result    *node.Node
	expiresAt time.Time
}

// Statements is an LRU cache of generated statements with optional
// expiry. It is safe for concurrent use.
type Statements struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List
	items   map[string]*list.Element
	stats   Stats

	now func() time.Time
}

// New creates a cache holding at most maxSize statements. A zero ttl
// keeps entries until they are evicted.
func New(maxSize int, ttl time.Duration) *Statements {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Statements{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		items:   make(map[string]*list.Element),
		stats:   Stats{MaxSize: maxSize},
		now:     time.Now,
	}
}

// Key fingerprints the query tree together with the settings that change
// its output, such as the kind and the escape character. Every node
// contributes its name, the dynamic type and Go syntax of its value and
// its child count, each length prefixed, so 1 and "1" differ.
func Key(root *node.Node, settings ...string) string {
	h := sha256.New()
	writeUint(h, uint64(len(settings)))
	for _, s := range settings {
		writeField(h, s)
	}
	writeNode(h, root)
	return hex.EncodeToString(h.Sum(nil))[:32]
}

func writeNode(w io.Writer, n *node.Node) {
	if n == nil {
		writeField(w, "")
		return
	}
	writeField(w, n.Name)
	writeField(w, fmt.Sprintf("%T", n.Value))
	writeField(w, fmt.Sprintf("%#v", n.Value))
	writeUint(w, uint64(len(n.Children)))
	for _, child := range n.Children {
		writeNode(w, child)
	}
}

func writeField(w io.Writer, s string) {
	writeUint(w, uint64(len(s)))
	io.WriteString(w, s)
}

func writeUint(w io.Writer, v uint64) {
	var buf [binary.MaxVarintLen64]byte
	w.Write(buf[:binary.PutUvarint(buf[:], v)])
}

// Get returns a copy of the statement stored under key.
func (c *Statements) Get(key string) (*node.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.remove(el)
		c.stats.Misses++
		return nil, false
	}

	c.order.MoveToFront(el)
	c.stats.Hits++
	return e.result.Clone(), true
}

// Set stores a copy of result under key.
func (c *Statements) Set(key string, result *node.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.result = result.Clone()
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		c.remove(c.order.Back())
		c.stats.Evictions++
	}
	c.items[key] = c.order.PushFront(&entry{key: key, result: result.Clone(), expiresAt: expiresAt})
}

// Invalidate removes a specific key from the cache
func (c *Statements) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
}

// Clear removes all entries and resets the statistics.
func (c *Statements) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element)
	c.stats = Stats{MaxSize: c.maxSize}
}

// Stats returns a snapshot of the cache statistics.
func (c *Statements) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = c.order.Len()
	return stats
}

func (c *Statements) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
