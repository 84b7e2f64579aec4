package glyphcache

// DefaultMaxEntries is the default glyph-cache capacity, following the
// teacher's text.DefaultGlyphCacheConfig() precedent of a four-figure
// default.
const DefaultMaxEntries = 4096

type entry struct {
	char       rune
	path       CharPath
	prev, next *entry
}

// Cache is the lazily populated character-to-outline cache of spec.md C8.
// A glyph is resolved using the first registered Face that has it; once
// resolved, the outline (not the owning face) is what gets cached and
// reused by key.
type Cache struct {
	faces        []Face
	fallbackChars []rune
	maxEntries   int

	entries    map[rune]*entry
	head, tail *entry // head = most recently used

	hasMissingChars bool
}

// Config configures a Cache.
type Config struct {
	// MaxEntries bounds the cache size before LRU eviction kicks in.
	// Zero selects DefaultMaxEntries.
	MaxEntries int
	// FallbackChars is tried, in order, when no registered face has the
	// requested glyph (spec.md §6 FallbackChar, default "�?").
	FallbackChars string
}

// New creates a glyph cache over the given faces, consulted in order.
func New(faces []Face, cfg Config) *Cache {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	fallback := cfg.FallbackChars
	if fallback == "" {
		fallback = "�?"
	}
	return &Cache{
		faces:         faces,
		fallbackChars: []rune(fallback),
		maxEntries:    maxEntries,
		entries:       make(map[rune]*entry),
	}
}

// HasMissingChars reports whether any requested glyph was unavailable in
// every registered face (spec.md §4.8 "font-missing reporting").
func (c *Cache) HasMissingChars() bool { return c.hasMissingChars }

// Glyph returns the outline for r, resolving and caching it on first use.
func (c *Cache) Glyph(r rune) CharPath {
	if e, ok := c.entries[r]; ok {
		c.touch(e)
		return e.path
	}

	if path, ok := c.resolve(r); ok {
		return c.insert(r, path)
	}

	c.hasMissingChars = true
	for _, fc := range c.fallbackChars {
		if path, ok := c.resolve(fc); ok {
			return c.insert(r, path)
		}
	}
	return c.insert(r, CharPath{})
}

func (c *Cache) resolve(r rune) (CharPath, bool) {
	for _, f := range c.faces {
		if !f.HasChar(r) {
			continue
		}
		if path, ok := f.CharPath(r); ok {
			return path, true
		}
	}
	return CharPath{}, false
}

// Kerning returns the kerning adjustment between a and b, as reported by
// the first face that has glyph a (spec.md §6: units = font-size x 1).
func (c *Cache) Kerning(a, b rune) float64 {
	for _, f := range c.faces {
		if f.HasChar(a) {
			return f.Kerning(a, b)
		}
	}
	return 0
}

func (c *Cache) insert(r rune, path CharPath) CharPath {
	e := &entry{char: r, path: path}
	c.entries[r] = e
	c.pushFront(e)
	if len(c.entries) > c.maxEntries {
		c.evictLRU()
	}
	return path
}

func (c *Cache) touch(e *entry) {
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *Cache) evictLRU() {
	if c.tail == nil {
		return
	}
	victim := c.tail
	c.unlink(victim)
	delete(c.entries, victim.char)
}
