package retained

import (
	"container/list"
	"sync"

	"github.com/agiangrant/viewkit/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextMeasurer measures single lines of text.
type TextMeasurer interface {
	// MeasureText returns the advance width and line height of s at size.
	MeasureText(s string, size float32) geom.Size
	// LineHeight returns the height of one line at size.
	LineHeight(size float32) float32
}

// DefaultTextSize is the text size used when a view sets none.
const DefaultTextSize float32 = 13

// FaceMeasurer measures with a font.Face, scaling its metrics linearly from
// the face's native line height to the requested size.
type FaceMeasurer struct {
	face   font.Face
	height float32 // native line height
}

// NewFaceMeasurer returns a measurer over face. A nil face uses the 7x13
// fixed face.
func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	m := face.Metrics()
	h := float32(m.Height) / 64
	if h <= 0 {
		h = DefaultTextSize
	}
	return &FaceMeasurer{face: face, height: h}
}

func (m *FaceMeasurer) scale(size float32) float32 {
	if size <= 0 {
		size = DefaultTextSize
	}
	return size / m.height
}

// MeasureText implements TextMeasurer.
func (m *FaceMeasurer) MeasureText(s string, size float32) geom.Size {
	k := m.scale(size)
	adv := font.MeasureString(m.face, s)
	return geom.Size{Width: float32(adv) / 64 * k, Height: m.height * k}
}

// LineHeight implements TextMeasurer.
func (m *FaceMeasurer) LineHeight(size float32) float32 { return m.height * m.scale(size) }

// CachedMeasurer is an LRU cache in front of another measurer. Layout
// measures the same strings on every pass, so hits are the common case.
type CachedMeasurer struct {
	next TextMeasurer

	mu      sync.Mutex
	maxSize int
	cache   map[measureKey]*list.Element
	lru     *list.List // Front = most recently used
}

type measureKey struct {
	text string
	size float32
}

type measureEntry struct {
	key  measureKey
	size geom.Size
}

// NewCachedMeasurer caches up to maxSize measurements of next.
func NewCachedMeasurer(next TextMeasurer, maxSize int) *CachedMeasurer {
	return &CachedMeasurer{
		next:    next,
		maxSize: max(maxSize, 1),
		cache:   make(map[measureKey]*list.Element),
		lru:     list.New(),
	}
}

// MeasureText implements TextMeasurer.
func (c *CachedMeasurer) MeasureText(s string, size float32) geom.Size {
	key := measureKey{text: s, size: size}
	if sz, ok := c.get(key); ok {
		return sz
	}
	sz := c.next.MeasureText(s, size)
	c.put(key, sz)
	return sz
}

// LineHeight implements TextMeasurer.
func (c *CachedMeasurer) LineHeight(size float32) float32 { return c.next.LineHeight(size) }

// Len returns the number of cached entries.
func (c *CachedMeasurer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *CachedMeasurer) get(key measureKey) (geom.Size, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*measureEntry).size, true
	}
	return geom.Size{}, false
}

func (c *CachedMeasurer) put(key measureKey, size geom.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*measureEntry).size = size
		return
	}

	// Evict oldest entries if at capacity
	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.cache, oldest.Value.(*measureEntry).key)
	}

	c.cache[key] = c.lru.PushFront(&measureEntry{key: key, size: size})
}

// Clear removes all entries.
func (c *CachedMeasurer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[measureKey]*list.Element)
	c.lru.Init()
}
