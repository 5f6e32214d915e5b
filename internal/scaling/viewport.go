package scaling

import "sync"

// Viewport is an explicit resize observer. Listeners are held until the
// unsubscribe func returned by Subscribe is called.
type Viewport struct {
	mu        sync.Mutex
	width     float64
	nextID    int
	listeners map[int]func(width float64)
}

// NewViewport creates a viewport with the given initial width.
func NewViewport(width float64) *Viewport {
	return &Viewport{width: width, listeners: make(map[int]func(float64))}
}

// Subscribe registers fn for resize notifications. The returned func removes
// it and is safe to call more than once.
func (v *Viewport) Subscribe(fn func(width float64)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.listeners, id)
			v.mu.Unlock()
		})
	}
}

// Resize records the new width and notifies every listener outside the lock.
func (v *Viewport) Resize(width float64) {
	v.mu.Lock()
	v.width = width
	fns := make([]func(float64), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(width)
	}
}

// Width returns the last recorded width.
func (v *Viewport) Width() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

// Listeners reports how many subscriptions are live.
func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}
