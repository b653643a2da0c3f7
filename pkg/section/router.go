package section

import "sync"

// Router holds the active section tag. Select performs no validation: an
// unknown tag is stored as-is and simply has no variant to render.
type Router struct {
	mu           sync.RWMutex
	current      Tag
	observers    map[int]func(prev, next Tag)
	nextObserver int
}

// NewRouter creates a router starting at initial.
func NewRouter(initial Tag) *Router {
	return &Router{
		current:   initial,
		observers: make(map[int]func(prev, next Tag)),
	}
}

// Current returns the active tag.
func (r *Router) Current() Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Active returns the variant for the active tag.
func (r *Router) Active() (Variant, bool) {
	return Lookup(r.Current())
}

// Select makes tag the active section. Observers are notified when it changes.
func (r *Router) Select(tag Tag) {
	r.mu.Lock()
	prev := r.current
	r.current = tag
	if prev == tag {
		r.mu.Unlock()
		return
	}
	observers := make([]func(prev, next Tag), 0, len(r.observers))
	for _, fn := range r.observers {
		observers = append(observers, fn)
	}
	r.mu.Unlock()

	for _, fn := range observers {
		fn(prev, tag)
	}
}

// Subscribe registers fn for section changes and returns its cancel func.
func (r *Router) Subscribe(fn func(prev, next Tag)) func() {
	r.mu.Lock()
	id := r.nextObserver
	r.nextObserver++
	r.observers[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.observers, id)
		r.mu.Unlock()
	}
}
