package events

import "sync"

// NoticeHandler consumes a published notice.
type NoticeHandler func(Notice)

// Dispatcher fans notices out to subscribers.
type Dispatcher interface {
	Publish(notice Notice)
	Subscribe(handler NoticeHandler)
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners []NoticeHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{}
}

// Publish synchronously invokes every subscribed handler.
func (d *inMemoryDispatcher) Publish(notice Notice) {
	d.mu.RLock()
	handlers := append([]NoticeHandler{}, d.listeners...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler(notice)
	}
}

// Subscribe registers a handler for all notices.
func (d *inMemoryDispatcher) Subscribe(handler NoticeHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, handler)
}
