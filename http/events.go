package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/huaci"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Event names sent on the event stream.
const (
	EventConfigChanged      = "config-changed"
	EventConfigWatcherError = "config-watcher-error"
)

// subscriberBuffer is the number of events queued per slow subscriber.
const subscriberBuffer = 16

type event struct {
	name string
	data []byte
}

// hub fans events out to subscribers without blocking the publisher.
type hub struct {
	mu     sync.Mutex
	subs   map[string]chan event
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[string]chan event)}
}

func (h *hub) subscribe() (string, <-chan event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", nil, false
	}
	id := uuid.NewString()
	ch := make(chan event, subscriberBuffer)
	h.subs[id] = ch
	return id, ch, true
}

func (h *hub) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *hub) publish(name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte("null")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- event{name: name, data: data}:
		default:
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// Subscribers returns the number of connected event streams.
func (s *Server) Subscribers() int {
	return s.events.len()
}

// handleEvents streams server-sent events until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.Error(w, r, huaci.Errorf(huaci.ENOTIMPLEMENTED, "streaming is not supported"))
		return
	}

	id, events, ok := s.events.subscribe()
	if !ok {
		s.Error(w, r, huaci.Errorf(huaci.EINTERNAL, "server is shutting down"))
		return
	}
	defer s.events.unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, ": subscriber %s\n\n", id)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, ev.data)
			flusher.Flush()
		}
	}
}

// Relay publishes the watcher's notifications as events until ctx is
// canceled. Repeated watcher errors are logged at a limited rate.
func (s *Server) Relay(ctx context.Context) error {
	if s.Watcher == nil {
		return nil
	}
	logErr := rate.Sometimes{First: 3, Interval: 10 * time.Second}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.Watcher.Changes():
			s.Publish(EventConfigChanged, nil)
		case err := <-s.Watcher.Errors():
			logErr.Do(func() {
				s.Logger.Warn("config watcher error", "err", err)
			})
			s.Publish(EventConfigWatcherError, huaci.ErrorMessage(err))
		}
	}
}
