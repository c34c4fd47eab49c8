package repositories

import (
	"context"
	"sync"

	"localexplorer/internal/models/db_models"
)

// QueryFunc materializes one result set for a live query.
type QueryFunc func(ctx context.Context) ([]db_models.Place, error)

// changeHub fans a write notification out to every active subscriber.
// Signals are 1-buffered per subscriber so a burst of writes collapses into
// a single pending wake-up; subscribers always re-read current state, never
// a payload, so dropping intermediate signals loses nothing.
type changeHub struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func newChangeHub() *changeHub {
	return &changeHub{subs: make(map[int]chan struct{})}
}

func (h *changeHub) notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *changeHub) subscribe() (int, chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch
	return id, ch
}

func (h *changeHub) unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// watch runs query once immediately, then again after every store change,
// delivering snapshots until ctx is cancelled. The output channel holds one
// snapshot; an unread snapshot is replaced rather than queued, so a slow
// consumer only ever sees the newest state and never blocks writers.
func watch(ctx context.Context, hub *changeHub, query QueryFunc) <-chan []db_models.Place {
	out := make(chan []db_models.Place, 1)
	id, signal := hub.subscribe()

	go func() {
		defer close(out)
		defer hub.unsubscribe(id)

		emit := func() {
			places, err := query(ctx)
			if err != nil {
				return
			}
			select {
			case out <- places:
			default:
				// single producer: drain the stale snapshot and replace it
				select {
				case <-out:
				default:
				}
				out <- places
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				emit()
			}
		}
	}()

	return out
}
