package events

import (
	"sync"
	"sync/atomic"

	"github.com/Mrsumitborade/safe-earth-response/internal/metrics"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

const subscriberBuffer = 100

// Broadcaster fans events out to in-process subscribers. A subscriber whose
// buffer is full misses the event.
type Broadcaster struct {
	subscribers map[uint64]chan *models.Event
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *models.Event),
	}
}

func (b *Broadcaster) Subscribe() (uint64, <-chan *models.Event) {
	id := b.nextID.Add(1)
	ch := make(chan *models.Event, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	metrics.StreamSubscribers.Set(float64(len(b.subscribers)))
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
		metrics.StreamSubscribers.Set(float64(len(b.subscribers)))
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(e *models.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels so streams can exit.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
	metrics.StreamSubscribers.Set(0)
}
