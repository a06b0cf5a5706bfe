package broker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of write that produced a Change
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Change announces a write to one record of a collection
type Change struct {
	Collection string `json:"collection"`
	Action     Action `json:"action"`
	RecordID   string `json:"record_id"`
	Timestamp  int64  `json:"timestamp"`
}

// NewChange stamps a change with the current time
func NewChange(collection string, action Action, recordID string) Change {
	return Change{
		Collection: collection,
		Action:     action,
		RecordID:   recordID,
		Timestamp:  time.Now().Unix(),
	}
}

// Subscription receives changes for the topics it was opened with.
// Close is the cancellation handle; it is safe to call more than once.
type Subscription struct {
	ID     string
	Topics []string
	Events <-chan Change

	ch     chan Change
	broker *LiveBroker
	once   sync.Once
}

// Close detaches the subscription from the broker and closes Events
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.unsubscribe(s)
	})
}

// LiveBroker fans collection changes out to subscribers keyed by collection name
type LiveBroker struct {
	// topic -> subscription id -> subscription
	topics map[string]map[string]*Subscription
	buffer int

	mutex sync.RWMutex
}

// NewLiveBroker creates a broker whose subscribers buffer up to 10 pending changes
func NewLiveBroker() *LiveBroker {
	return &LiveBroker{
		topics: make(map[string]map[string]*Subscription),
		buffer: 10,
	}
}

// Subscribe opens a subscription on one or more collections
func (b *LiveBroker) Subscribe(topics ...string) *Subscription {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ch := make(chan Change, b.buffer) // Buffered to prevent blocking
	sub := &Subscription{
		ID:     uuid.NewString(),
		Topics: topics,
		Events: ch,
		ch:     ch,
		broker: b,
	}

	for _, topic := range topics {
		if _, exists := b.topics[topic]; !exists {
			b.topics[topic] = make(map[string]*Subscription)
		}
		b.topics[topic][sub.ID] = sub
	}

	return sub
}

func (b *LiveBroker) unsubscribe(sub *Subscription) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, topic := range sub.Topics {
		if subs, exists := b.topics[topic]; exists {
			delete(subs, sub.ID)
			if len(subs) == 0 {
				delete(b.topics, topic)
			}
		}
	}
	close(sub.ch)
}

// Publish delivers the change to every subscriber of its collection.
// It never blocks: a subscriber with a full buffer misses the change.
func (b *LiveBroker) Publish(change Change) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	for _, sub := range b.topics[change.Collection] {
		select {
		case sub.ch <- change:
		default:
			// Client not ready, skip
		}
	}
}

// Stats returns the number of subscribers per collection plus the total
func (b *LiveBroker) Stats() map[string]int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	seen := make(map[string]bool)
	stats := make(map[string]int, len(b.topics)+1)
	for topic, subs := range b.topics {
		stats[topic] = len(subs)
		for id := range subs {
			seen[id] = true
		}
	}
	stats["total_subscribers"] = len(seen)
	return stats
}
