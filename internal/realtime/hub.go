package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"

	"supplytrack-backend/internal/metrics"
)

const channelPrefix = "changes:"

type EventType string

const (
	EventAdded   EventType = "added"
	EventUpdated EventType = "updated"
	EventRemoved EventType = "removed"
)

// Event is one diff between consecutive collection snapshots.
type Event struct {
	Collection string          `json:"collection"`
	Type       EventType       `json:"type"`
	ID         uint64          `json:"id"`
	Doc        json.RawMessage `json:"doc,omitempty"`
}

// Snapshot maps record id to its serialized document.
type Snapshot map[uint64]json.RawMessage

// SnapshotFunc loads the full current state of one collection.
type SnapshotFunc func(ctx context.Context) (Snapshot, error)

// Hub fans change notices out to per-view subscriptions. Writers call Notify
// after a committed mutation; each subscription reacts by reloading the full
// collection snapshot and emitting the diff, in notice order.
type Hub struct {
	rdb     *redis.Client
	sources map[string]SnapshotFunc
}

func NewHub(rdb *redis.Client, sources map[string]SnapshotFunc) *Hub {
	return &Hub{rdb: rdb, sources: sources}
}

// Notify publishes a change notice for the collection.
func (h *Hub) Notify(ctx context.Context, collection string) error {
	return h.rdb.Publish(ctx, channelPrefix+collection, "1").Err()
}

// Collections lists the collections the hub can serve.
func (h *Hub) Collections() []string {
	out := make([]string, 0, len(h.sources))
	for name := range h.sources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Subscribe opens a live view of the collection. The first events are the
// initial snapshot delivered as adds; afterwards every change notice produces
// the diff against the previous snapshot. Close the subscription (or cancel
// ctx) to release the redis stream; subscribing again later is fine.
func (h *Hub) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	load, ok := h.sources[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	pubsub := h.rdb.Subscribe(ctx, channelPrefix+collection)
	// Force the SUBSCRIBE onto the wire before the initial snapshot so no
	// notice between snapshot and subscription is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	current, err := load(ctx)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &Subscription{
		collection: collection,
		events:     make(chan Event, 64),
		done:       make(chan struct{}),
		pubsub:     pubsub,
	}
	go sub.run(ctx, load, current)
	return sub, nil
}

type Subscription struct {
	collection string
	events     chan Event
	done       chan struct{}
	pubsub     *redis.PubSub
	closeOnce  sync.Once
}

// Events yields diffs in the order the store reported them. The channel is
// closed once the subscription is released.
func (s *Subscription) Events() <-chan Event { return s.events }

func (s *Subscription) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *Subscription) run(ctx context.Context, load SnapshotFunc, current Snapshot) {
	defer func() {
		_ = s.pubsub.Close()
		close(s.events)
	}()

	// Initial snapshot as adds.
	if !s.emitAll(ctx, diff(s.collection, nil, current)) {
		return
	}

	notices := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case _, ok := <-notices:
			if !ok {
				return
			}
			next, err := load(ctx)
			if err != nil {
				// Stale snapshot is worse than a dropped notice; keep the old
				// state and wait for the next notice.
				continue
			}
			if !s.emitAll(ctx, diff(s.collection, current, next)) {
				return
			}
			current = next
		}
	}
}

func (s *Subscription) emitAll(ctx context.Context, events []Event) bool {
	for _, ev := range events {
		select {
		case s.events <- ev:
			metrics.RealtimeEvents.WithLabelValues(s.collection).Inc()
		case <-s.done:
			return false
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// diff computes removed/updated/added events between two full snapshots.
// The new snapshot fully replaces the old one; nothing is merged partially.
// Events are ordered by id within each class for determinism.
func diff(collection string, prev, next Snapshot) []Event {
	var out []Event

	for _, id := range sortedIDs(prev) {
		if _, ok := next[id]; !ok {
			out = append(out, Event{Collection: collection, Type: EventRemoved, ID: id})
		}
	}
	for _, id := range sortedIDs(next) {
		doc := next[id]
		old, ok := prev[id]
		switch {
		case !ok:
			out = append(out, Event{Collection: collection, Type: EventAdded, ID: id, Doc: doc})
		case !bytes.Equal(old, doc):
			out = append(out, Event{Collection: collection, Type: EventUpdated, ID: id, Doc: doc})
		}
	}
	return out
}

func sortedIDs(s Snapshot) []uint64 {
	ids := make([]uint64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
