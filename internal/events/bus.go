package events

// Predicate filters events for a subscriber. A nil predicate matches all.
type Predicate func(Event) bool

// Handler receives events synchronously during Emit.
type Handler func(Event)

type subscription struct {
	match Predicate
	fn    Handler
}

// Bus is a synchronous publish/subscribe fan-out with a bounded FIFO
// history ring. Subscribers run in registration order, on the caller's
// goroutine; a panicking subscriber propagates out of Emit.
//
// The bus itself is not synchronized: the command loop is the only
// emitter (see the session), so there is no concurrent writer.
type Bus struct {
	subs    []subscription
	history []Event
	cap     int
}

// NewBus creates a bus keeping at most historyCap events; capacity 0
// disables history.
func NewBus(historyCap int) *Bus {
	return &Bus{cap: historyCap}
}

// Subscribe registers fn for events matching the predicate.
func (b *Bus) Subscribe(match Predicate, fn Handler) {
	b.subs = append(b.subs, subscription{match: match, fn: fn})
}

// SubscribeAll registers fn for every event.
func (b *Bus) SubscribeAll(fn Handler) {
	b.Subscribe(nil, fn)
}

// Emit delivers e to every matching subscriber in registration order, then
// records it in the history ring, evicting the oldest entry when full.
func (b *Bus) Emit(e Event) {
	for _, s := range b.subs {
		if s.match == nil || s.match(e) {
			s.fn(e)
		}
	}
	if b.cap <= 0 {
		return
	}
	if len(b.history) == b.cap {
		copy(b.history, b.history[1:])
		b.history = b.history[:b.cap-1]
	}
	b.history = append(b.history, e)
}

// History returns a copy of the retained events, oldest first.
func (b *Bus) History() []Event {
	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}
