package services

import (
	"context"
	"sync"

	"github.com/desertthunder/evloca/internal/shared"
)

// Class is a resource class for which only the latest request counts.
type Class string

const (
	ClassEvents   Class = "events"
	ClassPlaces   Class = "places"
	ClassActivity Class = "activity"
)

// Flights maps each class to its current flight.
type Flights struct {
	mu    sync.Mutex
	seq   uint64
	slots map[Class]*flight
}

type flight struct {
	id     uint64
	cancel context.CancelFunc
}

func NewFlights() *Flights {
	return &Flights{slots: make(map[Class]*flight)}
}

// Ticket identifies one flight of a class.
type Ticket struct {
	flights *Flights
	class   Class
	id      uint64
	cancel  context.CancelFunc
}

// Begin cancels the current flight of class, if any, and starts a new one derived from parent.
func (f *Flights) Begin(parent context.Context, class Class) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(parent)

	f.mu.Lock()
	defer f.mu.Unlock()

	if prev := f.slots[class]; prev != nil {
		prev.cancel()
	}
	f.seq++
	f.slots[class] = &flight{id: f.seq, cancel: cancel}

	return ctx, &Ticket{flights: f, class: class, id: f.seq, cancel: cancel}
}

// Cancel aborts the current flight of class without starting another. Its ticket becomes stale.
func (f *Flights) Cancel(class Class) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur := f.slots[class]; cur != nil {
		cur.cancel()
		delete(f.slots, class)
	}
}

// Class returns the ticket's resource class.
func (t *Ticket) Class() Class { return t.class }

// Current reports whether t is still the latest flight of its class.
func (t *Ticket) Current() bool {
	t.flights.mu.Lock()
	defer t.flights.mu.Unlock()
	cur := t.flights.slots[t.class]
	return cur != nil && cur.id == t.id
}

// Resolve converts the outcome of a flight: a superseded flight always yields
// [shared.ErrAborted], whatever err was.
func (t *Ticket) Resolve(err error) error {
	if !t.Current() {
		return shared.ErrAborted
	}
	return err
}

// Done releases the flight's context. The slot keeps its id so stale tickets stay stale.
func (t *Ticket) Done() {
	t.cancel()
}
