package router

import "fmt"

// Handler renders one page kind.
type Handler[T any] func(Route) T

// Dispatcher renders the current history entry with the handler registered for its kind.
type Dispatcher[T any] struct {
	handlers map[Kind]Handler[T]
	history  *History
}

// NewDispatcher creates a dispatcher starting at initial. notFound is mandatory and
// also serves kinds with no registered handler.
func NewDispatcher[T any](initial string, notFound Handler[T]) *Dispatcher[T] {
	if notFound == nil {
		panic("router: NewDispatcher requires a NotFound handler")
	}
	return &Dispatcher[T]{
		handlers: map[Kind]Handler[T]{NotFound: notFound},
		history:  NewHistory(initial),
	}
}

// Handle registers h for kind. Registering NotFound again replaces the fallback.
func (d *Dispatcher[T]) Handle(kind Kind, h Handler[T]) *Dispatcher[T] {
	if h == nil {
		panic(fmt.Sprintf("router: nil handler for %s", kind))
	}
	d.handlers[kind] = h
	return d
}

// Navigate pushes path onto the history and renders it.
func (d *Dispatcher[T]) Navigate(path string) T {
	d.history.Push(path)
	return d.Render()
}

// Back steps back without pushing and renders the now-current entry.
// ok is false when there is nothing to go back to.
func (d *Dispatcher[T]) Back() (T, bool) {
	if !d.history.Back() {
		var zero T
		return zero, false
	}
	return d.Render(), true
}

// Forward is the counterpart of [Dispatcher.Back].
func (d *Dispatcher[T]) Forward() (T, bool) {
	if !d.history.Forward() {
		var zero T
		return zero, false
	}
	return d.Render(), true
}

// Render renders the current entry.
func (d *Dispatcher[T]) Render() T {
	route := Match(d.history.Current())
	h, ok := d.handlers[route.Kind]
	if !ok {
		h = d.handlers[NotFound]
	}
	return h(route)
}

// Location returns the current route.
func (d *Dispatcher[T]) Location() Route { return Match(d.history.Current()) }

func (d *Dispatcher[T]) History() *History { return d.history }
