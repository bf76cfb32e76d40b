// Package gallery holds the media lightbox for the event being displayed.
package gallery

// Lightbox is a circular cursor over a media list with a visibility flag.
type Lightbox[T any] struct {
	items   []T
	index   int
	visible bool
}

func New[T any](items []T) *Lightbox[T] {
	return &Lightbox[T]{items: items}
}

// Replace swaps in a new gallery, hiding the viewer and resetting the index.
func (l *Lightbox[T]) Replace(items []T) {
	l.items = items
	l.index = 0
	l.visible = false
}

// Open shows item i. Out of range indexes, including any index on an empty gallery, are ignored.
func (l *Lightbox[T]) Open(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.index = i
	l.visible = true
	return true
}

// Step moves by dir (-1 or +1), wrapping at both ends. The viewer stays open.
func (l *Lightbox[T]) Step(dir int) {
	n := len(l.items)
	if n == 0 {
		return
	}
	l.index = ((l.index+dir)%n + n) % n
}

// Close hides the viewer and keeps the index.
func (l *Lightbox[T]) Close() { l.visible = false }

func (l *Lightbox[T]) Visible() bool { return l.visible }
func (l *Lightbox[T]) Index() int    { return l.index }
func (l *Lightbox[T]) Len() int      { return len(l.items) }

// Current returns the item under the cursor; ok is false for an empty gallery.
func (l *Lightbox[T]) Current() (T, bool) {
	if len(l.items) == 0 {
		var zero T
		return zero, false
	}
	return l.items[l.index], true
}
