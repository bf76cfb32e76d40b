package ui

import "sync/atomic"

// Loading is a request counter satisfying services.Indicator. The spinner shows while it is non-zero.
type Loading struct {
	active atomic.Int64
}

func (l *Loading) Show() { l.active.Add(1) }

func (l *Loading) Hide() {
	if l.active.Add(-1) < 0 {
		l.active.Store(0)
	}
}

func (l *Loading) Active() bool { return l.active.Load() > 0 }
