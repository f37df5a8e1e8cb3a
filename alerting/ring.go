package alerting

import "github.com/Rishi5377/NagaraTrackLite/fleet"

// ring is a fixed-capacity FIFO buffer of history points. Once full,
// each append evicts the oldest point. Points are never mutated in
// place; snapshot returns them oldest first.
type ring struct {
	buf   []fleet.HistoryPoint
	head  int // index of the oldest point
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]fleet.HistoryPoint, capacity)}
}

func (r *ring) append(p fleet.HistoryPoint) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = p
		r.count++
		return
	}
	r.buf[r.head] = p
	r.head = (r.head + 1) % len(r.buf)
}

func (r *ring) snapshot() []fleet.HistoryPoint {
	out := make([]fleet.HistoryPoint, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *ring) len() int { return r.count }
