package core

// History is a fixed-capacity append log. Appending past capacity evicts
// the oldest entry. Not safe for concurrent use; the coordinator holds its
// lock across every mutation.
type History[T any] struct {
	buf   []T
	head  int
	count int
}

// NewHistory clamps a non-positive capacity to 1.
func NewHistory[T any](capacity int) *History[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &History[T]{buf: make([]T, capacity)}
}

// Append stores item, evicting the oldest entry when full.
func (h *History[T]) Append(item T) {
	idx := (h.head + h.count) % len(h.buf)
	h.buf[idx] = item
	if h.count == len(h.buf) {
		h.head = (h.head + 1) % len(h.buf)
	} else {
		h.count++
	}
}

// Items returns a copy of all entries, oldest first. Never nil.
func (h *History[T]) Items() []T {
	out := make([]T, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}
	return out
}

func (h *History[T]) Len() int {
	return h.count
}
