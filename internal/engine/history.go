package engine

// waveHistory is a bounded ring buffer of past primary radius arrays, oldest
// evicted on overflow. It feeds the fading ghost trail behind the primary
// curve.
type waveHistory struct {
	entries [][]float64
	next    int
	count   int
}

func newWaveHistory(capacity int) *waveHistory {
	return &waveHistory{entries: make([][]float64, capacity)}
}

// push copies the radius array into the ring, evicting the oldest entry
// when full.
func (h *waveHistory) push(radii []float64) {
	if len(h.entries) == 0 {
		return
	}
	buf := h.entries[h.next]
	if len(buf) != len(radii) {
		buf = make([]float64, len(radii))
	}
	copy(buf, radii)
	h.entries[h.next] = buf

	h.next = (h.next + 1) % len(h.entries)
	if h.count < len(h.entries) {
		h.count++
	}
}

// snapshot returns the stored arrays oldest first. The returned slices are
// owned by the ring; callers must not retain them across a push.
func (h *waveHistory) snapshot() [][]float64 {
	out := make([][]float64, 0, h.count)
	start := h.next - h.count
	for i := 0; i < h.count; i++ {
		idx := ((start + i) % len(h.entries) + len(h.entries)) % len(h.entries)
		out = append(out, h.entries[idx])
	}
	return out
}

func (h *waveHistory) len() int { return h.count }
