package progress

import "sort"

// rateRing keeps the most recent instantaneous rates.
type rateRing struct {
	buf  []float64
	next int
	full bool
}

func newRateRing(n int) rateRing {
	if n < 1 {
		n = 1
	}
	return rateRing{buf: make([]float64, n)}
}

func (r *rateRing) add(v float64) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

func (r *rateRing) reset() {
	r.next = 0
	r.full = false
}

func (r *rateRing) len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// median returns 0 when no rate was recorded.
func (r *rateRing) median() float64 {
	n := r.len()
	if n == 0 {
		return 0
	}
	vals := make([]float64, n)
	copy(vals, r.buf[:n])
	sort.Float64s(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}
