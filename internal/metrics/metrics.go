package metrics

import (
	"sync"
	"time"
)

type RequestSample struct {
	Path      string        `json:"path"`
	Method    string        `json:"method"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latencyNs"`
	Timestamp time.Time     `json:"timestamp"`
}

// Recorder keeps the most recent request samples in a fixed-size ring.
type Recorder struct {
	mu      sync.Mutex
	samples []RequestSample
	next    int
	full    bool
}

func NewRecorder(size int) *Recorder {
	if size <= 0 {
		size = 256
	}
	return &Recorder{samples: make([]RequestSample, size)}
}

func (r *Recorder) Record(s RequestSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[r.next] = s
	r.next = (r.next + 1) % len(r.samples)
	if r.next == 0 {
		r.full = true
	}
}

// Recent returns the held samples, oldest first.
func (r *Recorder) Recent() []RequestSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]RequestSample(nil), r.samples[:r.next]...)
	}
	out := make([]RequestSample, 0, len(r.samples))
	out = append(out, r.samples[r.next:]...)
	out = append(out, r.samples[:r.next]...)
	return out
}
