// Package metrics is a small facade the rest of the code records metrics
// through. The active Backend is process-global; it defaults to a no-op so
// library code and tests never need to configure anything.
package metrics

import (
	"sync"
	"time"
)

// Labels are metric dimensions (e.g. {"status": "ok"}).
type Labels map[string]string

// Backend receives metric observations.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	Flush() error
}

// Metric names recorded by modpreset.
const (
	ExtractTotal           = "modpreset_extract_total"
	ModsTotal              = "modpreset_mods_total"
	ExtractDurationSeconds = "modpreset_extract_duration_seconds"
)

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend replaces the active backend. Nil restores the no-op backend.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		b = nopBackend{}
	}
	backend = b
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// IncCounter forwards to the active backend.
func IncCounter(name string, delta float64, labels Labels) {
	current().IncCounter(name, delta, labels)
}

// ObserveHistogram forwards to the active backend.
func ObserveHistogram(name string, value float64, labels Labels) {
	current().ObserveHistogram(name, value, labels)
}

// Flush flushes the active backend.
func Flush() error {
	return current().Flush()
}

// RecordExtract records one extraction attempt.
func RecordExtract(status string, mods int, d time.Duration) {
	l := Labels{"status": status}
	IncCounter(ExtractTotal, 1, l)
	ObserveHistogram(ExtractDurationSeconds, d.Seconds(), l)
	if mods > 0 {
		IncCounter(ModsTotal, float64(mods), nil)
	}
}
