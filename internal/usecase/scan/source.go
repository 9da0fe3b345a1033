package scan

import (
	"context"
	"errors"
	"sync"
)

var ErrSourceClosed = errors.New("decode source closed")

// Source yields candidate barcode strings. Manual entry and a live camera
// decode loop both satisfy it; the resolver does not care which.
type Source interface {
	// Next blocks until a decode succeeds, the source closes, or ctx ends.
	Next(ctx context.Context) (string, error)
	Close() error
}

// ManualSource wraps a single typed-in barcode.
type ManualSource struct {
	barcode  string
	consumed bool
}

func NewManualSource(barcode string) *ManualSource { return &ManualSource{barcode: barcode} }

func (s *ManualSource) Next(_ context.Context) (string, error) {
	if s.consumed {
		return "", ErrSourceClosed
	}
	s.consumed = true
	return s.barcode, nil
}

func (s *ManualSource) Close() error {
	s.consumed = true
	return nil
}

// StreamSource adapts a continuous frame-decode feed. The producer pushes
// decode results with Emit; Close stops the producer via the stop callback
// (camera tracks stopped, decoder reset) and is safe to call more than once.
type StreamSource struct {
	results chan string
	done    chan struct{}
	stop    func()
	once    sync.Once
}

func NewStreamSource(stop func()) *StreamSource {
	return &StreamSource{
		results: make(chan string),
		done:    make(chan struct{}),
		stop:    stop,
	}
}

// Emit hands a decoded barcode to the consumer. Returns false once the
// source is closed, so the decode loop knows to quit.
func (s *StreamSource) Emit(barcode string) bool {
	select {
	case s.results <- barcode:
		return true
	case <-s.done:
		return false
	}
}

func (s *StreamSource) Next(ctx context.Context) (string, error) {
	select {
	case code := <-s.results:
		return code, nil
	case <-s.done:
		return "", ErrSourceClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *StreamSource) Close() error {
	s.once.Do(func() {
		close(s.done)
		if s.stop != nil {
			s.stop()
		}
	})
	return nil
}
