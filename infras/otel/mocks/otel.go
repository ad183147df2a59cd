package mocks

import (
	"context"
	"hotelbook/infras/otel"
	"sync"
)

// Recorder is an otel.Otel that keeps every scope it opens.
type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := newScope(spanName)

	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()

	return ctx, scope
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Find returns the first scope opened with spanName, or nil.
func (r *Recorder) Find(spanName string) *Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scope := range r.scopes {
		if scope.name == spanName {
			return scope
		}
	}

	return nil
}

// NewOtel returns an Otel for tests that do not inspect spans.
func NewOtel() otel.Otel {
	return &Recorder{}
}

// NewRecorder returns an Otel whose scopes can be inspected after the fact.
func NewRecorder() *Recorder {
	return &Recorder{}
}
