// ABOUTME: Functional options for Arena construction
// ABOUTME: Configures logging, collection observers and preallocation

package arena

import (
	"io"
	"log/slog"
	"time"
)

// Observer receives allocation and collection events.
type Observer interface {
	OnAllocate()
	OnCollect(c Collection, live int, d time.Duration)
}

type noopObserver struct{}

func (noopObserver) OnAllocate()                              {}
func (noopObserver) OnCollect(Collection, int, time.Duration) {}

type options struct {
	logger   *slog.Logger
	observer Observer
	capacity int
}

// Option configures an Arena.
type Option func(*options)

// WithLogger sets the logger used for collection events.
// A nil logger discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

// WithObserver installs an Observer. A nil observer disables notifications.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = noopObserver{}
		}
		o.observer = obs
	}
}

// WithInitialCapacity preallocates room for n allocations.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.capacity = n
	}
}

func defaultOptions() options {
	return options{
		logger:   discardLogger(),
		observer: noopObserver{},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
