package service

import (
	"log/slog"

	"github.com/sitecrew/gantt/internal/cache"
	"github.com/sitecrew/gantt/internal/clock"
	"github.com/sitecrew/gantt/internal/events"
)

// options carries the collaborators shared by every service.
type options struct {
	cache     cache.TaskCache
	publisher events.Publisher
	observer  UseCaseObserver
	logger    *slog.Logger
	clock     clock.Clock
}

// Option configures a service.
type Option func(*options)

func WithCache(c cache.TaskCache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(o *options) {
		if p != nil {
			o.publisher = p
		}
	}
}

func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithLogger sets the logger used for best-effort failures that do not
// fail the whole operation.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		cache:     cache.Noop{},
		publisher: events.Noop{},
		observer:  NoopUseCaseObserver{},
		logger:    slog.New(slog.DiscardHandler),
		clock:     clock.System{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
