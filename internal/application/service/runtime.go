package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/domain/event"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/internal/metrics"
)

// Runtime bundles the collaborators shared by the ledgers
type Runtime struct {
	Tx        repository.Transactor
	Counters  repository.CounterRepository
	Bus       *event.Bus
	Publisher event.Publisher
	Metrics   *metrics.Metrics
	Clock     func() time.Time
}

// NewRuntime wires a runtime with a fresh bus, no-op publisher and wall clock
func NewRuntime(tx repository.Transactor, counters repository.CounterRepository) *Runtime {
	return &Runtime{
		Tx:        tx,
		Counters:  counters,
		Bus:       event.NewBus(),
		Publisher: event.NopPublisher{},
		Clock:     time.Now,
	}
}

func (r *Runtime) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

// publish forwards committed events. Failures are logged and counted, never returned.
func (r *Runtime) publish(ctx context.Context, events ...event.Event) {
	if r.Publisher == nil {
		return
	}
	for _, e := range events {
		if err := r.Publisher.Publish(ctx, e); err != nil {
			log.Warn().Err(err).Str("event", string(e.EventName())).Msg("event publish failed")
			r.Metrics.PublishFailed(string(e.EventName()))
		}
	}
}

// Actor is the authenticated user on whose behalf an operation runs
type Actor struct {
	UserID uuid.UUID
	Admin  bool
}
