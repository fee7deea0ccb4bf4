package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	EventReservationCreated   = "reservation:created"
	EventReservationUpdated   = "reservation:updated"
	EventReservationCancelled = "reservation:cancelled"
)

type Event struct {
	Type          string
	ReservationID uint
	ProviderID    uint
	ClientID      uint
	At            time.Time
	Payload       any
}

// Sink receives events. Delivery is best-effort: failures are logged here and
// never surfaced to the booking caller.
type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

// Dispatcher decouples event emission from the request path through a
// buffered channel and a single worker goroutine.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	log   zerolog.Logger
}

func NewDispatcher(sink Sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		log:   log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Deliver(context.Background(), ev); err != nil {
			d.log.Error().
				Err(err).
				Str("type", ev.Type).
				Uint("reservation_id", ev.ReservationID).
				Msg("notification delivery failed")
		}
	}
}

// Dispatch never blocks the caller. A full queue drops the event with a log
// line rather than stalling a booking. Safe on a nil dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("type", ev.Type).Msg("notification queue full, dropping event")
	}
}
