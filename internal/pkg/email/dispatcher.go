package email

import (
	"sync"

	"github.com/rs/zerolog"
)

// Notifier enqueues outbound email without blocking the caller. Delivery is
// best-effort, at most once: a send failure is logged and never propagated
// to the request that triggered it.
type Notifier interface {
	Enqueue(msg Message)
}

// Dispatcher is an asynchronous Notifier backed by a buffered channel and a
// single background worker. Persisted state never waits on, or rolls back
// because of, email delivery.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	logger zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher creates a Dispatcher and starts its worker
func NewDispatcher(sender Sender, queueSize int, logger zerolog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}

	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, queueSize),
		logger: logger,
		done:   make(chan struct{}),
	}

	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.sender.Send(msg); err != nil {
			d.logger.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("Email delivery failed")
			continue
		}
		d.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email delivered")
	}
}

// Enqueue queues a message for delivery. When the queue is full the message
// is dropped with a log line rather than blocking the request.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email queue full, message dropped")
	}
}

// Close stops accepting messages and waits for queued ones to drain
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
