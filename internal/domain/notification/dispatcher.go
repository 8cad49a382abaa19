package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const deliverTimeout = 30 * time.Second

// Dispatcher queues clinic events and delivers them off the request path.
// Publish never blocks; a full queue drops the event with a warning.
type Dispatcher struct {
	service *Service
	queue   chan Event
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(service *Service, size int, log zerolog.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	return &Dispatcher{
		service: service,
		queue:   make(chan Event, size),
		log:     log,
	}
}

// Start runs the worker until Close drains the queue.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for e := range d.queue {
			d.process(e)
		}
	}()
}

func (d *Dispatcher) process(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	n, err := d.service.Deliver(ctx, e)
	if err != nil {
		d.log.Error().Err(err).Str("type", e.Type).Msg("event delivery failed")
		return
	}
	if n.Status == StatusFailed {
		d.log.Warn().Int64("notification_id", n.ID).Str("reason", n.FailureReason).Msg("event notification failed")
	}
}

func (d *Dispatcher) Publish(e Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- e:
	default:
		d.log.Warn().Str("type", e.Type).Msg("notification queue full, event dropped")
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
