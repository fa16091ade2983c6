package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher feeds events to the notifier from a single background
// worker. Enqueue never blocks the caller: when the buffer is full the
// event is dropped and logged.
type Dispatcher struct {
	notifier Notifier
	logger   *zap.Logger
	timeout  time.Duration
	events   chan Event
	wg       sync.WaitGroup
	once     sync.Once
}

func NewDispatcher(notifier Notifier, logger *zap.Logger, buffer int, timeout time.Duration) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{
		notifier: notifier,
		logger:   logger,
		timeout:  timeout,
		events:   make(chan Event, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) Enqueue(event Event) {
	select {
	case d.events <- event:
	default:
		d.logger.Warn("notification queue full, dropping event",
			zap.Uint("submission_id", event.SubmissionID),
			zap.String("reference_no", event.ReferenceNo))
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.events) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.events {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notifier panicked",
				zap.Uint("submission_id", event.SubmissionID),
				zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var ok bool
	if event.Approved {
		ok = d.notifier.NotifyApproved(ctx, event)
	} else {
		ok = d.notifier.NotifyRejected(ctx, event)
	}

	if ok {
		d.logger.Info("notification delivered",
			zap.Uint("submission_id", event.SubmissionID),
			zap.Bool("approved", event.Approved))
	} else {
		d.logger.Warn("notification delivery failed",
			zap.Uint("submission_id", event.SubmissionID),
			zap.Bool("approved", event.Approved))
	}
}
