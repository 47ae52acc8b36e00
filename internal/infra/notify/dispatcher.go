package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"
)

const sendTimeout = 30 * time.Second

// Dispatcher decouples mail delivery from the request path. Enqueue never
// blocks; when the buffer is full the notification is dropped and logged.
type Dispatcher struct {
	sender Sender
	queue  chan shared.Notification

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

func NewDispatcher(sender Sender, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		sender: sender,
		queue:  make(chan shared.Notification, queueSize),
		done:   make(chan struct{}),
	}
}

func (d *Dispatcher) Enqueue(n shared.Notification) {
	select {
	case d.queue <- n:
	default:
		slog.Warn("notification queue full, dropping",
			"kind", string(n.Kind),
			"reference", n.ReferenceNumber)
	}
}

func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go d.run()
	})
}

// Stop drains nothing: queued notifications that have not started sending
// are abandoned, mirroring the fire-and-forget delivery contract.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case n := <-d.queue:
			d.deliver(n)
		}
	}
}

func (d *Dispatcher) deliver(n shared.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, n); err != nil {
		slog.Error("notification delivery failed",
			"kind", string(n.Kind),
			"reference", n.ReferenceNumber,
			"error", err.Error())
		return
	}
	slog.Info("notification delivered",
		"kind", string(n.Kind),
		"reference", n.ReferenceNumber)
}
