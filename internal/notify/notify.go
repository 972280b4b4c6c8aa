// Package notify delivers outbound messages triggered by state
// transitions. Delivery is strictly best-effort: failures are logged and
// swallowed, and no caller ever blocks on a send beyond a non-blocking
// enqueue.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Notifier is the outbound channel contract.
type Notifier interface {
	Notify(ctx context.Context, recipients []string, subject, body string) error
}

type message struct {
	recipients []string
	subject    string
	body       string
}

// Dispatcher queues messages and delivers them from a single worker with
// a per-send timeout. A full queue drops the message rather than slowing
// the state transition that produced it.
type Dispatcher struct {
	notifier Notifier
	jobs     chan message
	timeout  time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(n Notifier, queueSize int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	d := &Dispatcher{
		notifier: n,
		jobs:     make(chan message, queueSize),
		timeout:  timeout,
		done:     make(chan struct{}),
	}
	go d.worker()
	return d
}

// Enqueue never blocks and never reports failure to the caller.
func (d *Dispatcher) Enqueue(recipients []string, subject, body string) {
	if len(recipients) == 0 {
		return
	}
	select {
	case d.jobs <- message{recipients: recipients, subject: subject, body: body}:
	default:
		log.Warn().Str("subject", subject).Msg("notify queue full, dropping message")
	}
}

// Close stops the worker after draining queued messages.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
		<-d.done
	})
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.notifier.Notify(ctx, msg.recipients, msg.subject, msg.body)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("subject", msg.subject).Int("recipients", len(msg.recipients)).
				Msg("notification delivery failed")
			continue
		}
		log.Debug().Str("subject", msg.subject).Int("recipients", len(msg.recipients)).
			Msg("notification delivered")
	}
}
