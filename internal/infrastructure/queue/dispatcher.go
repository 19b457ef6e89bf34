package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// MailDispatcher fans queued mail out to a fixed set of workers using
// consistent hashing on the recipient address, guaranteeing per-recipient
// delivery ordering.
type MailDispatcher struct {
	workers  []chan ports.Mail
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers:  make([]chan ports.Mail, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Mail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity. Delivery failures
// are logged, never reported back to the caller.
func (d *MailDispatcher) Enqueue(mail ports.Mail) {
	d.workers[d.shardIndex(mail.To)] <- mail
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Mail) {
	for {
		select {
		case <-ctx.Done():
			return
		case mail, ok := <-ch:
			if !ok {
				return
			}
			if err := d.notifier.Send(ctx, mail.To, mail.Subject, mail.Body); err != nil {
				d.log.Error().Err(err).
					Str("to", mail.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
			}
		}
	}
}
