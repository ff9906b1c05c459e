package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/mercatto/account-service/internal/api/metrics"
	"github.com/mercatto/account-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

type mailJob struct {
	email string
	code  string
}

// MailDispatcher delivers verification mail asynchronously through a fixed
// set of workers, sharded by recipient so resends to the same address stay
// ordered. It satisfies ports.Notifier: enqueueing never fails the caller,
// send errors are logged and counted on the worker side.
type MailDispatcher struct {
	workers []chan mailJob
	mailer  ports.Notifier
	log     zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Notifier, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan mailJob, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan mailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// SendVerificationCode enqueues the mail for its shard and returns
// immediately. Non-blocking up to channelBuffer capacity; when the shard is
// full the caller's context bounds the wait, so a request goroutine cannot
// hang on a stopped worker.
func (d *MailDispatcher) SendVerificationCode(ctx context.Context, email, code string) error {
	select {
	case d.workers[d.shardIndex(email)] <- mailJob{email: email, code: code}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan mailJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.SendVerificationCode(ctx, job.email, job.code); err != nil {
				metrics.VerificationMailsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("email", job.email).
					Int("worker_id", id).
					Msg("verification mail delivery failed")
				continue
			}
			metrics.VerificationMailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
