package notificationqueue

import (
	"context"
	"errors"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	sendsubmissionnotifications "kedilabs/internal/core/services/send_submission_notifications"
	"sync"
)

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
)

type Notifier = services.Service[sendsubmissionnotifications.Input, sendsubmissionnotifications.Result]

// WorkerPool runs notifications in the background on a fixed number of
// goroutines. Enqueue never blocks: it fails with ErrQueueFull instead.
type WorkerPool struct {
	log      logging.Logger
	notifier Notifier
	workers  int
	tasks    chan submission.Submission
	closed   bool
	lock     sync.RWMutex
	wg       sync.WaitGroup
}

func NewWorkerPool(log logging.Logger, notifier Notifier, workers int, queueSize int) *WorkerPool {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &WorkerPool{
		log:      log,
		notifier: notifier,
		workers:  workers,
		tasks:    make(chan submission.Submission, queueSize),
	}
}

// Start launches the workers. ctx is used for the notifications themselves
// so it must outlive the requests that enqueue them.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *WorkerPool) Enqueue(ctx context.Context, s submission.Submission) error {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.closed {
		return ErrQueueClosed
	}
	select {
	case p.tasks <- s:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop drains the queue and waits for the workers until ctx is done.
func (p *WorkerPool) Stop(ctx context.Context) error {
	p.lock.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.lock.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-p.tasks:
			if !ok {
				return
			}
			p.notify(ctx, s)
		}
	}
}

func (p *WorkerPool) notify(ctx context.Context, s submission.Submission) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error(
				ctx,
				"Notification task panicked.",
				logging.Entry("submissionId", s.ID),
				logging.Entry("panic", r),
			)
		}
	}()
	_, err := p.notifier.Run(ctx, sendsubmissionnotifications.Input{Submission: s})
	if err != nil {
		p.log.Error(
			ctx,
			"Could not process submission notifications.",
			logging.Entry("submissionId", s.ID),
			logging.Entry("err", err),
		)
	}
}
