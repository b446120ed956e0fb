package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// ErrPoolStopped is returned for tasks submitted after Stop.
var ErrPoolStopped = errors.New("worker pool stopped")

// Task is one unit of asynchronous work.
type Task func(ctx context.Context) error

type job struct {
	ctx    context.Context
	task   Task
	result chan error
}

// Pool runs submitted tasks on a fixed set of worker goroutines. It exists
// so slow continuations (outbound OAuth calls, database writes) run off the
// request-accepting path: the HTTP handler submits a task and awaits its
// outcome on the returned channel while a worker does the blocking work.
type Pool struct {
	logger *zap.Logger
	size   int
	tasks  chan job
	done   chan struct{}
	wg     sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPool creates a pool of size workers with a bounded submission queue.
func NewPool(size, queueSize int, logger *zap.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		logger: logger,
		size:   size,
		tasks:  make(chan job, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.logger.Info("Starting worker pool", zap.Int("size", p.size))
		for i := 0; i < p.size; i++ {
			p.wg.Add(1)
			go p.worker()
		}
	})
}

// Stop signals the workers and waits for in-flight tasks to finish.
// Queued tasks that no worker picked up resolve with ErrPoolStopped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.wg.Wait()

		for {
			select {
			case j := <-p.tasks:
				j.result <- ErrPoolStopped
			default:
				p.logger.Info("Worker pool stopped")
				return
			}
		}
	})
}

// Submit enqueues task and returns a channel that receives its outcome
// exactly once. The channel is buffered: a caller that stops waiting (for
// example a disconnected browser) does not block the worker, and the task
// still runs to completion.
func (p *Pool) Submit(ctx context.Context, task Task) <-chan error {
	result := make(chan error, 1)
	j := job{ctx: ctx, task: task, result: result}

	// A stopped pool has no workers left; enqueueing would strand the job.
	select {
	case <-p.done:
		result <- ErrPoolStopped
		return result
	default:
	}

	select {
	case p.tasks <- j:
	case <-p.done:
		result <- ErrPoolStopped
	case <-ctx.Done():
		result <- ctx.Err()
	}

	return result
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case j := <-p.tasks:
			j.result <- p.run(j)
		}
	}
}

// run executes one task, converting a panic into an error at the boundary
// so a faulty continuation cannot take a worker down.
func (p *Pool) run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Task panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	return j.task(j.ctx)
}
