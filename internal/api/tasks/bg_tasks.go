package tasks

import (
	"context"
	"log/slog"
	"sync"
)

type Task = func()

// BackgroundTasks is a fixed-size worker pool for fire-and-forget work
// such as sending confirmation emails. Tasks queue up on a buffered
// channel; a full queue drops new tasks rather than blocking callers.
type BackgroundTasks struct {
	log        *slog.Logger
	tasks      chan Task
	maxWorkers int
	wg         *sync.WaitGroup
}

func New(log *slog.Logger, maxWorkers int, queueSize int) *BackgroundTasks {
	wg := &sync.WaitGroup{}
	wg.Add(maxWorkers)
	return &BackgroundTasks{
		log:        log,
		maxWorkers: maxWorkers,
		wg:         wg,
		tasks:      make(chan Task, queueSize),
	}
}

func (t *BackgroundTasks) Run() {
	for i := 0; i < t.maxWorkers; i++ {
		workerLog := t.log.With("worker", i)
		go func() {
			defer t.wg.Done()
			for task := range t.tasks {
				t.runOne(workerLog, task)
			}
		}()
	}
}

// runOne isolates the recover so a panicking task kills neither the
// worker nor the queue.
func (t *BackgroundTasks) runOne(log *slog.Logger, task Task) {
	defer func() {
		if err := recover(); err != nil {
			log.Error("recovered panic in background task", "err", err)
		}
	}()
	task()
}

// Add enqueues without blocking; the caller is a request handler and
// must not wait on delivery capacity. Dropped tasks are logged.
func (t *BackgroundTasks) Add(task Task) {
	select {
	case t.tasks <- task:
	default:
		t.log.Warn("background task queue full, dropping task")
	}
}

func (t *BackgroundTasks) IsEmpty() bool {
	return len(t.tasks) == 0
}

// Shutdown stops accepting tasks and waits for in-flight ones until ctx
// expires.
func (t *BackgroundTasks) Shutdown(ctx context.Context) error {
	const op = "tasks.BackgroundTasks.Shutdown"
	log := t.log.With("op", op)
	log.Info("shutting down background tasks")
	close(t.tasks)
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		log.Warn("graceful shutdown timed out, forcing exit", "reason", ctx.Err())
		return ctx.Err()
	case <-done:
		log.Info("background tasks stopped")
		return nil
	}
}
