package scheduler

import (
	"context"
)

// Task is a unit of work executed by the pool.
type Task[T any] func(ctx context.Context) (T, error)

// Result carries a task's value or its error.
type Result[T any] struct {
	Value T
	Err   error
}

type taskRequest struct {
	fn  Task[any]
	c   chan Result[any]
	ctx context.Context
}

type worker struct {
	done chan any
}

func (w worker) run(r taskRequest) {
	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Value: v, Err: err}
	w.done <- struct{}{}
}

// Scheduler is a fixed-size worker pool. Tasks beyond the pool size queue
// up in submission order. The planner fans one engine evaluation per
// candidate profile through it; the collector runs its vCenter work on it.
type Scheduler struct {
	workers    *queue[worker]
	backlog    *queue[taskRequest]
	close      chan any
	done       chan any
	submit     chan taskRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc
}

func NewScheduler(nbWorkers int) *Scheduler {
	done := make(chan any)
	wq := &queue[worker]{}
	for range nbWorkers {
		wq.push(worker{done: done})
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		workers:    wq,
		backlog:    &queue[taskRequest]{},
		close:      make(chan any),
		done:       done,
		submit:     make(chan taskRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	go s.run()
	return s
}

// Submit enqueues a task and returns a future resolving to its result.
func (s *Scheduler) Submit(t Task[any]) *Future[Result[any]] {
	c := make(chan Result[any])
	ctx, cancel := context.WithCancel(s.mainCtx)
	s.submit <- taskRequest{t, c, ctx}
	return NewFuture(c, cancel)
}

// Close cancels the contexts of all tasks and stops the dispatch loop.
func (s *Scheduler) Close() {
	s.mainCancel()
	s.close <- struct{}{}
}

func (s *Scheduler) run() {
	for {
		select {
		case t := <-s.submit:
			s.backlog.push(t)
			if s.workers.len() == 0 {
				continue
			}
			s.dispatch(s.backlog.pop())
		case <-s.done:
			s.workers.push(worker{done: s.done})

			if s.backlog.len() == 0 {
				continue
			}
			s.dispatch(s.backlog.pop())
		case <-s.close:
			return
		}
	}
}

func (s *Scheduler) dispatch(r taskRequest) {
	w := s.workers.pop()
	go w.run(r)
}
