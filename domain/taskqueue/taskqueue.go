/*
File    : gomixvm/domain/taskqueue/taskqueue.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package taskqueue realizes the out-of-scope thread-pool task queue
// (spec.md §1) as a fixed-size worker pool over a buffered channel,
// generalizing the teacher's goroutine-per-connection pattern from
// main/main.go's startServer into a bounded concurrency primitive. A
// go-mix program reaches it through two natives: enqueue_task(fn) and
// task_queue_wait().
package taskqueue

import (
	"fmt"
	"sync"

	"github.com/akashmaji946/gomixvm/value"
)

// DefaultWorkers matches the teacher's typical small-pool sizing for a
// single-box REPL-over-TCP server.
const DefaultWorkers = 4

type job struct {
	fn value.NativeFn
}

// Pool is a fixed-size worker pool draining a buffered job channel.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

// New starts workers goroutines waiting on an internal job channel.
// Workers keeps running for the process lifetime; there is no Stop
// because go-mix programs have no shutdown hook of their own (spec.md
// Non-goals: no concurrent execution inside the VM itself).
func New(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := &Pool{jobs: make(chan job, 256)}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for j := range p.jobs {
		j.fn(nil)
		p.wg.Done()
	}
}

// Natives returns enqueue_task and task_queue_wait for registration.
func (p *Pool) Natives() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"enqueue_task":    p.enqueueTask,
		"task_queue_wait": p.wait,
	}
}

// enqueueTask(fn) schedules fn to run on a worker. Only native callables
// can genuinely be invoked (user-defined functions are never realized,
// spec.md §9); a nil argument is a tolerant no-op, matching the VM's own
// "calling nil" rule.
func (p *Pool) enqueueTask(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil(), fmt.Errorf("enqueue_task expects 1 argument (fn)")
	}
	switch args[0].Type() {
	case value.TypeNil:
		return value.Nil(), nil
	case value.TypeNative:
		fn := args[0].AsNative()
		p.wg.Add(1)
		p.jobs <- job{fn: fn}
		return value.Nil(), nil
	default:
		return value.Nil(), fmt.Errorf("enqueue_task: argument is not callable")
	}
}

// wait() blocks until every enqueued task has run.
func (p *Pool) wait(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Nil(), fmt.Errorf("task_queue_wait expects 0 arguments")
	}
	p.wg.Wait()
	return value.Nil(), nil
}
