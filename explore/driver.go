package explore

import (
	"fmt"

	"github.com/interleave-dev/interleave/dpor"
)

// lockObjectBit maps a lock id into a reserved region of the object-id
// space so that lock acquisition order is itself explored. Scenario object
// ids must leave the top bit clear.
const lockObjectBit = uint64(1) << 63

func lockObject(lock uint64) uint64 {
	return lock | lockObjectBit
}

// stepScheduler decides which modeled thread runs next and receives the
// thread lifecycle updates the driver derives from lock state.
type stepScheduler interface {
	next() (int, bool)
	setBlocked(tid int, blocked bool)
	finish(tid int)
	reportOp(tid int, o op)
}

type worker struct {
	ctx     *Ctx
	pending op
	done    bool
	err     error
}

// runner owns one execution of a scenario: the goroutines of the modeled
// threads, the lock table and the trace log being built.
type runner struct {
	workers []*worker
	locks   map[uint64]int
	state   any
	trace   *TraceLog
}

// launch builds the shared state and starts one goroutine per modeled
// thread. Each goroutine runs up to its first trace marker and parks.
func launch(s Scenario) *runner {
	r := &runner{
		workers: make([]*worker, len(s.Threads)),
		locks:   make(map[uint64]int),
		trace:   &TraceLog{Schedule: make([]int, 0, 32)},
	}
	if s.Setup != nil {
		r.state = s.Setup()
	}
	for i, fn := range s.Threads {
		w := &worker{ctx: &Ctx{tid: i, ops: make(chan op), grant: make(chan bool)}}
		r.workers[i] = w
		go func(fn ThreadFunc, w *worker) {
			defer func() {
				if rec := recover(); rec != nil {
					if _, killed := rec.(threadKilled); !killed {
						w.err = fmt.Errorf("modeled thread panicked: %v", rec)
					}
				}
				w.ctx.ops <- op{kind: opDone}
			}()
			fn(w.ctx, r.state)
		}(fn, w)
	}
	return r
}

// run drives the execution to completion: collect every thread's first
// pending operation, then repeatedly ask the scheduler for a thread,
// perform its pending operation and let it run to the next marker.
// Exactly one modeled thread runs at any moment.
func (r *runner) run(sched stepScheduler) {
	for tid, w := range r.workers {
		w.pending = <-w.ctx.ops
		if w.pending.kind == opDone {
			w.done = true
			sched.finish(tid)
			if w.err != nil && r.trace.Err == "" {
				r.trace.Err = w.err.Error()
			}
		}
	}
	for {
		// a thread whose pending acquire targets a held lock is blocked;
		// it becomes runnable again the moment the lock frees up
		for tid, w := range r.workers {
			if w.done {
				continue
			}
			if w.pending.kind == opAcquire {
				holder, held := r.locks[w.pending.target]
				sched.setBlocked(tid, held && holder != tid)
			}
		}

		tid, ok := sched.next()
		if !ok {
			break
		}
		w := r.workers[tid]
		o := w.pending
		switch o.kind {
		case opAcquire:
			r.locks[o.target] = tid
		case opRelease:
			delete(r.locks, o.target)
		}
		sched.reportOp(tid, o)
		r.trace.Schedule = append(r.trace.Schedule, tid)
		r.trace.Events = append(r.trace.Events, EventRecord{Thread: tid, Op: o.kind.String(), Target: o.target})

		w.ctx.grant <- true
		next := <-w.ctx.ops
		if next.kind == opDone {
			w.done = true
			sched.finish(tid)
			if w.err != nil && r.trace.Err == "" {
				r.trace.Err = w.err.Error()
			}
		} else {
			w.pending = next
		}
	}
	r.teardown()
}

// teardown unparks every unfinished thread with a kill signal so its
// goroutine exits before the next execution starts.
func (r *runner) teardown() {
	for _, w := range r.workers {
		if !w.done {
			w.ctx.grant <- false
			<-w.ctx.ops
			w.done = true
		}
	}
}

// dporScheduler drives an execution through the dpor engine.
type dporScheduler struct {
	eng   *dpor.Engine
	exec  *dpor.Execution
	trace *TraceLog
}

func (d *dporScheduler) next() (int, bool) {
	return d.eng.Schedule(d.exec)
}

func (d *dporScheduler) setBlocked(tid int, blocked bool) {
	if blocked {
		d.exec.BlockThread(tid)
	} else {
		d.exec.UnblockThread(tid)
	}
}

func (d *dporScheduler) finish(tid int) {
	d.exec.FinishThread(tid)
}

func (d *dporScheduler) reportOp(tid int, o op) {
	var err error
	switch o.kind {
	case opRead:
		err = d.eng.ReportAccess(d.exec, tid, o.target, dpor.Read)
	case opWrite:
		err = d.eng.ReportAccess(d.exec, tid, o.target, dpor.Write)
	case opAcquire:
		// the acquire itself is a conflicting access on the lock's
		// identity, reported before the happens-before join so that
		// acquisition order is explored
		err = d.eng.ReportAccess(d.exec, tid, lockObject(o.target), dpor.Write)
		if err == nil {
			err = d.eng.ReportSync(d.exec, tid, dpor.SyncEvent{Kind: dpor.LockAcquire, Target: o.target})
		}
	case opRelease:
		err = d.eng.ReportSync(d.exec, tid, dpor.SyncEvent{Kind: dpor.LockRelease, Target: o.target})
	case opYield:
		err = d.exec.YieldThread(tid)
	}
	if err != nil && d.trace.Err == "" {
		d.trace.Err = err.Error()
	}
}
