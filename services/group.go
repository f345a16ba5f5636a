////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package services runs the fixed-size worker group that the pipelines
// execute on and provides the collective primitives the workers
// coordinate through: barrier, all-reduce, exclusive scan, the shared
// run clock, and the 1-D decomposition.
package services

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// ErrAborted is returned from every collective call once the group has
// been aborted. Callers unwind with it; the original abort cause is what
// Run reports.
var ErrAborted = errors.New("worker group aborted")

// Group is a fixed set of ranks executing one pipeline body. All
// collective state lives here; ranks hold a handle back to it. A Group is
// good for a single Run.
type Group struct {
	nproc int
	epoch time.Time

	mu      sync.Mutex
	arrived int
	release chan struct{}

	// Scratch slot per rank for the reduction collectives. Guarded by
	// the barrier protocol, not the mutex.
	contribs []uint64

	abortOnce sync.Once
	aborted   chan struct{}
	abortErr  error
}

// NewGroup creates a group of nproc ranks. The group clock starts now.
func NewGroup(nproc int) (*Group, error) {
	if nproc < 1 {
		return nil, errors.Errorf("group size must be at least 1, got %d", nproc)
	}
	return &Group{
		nproc:    nproc,
		epoch:    time.Now(),
		release:  make(chan struct{}),
		contribs: make([]uint64, nproc),
		aborted:  make(chan struct{}),
	}, nil
}

// NumProcs returns the group size.
func (g *Group) NumProcs() int { return g.nproc }

// Run executes body once per rank, each on its own goroutine, and blocks
// until every rank has returned. A body returning an error aborts the
// whole group; the first recorded error is returned. There is no partial
// success.
func (g *Group) Run(body func(r *Rank) error) error {
	var wg sync.WaitGroup
	wg.Add(g.nproc)

	for rank := 0; rank < g.nproc; rank++ {
		go func(rank int) {
			defer wg.Done()
			r := &Rank{group: g, rank: rank}
			if err := body(r); err != nil {
				r.Abort(err)
			}
		}(rank)
	}

	wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.abortErr
}

// abort records the first failure and releases every rank blocked in a
// collective. Later failures are dropped; by then the group is already
// coming down.
func (g *Group) abort(err error) {
	g.abortOnce.Do(func() {
		g.mu.Lock()
		g.abortErr = err
		g.mu.Unlock()
		jww.ERROR.Printf("Worker group aborting: %+v", err)
		close(g.aborted)
	})
}

// abortState reports ErrAborted once the group is down, nil otherwise.
func (g *Group) abortState() error {
	select {
	case <-g.aborted:
		return ErrAborted
	default:
		return nil
	}
}

// Rank is one worker's handle onto its group. Every blocking method
// returns ErrAborted once any peer has aborted, so a failing group
// unwinds instead of deadlocking at the next collective.
type Rank struct {
	group *Group
	rank  int
}

// Rank returns this worker's index in [0, NumProcs).
func (r *Rank) Rank() int { return r.rank }

// NumProcs returns the group size.
func (r *Rank) NumProcs() int { return r.group.nproc }

// Now returns the seconds elapsed on the shared group clock. All ranks
// read the same monotonic epoch, so intervals bracketed by barriers are
// comparable across the group.
func (r *Rank) Now() float64 {
	return time.Since(r.group.epoch).Seconds()
}

// Abort takes the whole group down with the given cause. It never
// returns nil.
func (r *Rank) Abort(err error) error {
	if err == nil {
		err = errors.Errorf("rank %d aborted without a cause", r.rank)
	}
	r.group.abort(err)
	return ErrAborted
}
