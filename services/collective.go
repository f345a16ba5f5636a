////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

// collective.go implements the synchronizing primitives. Each collective
// must be called by every rank of the group, in the same order; writes
// made before a collective are visible to every rank after it.

// Barrier blocks until every rank of the group has called it. It returns
// ErrAborted without waiting for stragglers once the group is aborted.
func (r *Rank) Barrier() error {
	g := r.group

	if err := g.abortState(); err != nil {
		return err
	}

	g.mu.Lock()
	release := g.release
	g.arrived++
	if g.arrived == g.nproc {
		// Last arriver opens the gate and arms the next generation.
		g.arrived = 0
		g.release = make(chan struct{})
		close(release)
		g.mu.Unlock()
	} else {
		g.mu.Unlock()
		select {
		case <-release:
		case <-g.aborted:
		}
	}

	return g.abortState()
}

// AllReduceSum contributes v and returns the sum of every rank's
// contribution. Every rank receives the same result.
func (r *Rank) AllReduceSum(v uint64) (uint64, error) {
	g := r.group
	g.contribs[r.rank] = v

	if err := r.Barrier(); err != nil {
		return 0, err
	}

	var sum uint64
	for _, c := range g.contribs {
		sum += c
	}

	// Second barrier keeps the scratch slots stable until every rank
	// has read them.
	if err := r.Barrier(); err != nil {
		return 0, err
	}
	return sum, nil
}

// ExclusiveScanSum contributes v and returns the sum of the
// contributions of ranks 0..r-1. Rank 0's result is unspecified, as with
// the underlying primitive; callers are expected to overwrite it with
// the identity.
func (r *Rank) ExclusiveScanSum(v uint64) (uint64, error) {
	g := r.group
	g.contribs[r.rank] = v

	if err := r.Barrier(); err != nil {
		return 0, err
	}

	var sum uint64
	for rank := 0; rank < r.rank; rank++ {
		sum += g.contribs[rank]
	}

	if err := r.Barrier(); err != nil {
		return 0, err
	}
	return sum, nil
}
