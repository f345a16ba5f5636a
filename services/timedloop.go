////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

// timedloop.go holds the benchmark's measurement idiom: repeat an I/O
// stage, with a fresh iteration id each time, until a minimum wall-clock
// runtime has elapsed since the loop's opening barrier.

import "strconv"

// TimedLoop calls fn with iteration ids "0", "1", ... until at least
// minRuntime seconds have passed since the barrier that opens the loop.
// Each iteration closes with a barrier, and whether to continue is rank
// 0's call, broadcast through the group so every rank runs the same
// number of iterations. It returns the iteration count and the elapsed
// seconds measured on the group clock. A failed iteration ends the loop
// immediately.
func TimedLoop(r *Rank, minRuntime float64, fn func(iterID string) error) (
	iterations int, elapsed float64, err error) {

	if err = r.Barrier(); err != nil {
		return 0, 0, err
	}
	start := r.Now()

	for {
		if err = fn(strconv.Itoa(iterations)); err != nil {
			return iterations, r.Now() - start, err
		}

		if err = r.Barrier(); err != nil {
			return iterations, r.Now() - start, err
		}
		iterations++
		elapsed = r.Now() - start

		// Rank 0 decides; everyone follows. Deciding locally would let
		// ranks straddling the deadline disagree on the iteration count
		// and deadlock the next collective.
		var keepGoing uint64
		if r.Rank() == 0 && elapsed < minRuntime {
			keepGoing = 1
		}
		keepGoing, err = r.AllReduceSum(keepGoing)
		if err != nil {
			return iterations, elapsed, err
		}
		if keepGoing == 0 {
			return iterations, elapsed, nil
		}
	}
}
