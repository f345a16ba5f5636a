////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

import "testing"

// Tests that the slices tile [0, N) without gaps or overlap and never
// differ in length by more than one, across a sweep of sizes and group
// shapes.
func TestDecompose1D_Tiling(t *testing.T) {
	for _, nproc := range []int{1, 2, 3, 4, 7, 16} {
		for globalSize := uint64(0); globalSize <= 40; globalSize++ {
			var next, total, minLen, maxLen uint64
			minLen = globalSize + 1

			for rank := 0; rank < nproc; rank++ {
				offset, localSize := Decompose1D(globalSize, nproc, rank)

				if offset != next {
					t.Fatalf("N=%d nproc=%d rank=%d starts at %d; expected %d",
						globalSize, nproc, rank, offset, next)
				}
				next = offset + localSize
				total += localSize

				if localSize < minLen {
					minLen = localSize
				}
				if localSize > maxLen {
					maxLen = localSize
				}
			}

			if total != globalSize {
				t.Errorf("N=%d nproc=%d slices sum to %d", globalSize, nproc,
					total)
			}
			if maxLen-minLen > 1 {
				t.Errorf("N=%d nproc=%d slice lengths span %d to %d",
					globalSize, nproc, minLen, maxLen)
			}
		}
	}
}

// Tests the 3-files-on-2-workers case: counts must come out [2, 1].
func TestDecompose1D_ThreeOverTwo(t *testing.T) {
	offset0, count0 := Decompose1D(3, 2, 0)
	offset1, count1 := Decompose1D(3, 2, 1)

	if offset0 != 0 || count0 != 2 {
		t.Errorf("Rank 0 got (%d, %d); expected (0, 2)", offset0, count0)
	}
	if offset1 != 2 || count1 != 1 {
		t.Errorf("Rank 1 got (%d, %d); expected (2, 1)", offset1, count1)
	}
}

// Tests that ranks beyond the item count receive empty slices.
func TestDecompose1D_MoreWorkersThanItems(t *testing.T) {
	const nproc = 5
	for rank := 0; rank < nproc; rank++ {
		_, localSize := Decompose1D(2, nproc, rank)
		if rank < 2 && localSize != 1 {
			t.Errorf("Rank %d owns %d items; expected 1", rank, localSize)
		}
		if rank >= 2 && localSize != 0 {
			t.Errorf("Rank %d owns %d items; expected 0", rank, localSize)
		}
	}
}
