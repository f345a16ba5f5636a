////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

// Decompose1D splits globalSize items into nproc contiguous slices and
// returns the offset and length of the slice owned by rank. The first
// globalSize mod nproc ranks each take one extra item, so slice lengths
// differ by at most one and the slices tile [0, globalSize) exactly.
func Decompose1D(globalSize uint64, nproc, rank int) (offset, localSize uint64) {
	localSize = globalSize / uint64(nproc)
	remainder := globalSize - uint64(nproc)*localSize

	if uint64(rank) < remainder {
		localSize++
		offset = uint64(rank) * localSize
	} else {
		offset = uint64(rank)*localSize + remainder
	}
	return offset, localSize
}

// Decompose returns this rank's slice of globalSize items.
func (r *Rank) Decompose(globalSize uint64) (offset, localSize uint64) {
	return Decompose1D(globalSize, r.group.nproc, r.rank)
}
