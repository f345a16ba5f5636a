////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package container

import (
	"gitlab.com/elixxir/cipherbench/services"
)

// VarBinaryData is the variable holding the concatenated ciphertext of
// every rank.
const VarBinaryData = "binary_data"

// WriteData writes one rank's slab of the concatenated ciphertext into
// the dataset directory. Collective.
func WriteData(r *services.Rank, dir, step string, globalSize, globalOffset uint64,
	data []byte) error {
	w, err := OpenWriter(r, dir, step)
	if err != nil {
		return err
	}
	if err = w.PutBytes(VarBinaryData, globalSize, globalOffset, data); err != nil {
		return err
	}
	return w.Close()
}

// ReadData reads back one rank's slab of the concatenated ciphertext.
// Collective.
func ReadData(r *services.Rank, dir, step string, globalOffset,
	localSize uint64) ([]byte, error) {
	rd, err := OpenReader(r, dir, step)
	if err != nil {
		return nil, err
	}
	data, err := rd.GetBytes(VarBinaryData, globalOffset, localSize)
	if err != nil {
		return nil, err
	}
	return data, rd.Close()
}
