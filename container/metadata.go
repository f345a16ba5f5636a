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

// Variable names of a metadata dataset.
const (
	VarLocalSizes    = "local_sizes"
	VarGlobalOffsets = "global_offsets"
	VarFilesSizes    = "files_sizes"
	VarFilesOffsets  = "files_offsets"
)

// Metadata is one rank's view of a metadata dataset: the rank's slab of
// the concatenated ciphertext plus the per-file sizes and offsets of the
// files the rank owns. Offsets are relative to the rank's own slab.
type Metadata struct {
	LocalSize    uint64
	GlobalOffset uint64
	FilesSizes   []uint64
	FilesOffsets []uint64
}

// WriteMetadata writes one rank's metadata into the dataset directory.
// totalFiles is the global file count; displacement is the index of the
// rank's first file within it. Collective.
func WriteMetadata(r *services.Rank, dir, step string, totalFiles,
	displacement uint64, md Metadata) error {
	w, err := OpenWriter(r, dir, step)
	if err != nil {
		return err
	}

	nproc := uint64(r.NumProcs())
	rank := uint64(r.Rank())

	err = w.PutUint64s(VarLocalSizes, nproc, rank, []uint64{md.LocalSize})
	if err != nil {
		return err
	}
	err = w.PutUint64s(VarGlobalOffsets, nproc, rank, []uint64{md.GlobalOffset})
	if err != nil {
		return err
	}
	err = w.PutUint64s(VarFilesSizes, totalFiles, displacement, md.FilesSizes)
	if err != nil {
		return err
	}
	err = w.PutUint64s(VarFilesOffsets, totalFiles, displacement, md.FilesOffsets)
	if err != nil {
		return err
	}

	return w.Close()
}

// ReadMetadata reads back one rank's metadata from the dataset
// directory. fileCount files starting at displacement belong to the
// caller. Collective.
func ReadMetadata(r *services.Rank, dir, step string, displacement,
	fileCount uint64) (Metadata, error) {
	rd, err := OpenReader(r, dir, step)
	if err != nil {
		return Metadata{}, err
	}

	rank := uint64(r.Rank())
	var md Metadata

	localSizes, err := rd.GetUint64s(VarLocalSizes, rank, 1)
	if err != nil {
		return Metadata{}, err
	}
	md.LocalSize = localSizes[0]

	globalOffsets, err := rd.GetUint64s(VarGlobalOffsets, rank, 1)
	if err != nil {
		return Metadata{}, err
	}
	md.GlobalOffset = globalOffsets[0]

	md.FilesSizes, err = rd.GetUint64s(VarFilesSizes, displacement, fileCount)
	if err != nil {
		return Metadata{}, err
	}

	md.FilesOffsets, err = rd.GetUint64s(VarFilesOffsets, displacement, fileCount)
	if err != nil {
		return Metadata{}, err
	}

	return md, rd.Close()
}
