////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package container is the parallel I/O engine under the pipelines. A
// dataset is a directory holding one pre-sized binary file per named
// variable plus a manifest describing every variable's type and global
// shape. Each rank writes and reads only its own selection, a
// contiguous (start, count) range of the global shape, so the whole
// group shares one dataset without overlapping.
//
// The engine's surface is collective and step-based: every rank must
// open the same dataset, issue the same Put/Get calls in the same
// order, and close it. Rank 0 creates files and writes the manifest;
// barriers separate that from the peers' positioned writes.
package container

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gitlab.com/xx_network/primitives/utils"
	"gopkg.in/yaml.v2"

	"gitlab.com/elixxir/cipherbench/services"
)

// ErrVarNotFound is wrapped into the error returned when a read inquires
// a variable the manifest does not list.
var ErrVarNotFound = errors.New("variable not found in dataset")

const manifestName = "manifest.yaml"

// Cell type identifiers recorded in the manifest.
const (
	typeUint64 = "uint64"
	typeByte   = "byte"
)

const uint64Bytes = 8

// variableInfo is one manifest entry.
type variableInfo struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Shape uint64 `yaml:"shape"`
}

// manifest describes every variable of a dataset. uint64 cells are
// stored little-endian, 8 bytes each.
type manifest struct {
	Step      string         `yaml:"step"`
	Variables []variableInfo `yaml:"variables"`
}

// Writer writes one dataset collectively. Obtain one per rank with
// OpenWriter, issue the same Puts on every rank, then Close.
type Writer struct {
	r    *services.Rank
	dir  string
	step string
	vars []variableInfo
}

// OpenWriter starts a collective write step on the dataset directory.
// step names the write step (it embeds the benchmark's iteration id so
// repeated iterations stay distinguishable). Rank 0 creates the
// directory; no rank touches it before the opening barrier.
func OpenWriter(r *services.Rank, dir, step string) (*Writer, error) {
	if r.Rank() == 0 {
		if err := os.MkdirAll(dir, utils.DirPerms); err != nil {
			return nil, errors.Wrapf(err, "failed to create dataset %s", dir)
		}
	}
	if err := r.Barrier(); err != nil {
		return nil, err
	}
	return &Writer{r: r, dir: dir, step: step}, nil
}

// PutUint64s writes this rank's selection of a uint64 variable with the
// given global shape. Collective; every rank must call it with the same
// name and shape. Zero-length selections are legal.
func (w *Writer) PutUint64s(name string, shape, start uint64, values []uint64) error {
	cells := make([]byte, len(values)*uint64Bytes)
	for i, v := range values {
		binary.LittleEndian.PutUint64(cells[i*uint64Bytes:], v)
	}
	return w.put(variableInfo{Name: name, Type: typeUint64, Shape: shape},
		start*uint64Bytes, shape*uint64Bytes, cells)
}

// PutBytes writes this rank's selection of a byte variable with the
// given global shape. Collective, like PutUint64s.
func (w *Writer) PutBytes(name string, shape, start uint64, data []byte) error {
	return w.put(variableInfo{Name: name, Type: typeByte, Shape: shape},
		start, shape, data)
}

// put sizes the variable's backing file on rank 0, barriers, then lets
// every rank write its selection in place.
func (w *Writer) put(info variableInfo, byteStart, byteShape uint64, data []byte) error {
	path := filepath.Join(w.dir, info.Name+".bin")

	if w.r.Rank() == 0 {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "failed to create variable %s", info.Name)
		}
		if err = f.Truncate(int64(byteShape)); err != nil {
			_ = f.Close()
			return errors.Wrapf(err, "failed to size variable %s", info.Name)
		}
		if err = f.Close(); err != nil {
			return errors.Wrapf(err, "failed to close variable %s", info.Name)
		}
	}

	if err := w.r.Barrier(); err != nil {
		return err
	}

	if len(data) > 0 {
		f, err := os.OpenFile(path, os.O_WRONLY, utils.FilePerms)
		if err != nil {
			return errors.Wrapf(err, "failed to open variable %s", info.Name)
		}
		if _, err = f.WriteAt(data, int64(byteStart)); err != nil {
			_ = f.Close()
			return errors.Wrapf(err, "failed to write variable %s", info.Name)
		}
		if err = f.Close(); err != nil {
			return errors.Wrapf(err, "failed to close variable %s", info.Name)
		}
	}

	w.vars = append(w.vars, info)
	return nil
}

// Close ends the write step: after a barrier covering all positioned
// writes, rank 0 publishes the manifest, and a final barrier makes the
// dataset visible to every rank.
func (w *Writer) Close() error {
	if err := w.r.Barrier(); err != nil {
		return err
	}

	if w.r.Rank() == 0 {
		out, err := yaml.Marshal(manifest{Step: w.step, Variables: w.vars})
		if err != nil {
			return errors.Wrap(err, "failed to marshal dataset manifest")
		}
		err = utils.WriteFile(filepath.Join(w.dir, manifestName), out,
			utils.FilePerms, utils.DirPerms)
		if err != nil {
			return errors.Wrap(err, "failed to write dataset manifest")
		}
	}

	return w.r.Barrier()
}

// Reader reads one dataset collectively.
type Reader struct {
	r    *services.Rank
	dir  string
	step string
	man  manifest
}

// OpenReader starts a collective read step on a written dataset. Every
// rank parses the manifest itself; a missing manifest means the dataset
// was never closed by a writer.
func OpenReader(r *services.Rank, dir, step string) (*Reader, error) {
	raw, err := utils.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", dir)
	}

	var man manifest
	if err = yaml.Unmarshal(raw, &man); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest of dataset %s", dir)
	}

	rd := &Reader{r: r, dir: dir, step: step, man: man}
	return rd, r.Barrier()
}

// inquire finds a manifest entry of the given name and type and checks
// the selection against its shape.
func (rd *Reader) inquire(name, cellType string, start, count uint64) (variableInfo, error) {
	for _, info := range rd.man.Variables {
		if info.Name == name {
			if info.Type != cellType {
				return variableInfo{}, errors.Errorf(
					"variable %s holds %s cells, not %s", name, info.Type,
					cellType)
			}
			if start+count > info.Shape {
				return variableInfo{}, errors.Errorf(
					"selection [%d, %d) exceeds shape %d of variable %s",
					start, start+count, info.Shape, name)
			}
			return info, nil
		}
	}
	return variableInfo{}, errors.Wrapf(ErrVarNotFound, "variable %s", name)
}

// GetUint64s reads this rank's selection of a uint64 variable.
func (rd *Reader) GetUint64s(name string, start, count uint64) ([]uint64, error) {
	if _, err := rd.inquire(name, typeUint64, start, count); err != nil {
		return nil, err
	}

	cells, err := rd.read(name, start*uint64Bytes, count*uint64Bytes)
	if err != nil {
		return nil, err
	}

	values := make([]uint64, count)
	for i := range values {
		values[i] = binary.LittleEndian.Uint64(cells[i*uint64Bytes:])
	}
	return values, nil
}

// GetBytes reads this rank's selection of a byte variable.
func (rd *Reader) GetBytes(name string, start, count uint64) ([]byte, error) {
	if _, err := rd.inquire(name, typeByte, start, count); err != nil {
		return nil, err
	}
	return rd.read(name, start, count)
}

func (rd *Reader) read(name string, byteStart, byteCount uint64) ([]byte, error) {
	buf := make([]byte, byteCount)
	if byteCount == 0 {
		return buf, nil
	}

	f, err := os.Open(filepath.Join(rd.dir, name+".bin"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open variable %s", name)
	}
	defer f.Close()

	if _, err = f.ReadAt(buf, int64(byteStart)); err != nil {
		return nil, errors.Wrapf(err, "failed to read variable %s", name)
	}
	return buf, nil
}

// Close ends the read step.
func (rd *Reader) Close() error {
	return rd.r.Barrier()
}
