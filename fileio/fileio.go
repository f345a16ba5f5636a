////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package fileio handles the plain files around the pipelines: the
// input corpus, recovered plaintext, and the serial pipeline's text
// metadata. The container package owns the binary datasets.
package fileio

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/xx_network/primitives/utils"
)

// EmptyFileError reports an input file with no content. Empty files
// cannot survive the pipeline (their ciphertext would be
// indistinguishable from absence), so loading one is fatal to the run.
type EmptyFileError struct {
	Path string
}

func (e *EmptyFileError) Error() string {
	return "file is empty: " + e.Path
}

// LoadFile reads a whole input file and rejects empty ones.
func LoadFile(path string) ([]byte, error) {
	data, err := utils.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	if len(data) == 0 {
		return nil, errors.WithStack(&EmptyFileError{Path: path})
	}
	return data, nil
}

// SaveFile writes data to path, creating parent directories as needed.
func SaveFile(path string, data []byte) error {
	err := utils.WriteFile(path, data, utils.FilePerms, utils.DirPerms)
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

// ListFiles returns the names of the regular files directly under dir,
// sorted so every caller sees the same ordering.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list input directory %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SetDirectory resets the output tree under root. An existing root
// keeps its inode and loses its children; a fresh one is created. The
// subdirectories the pipelines write into are then laid out empty.
func SetDirectory(root string) error {
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		if err = os.MkdirAll(root, utils.DirPerms); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", root)
		}
	case err != nil:
		return errors.Wrapf(err, "failed to stat output directory %s", root)
	case !info.IsDir():
		return errors.Errorf("output path %s exists and is not a directory", root)
	default:
		entries, err := os.ReadDir(root)
		if err != nil {
			return errors.Wrapf(err, "failed to list output directory %s", root)
		}
		for _, entry := range entries {
			err = os.RemoveAll(filepath.Join(root, entry.Name()))
			if err != nil {
				return errors.Wrapf(err, "failed to clear output directory %s",
					root)
			}
		}
	}

	for _, sub := range []string{EncryptedDataDir, DecryptedDataDir, MetadataDir} {
		if err = os.MkdirAll(filepath.Join(root, sub), utils.DirPerms); err != nil {
			return errors.Wrapf(err, "failed to create %s under %s", sub, root)
		}
	}
	return nil
}

// Subdirectories of the output root.
const (
	EncryptedDataDir = "encryptedData"
	DecryptedDataDir = "decryptedData"
	MetadataDir      = "metadata"
)
