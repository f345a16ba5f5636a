////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package fileio

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

// Saved data loads back unchanged, through parent directories that did
// not exist yet.
func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "plain.bin")
	data := []byte("the quick brown fox")

	if err := SaveFile(path, data); err != nil {
		t.Fatalf("SaveFile failed: %+v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %+v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Loaded %q, expected %q", got, data)
	}
}

// Loading an empty input reports EmptyFileError with the offending path.
func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to create empty file: %v", err)
	}

	_, err := LoadFile(path)
	var emptyErr *EmptyFileError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("LoadFile returned %v, expected EmptyFileError", err)
	}
	if emptyErr.Path != path {
		t.Errorf("EmptyFileError names %q, expected %q", emptyErr.Path, path)
	}
}

// ListFiles returns regular files only, in sorted order.
func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid.bin"} {
		err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
		if err != nil {
			t.Fatalf("Failed to seed %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("Failed to make subdirectory: %v", err)
	}

	names, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles failed: %+v", err)
	}
	expected := []string{"alpha.txt", "mid.bin", "zeta.txt"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("ListFiles returned %v, expected %v", names, expected)
	}
}

// SetDirectory empties an existing root without replacing the root
// itself, then lays out the three pipeline subdirectories.
func TestSetDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "output")

	if err := SetDirectory(root); err != nil {
		t.Fatalf("SetDirectory on fresh root failed: %+v", err)
	}

	stale := filepath.Join(root, EncryptedDataDir, "old.bin")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to seed stale file: %v", err)
	}

	rootInfo, err := os.Stat(root)
	if err != nil {
		t.Fatalf("Failed to stat root: %v", err)
	}

	if err = SetDirectory(root); err != nil {
		t.Fatalf("SetDirectory on existing root failed: %+v", err)
	}

	if _, err = os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("Stale file survived the reset: %v", err)
	}
	for _, sub := range []string{EncryptedDataDir, DecryptedDataDir, MetadataDir} {
		info, err := os.Stat(filepath.Join(root, sub))
		if err != nil || !info.IsDir() {
			t.Errorf("Subdirectory %s missing after reset: %v", sub, err)
		}
	}

	newInfo, err := os.Stat(root)
	if err != nil {
		t.Fatalf("Failed to re-stat root: %v", err)
	}
	if !os.SameFile(rootInfo, newInfo) {
		t.Error("Reset replaced the root directory instead of clearing it")
	}
}

// SetDirectory refuses a root that exists as a regular file.
func TestSetDirectory_NotADirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(root, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}
	if err := SetDirectory(root); err == nil {
		t.Error("SetDirectory accepted a regular file as the output root")
	}
}

// Records survive the text round trip, including names with dots and
// large sizes.
func TestRecords_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadatafile")
	records := []Record{
		{FileName: "a.txt", Size: 48, Offset: 0},
		{FileName: "archive.tar.gz", Size: 1 << 33, Offset: 48},
		{FileName: "z", Size: 16, Offset: (1 << 33) + 48},
	}

	if err := SaveRecords(path, records); err != nil {
		t.Fatalf("SaveRecords failed: %+v", err)
	}

	got, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords failed: %+v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("LoadRecords returned %+v, expected %+v", got, records)
	}
}

// A corrupt metadata line is reported, not skipped.
func TestLoadRecords_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadatafile")
	err := os.WriteFile(path, []byte("good.txt 16 0\nbad.txt sixteen 16\n"), 0644)
	if err != nil {
		t.Fatalf("Failed to seed metadata: %v", err)
	}

	if _, err = LoadRecords(path); err == nil {
		t.Error("LoadRecords accepted a malformed size field")
	}
}
