////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/elixxir/cipherbench/fileio"
)

// The serial pipeline recovers the corpus and leaves the single
// ciphertext blob and text metadata behind.
func TestRunSerial_RoundTrip(t *testing.T) {
	inputDir, contents := seedCorpus(t, 4)
	outputRoot := filepath.Join(t.TempDir(), "output")

	report, err := RunSerial(Config{
		InputDir:   inputDir,
		CipherName: "MARS_CBC",
		MinRuntime: quickRuntime,
		OutputRoot: outputRoot,
	})
	if err != nil {
		t.Fatalf("RunSerial failed: %+v", err)
	}

	verifyDecrypted(t, outputRoot, contents)

	if report.Workers != 1 {
		t.Errorf("Serial report counted %d workers, expected 1", report.Workers)
	}

	// The blob and metadata live at their fixed serial paths.
	blob, err := os.ReadFile(filepath.Join(outputRoot, "encryptedData",
		SerialCiphertextFile))
	if err != nil {
		t.Fatalf("Ciphertext blob missing: %v", err)
	}
	if uint64(len(blob)) != report.GlobalSize {
		t.Errorf("Blob holds %d bytes, report says %d", len(blob),
			report.GlobalSize)
	}

	records, err := fileio.LoadRecords(filepath.Join(outputRoot, "metadata",
		SerialMetadataFile))
	if err != nil {
		t.Fatalf("Metadata file missing: %+v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Metadata lists %d files, expected 4", len(records))
	}

	// Offsets are global: consecutive records tile the blob.
	var next uint64
	for _, rec := range records {
		if rec.Offset != next {
			t.Errorf("Record %s at offset %d, expected %d", rec.FileName,
				rec.Offset, next)
		}
		next += rec.Size
	}
	if next != report.GlobalSize {
		t.Errorf("Records cover %d bytes, blob holds %d", next,
			report.GlobalSize)
	}
}

// The stream cipher skips padding, so the blob matches the corpus size
// exactly.
func TestRunSerial_NoPaddingForStream(t *testing.T) {
	inputDir, contents := seedCorpus(t, 2)
	outputRoot := filepath.Join(t.TempDir(), "output")

	report, err := RunSerial(Config{
		InputDir:   inputDir,
		CipherName: "CHACHA20",
		MinRuntime: quickRuntime,
		OutputRoot: outputRoot,
	})
	if err != nil {
		t.Fatalf("RunSerial failed: %+v", err)
	}

	var corpusSize uint64
	for _, data := range contents {
		corpusSize += uint64(len(data))
	}
	if report.GlobalSize != corpusSize {
		t.Errorf("Stream ciphertext is %d bytes, corpus is %d",
			report.GlobalSize, corpusSize)
	}
	verifyDecrypted(t, outputRoot, contents)
}

// An unknown cipher fails before anything is written.
func TestRunSerial_InvalidCipher(t *testing.T) {
	inputDir, _ := seedCorpus(t, 1)

	_, err := RunSerial(Config{
		InputDir:   inputDir,
		CipherName: "BLOWFISH_CBC",
		MinRuntime: quickRuntime,
		OutputRoot: filepath.Join(t.TempDir(), "output"),
	})
	if err == nil {
		t.Fatal("RunSerial accepted an unknown cipher")
	}
}

// The checker flags a tampered decrypted file.
func TestCheckCorrectness_Mismatch(t *testing.T) {
	inputDir, contents := seedCorpus(t, 3)
	outputRoot := filepath.Join(t.TempDir(), "output")

	_, err := RunSerial(Config{
		InputDir:   inputDir,
		CipherName: "SERPENT_CFB",
		MinRuntime: quickRuntime,
		OutputRoot: outputRoot,
	})
	if err != nil {
		t.Fatalf("RunSerial failed: %+v", err)
	}

	decryptedDir := filepath.Join(outputRoot, "decryptedData")
	ok, err := CheckCorrectness(inputDir, decryptedDir)
	if err != nil || !ok {
		t.Fatalf("Clean check failed: ok=%t err=%v", ok, err)
	}

	// Flip a byte in one recovered file.
	var victim string
	for name := range contents {
		victim = name
		break
	}
	path := filepath.Join(decryptedDir, victim)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", victim, err)
	}
	data[0] ^= 0xFF
	if err = os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to tamper with %s: %v", victim, err)
	}

	ok, err = CheckCorrectness(inputDir, decryptedDir)
	if err != nil {
		t.Fatalf("CheckCorrectness failed: %+v", err)
	}
	if ok {
		t.Error("CheckCorrectness missed a tampered file")
	}
}

// A missing decrypted file counts as a mismatch, not an error.
func TestCheckCorrectness_MissingFile(t *testing.T) {
	inputDir, _ := seedCorpus(t, 2)
	emptyDir := t.TempDir()

	ok, err := CheckCorrectness(inputDir, emptyDir)
	if err != nil {
		t.Fatalf("CheckCorrectness failed: %+v", err)
	}
	if ok {
		t.Error("CheckCorrectness passed with no decrypted files present")
	}
}
