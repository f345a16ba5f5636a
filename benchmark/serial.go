////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package benchmark

import (
	"path/filepath"
	"time"

	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/cipherbench/cryptops"
	"gitlab.com/elixxir/cipherbench/fileio"
	"gitlab.com/elixxir/cipherbench/internal/measure"
)

// Serial pipeline file names under the output root.
const (
	SerialCiphertextFile = "ciphertext"
	SerialMetadataFile   = "metadatafile"
)

// RunSerial executes the single-worker baseline: the whole corpus is
// encrypted into one blob, written and read back as plain files, and
// decrypted. Offsets in the text metadata are global, unlike the
// parallel pipeline's slab-local ones.
func RunSerial(cfg Config) (*Report, error) {
	outputRoot := cfg.outputRoot()
	minRuntime := cfg.minRuntime(DefaultSerialMinRuntime)
	ciphertextPath := filepath.Join(outputRoot, fileio.EncryptedDataDir,
		SerialCiphertextFile)
	metadataPath := filepath.Join(outputRoot, fileio.MetadataDir,
		SerialMetadataFile)
	decryptedDir := filepath.Join(outputRoot, fileio.DecryptedDataDir)

	if err := fileio.SetDirectory(outputRoot); err != nil {
		return nil, err
	}

	files, err := fileio.ListFiles(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	cipher, err := cryptops.CipherFromName(cfg.CipherName, 0)
	if err != nil {
		return nil, err
	}
	encryptor, err := cipher.MakeEncryptor()
	if err != nil {
		return nil, err
	}

	jww.INFO.Printf("%s Encryption Benchmark", cipher.AlgorithmName())

	report := &Report{
		Cipher:  cipher.Type().String(),
		Workers: 1,
		Files:   len(files),
		Metrics: new(measure.Metrics),
	}

	// Encryption pass with global offsets.
	var ciphertext []byte
	records := make([]fileio.Record, 0, len(files))
	var fileOffset uint64

	jww.INFO.Print("Encrypting...")
	report.Metrics.Measure(measure.TagStartEncrypt)
	encryptStart := time.Now()

	for _, name := range files {
		plaintext, err := fileio.LoadFile(filepath.Join(cfg.InputDir, name))
		if err != nil {
			return nil, err
		}

		if cipher.RequiresPadding() {
			plaintext = cryptops.AddPadding(plaintext, cryptops.BlockBytes)
		}

		fileCiphertext := make([]byte, len(plaintext))
		encryptor.Process(fileCiphertext, plaintext)
		ciphertext = append(ciphertext, fileCiphertext...)

		records = append(records, fileio.Record{
			FileName: name,
			Size:     uint64(len(plaintext)),
			Offset:   fileOffset,
		})
		fileOffset += uint64(len(plaintext))
	}

	encryptSeconds := time.Since(encryptStart).Seconds()
	report.Metrics.Measure(measure.TagFinishEncrypt)
	report.GlobalSize = uint64(len(ciphertext))
	jww.INFO.Printf("Encryption time (s) = %f", encryptSeconds)
	report.Stages = append(report.Stages, StageReport{
		Stage: StageEncrypt, Seconds: encryptSeconds, Iterations: 1})

	// Timed write stages.
	report.Metrics.Measure(measure.TagStartWriteData)
	writeDataIters, writeDataSeconds, err := timedSerialLoop(minRuntime,
		func() error { return fileio.SaveFile(ciphertextPath, ciphertext) })
	if err != nil {
		return nil, err
	}
	report.Metrics.Measure(measure.TagFinishWriteData)

	report.Metrics.Measure(measure.TagStartWriteMetadata)
	writeMetaIters, writeMetaSeconds, err := timedSerialLoop(minRuntime,
		func() error { return fileio.SaveRecords(metadataPath, records) })
	if err != nil {
		return nil, err
	}
	report.Metrics.Measure(measure.TagFinishWriteMeta)

	jww.INFO.Printf("Serial write data time (s) = %f for %d iterations",
		writeDataSeconds, writeDataIters)
	jww.INFO.Printf("Serial write metadata time (s) = %f for %d iterations",
		writeMetaSeconds, writeMetaIters)
	report.Stages = append(report.Stages,
		StageReport{StageWriteData, writeDataSeconds, writeDataIters},
		StageReport{StageWriteMetadata, writeMetaSeconds, writeMetaIters})

	// Timed read stages.
	var ciphertextRead []byte
	report.Metrics.Measure(measure.TagStartReadData)
	readDataIters, readDataSeconds, err := timedSerialLoop(minRuntime,
		func() error {
			var err error
			ciphertextRead, err = fileio.LoadFile(ciphertextPath)
			return err
		})
	if err != nil {
		return nil, err
	}
	report.Metrics.Measure(measure.TagFinishReadData)

	var recordsRead []fileio.Record
	report.Metrics.Measure(measure.TagStartReadMetadata)
	readMetaIters, readMetaSeconds, err := timedSerialLoop(minRuntime,
		func() error {
			var err error
			recordsRead, err = fileio.LoadRecords(metadataPath)
			return err
		})
	if err != nil {
		return nil, err
	}
	report.Metrics.Measure(measure.TagFinishReadMeta)

	jww.INFO.Printf("Serial read data time (s) = %f for %d iterations",
		readDataSeconds, readDataIters)
	jww.INFO.Printf("Serial read metadata time (s) = %f for %d iterations",
		readMetaSeconds, readMetaIters)
	report.Stages = append(report.Stages,
		StageReport{StageReadData, readDataSeconds, readDataIters},
		StageReport{StageReadMetadata, readMetaSeconds, readMetaIters})

	// Decryption pass from the read-back blob and records.
	decryptor, err := cipher.MakeDecryptor()
	if err != nil {
		return nil, err
	}
	jww.INFO.Print("Decrypting...")
	report.Metrics.Measure(measure.TagStartDecrypt)
	decryptStart := time.Now()

	for _, rec := range recordsRead {
		plaintext := make([]byte, rec.Size)
		decryptor.Process(plaintext,
			ciphertextRead[rec.Offset:rec.Offset+rec.Size])

		if cipher.RequiresPadding() {
			plaintext = cryptops.RemovePadding(plaintext)
		}

		err = fileio.SaveFile(filepath.Join(decryptedDir, rec.FileName),
			plaintext)
		if err != nil {
			return nil, err
		}
	}

	decryptSeconds := time.Since(decryptStart).Seconds()
	report.Metrics.Measure(measure.TagFinishDecrypt)
	report.Stages = append(report.Stages, StageReport{
		Stage: StageDecrypt, Seconds: decryptSeconds, Iterations: 1})
	jww.INFO.Print("The program finished decryption")

	logThroughput(report)
	return report, nil
}

// timedSerialLoop repeats fn until the cumulative elapsed time passes
// the floor, returning the iteration count and total seconds.
func timedSerialLoop(minRuntime float64, fn func() error) (int, float64, error) {
	iterations := 0
	start := time.Now()
	for {
		if err := fn(); err != nil {
			return iterations, time.Since(start).Seconds(), err
		}
		iterations++
		elapsed := time.Since(start).Seconds()
		if elapsed >= minRuntime {
			return iterations, elapsed, nil
		}
	}
}
