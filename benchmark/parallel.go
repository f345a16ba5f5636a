////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package benchmark runs the encryption throughput pipelines: encrypt a
// directory of files, write the ciphertext and its layout through the
// dataset container, read both back, decrypt, and report per-stage
// timings. The parallel pipeline splits the corpus across a group of
// workers; the serial one processes it alone against plain files.
package benchmark

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/cipherbench/container"
	"gitlab.com/elixxir/cipherbench/cryptops"
	"gitlab.com/elixxir/cipherbench/fileio"
	"gitlab.com/elixxir/cipherbench/internal/measure"
	"gitlab.com/elixxir/cipherbench/services"
)

// Default minimum stage runtimes in seconds. Stages repeat until their
// cumulative elapsed time passes the floor, so every measurement spans
// at least this long.
const (
	DefaultParallelMinRuntime = 3.0
	DefaultSerialMinRuntime   = 1.0
)

// DefaultOutputRoot is where the pipelines put ciphertext, layout data,
// and recovered plaintext unless configured otherwise.
const DefaultOutputRoot = "output"

// Stage names used in reports and persisted results.
const (
	StageEncrypt       = "Encrypt"
	StageWriteMetadata = "Write Metadata"
	StageWriteData     = "Write Data"
	StageReadMetadata  = "Read Metadata"
	StageReadData      = "Read Data"
	StageDecrypt       = "Decrypt"
)

// Config parameterizes one pipeline run.
type Config struct {
	// InputDir holds the corpus to encrypt.
	InputDir string

	// CipherName is the algorithm and mode, e.g. "AES_CTR".
	CipherName string

	// Workers is the group size of the parallel pipeline. The serial
	// pipeline ignores it.
	Workers int

	// MinRuntime overrides the stage floor when positive.
	MinRuntime float64

	// OutputRoot overrides DefaultOutputRoot when set.
	OutputRoot string
}

func (c *Config) outputRoot() string {
	if c.OutputRoot != "" {
		return c.OutputRoot
	}
	return DefaultOutputRoot
}

func (c *Config) minRuntime(fallback float64) float64 {
	if c.MinRuntime > 0 {
		return c.MinRuntime
	}
	return fallback
}

// StageReport is one timed stage's outcome.
type StageReport struct {
	Stage      string
	Seconds    float64
	Iterations int
}

// Report summarizes a pipeline run. GlobalSize is the total ciphertext
// in bytes across all workers.
type Report struct {
	Cipher     string
	Workers    int
	Files      int
	GlobalSize uint64
	Stages     []StageReport
	Metrics    *measure.Metrics
}

// Throughput returns a stage's rate in bytes per second given the
// report's global ciphertext size.
func (r *Report) Throughput(s StageReport) float64 {
	if s.Seconds <= 0 {
		return 0
	}
	return float64(r.GlobalSize*uint64(s.Iterations)) / s.Seconds
}

// stageTags maps each stage name to the measurement tags bracketing it.
var stageTags = map[string][2]string{
	StageEncrypt:       {measure.TagStartEncrypt, measure.TagFinishEncrypt},
	StageWriteMetadata: {measure.TagStartWriteMetadata, measure.TagFinishWriteMeta},
	StageWriteData:     {measure.TagStartWriteData, measure.TagFinishWriteData},
	StageReadMetadata:  {measure.TagStartReadMetadata, measure.TagFinishReadMeta},
	StageReadData:      {measure.TagStartReadData, measure.TagFinishReadData},
	StageDecrypt:       {measure.TagStartDecrypt, measure.TagFinishDecrypt},
}

// StageInterval returns a stage's wall-clock duration derived from the
// run's measurement events. Unlike StageReport.Seconds, which the group
// clock takes between barriers, this spans everything from the stage's
// start event to its finish event.
func (r *Report) StageInterval(stage string) (time.Duration, error) {
	tags, ok := stageTags[stage]
	if !ok {
		return 0, errors.Errorf("no measurement tags for stage %q", stage)
	}
	return r.Metrics.Interval(tags[0], tags[1])
}

// RunParallel executes the full parallel pipeline with cfg.Workers
// workers and returns the aggregated report. Any worker's failure
// aborts the whole group and surfaces as the returned error.
func RunParallel(cfg Config) (*Report, error) {
	outputRoot := cfg.outputRoot()
	minRuntime := cfg.minRuntime(DefaultParallelMinRuntime)
	metadataDir := filepath.Join(outputRoot, fileio.MetadataDir)
	dataDir := filepath.Join(outputRoot, fileio.EncryptedDataDir)
	decryptedDir := filepath.Join(outputRoot, fileio.DecryptedDataDir)

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	files, err := fileio.ListFiles(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Cipher:  cfg.CipherName,
		Workers: workers,
		Files:   len(files),
		Metrics: new(measure.Metrics),
	}

	g, err := services.NewGroup(workers)
	if err != nil {
		return nil, err
	}
	err = g.Run(func(r *services.Rank) error {
		rank := r.Rank()

		if rank == 0 {
			if err := fileio.SetDirectory(outputRoot); err != nil {
				return err
			}
		}
		if err := r.Barrier(); err != nil {
			return err
		}

		cipher, err := cryptops.CipherFromName(cfg.CipherName, rank)
		if err != nil {
			return err
		}
		encryptor, err := cipher.MakeEncryptor()
		if err != nil {
			return err
		}

		if rank == 0 {
			jww.INFO.Printf("%s Encryption Benchmark", cipher.AlgorithmName())
			report.Cipher = cipher.Type().String()
		}

		// Which slice of the corpus this worker owns.
		displacement, count := r.Decompose(uint64(len(files)))

		// Encryption pass. The slab concatenates every owned file's
		// ciphertext; offsets stay local to the slab.
		var ciphertext []byte
		filesSizes := make([]uint64, 0, count)
		filesOffsets := make([]uint64, 0, count)
		var fileOffset uint64

		if rank == 0 {
			jww.INFO.Print("Encrypting...")
			report.Metrics.Measure(measure.TagStartEncrypt)
		}
		if err = r.Barrier(); err != nil {
			return err
		}
		encryptStart := r.Now()

		for i := displacement; i < displacement+count; i++ {
			plaintext, err := fileio.LoadFile(
				filepath.Join(cfg.InputDir, files[i]))
			if err != nil {
				return err
			}

			if cipher.RequiresPadding() {
				plaintext = cryptops.AddPadding(plaintext, cryptops.BlockBytes)
			}

			fileCiphertext := make([]byte, len(plaintext))
			encryptor.Process(fileCiphertext, plaintext)
			ciphertext = append(ciphertext, fileCiphertext...)

			filesSizes = append(filesSizes, uint64(len(plaintext)))
			filesOffsets = append(filesOffsets, fileOffset)
			fileOffset += uint64(len(plaintext))
		}

		if err = r.Barrier(); err != nil {
			return err
		}
		encryptSeconds := r.Now() - encryptStart

		if rank == 0 {
			report.Metrics.Measure(measure.TagFinishEncrypt)
			jww.INFO.Printf("Parallel encryption time (s) = %f", encryptSeconds)
			report.Stages = append(report.Stages, StageReport{
				Stage: StageEncrypt, Seconds: encryptSeconds, Iterations: 1})
		}

		// Global layout of the concatenated ciphertext.
		localSize := uint64(len(ciphertext))
		globalSize, err := r.AllReduceSum(localSize)
		if err != nil {
			return err
		}
		globalOffset, err := r.ExclusiveScanSum(localSize)
		if err != nil {
			return err
		}
		if rank == 0 {
			globalOffset = 0
			report.GlobalSize = globalSize
		}

		md := container.Metadata{
			LocalSize:    localSize,
			GlobalOffset: globalOffset,
			FilesSizes:   filesSizes,
			FilesOffsets: filesOffsets,
		}

		// Timed write stages.
		if rank == 0 {
			report.Metrics.Measure(measure.TagStartWriteMetadata)
		}
		writeMetaIters, writeMetaSeconds, err := services.TimedLoop(r,
			minRuntime, func(iterID string) error {
				return container.WriteMetadata(r, metadataDir,
					"MetadataWriter"+iterID, uint64(len(files)), displacement,
					md)
			})
		if err != nil {
			return err
		}
		if rank == 0 {
			report.Metrics.Measure(measure.TagFinishWriteMeta)
			report.Metrics.Measure(measure.TagStartWriteData)
		}

		writeDataIters, writeDataSeconds, err := services.TimedLoop(r,
			minRuntime, func(iterID string) error {
				return container.WriteData(r, dataDir, "DataWriter"+iterID,
					globalSize, globalOffset, ciphertext)
			})
		if err != nil {
			return err
		}

		if rank == 0 {
			report.Metrics.Measure(measure.TagFinishWriteData)
			jww.INFO.Printf("Parallel data writing time (s) = %f for %d "+
				"iterations", writeDataSeconds, writeDataIters)
			jww.INFO.Printf("Parallel metadata writing time (s) = %f for %d "+
				"iterations", writeMetaSeconds, writeMetaIters)
			report.Stages = append(report.Stages,
				StageReport{StageWriteMetadata, writeMetaSeconds, writeMetaIters},
				StageReport{StageWriteData, writeDataSeconds, writeDataIters})
		}

		// Timed read stages. The layout read back replaces the one
		// computed locally; decryption trusts only what was stored.
		var mdRead container.Metadata
		if rank == 0 {
			report.Metrics.Measure(measure.TagStartReadMetadata)
		}
		readMetaIters, readMetaSeconds, err := services.TimedLoop(r,
			minRuntime, func(iterID string) error {
				var err error
				mdRead, err = container.ReadMetadata(r, metadataDir,
					"MetadataReader"+iterID, displacement, count)
				return err
			})
		if err != nil {
			return err
		}
		if rank == 0 {
			report.Metrics.Measure(measure.TagFinishReadMeta)
			report.Metrics.Measure(measure.TagStartReadData)
		}

		var ciphertextRead []byte
		readDataIters, readDataSeconds, err := services.TimedLoop(r,
			minRuntime, func(iterID string) error {
				var err error
				ciphertextRead, err = container.ReadData(r, dataDir,
					"DataReader"+iterID, mdRead.GlobalOffset, mdRead.LocalSize)
				return err
			})
		if err != nil {
			return err
		}

		if rank == 0 {
			report.Metrics.Measure(measure.TagFinishReadData)
			jww.INFO.Printf("Parallel data reading time (s) = %f for %d "+
				"iterations", readDataSeconds, readDataIters)
			jww.INFO.Printf("Parallel metadata reading time (s) = %f for %d "+
				"iterations", readMetaSeconds, readMetaIters)
			report.Stages = append(report.Stages,
				StageReport{StageReadMetadata, readMetaSeconds, readMetaIters},
				StageReport{StageReadData, readDataSeconds, readDataIters})
		}

		// Decryption pass from the read-back ciphertext and layout.
		decryptor, err := cipher.MakeDecryptor()
		if err != nil {
			return err
		}
		if rank == 0 {
			jww.INFO.Print("Decrypting...")
			report.Metrics.Measure(measure.TagStartDecrypt)
		}
		if err = r.Barrier(); err != nil {
			return err
		}
		decryptStart := r.Now()

		for i := displacement; i < displacement+count; i++ {
			local := i - displacement
			size := mdRead.FilesSizes[local]
			offset := mdRead.FilesOffsets[local]

			plaintext := make([]byte, size)
			decryptor.Process(plaintext, ciphertextRead[offset:offset+size])

			if cipher.RequiresPadding() {
				plaintext = cryptops.RemovePadding(plaintext)
			}

			err = fileio.SaveFile(filepath.Join(decryptedDir, files[i]),
				plaintext)
			if err != nil {
				return err
			}
		}

		if err = r.Barrier(); err != nil {
			return err
		}
		decryptSeconds := r.Now() - decryptStart

		if rank == 0 {
			report.Metrics.Measure(measure.TagFinishDecrypt)
			report.Stages = append(report.Stages, StageReport{
				Stage: StageDecrypt, Seconds: decryptSeconds, Iterations: 1})
			jww.INFO.Print("The program finished decryption")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logThroughput(report)
	return report, nil
}

// logThroughput reports each timed stage's effective rate and the
// duration derived from the run's measurement events.
func logThroughput(report *Report) {
	const mb = 1024 * 1024
	for _, stage := range report.Stages {
		rate := report.Throughput(stage)
		if rate > 0 {
			jww.INFO.Printf("%s throughput: %.2f MB/s",
				stage.Stage, rate/mb)
		}

		interval, err := report.StageInterval(stage.Stage)
		if err != nil {
			jww.WARN.Printf("No measured interval for stage %s: %+v",
				stage.Stage, err)
			continue
		}
		jww.DEBUG.Printf("%s measured interval: %s", stage.Stage, interval)
	}
}
