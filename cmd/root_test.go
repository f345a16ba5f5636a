////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"testing"

	"gitlab.com/elixxir/cipherbench/benchmark"
	"gitlab.com/elixxir/cipherbench/storage"
)

// Happy path: every reported stage lands in storage under the run id
// and reads back in stage order.
func TestPersistStages(t *testing.T) {
	store, err := storage.NewStorage("", "", "", "", "", true)
	if err != nil {
		t.Fatalf("Failed to create storage: %+v", err)
	}

	report := &benchmark.Report{
		Cipher:     "AES_CTR",
		Workers:    4,
		Files:      10,
		GlobalSize: 1 << 20,
		Stages: []benchmark.StageReport{
			{Stage: benchmark.StageEncrypt, Seconds: 0.5, Iterations: 1},
			{Stage: benchmark.StageWriteData, Seconds: 3.2, Iterations: 7},
			{Stage: benchmark.StageReadData, Seconds: 3.1, Iterations: 9},
		},
	}

	persistStages(store, "AES_CTR-1700000000", report)

	results, err := store.GetStageResults("AES_CTR-1700000000")
	if err != nil {
		t.Fatalf("Failed to read results back: %+v", err)
	}
	if len(results) != len(report.Stages) {
		t.Fatalf("Stored %d results, expected %d", len(results),
			len(report.Stages))
	}
	for _, res := range results {
		if res.Cipher != report.Cipher || res.Workers != report.Workers ||
			res.Bytes != report.GlobalSize {
			t.Errorf("Result %s stored wrong run attributes: %+v",
				res.Stage, res)
		}
		if res.Throughput() <= 0 {
			t.Errorf("Result %s has no throughput", res.Stage)
		}
	}
}
