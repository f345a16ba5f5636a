////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/cipherbench/benchmark"
)

func init() {
	rootCmd.AddCommand(serialCmd)
}

// serialCmd runs the single-worker baseline against plain files.
var serialCmd = &cobra.Command{
	Use:   "serial <dataset directory> <ALGORITHM_MODE>",
	Short: "Runs the single-worker baseline pipeline",
	Long: `serial runs the whole pipeline alone: the corpus is encrypted into
one blob, written and read back as plain files, and decrypted. Its timings
are the baseline the parallel pipeline is compared against.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println("Usage : cipherbench serial <dataset directory> " +
				"<ALGORITHM_MODE>")
			os.Exit(1)
		}

		params := loadParams()

		report, err := benchmark.RunSerial(benchmark.Config{
			InputDir:   args[0],
			CipherName: args[1],
			MinRuntime: params.SerialMinRuntime,
			OutputRoot: params.OutputDir,
		})
		if err != nil {
			jww.ERROR.Printf("Pipeline failed: %+v", err)
			os.Exit(1)
		}

		persistReport(params, report)
	},
}
