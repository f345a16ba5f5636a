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
	rootCmd.AddCommand(checkCmd)
}

// checkCmd verifies a finished run by comparing the original corpus
// against the recovered plaintext byte by byte.
var checkCmd = &cobra.Command{
	Use:   "check <dataset directory> <decrypted directory>",
	Short: "Compares the original dataset against the decrypted files",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println("Usage : cipherbench check <dataset directory> " +
				"<decrypted directory>")
			os.Exit(1)
		}

		ok, err := benchmark.CheckCorrectness(args[0], args[1])
		if err != nil {
			jww.ERROR.Printf("Check failed: %+v", err)
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}
