////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package benchmark

import (
	"bytes"
	"os"
	"path/filepath"

	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/cipherbench/fileio"
)

// CheckCorrectness compares every file of the original corpus against
// the file of the same name in the decrypted directory, byte by byte.
// It returns true only when all files match; a missing or unreadable
// decrypted file counts as a mismatch.
func CheckCorrectness(originalDir, decryptedDir string) (bool, error) {
	names, err := fileio.ListFiles(originalDir)
	if err != nil {
		return false, err
	}

	success := true
	for _, name := range names {
		jww.INFO.Printf("Checking file %s", name)

		original, err := os.ReadFile(filepath.Join(originalDir, name))
		if err != nil {
			return false, err
		}

		decrypted, err := os.ReadFile(filepath.Join(decryptedDir, name))
		if err != nil || !bytes.Equal(original, decrypted) {
			jww.ERROR.Printf("Files %s differ", name)
			success = false
		}
	}

	if success {
		jww.INFO.Print("The program encrypted and stored the dataset correctly")
	}
	return success, nil
}
