////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package fileio

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Record locates one file's ciphertext: Size padded bytes at Offset
// within a ciphertext blob. The parallel pipeline keeps offsets local to
// each rank's slab; the serial one keeps them global.
type Record struct {
	FileName string
	Size     uint64
	Offset   uint64
}

// SaveRecords writes records as the serial pipeline's text metadata,
// one "<name> <size> <offset>" line per file.
func SaveRecords(path string, records []Record) error {
	var buf bytes.Buffer
	for _, rec := range records {
		fmt.Fprintf(&buf, "%s %d %d\n", rec.FileName, rec.Size, rec.Offset)
	}
	return SaveFile(path, buf.Bytes())
}

// LoadRecords parses the text metadata written by SaveRecords.
func LoadRecords(path string) ([]Record, error) {
	data, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		_, err = fmt.Sscanf(line, "%s %d %d",
			&rec.FileName, &rec.Size, &rec.Offset)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed metadata line %q in %s",
				line, path)
		}
		records = append(records, rec)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan metadata file %s", path)
	}
	return records, nil
}
