////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cryptops

// factory.go constructs keyed Cipher instances. Keys and IVs are drawn
// fresh from the OS-seeded RNG on every construction and are never
// persisted; the instance lives only for the duration of one run.

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/elixxir/crypto/fastRNG"
	"gitlab.com/xx_network/crypto/csprng"
)

// rngScalingFactor is the stream generator's source buffer scaling.
const rngScalingFactor = 10000

// NewCipher builds a Cipher of the given Type with a freshly generated
// random key and, where the type takes one, a random IV.
func NewCipher(t Type) (*Cipher, error) {
	gen := fastRNG.NewStreamGenerator(rngScalingFactor, 1, csprng.NewSystemRNG)
	stream := gen.GetStream()
	defer stream.Close()

	key := make([]byte, t.KeyLen())
	if _, err := stream.Read(key); err != nil {
		return nil, errors.Wrapf(err, "could not generate %s key", t)
	}

	var iv []byte
	if n := t.IVLen(); n > 0 {
		iv = make([]byte, n)
		if _, err := stream.Read(iv); err != nil {
			return nil, errors.Wrapf(err, "could not generate %s IV", t)
		}
	}

	return &Cipher{typ: t, key: key, iv: iv}, nil
}

// CipherFromName parses a command line cipher identifier and returns a
// freshly keyed instance. On an unrecognized name, rank 0 prints the
// offending token and the full list of valid identifiers to stderr; every
// rank returns an InvalidNameError for the caller to escalate.
func CipherFromName(name string, rank int) (*Cipher, error) {
	t, err := TypeFromString(name)
	if err != nil {
		if rank == 0 {
			fmt.Fprintf(os.Stderr, "You entered an invalid cipher: %s\n", name)
			fmt.Fprintln(os.Stderr, "VALID CIPHERS ARE:")
			for _, valid := range TypeNames() {
				fmt.Fprintln(os.Stderr, valid)
			}
		}
		return nil, err
	}
	return NewCipher(t)
}
