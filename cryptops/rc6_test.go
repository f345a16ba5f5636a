////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cryptops

import (
	"bytes"
	"testing"
)

// rc6Vectors are the RC6-32/20 test vectors published with the
// algorithm, covering 128-bit and 256-bit keys.
var rc6Vectors = []struct {
	key        []byte
	plaintext  []byte
	ciphertext []byte
}{
	{
		key:       make([]byte, 16),
		plaintext: make([]byte, 16),
		ciphertext: []byte{
			0x8f, 0xc3, 0xa5, 0x36, 0x56, 0xb1, 0xf7, 0x78,
			0xc1, 0x29, 0xdf, 0x4e, 0x98, 0x48, 0xa4, 0x1e},
	},
	{
		key: []byte{
			0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
			0x01, 0x12, 0x23, 0x34, 0x45, 0x56, 0x67, 0x78},
		plaintext: []byte{
			0x02, 0x13, 0x24, 0x35, 0x46, 0x57, 0x68, 0x79,
			0x8a, 0x9b, 0xac, 0xbd, 0xce, 0xdf, 0xe0, 0xf1},
		ciphertext: []byte{
			0x52, 0x4e, 0x19, 0x2f, 0x47, 0x15, 0xc6, 0x23,
			0x1f, 0x51, 0xf6, 0x36, 0x7e, 0xa4, 0x3f, 0x18},
	},
	{
		key:       make([]byte, 32),
		plaintext: make([]byte, 16),
		ciphertext: []byte{
			0x8f, 0x5f, 0xbd, 0x05, 0x10, 0xd1, 0x5f, 0xa8,
			0x93, 0xfa, 0x3f, 0xda, 0x6e, 0x85, 0x7e, 0xc2},
	},
	{
		key: []byte{
			0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
			0x01, 0x12, 0x23, 0x34, 0x45, 0x56, 0x67, 0x78,
			0x89, 0x9a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0,
			0x10, 0x32, 0x54, 0x76, 0x98, 0xba, 0xdc, 0xfe},
		plaintext: []byte{
			0x02, 0x13, 0x24, 0x35, 0x46, 0x57, 0x68, 0x79,
			0x8a, 0x9b, 0xac, 0xbd, 0xce, 0xdf, 0xe0, 0xf1},
		ciphertext: []byte{
			0xc8, 0x24, 0x18, 0x16, 0xf0, 0xd7, 0xe4, 0x89,
			0x20, 0xad, 0x16, 0xa1, 0x67, 0x4e, 0x5d, 0x48},
	},
}

// Tests the block against the published RC6 test vectors in both
// directions.
func TestRC6_KnownAnswers(t *testing.T) {
	for i, v := range rc6Vectors {
		block, err := newRC6Cipher(v.key)
		if err != nil {
			t.Fatalf("Failed to key vector %d: %+v", i, err)
		}

		ct := make([]byte, BlockBytes)
		block.Encrypt(ct, v.plaintext)
		if !bytes.Equal(ct, v.ciphertext) {
			t.Errorf("Vector %d encrypted wrong\nActual:   %x\n"+
				"Expected: %x", i, ct, v.ciphertext)
		}

		pt := make([]byte, BlockBytes)
		block.Decrypt(pt, v.ciphertext)
		if !bytes.Equal(pt, v.plaintext) {
			t.Errorf("Vector %d decrypted wrong\nActual:   %x\n"+
				"Expected: %x", i, pt, v.plaintext)
		}
	}
}

// Tests that the key schedule accepts the suite's 256-bit keys.
func TestRC6_SuiteKeyLength(t *testing.T) {
	key := make([]byte, Rc6Cbc.KeyLen())
	for i := range key {
		key[i] = byte(i)
	}

	if _, err := newRC6Cipher(key); err != nil {
		t.Errorf("Rejected a %d byte key: %+v", len(key), err)
	}
}

// Tests that empty and oversized keys are rejected.
func TestRC6_InvalidKeyLengths(t *testing.T) {
	if _, err := newRC6Cipher(nil); err == nil {
		t.Error("Accepted an empty key")
	}
	if _, err := newRC6Cipher(make([]byte, 256)); err == nil {
		t.Error("Accepted a 256 byte key")
	}
}
