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

// Tests that the factory issues keys and IVs of the lengths the suite
// table declares, including the ECB no-IV and ChaCha20 nonce cases.
func TestNewCipher_KeyAndIVLengths(t *testing.T) {
	for typ := Type(0); typ < NumTypes; typ++ {
		c, err := NewCipher(typ)
		if err != nil {
			t.Fatalf("Failed to construct %s: %+v", typ, err)
		}

		if len(c.key) != typ.KeyLen() {
			t.Errorf("%s key is %d bytes; expected %d", typ, len(c.key),
				typ.KeyLen())
		}
		if len(c.iv) != typ.IVLen() {
			t.Errorf("%s IV is %d bytes; expected %d", typ, len(c.iv),
				typ.IVLen())
		}
	}
}

// Tests that two constructions of the same type do not share key
// material.
func TestNewCipher_FreshKeys(t *testing.T) {
	c1, err := NewCipher(AesCbc)
	if err != nil {
		t.Fatalf("Failed to construct first instance: %+v", err)
	}
	c2, err := NewCipher(AesCbc)
	if err != nil {
		t.Fatalf("Failed to construct second instance: %+v", err)
	}

	if bytes.Equal(c1.key, c2.key) {
		t.Errorf("Two constructions produced the same key")
	}
	if bytes.Equal(c1.iv, c2.iv) {
		t.Errorf("Two constructions produced the same IV")
	}
}

// Tests that a valid name produces an instance of the right type and an
// invalid one surfaces an InvalidNameError on every rank.
func TestCipherFromName(t *testing.T) {
	c, err := CipherFromName("MARS_CTR", 0)
	if err != nil {
		t.Fatalf("Failed to construct from valid name: %+v", err)
	}
	if c.Type() != MarsCtr {
		t.Errorf("Constructed type is %s; expected MARS_CTR", c.Type())
	}
	if len(c.key) != MarsKeyBytes {
		t.Errorf("MARS key is %d bytes; expected %d", len(c.key), MarsKeyBytes)
	}

	// Non-zero ranks must stay silent but still fail.
	_, err = CipherFromName("FOO_BAR", 1)
	if err == nil {
		t.Fatalf("Invalid name FOO_BAR constructed without error")
	}

	var invalidErr *InvalidNameError
	if !asInvalidName(err, &invalidErr) {
		t.Errorf("Error is %T; expected *InvalidNameError", err)
	} else if invalidErr.Name != "FOO_BAR" {
		t.Errorf("Error names %q; expected \"FOO_BAR\"", invalidErr.Name)
	}
}
