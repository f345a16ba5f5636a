////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cryptops

// rc6.go implements RC6-32/20 as a cipher.Block. The key schedule
// accepts variable-length keys, so the suite's 256-bit keys work the
// same as the 128-bit ones in the published test vectors.

import (
	"crypto/cipher"
	"encoding/binary"
	"math/bits"

	"github.com/pkg/errors"
)

const (
	rc6Rounds = 20

	// Key schedule magic constants from the RC6 specification.
	rc6P32 = 0xB7E15163
	rc6Q32 = 0x9E3779B9
)

type rc6Cipher struct {
	s [2*rc6Rounds + 4]uint32
}

// newRC6Cipher returns a cipher.Block keyed with the RC6 key schedule.
// Keys of 1 through 255 bytes are accepted.
func newRC6Cipher(key []byte) (cipher.Block, error) {
	if len(key) == 0 || len(key) > 255 {
		return nil, errors.Errorf("cryptops/rc6: invalid key size %d",
			len(key))
	}

	c := new(rc6Cipher)

	// Load the key into words, least significant byte first.
	l := make([]uint32, (len(key)+3)/4)
	for i := len(key) - 1; i >= 0; i-- {
		l[i/4] = l[i/4]<<8 + uint32(key[i])
	}

	c.s[0] = rc6P32
	for i := 1; i < len(c.s); i++ {
		c.s[i] = c.s[i-1] + rc6Q32
	}

	// Mix the key words into the round key array.
	v := 3 * len(c.s)
	if 3*len(l) > v {
		v = 3 * len(l)
	}
	var a, b uint32
	var i, j int
	for k := 0; k < v; k++ {
		a = bits.RotateLeft32(c.s[i]+a+b, 3)
		c.s[i] = a
		b = bits.RotateLeft32(l[j]+a+b, int((a+b)&31))
		l[j] = b
		i = (i + 1) % len(c.s)
		j = (j + 1) % len(l)
	}
	return c, nil
}

func (c *rc6Cipher) BlockSize() int { return BlockBytes }

func (c *rc6Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockBytes || len(dst) < BlockBytes {
		panic("cryptops/rc6: input not a full block")
	}

	a := binary.LittleEndian.Uint32(src[0:4])
	b := binary.LittleEndian.Uint32(src[4:8])
	cw := binary.LittleEndian.Uint32(src[8:12])
	d := binary.LittleEndian.Uint32(src[12:16])

	b += c.s[0]
	d += c.s[1]
	for i := 1; i <= rc6Rounds; i++ {
		t := bits.RotateLeft32(b*(2*b+1), 5)
		u := bits.RotateLeft32(d*(2*d+1), 5)
		a = bits.RotateLeft32(a^t, int(u&31)) + c.s[2*i]
		cw = bits.RotateLeft32(cw^u, int(t&31)) + c.s[2*i+1]
		a, b, cw, d = b, cw, d, a
	}
	a += c.s[2*rc6Rounds+2]
	cw += c.s[2*rc6Rounds+3]

	binary.LittleEndian.PutUint32(dst[0:4], a)
	binary.LittleEndian.PutUint32(dst[4:8], b)
	binary.LittleEndian.PutUint32(dst[8:12], cw)
	binary.LittleEndian.PutUint32(dst[12:16], d)
}

func (c *rc6Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockBytes || len(dst) < BlockBytes {
		panic("cryptops/rc6: input not a full block")
	}

	a := binary.LittleEndian.Uint32(src[0:4])
	b := binary.LittleEndian.Uint32(src[4:8])
	cw := binary.LittleEndian.Uint32(src[8:12])
	d := binary.LittleEndian.Uint32(src[12:16])

	cw -= c.s[2*rc6Rounds+3]
	a -= c.s[2*rc6Rounds+2]
	for i := rc6Rounds; i >= 1; i-- {
		a, b, cw, d = d, a, b, cw
		u := bits.RotateLeft32(d*(2*d+1), 5)
		t := bits.RotateLeft32(b*(2*b+1), 5)
		cw = bits.RotateLeft32(cw-c.s[2*i+1], -int(t&31)) ^ u
		a = bits.RotateLeft32(a-c.s[2*i], -int(u&31)) ^ t
	}
	d -= c.s[1]
	b -= c.s[0]

	binary.LittleEndian.PutUint32(dst[0:4], a)
	binary.LittleEndian.PutUint32(dst[4:8], b)
	binary.LittleEndian.PutUint32(dst[8:12], cw)
	binary.LittleEndian.PutUint32(dst[12:16], d)
}
