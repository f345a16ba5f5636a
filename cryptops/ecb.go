////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cryptops

// ecb.go provides ECB as a cipher.BlockMode. The standard library leaves
// ECB out of crypto/cipher on purpose; the benchmark needs it as a
// baseline mode, so it is implemented here with the same contract the
// stdlib modes follow.

import "crypto/cipher"

type ecb struct {
	b         cipher.Block
	blockSize int
}

type ecbEncrypter ecb

// newECBEncrypter returns a BlockMode which encrypts in electronic
// codebook mode, using the given Block.
func newECBEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecbEncrypter{b: b, blockSize: b.BlockSize()}
}

func (x *ecbEncrypter) BlockSize() int { return x.blockSize }

func (x *ecbEncrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("cryptops/ecb: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cryptops/ecb: output smaller than input")
	}
	for len(src) > 0 {
		x.b.Encrypt(dst, src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

type ecbDecrypter ecb

// newECBDecrypter returns a BlockMode which decrypts in electronic
// codebook mode, using the given Block.
func newECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecbDecrypter{b: b, blockSize: b.BlockSize()}
}

func (x *ecbDecrypter) BlockSize() int { return x.blockSize }

func (x *ecbDecrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("cryptops/ecb: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cryptops/ecb: output smaller than input")
	}
	for len(src) > 0 {
		x.b.Decrypt(dst, src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}
