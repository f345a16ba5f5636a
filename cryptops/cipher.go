////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cryptops

// cipher.go binds the suite table to concrete primitives. A Cipher owns
// the key and IV for one run; the encryptor and decryptor derived from it
// share both, and each keeps its own chaining/keystream state across
// Process calls so that a sequence of buffers behaves like one
// concatenated input.

import (
	"crypto/aes"
	"crypto/cipher"
	"strings"

	"github.com/deatil/go-cryptobin/cipher/mars"
	"github.com/deatil/go-cryptobin/cipher/serpent"
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/twofish"
)

// StreamTransform turns len(src) input bytes into len(src) output bytes.
// For padding modes the caller must supply whole blocks; padding itself
// is handled by AddPadding/RemovePadding, never inside the transform.
type StreamTransform interface {
	// Process transforms src into dst. dst and src must be the same
	// length and must overlap entirely or not at all.
	Process(dst, src []byte)
}

// Cipher is one keyed instance of a suite entry. It is created by the
// factory with a fresh random key and IV and consumed by the pipelines to
// derive the encryptor and, later, the matching decryptor.
type Cipher struct {
	typ Type
	key []byte
	iv  []byte
}

// Type returns the suite entry this instance was built from.
func (c *Cipher) Type() Type { return c.typ }

// RequiresPadding reports whether plaintext must be padded before being
// handed to the encryptor.
func (c *Cipher) RequiresPadding() bool { return c.typ.RequiresPadding() }

// AlgorithmName returns a printable "ALGORITHM/MODE" banner name, e.g.
// "AES/CBC" or "CHACHA20".
func (c *Cipher) AlgorithmName() string {
	return strings.Replace(c.typ.String(), "_", "/", 1)
}

// MakeEncryptor derives the encrypting transform for this instance.
func (c *Cipher) MakeEncryptor() (StreamTransform, error) {
	return c.makeTransform(true)
}

// MakeDecryptor derives the decrypting transform for this instance. It
// shares the encryptor's key and IV, so feeding it the encryptor's output
// in the same order reproduces the original input.
func (c *Cipher) MakeDecryptor() (StreamTransform, error) {
	return c.makeTransform(false)
}

func (c *Cipher) makeTransform(encrypt bool) (StreamTransform, error) {
	if c.typ.Algorithm() == ChaCha20 {
		// ChaCha20 is its own inverse; both directions get a fresh
		// keystream over the same key and nonce.
		stream, err := chacha20.NewUnauthenticatedCipher(c.key, c.iv)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize ChaCha20")
		}
		return &streamTransform{stream: stream}, nil
	}

	block, err := c.newBlock()
	if err != nil {
		return nil, err
	}

	switch c.typ.Mode() {
	case CBC:
		if encrypt {
			return &blockModeTransform{mode: cipher.NewCBCEncrypter(block, c.iv)}, nil
		}
		return &blockModeTransform{mode: cipher.NewCBCDecrypter(block, c.iv)}, nil
	case CFB:
		if encrypt {
			return &streamTransform{stream: cipher.NewCFBEncrypter(block, c.iv)}, nil
		}
		return &streamTransform{stream: cipher.NewCFBDecrypter(block, c.iv)}, nil
	case OFB:
		return &streamTransform{stream: cipher.NewOFB(block, c.iv)}, nil
	case CTR:
		return &streamTransform{stream: cipher.NewCTR(block, c.iv)}, nil
	case ECB:
		if encrypt {
			return &blockModeTransform{mode: newECBEncrypter(block)}, nil
		}
		return &blockModeTransform{mode: newECBDecrypter(block)}, nil
	default:
		return nil, errors.Errorf("no transform for cipher type %s", c.typ)
	}
}

// newBlock constructs the keyed block primitive for this instance.
func (c *Cipher) newBlock() (cipher.Block, error) {
	var block cipher.Block
	var err error

	switch c.typ.Algorithm() {
	case AES:
		block, err = aes.NewCipher(c.key)
	case Serpent:
		block, err = serpent.NewCipher(c.key)
	case Twofish:
		block, err = twofish.NewCipher(c.key)
	case Mars:
		block, err = mars.NewCipher(c.key)
	case RC6:
		block, err = newRC6Cipher(c.key)
	default:
		return nil, errors.Errorf("no block primitive for cipher type %s", c.typ)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to key %s block", c.typ)
	}
	return block, nil
}

// streamTransform adapts a cipher.Stream to the StreamTransform contract.
// CFB, OFB, CTR and ChaCha20 all process through here.
type streamTransform struct {
	stream cipher.Stream
}

func (s *streamTransform) Process(dst, src []byte) {
	s.stream.XORKeyStream(dst, src)
}

// blockModeTransform adapts a cipher.BlockMode to the StreamTransform
// contract. CBC and ECB process through here and require whole blocks.
type blockModeTransform struct {
	mode cipher.BlockMode
}

func (b *blockModeTransform) Process(dst, src []byte) {
	b.mode.CryptBlocks(dst, src)
}
