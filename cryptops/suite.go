////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cryptops

// suite.go enumerates the supported cipher configurations and the
// attributes derived from them: key length, IV length, and whether the
// mode pads its input.

import (
	"fmt"

	"github.com/pkg/errors"
)

// Block and key geometry shared by the suite. Every block cipher in the
// suite has a 128-bit block. MARS is the one algorithm keyed above 256
// bits; it takes the largest key its schedule accepts.
const (
	BlockBytes      = 16
	KeyBytes        = 32
	MarsKeyBytes    = 56
	IVBytes         = 16
	ChaCha20IVBytes = 12
)

// Algorithm identifies the underlying symmetric primitive.
type Algorithm uint8

const (
	AES Algorithm = iota
	Serpent
	Twofish
	Mars
	RC6
	ChaCha20
)

// Mode identifies the mode of operation wrapped around a block primitive.
// ModeStream marks stream ciphers, which carry no separate mode.
type Mode uint8

const (
	CBC Mode = iota
	CFB
	OFB
	CTR
	ECB
	ModeStream
)

// Type is one of the 26 cipher configurations accepted on the command
// line, i.e. the product of the five block algorithms and five modes plus
// the ChaCha20 stream cipher.
type Type uint8

const (
	AesCbc Type = iota
	AesCfb
	AesOfb
	AesCtr
	AesEcb
	SerpentCbc
	SerpentCfb
	SerpentOfb
	SerpentCtr
	SerpentEcb
	MarsCbc
	MarsCfb
	MarsOfb
	MarsCtr
	MarsEcb
	Rc6Cbc
	Rc6Cfb
	Rc6Ofb
	Rc6Ctr
	Rc6Ecb
	TwofishCbc
	TwofishCfb
	TwofishOfb
	TwofishCtr
	TwofishEcb
	ChaCha20Type

	NumTypes = iota
)

// typeInfo holds the static attributes of one suite entry. The table is
// indexed by Type, so the order must match the constant block above.
type typeInfo struct {
	name      string
	algorithm Algorithm
	mode      Mode
}

var typeTable = [NumTypes]typeInfo{
	{"AES_CBC", AES, CBC},
	{"AES_CFB", AES, CFB},
	{"AES_OFB", AES, OFB},
	{"AES_CTR", AES, CTR},
	{"AES_ECB", AES, ECB},
	{"SERPENT_CBC", Serpent, CBC},
	{"SERPENT_CFB", Serpent, CFB},
	{"SERPENT_OFB", Serpent, OFB},
	{"SERPENT_CTR", Serpent, CTR},
	{"SERPENT_ECB", Serpent, ECB},
	{"MARS_CBC", Mars, CBC},
	{"MARS_CFB", Mars, CFB},
	{"MARS_OFB", Mars, OFB},
	{"MARS_CTR", Mars, CTR},
	{"MARS_ECB", Mars, ECB},
	{"RC6_CBC", RC6, CBC},
	{"RC6_CFB", RC6, CFB},
	{"RC6_OFB", RC6, OFB},
	{"RC6_CTR", RC6, CTR},
	{"RC6_ECB", RC6, ECB},
	{"TWOFISH_CBC", Twofish, CBC},
	{"TWOFISH_CFB", Twofish, CFB},
	{"TWOFISH_OFB", Twofish, OFB},
	{"TWOFISH_CTR", Twofish, CTR},
	{"TWOFISH_ECB", Twofish, ECB},
	{"CHACHA20", ChaCha20, ModeStream},
}

// String returns the command line identifier of the Type, e.g. "AES_CBC".
func (t Type) String() string {
	if t >= NumTypes {
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
	return typeTable[t].name
}

// Algorithm returns the underlying primitive of the Type.
func (t Type) Algorithm() Algorithm {
	return typeTable[t].algorithm
}

// Mode returns the mode of operation of the Type.
func (t Type) Mode() Mode {
	return typeTable[t].mode
}

// KeyLen returns the key length in bytes for the Type.
func (t Type) KeyLen() int {
	if t.Algorithm() == Mars {
		return MarsKeyBytes
	}
	return KeyBytes
}

// IVLen returns the IV length in bytes for the Type. ECB carries no IV
// and ChaCha20 takes a 96-bit nonce.
func (t Type) IVLen() int {
	switch {
	case t.Mode() == ECB:
		return 0
	case t.Algorithm() == ChaCha20:
		return ChaCha20IVBytes
	default:
		return IVBytes
	}
}

// RequiresPadding reports whether plaintext must be padded to a block
// boundary before encryption. Only CBC and ECB consume whole blocks.
func (t Type) RequiresPadding() bool {
	m := t.Mode()
	return m == CBC || m == ECB
}

// InvalidNameError is returned when a cipher name does not match any suite
// entry. The match is exact and case-sensitive.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid cipher name %q", e.Name)
}

// TypeFromString looks up the Type for a command line identifier.
func TypeFromString(name string) (Type, error) {
	for t, info := range typeTable {
		if info.name == name {
			return Type(t), nil
		}
	}
	return 0, errors.WithStack(&InvalidNameError{Name: name})
}

// TypeNames returns the identifiers of all suite entries in declaration
// order, for use in diagnostics.
func TypeNames() []string {
	names := make([]string, NumTypes)
	for t, info := range typeTable {
		names[t] = info.name
	}
	return names
}
