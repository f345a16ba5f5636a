////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cryptops

// padding.go applies and removes PKCS#7 padding on plaintext buffers.
// Padding is done here, outside the cipher transforms, so that every
// transform maps n input bytes to n output bytes.

// AddPadding appends PKCS#7 padding to buf so that its length becomes a
// multiple of blockSize. Between 1 and blockSize bytes are appended, each
// holding the number of bytes appended. A buffer already on a block
// boundary receives a full block of padding.
func AddPadding(buf []byte, blockSize int) []byte {
	padLen := blockSize - (len(buf) % blockSize)
	for i := 0; i < padLen; i++ {
		buf = append(buf, byte(padLen))
	}
	return buf
}

// RemovePadding strips PKCS#7 padding from buf, truncating it by the value
// of its last byte. The buffer must be non-empty and must have been produced
// by AddPadding with the same block size; the last byte is trusted.
func RemovePadding(buf []byte) []byte {
	padLen := int(buf[len(buf)-1])
	return buf[:len(buf)-padLen]
}
