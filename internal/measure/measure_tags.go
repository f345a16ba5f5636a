////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package measure

// measure_tags.go contains the string constants for our measure tags

// Constants for Tag strings used by Measure(). Each stage is bracketed
// by its Start/Finish pair.
const (
	TagStartEncrypt       = "Start Encrypt"
	TagFinishEncrypt      = "Finish Encrypt"
	TagStartWriteMetadata = "Start Write Metadata"
	TagFinishWriteMeta    = "Finish Write Metadata"
	TagStartWriteData     = "Start Write Data"
	TagFinishWriteData    = "Finish Write Data"
	TagStartReadMetadata  = "Start Read Metadata"
	TagFinishReadMeta     = "Finish Read Metadata"
	TagStartReadData      = "Start Read Data"
	TagFinishReadData     = "Finish Read Data"
	TagStartDecrypt       = "Start Decrypt"
	TagFinishDecrypt      = "Finish Decrypt"
)
