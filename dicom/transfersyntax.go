// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"encoding/binary"
)

// list of transfer syntaxes obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the Explicit VR Big Endian UID
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
	// DeflatedExplicitVRLittleEndianUID is the Deflated Explicit VR Little Endian UID
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	// JPEGBaselineUID is the JPEG Baseline (Process 1) transfer syntax UID
	JPEGBaselineUID = "1.2.840.10008.1.2.4.50"
	// JPEGExtendedUID is the JPEG Extended (Process 2 & 4) transfer syntax UID
	JPEGExtendedUID = "1.2.840.10008.1.2.4.51"
	// JPEGLosslessUID is the JPEG Lossless, Non-Hierarchical (Process 14) transfer syntax UID
	JPEGLosslessUID = "1.2.840.10008.1.2.4.57"
	// JPEGLosslessSV1UID is the JPEG Lossless, First-Order Prediction (Process 14, SV1) UID
	JPEGLosslessSV1UID = "1.2.840.10008.1.2.4.70"
	// JPEGLSLosslessUID is the JPEG-LS Lossless transfer syntax UID
	JPEGLSLosslessUID = "1.2.840.10008.1.2.4.80"
	// JPEGLSNearLosslessUID is the JPEG-LS Lossy (Near-Lossless) transfer syntax UID
	JPEGLSNearLosslessUID = "1.2.840.10008.1.2.4.81"
	// JPEG2000LosslessUID is the JPEG 2000 Image Compression (Lossless Only) UID
	JPEG2000LosslessUID = "1.2.840.10008.1.2.4.90"
	// JPEG2000UID is the JPEG 2000 Image Compression UID
	JPEG2000UID = "1.2.840.10008.1.2.4.91"
	// RLELosslessUID is the RLE Lossless transfer syntax UID
	RLELosslessUID = "1.2.840.10008.1.2.5"
)

// TransferSyntax describes how the data set following the file meta header is encoded.
type TransferSyntax struct {
	UID  string
	Name string

	// ByteOrder of binary values in the data set
	ByteOrder binary.ByteOrder

	// Implicit is true when VRs are not written and come from the data dictionary
	Implicit bool

	// Deflated is true when the data set is compressed as a whole with the deflate algorithm
	Deflated bool

	// Encapsulated is true when pixel data is stored in the encapsulated (compressed) format
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
	Encapsulated bool

	// Lossy is true when the pixel data encoding does not preserve the original samples
	Lossy bool
}

func (s TransferSyntax) String() string {
	return s.Name
}

const (
	vrSize  = 2
	tagSize = 4
)

// Transfer syntaxes known to this package. LookupTransferSyntax resolves UIDs to these values.
var (
	ImplicitVRLittleEndian = TransferSyntax{
		UID: ImplicitVRLittleEndianUID, Name: "Implicit VR Little Endian",
		ByteOrder: binary.LittleEndian, Implicit: true,
	}
	ExplicitVRLittleEndian = TransferSyntax{
		UID: ExplicitVRLittleEndianUID, Name: "Explicit VR Little Endian",
		ByteOrder: binary.LittleEndian,
	}
	ExplicitVRBigEndian = TransferSyntax{
		UID: ExplicitVRBigEndianUID, Name: "Explicit VR Big Endian",
		ByteOrder: binary.BigEndian,
	}
	DeflatedExplicitVRLittleEndian = TransferSyntax{
		UID: DeflatedExplicitVRLittleEndianUID, Name: "Deflated Explicit VR Little Endian",
		ByteOrder: binary.LittleEndian, Deflated: true,
	}
	JPEGBaseline       = encapsulated(JPEGBaselineUID, "JPEG Baseline (Process 1)", true)
	JPEGExtended       = encapsulated(JPEGExtendedUID, "JPEG Extended (Process 2 & 4)", true)
	JPEGLossless       = encapsulated(JPEGLosslessUID, "JPEG Lossless, Non-Hierarchical (Process 14)", false)
	JPEGLosslessSV1    = encapsulated(JPEGLosslessSV1UID, "JPEG Lossless, First-Order Prediction", false)
	JPEGLSLossless     = encapsulated(JPEGLSLosslessUID, "JPEG-LS Lossless", false)
	JPEGLSNearLossless = encapsulated(JPEGLSNearLosslessUID, "JPEG-LS Near-Lossless", true)
	JPEG2000Lossless   = encapsulated(JPEG2000LosslessUID, "JPEG 2000 (Lossless Only)", false)
	JPEG2000           = encapsulated(JPEG2000UID, "JPEG 2000", true)
	RLELossless        = encapsulated(RLELosslessUID, "RLE Lossless", false)
)

func encapsulated(uid, name string, lossy bool) TransferSyntax {
	return TransferSyntax{
		UID: uid, Name: name, ByteOrder: binary.LittleEndian, Encapsulated: true, Lossy: lossy,
	}
}

var knownSyntaxes = map[string]TransferSyntax{}

func init() {
	for _, s := range []TransferSyntax{
		ImplicitVRLittleEndian, ExplicitVRLittleEndian, ExplicitVRBigEndian,
		DeflatedExplicitVRLittleEndian, JPEGBaseline, JPEGExtended, JPEGLossless, JPEGLosslessSV1,
		JPEGLSLossless, JPEGLSNearLossless, JPEG2000Lossless, JPEG2000, RLELossless,
	} {
		knownSyntaxes[s.UID] = s
	}
}

// LookupTransferSyntax returns the TransferSyntax for a UID. Unknown UIDs are assumed to be
// an encapsulated explicit VR little endian syntax according to PS3.5 A.4
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func LookupTransferSyntax(uid string) TransferSyntax {
	if s, ok := knownSyntaxes[uid]; ok {
		return s
	}
	return encapsulated(uid, uid, false)
}
