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

import "fmt"

// DataElementTag is a unique identifier for a Data Element composed of an unordered pair
// of numbers called the group number and the element number as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
//
// The least significant 16 bits is the element number. The most significant 16 bits is the group
// number.
type DataElementTag uint32

// Tags used by the file meta header, the pixel modules and the overlay plane module. Repeating
// group tags (60xx) are declared for group 0x6000; use WithGroup to address another overlay.
const (
	FileMetaInformationGroupLengthTag DataElementTag = 0x00020000
	FileMetaInformationVersionTag     DataElementTag = 0x00020001
	MediaStorageSOPClassUIDTag        DataElementTag = 0x00020002
	MediaStorageSOPInstanceUIDTag     DataElementTag = 0x00020003
	TransferSyntaxUIDTag              DataElementTag = 0x00020010
	ImplementationClassUIDTag         DataElementTag = 0x00020012
	ImplementationVersionNameTag      DataElementTag = 0x00020013

	SpecificCharacterSetTag     DataElementTag = 0x00080005
	SOPClassUIDTag              DataElementTag = 0x00080016
	SOPInstanceUIDTag           DataElementTag = 0x00080018
	ModalityTag                 DataElementTag = 0x00080060
	ReferencedImageSequenceTag  DataElementTag = 0x00081140
	ReferencedSOPClassUIDTag    DataElementTag = 0x00081150
	ReferencedSOPInstanceUIDTag DataElementTag = 0x00081155
	PatientNameTag              DataElementTag = 0x00100010
	PatientIDTag                DataElementTag = 0x00100020

	SamplesPerPixelTag                        DataElementTag = 0x00280002
	PhotometricInterpretationTag              DataElementTag = 0x00280004
	PlanarConfigurationTag                    DataElementTag = 0x00280006
	NumberOfFramesTag                         DataElementTag = 0x00280008
	RowsTag                                   DataElementTag = 0x00280010
	ColumnsTag                                DataElementTag = 0x00280011
	BitsAllocatedTag                          DataElementTag = 0x00280100
	BitsStoredTag                             DataElementTag = 0x00280101
	HighBitTag                                DataElementTag = 0x00280102
	PixelRepresentationTag                    DataElementTag = 0x00280103
	SmallestImagePixelValueTag                DataElementTag = 0x00280106
	LargestImagePixelValueTag                 DataElementTag = 0x00280107
	WindowCenterTag                           DataElementTag = 0x00281050
	WindowWidthTag                            DataElementTag = 0x00281051
	RescaleInterceptTag                       DataElementTag = 0x00281052
	RescaleSlopeTag                           DataElementTag = 0x00281053
	VOILUTFunctionTag                         DataElementTag = 0x00281056
	RedPaletteColorLookupTableDescriptorTag   DataElementTag = 0x00281101
	GreenPaletteColorLookupTableDescriptorTag DataElementTag = 0x00281102
	BluePaletteColorLookupTableDescriptorTag  DataElementTag = 0x00281103
	RedPaletteColorLookupTableDataTag         DataElementTag = 0x00281201
	GreenPaletteColorLookupTableDataTag       DataElementTag = 0x00281202
	BluePaletteColorLookupTableDataTag        DataElementTag = 0x00281203
	LossyImageCompressionTag                  DataElementTag = 0x00282110

	OverlayRowsTag             DataElementTag = 0x60000010
	OverlayColumnsTag          DataElementTag = 0x60000011
	NumberOfFramesInOverlayTag DataElementTag = 0x60000015
	OverlayDescriptionTag      DataElementTag = 0x60000022
	OverlayTypeTag             DataElementTag = 0x60000040
	OverlayOriginTag           DataElementTag = 0x60000050
	ImageFrameOriginTag        DataElementTag = 0x60000051
	OverlayBitsAllocatedTag    DataElementTag = 0x60000100
	OverlayBitPositionTag      DataElementTag = 0x60000102
	OverlayLabelTag            DataElementTag = 0x60001500
	OverlayDataTag             DataElementTag = 0x60003000

	PixelDataTag DataElementTag = 0x7FE00010

	ItemTag                     DataElementTag = 0xFFFEE000
	ItemDelimitationItemTag     DataElementTag = 0xFFFEE00D
	SequenceDelimitationItemTag DataElementTag = 0xFFFEE0DD
)

// GroupNumber returns the group number component of the DataElementTag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the DataElementTag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// IsMetaElement is true if and only if the Data Element is a file meta element
func (t DataElementTag) IsMetaElement() bool {
	return t.GroupNumber() == uint16(0x0002)
}

// IsPrivate is true if and only if the tag belongs to an odd (private) group
func (t DataElementTag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

// WithGroup returns the tag with its group number replaced. It is used to address repeating
// groups such as the overlay planes (60xx,eeee).
func (t DataElementTag) WithGroup(group uint16) DataElementTag {
	return DataElementTag(uint32(group)<<16 | uint32(t.ElementNumber()))
}

func (t DataElementTag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}

// dictionary is the subset of the DICOM data dictionary
// (http://dicom.nema.org/medical/dicom/current/output/html/part06.html) known to this package.
// Repeating groups are stored with the x's set to 0.
var dictionary = map[DataElementTag]*VR{
	FileMetaInformationGroupLengthTag: ULVR,
	FileMetaInformationVersionTag:     OBVR,
	MediaStorageSOPClassUIDTag:        UIVR,
	MediaStorageSOPInstanceUIDTag:     UIVR,
	TransferSyntaxUIDTag:              UIVR,
	ImplementationClassUIDTag:         UIVR,
	ImplementationVersionNameTag:      SHVR,

	SpecificCharacterSetTag:     CSVR,
	SOPClassUIDTag:              UIVR,
	SOPInstanceUIDTag:           UIVR,
	ModalityTag:                 CSVR,
	ReferencedImageSequenceTag:  SQVR,
	ReferencedSOPClassUIDTag:    UIVR,
	ReferencedSOPInstanceUIDTag: UIVR,
	PatientNameTag:              PNVR,
	PatientIDTag:                LOVR,

	SamplesPerPixelTag:                        USVR,
	PhotometricInterpretationTag:              CSVR,
	PlanarConfigurationTag:                    USVR,
	NumberOfFramesTag:                         ISVR,
	RowsTag:                                   USVR,
	ColumnsTag:                                USVR,
	BitsAllocatedTag:                          USVR,
	BitsStoredTag:                             USVR,
	HighBitTag:                                USVR,
	PixelRepresentationTag:                    USVR,
	SmallestImagePixelValueTag:                USVR,
	LargestImagePixelValueTag:                 USVR,
	WindowCenterTag:                           DSVR,
	WindowWidthTag:                            DSVR,
	RescaleInterceptTag:                       DSVR,
	RescaleSlopeTag:                           DSVR,
	VOILUTFunctionTag:                         CSVR,
	RedPaletteColorLookupTableDescriptorTag:   USVR,
	GreenPaletteColorLookupTableDescriptorTag: USVR,
	BluePaletteColorLookupTableDescriptorTag:  USVR,
	RedPaletteColorLookupTableDataTag:         OWVR,
	GreenPaletteColorLookupTableDataTag:       OWVR,
	BluePaletteColorLookupTableDataTag:        OWVR,
	LossyImageCompressionTag:                  CSVR,

	OverlayRowsTag:             USVR,
	OverlayColumnsTag:          USVR,
	NumberOfFramesInOverlayTag: ISVR,
	OverlayDescriptionTag:      LOVR,
	OverlayTypeTag:             CSVR,
	OverlayOriginTag:           SSVR,
	ImageFrameOriginTag:        USVR,
	OverlayBitsAllocatedTag:    USVR,
	OverlayBitPositionTag:      USVR,
	OverlayLabelTag:            LOVR,
	OverlayDataTag:             OWVR,

	PixelDataTag: OWVR,
}

// DictionaryVR returns the VR of the tag in the data dictionary. Group length elements (gggg,0000)
// are UL, private creator elements (gggg,0010-00FF) with odd gggg are LO and tags unknown to the
// dictionary are UN.
func (t DataElementTag) DictionaryVR() *VR {
	if t.ElementNumber() == 0 {
		return ULVR
	}
	if t.IsPrivate() && t.ElementNumber() >= 0x0010 && t.ElementNumber() <= 0x00FF {
		return LOVR
	}
	// The following list of masks handles the repeating groups known to the dictionary. The value
	// 0xFFFFFFFF is included in the list since (tag & 0xFFFFFFFF) == tag
	for _, m := range []uint32{0xFFFFFFFF, 0xFF00FFFF} {
		if vr, ok := dictionary[DataElementTag(uint32(t)&m)]; ok {
			return vr
		}
	}
	return UNVR
}
