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

package pixeldata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

// ErrMissingAttribute is returned when a mandatory attribute of the Image Pixel Module is absent.
var ErrMissingAttribute = errors.New("missing image pixel module attribute")

// Info describes the layout of the pixel data of a data set as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.7.6.3
type Info struct {
	Rows    int
	Columns int

	// SamplesPerPixel is the value of (0028,0002) or 0 when the element is absent
	SamplesPerPixel int

	BitsAllocated       int
	BitsStored          int
	HighBit             int
	PixelRepresentation int
	PlanarConfiguration int
	NumberOfFrames      int

	// Photometric is the Photometric Interpretation (0028,0004) or "" when the element is absent
	Photometric string

	Syntax dicom.TransferSyntax
}

// ReadInfo reads the Image Pixel Module attributes of ds. Rows, Columns and Bits Allocated are
// mandatory; the other attributes take their customary defaults when absent.
func ReadInfo(ds *dicom.DataSet) (Info, error) {
	var info Info
	var err error
	for _, attr := range []struct {
		tag dicom.DataElementTag
		dst *int
	}{
		{dicom.RowsTag, &info.Rows},
		{dicom.ColumnsTag, &info.Columns},
		{dicom.BitsAllocatedTag, &info.BitsAllocated},
	} {
		if *attr.dst, err = intValue(ds, attr.tag); err != nil {
			return Info{}, fmt.Errorf("%v: %w", attr.tag, ErrMissingAttribute)
		}
	}
	if info.Rows <= 0 || info.Columns <= 0 {
		return Info{}, fmt.Errorf("invalid image size %vx%v", info.Columns, info.Rows)
	}

	info.SamplesPerPixel = intValueOr(ds, dicom.SamplesPerPixelTag, 0)
	info.BitsStored = intValueOr(ds, dicom.BitsStoredTag, info.BitsAllocated)
	info.HighBit = intValueOr(ds, dicom.HighBitTag, info.BitsStored-1)
	info.PixelRepresentation = intValueOr(ds, dicom.PixelRepresentationTag, 0)
	info.PlanarConfiguration = intValueOr(ds, dicom.PlanarConfigurationTag, 0)
	info.NumberOfFrames = intValueOr(ds, dicom.NumberOfFramesTag, 1)
	if info.NumberOfFrames < 1 {
		info.NumberOfFrames = 1
	}
	if photometric, err := ds.StringValue(dicom.PhotometricInterpretationTag); err == nil {
		info.Photometric = strings.TrimSpace(photometric)
	}

	info.Syntax = dicom.ExplicitVRLittleEndian
	if syntax, err := ds.TransferSyntax(); err == nil {
		info.Syntax = syntax
	}
	return info, nil
}

// Samples returns the number of samples per pixel used to lay out the pixel data. An absent or zero
// Samples per Pixel counts as one sample.
func (i Info) Samples() int {
	if i.SamplesPerPixel < 1 {
		return 1
	}
	return i.SamplesPerPixel
}

// FrameLength returns the number of bytes of one uncompressed frame.
func (i Info) FrameLength() int {
	bits := i.Rows * i.Columns * i.Samples() * i.BitsAllocated
	return (bits + 7) / 8
}

// Signed is true when samples are two's complement integers.
func (i Info) Signed() bool {
	return i.PixelRepresentation == 1
}

func intValue(ds *dicom.DataSet, tag dicom.DataElementTag) (int, error) {
	v, err := ds.IntValue(tag)
	return int(v), err
}

func intValueOr(ds *dicom.DataSet, tag dicom.DataElementTag, def int) int {
	v, err := ds.IntValue(tag)
	if err != nil {
		return def
	}
	return int(v)
}
