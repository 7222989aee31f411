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
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

// ChangeTransferSyntax returns a copy of ds whose pixel data is encoded in the target syntax. The
// target must be one of the uncompressed syntaxes. Encapsulated pixel data is decoded frame by frame
// with the Codec registered for the source syntax and the Image Pixel Module attributes are updated
// to describe the decoded samples. ds is never modified.
func ChangeTransferSyntax(ds *dicom.DataSet, target dicom.TransferSyntax, params Params) (*dicom.DataSet, error) {
	if target.Encapsulated {
		return nil, fmt.Errorf("encoding to %v: %w", target, ErrUnsupportedTransferSyntax)
	}
	source, err := ds.TransferSyntax()
	if err != nil {
		return nil, err
	}

	out := ds.Clone()
	out.Set(dicom.TransferSyntaxUIDTag, []string{target.UID})
	if source.UID == target.UID {
		return out, nil
	}

	log.Debug().Str("source", source.UID).Str("target", target.UID).Msg("changing transfer syntax")
	if !out.Has(dicom.PixelDataTag) {
		return out, nil
	}
	if !source.Encapsulated {
		return out, swapNative(out, source, target)
	}
	return out, decodeEncapsulated(ds, out, source, params)
}

// swapNative reorders the bytes of 16 bit native pixel data when the byte order changes.
func swapNative(out *dicom.DataSet, source, target dicom.TransferSyntax) error {
	if source.ByteOrder == target.ByteOrder {
		return nil
	}
	info, err := ReadInfo(out)
	if err != nil {
		return err
	}
	if info.BitsAllocated != 16 {
		return nil
	}
	data, err := out.BytesValue(dicom.PixelDataTag)
	if err != nil {
		return err
	}
	swapped := make([]byte, len(data))
	for i := 0; i+1 < len(data); i += 2 {
		swapped[i], swapped[i+1] = data[i+1], data[i]
	}
	out.Set(dicom.PixelDataTag, swapped)
	return nil
}

func decodeEncapsulated(ds, out *dicom.DataSet, source dicom.TransferSyntax, params Params) error {
	info, err := ReadInfo(ds)
	if err != nil {
		return err
	}
	codec, err := LookupCodec(source.UID)
	if err != nil {
		return err
	}

	var first *Decoded
	var data []byte
	for i := 0; i < info.NumberOfFrames; i++ {
		frame, err := EncapsulatedFrame(ds, i)
		if err != nil {
			return err
		}
		decoded, err := codec.Decode(frame, info, params)
		if err != nil {
			return fmt.Errorf("decoding frame %d: %w", i, err)
		}
		if first == nil {
			first = decoded
		} else if decoded.Rows != first.Rows || decoded.Columns != first.Columns || decoded.SamplesPerPixel != first.SamplesPerPixel {
			return fmt.Errorf("frame %d has a different geometry than frame 0", i)
		}
		data = append(data, decoded.Data...)
	}
	if len(data)%2 != 0 {
		data = append(data, 0)
	}

	out.Set(dicom.RowsTag, []uint16{uint16(first.Rows)})
	out.Set(dicom.ColumnsTag, []uint16{uint16(first.Columns)})
	out.Set(dicom.SamplesPerPixelTag, []uint16{uint16(first.SamplesPerPixel)})
	out.Set(dicom.PhotometricInterpretationTag, []string{first.Photometric})
	out.Set(dicom.BitsAllocatedTag, []uint16{uint16(first.BitsAllocated)})
	out.Set(dicom.BitsStoredTag, []uint16{uint16(first.BitsStored)})
	out.Set(dicom.HighBitTag, []uint16{uint16(first.BitsStored - 1)})
	pixelRepresentation := uint16(0)
	if first.Signed {
		pixelRepresentation = 1
	}
	out.Set(dicom.PixelRepresentationTag, []uint16{pixelRepresentation})
	if first.SamplesPerPixel > 1 {
		out.Set(dicom.PlanarConfigurationTag, []uint16{0})
	} else {
		delete(out.Elements, dicom.PlanarConfigurationTag)
	}
	if source.Lossy {
		out.Set(dicom.LossyImageCompressionTag, []string{"01"})
	}
	out.Set(dicom.PixelDataTag, data)
	return nil
}
