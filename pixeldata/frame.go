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
	"bytes"
	"errors"
	"fmt"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

var (
	// ErrFrameOutOfRange is returned for frame indices outside [0, NumberOfFrames).
	ErrFrameOutOfRange = errors.New("frame index out of range")

	// ErrShortPixelData is returned when the pixel data holds fewer bytes than the frames need.
	ErrShortPixelData = errors.New("pixel data shorter than declared frames")

	// ErrUnsupportedTransferSyntax is returned for transfer syntaxes no registered Codec handles.
	ErrUnsupportedTransferSyntax = errors.New("unsupported transfer syntax")
)

// Frame returns the bytes of frame i of native (uncompressed) pixel data, in the byte order of the
// data set's transfer syntax. Encapsulated pixel data must be converted with ChangeTransferSyntax
// first.
func Frame(ds *dicom.DataSet, i int) ([]byte, error) {
	info, err := ReadInfo(ds)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= info.NumberOfFrames {
		return nil, fmt.Errorf("frame %d of %d: %w", i, info.NumberOfFrames, ErrFrameOutOfRange)
	}
	if info.Syntax.Encapsulated {
		return nil, fmt.Errorf("reading native frame from %v: %w", info.Syntax, ErrUnsupportedTransferSyntax)
	}

	data, err := ds.BytesValue(dicom.PixelDataTag)
	if err != nil {
		return nil, fmt.Errorf("reading pixel data: %w", err)
	}
	length := info.FrameLength()
	start, end := i*length, (i+1)*length
	if end > len(data) {
		return nil, fmt.Errorf("frame %d needs bytes [%d, %d) of %d: %w", i, start, end, len(data), ErrShortPixelData)
	}
	return data[start:end], nil
}

// EncapsulatedFrame returns the compressed bitstream of frame i of encapsulated pixel data.
func EncapsulatedFrame(ds *dicom.DataSet, i int) ([]byte, error) {
	info, err := ReadInfo(ds)
	if err != nil {
		return nil, err
	}
	elem, err := ds.Element(dicom.PixelDataTag)
	if err != nil {
		return nil, err
	}
	p, ok := elem.ValueField.(*dicom.EncapsulatedPixelData)
	if !ok {
		return nil, fmt.Errorf("expected encapsulated pixel data, got %T", elem.ValueField)
	}
	return assembleFrame(p, i, info.NumberOfFrames)
}

// assembleFrame locates the fragments of frame i as described in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4. A single frame
// spans all fragments. Otherwise the Basic Offset Table is used when it has one entry per frame,
// then one fragment per frame, and finally fragments are grouped at JPEG End Of Image markers.
func assembleFrame(p *dicom.EncapsulatedPixelData, i, numFrames int) ([]byte, error) {
	if i < 0 || i >= numFrames {
		return nil, fmt.Errorf("frame %d of %d: %w", i, numFrames, ErrFrameOutOfRange)
	}
	if len(p.Fragments) == 0 {
		return nil, fmt.Errorf("no fragments in encapsulated pixel data: %w", ErrShortPixelData)
	}

	var frames [][][]byte
	switch {
	case numFrames == 1:
		frames = [][][]byte{p.Fragments}
	case len(p.OffsetTable) == numFrames:
		frames = groupByOffsetTable(p)
	case len(p.Fragments) == numFrames:
		for _, f := range p.Fragments {
			frames = append(frames, [][]byte{f})
		}
	default:
		frames = groupByEndOfImage(p.Fragments)
	}
	if i >= len(frames) {
		return nil, fmt.Errorf("frame %d of %d found fragments: %w", i, len(frames), ErrShortPixelData)
	}
	return bytes.Join(frames[i], nil), nil
}

func groupByOffsetTable(p *dicom.EncapsulatedPixelData) [][][]byte {
	frames := make([][][]byte, len(p.OffsetTable))
	offset := uint32(0)
	frame := 0
	for _, f := range p.Fragments {
		for frame+1 < len(p.OffsetTable) && offset >= p.OffsetTable[frame+1] {
			frame++
		}
		frames[frame] = append(frames[frame], f)
		offset += 8 /*item tag and length*/ + uint32(len(f))
	}
	return frames
}

func groupByEndOfImage(fragments [][]byte) [][][]byte {
	var frames [][][]byte
	var current [][]byte
	for _, f := range fragments {
		current = append(current, f)
		if hasEndOfImage(f) {
			frames = append(frames, current)
			current = nil
		}
	}
	if len(current) > 0 {
		frames = append(frames, current)
	}
	return frames
}

// hasEndOfImage reports whether the fragment ends with the JPEG EOI marker, allowing for the
// padding byte of odd length bitstreams.
func hasEndOfImage(f []byte) bool {
	trimmed := bytes.TrimRight(f, "\x00")
	return bytes.HasSuffix(trimmed, []byte{0xFF, 0xD9})
}
