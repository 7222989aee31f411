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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog/log"
)

// Parse parses a DICOM file represented as an io.Reader, returning the DataSet defined by applying
// options sequentially in the order given to DataElements in the file.
//
// The file meta elements are always explicit VR little endian. The remainder of the file is read
// in the transfer syntax named by (0002,0010); deflated data sets are inflated while reading.
// Bulk data is buffered:
// []byte for OW, OB, UN
// []uint32 for OL
// []float64 for OD
// []float32 for OF
// *EncapsulatedPixelData for pixel data of undefined length
func Parse(r io.Reader, opts ...ParseOption) (*DataSet, error) {
	dr := newDcmReader(r)
	if err := readDicomSignature(dr); err != nil {
		return nil, err
	}

	metaHeaderBytes, err := bufferMetadataHeader(dr)
	if err != nil {
		return nil, fmt.Errorf("reading meta header: %w", err)
	}
	meta, err := readDataSet(newDcmReader(bytes.NewReader(metaHeaderBytes)), defaultMetaData, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing meta header: %w", err)
	}
	syntax, err := meta.TransferSyntax()
	if err != nil {
		return nil, fmt.Errorf("finding transfer syntax: %w", err)
	}
	log.Debug().Str("transfer_syntax", syntax.UID).Msg("parsing data set")

	var body io.Reader = dr.cr
	if syntax.Deflated {
		inflater := flate.NewReader(body)
		defer inflater.Close()
		body = inflater
	}

	ds, err := readDataSet(newDcmReader(body), dicomMetaData{syntax, defaultCharacterRepertoire}, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing data set: %w", err)
	}

	for tag, elem := range meta.Elements {
		processed, err := applyOptions(elem, opts)
		if err != nil {
			return nil, err
		}
		if processed != nil {
			ds.Elements[tag] = processed
		}
	}
	return ds, nil
}

// ParseFile opens and parses the DICOM file at path.
func ParseFile(path string, opts ...ParseOption) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %v: %w", path, err)
	}
	defer f.Close()

	return Parse(f, opts...)
}

func readDicomSignature(r *dcmReader) error {
	if err := r.Skip(128); err != nil {
		return fmt.Errorf("skipping preamble: %w", err)
	}

	magic, err := r.String(4)
	if err != nil {
		return fmt.Errorf("reading DICOM signature: %w", err)
	}

	if magic != "DICM" {
		return fmt.Errorf("wrong DICOM signature: %q", magic)
	}

	return nil
}

// bufferMetadataHeader returns the bytes of the file meta elements. Their total size is stored in
// the File Meta Information Group Length element, which always comes first.
func bufferMetadataHeader(dr *dcmReader) ([]byte, error) {
	firstElemBytes, err := dr.Bytes(tagSize + vrSize + 2 /*len*/ + 4 /*UL=4bytes*/)
	if err != nil {
		return nil, fmt.Errorf("buffering bytes of FileMetaInformationGroupLength: %w", err)
	}
	firstElem, err := readDataElement(newDcmReader(bytes.NewReader(firstElemBytes)), defaultMetaData, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing FileMetaInformationGroupLength element: %w", err)
	}
	if firstElem.Tag != FileMetaInformationGroupLengthTag {
		return nil, fmt.Errorf("expected %v as first meta element, got %v", FileMetaInformationGroupLengthTag, firstElem.Tag)
	}
	metaGroupLength, ok := firstElem.ValueField.([]uint32)
	if !ok || len(metaGroupLength) != 1 {
		return nil, fmt.Errorf("wrong value for FileMetaInformationGroupLength. Got %v, want 1 uint32", firstElem.ValueField)
	}

	remainderBytes, err := dr.Bytes(int64(metaGroupLength[0]))
	if err != nil {
		return nil, fmt.Errorf("buffering the file meta elements: %w", err)
	}
	return append(firstElemBytes, remainderBytes...), nil
}
