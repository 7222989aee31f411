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
	"fmt"
)

// EncapsulatedPixelData represents image pixel data (7FE0,0010) in the encapsulated format as
// described in http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4.
type EncapsulatedPixelData struct {
	// OffsetTable is the Basic Offset Table. It is empty when the table is absent. Each offset is
	// the byte position of the first fragment of a frame relative to the first byte of the item
	// tag of the first fragment.
	OffsetTable []uint32

	// Fragments holds the fragments following the offset table in file order
	Fragments [][]byte
}

// NewEncapsulatedPixelData returns encapsulated pixel data storing each frame in a single
// fragment and a Basic Offset Table pointing at them.
func NewEncapsulatedPixelData(frames ...[]byte) *EncapsulatedPixelData {
	p := &EncapsulatedPixelData{OffsetTable: []uint32{}, Fragments: [][]byte{}}
	offset := uint32(0)
	for _, frame := range frames {
		p.OffsetTable = append(p.OffsetTable, offset)
		p.Fragments = append(p.Fragments, frame)
		offset += tagSize + 4 /*length*/ + uint32(len(frame)+len(frame)%2)
	}
	return p
}

// readEncapsulatedPixelData reads the items of encapsulated pixel data up to and including the
// Sequence Delimitation Item. Items are always little endian.
func readEncapsulatedPixelData(dr *dcmReader) (*EncapsulatedPixelData, error) {
	p := &EncapsulatedPixelData{OffsetTable: []uint32{}, Fragments: [][]byte{}}
	first := true
	for {
		tag, err := processItemTag(dr, binary.LittleEndian)
		if err != nil {
			return nil, fmt.Errorf("reading tag in encapsulated format fragment: %w", err)
		}
		length, err := dr.UInt32(binary.LittleEndian)
		if err != nil {
			return nil, fmt.Errorf("reading fragment length: %w", err)
		}
		if tag == SequenceDelimitationItemTag {
			return p, nil
		}
		if length == UndefinedLength {
			return nil, fmt.Errorf("expected fragment to be of explicit length")
		}
		fragment, err := dr.Bytes(int64(length))
		if err != nil {
			return nil, fmt.Errorf("reading fragment: %w", err)
		}

		if first {
			first = false
			for i := 0; i+4 <= len(fragment); i += 4 {
				p.OffsetTable = append(p.OffsetTable, binary.LittleEndian.Uint32(fragment[i:]))
			}
			continue
		}
		p.Fragments = append(p.Fragments, fragment)
	}
}

// writeEncapsulatedPixelData writes the offset table and fragments as items followed by a
// Sequence Delimitation Item.
func writeEncapsulatedPixelData(dw *dcmWriter, p *EncapsulatedPixelData) error {
	order := binary.LittleEndian
	table := make([]byte, 4*len(p.OffsetTable))
	for i, offset := range p.OffsetTable {
		order.PutUint32(table[4*i:], offset)
	}

	for _, fragment := range append([][]byte{table}, p.Fragments...) {
		if err := dw.Tag(order, ItemTag); err != nil {
			return fmt.Errorf("writing fragment tag: %w", err)
		}
		padded := len(fragment) + len(fragment)%2
		if err := dw.UInt32(order, uint32(padded)); err != nil {
			return fmt.Errorf("writing fragment length: %w", err)
		}
		if err := dw.Bytes(fragment); err != nil {
			return fmt.Errorf("writing fragment: %w", err)
		}
		if padded != len(fragment) {
			if err := dw.Bytes([]byte{0}); err != nil {
				return fmt.Errorf("writing fragment padding: %w", err)
			}
		}
	}

	return dw.Delimiter(order, SequenceDelimitationItemTag)
}
