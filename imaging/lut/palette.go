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

package lut

import (
	"fmt"
	"image/color"
)

// Table is one channel of a palette color lookup table, see
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.7.6.3.1.5
type Table struct {
	// Descriptor holds the number of entries (0 means 65536), the first stored value mapped and
	// the number of bits of each entry.
	Descriptor [3]int32

	// Data holds the entries as 16 bit words. 8 bit entries may occupy a word each or be packed
	// two per word, low byte first.
	Data []uint16
}

// NewTable validates a descriptor read from the data set and returns the channel table.
func NewTable(descriptor []int64, data []uint16) (Table, error) {
	if len(descriptor) != 3 {
		return Table{}, fmt.Errorf("palette descriptor has %d values, want 3", len(descriptor))
	}
	bits := descriptor[2]
	if bits != 8 && bits != 16 {
		return Table{}, fmt.Errorf("palette entries of %d bits are not supported", bits)
	}
	if len(data) == 0 {
		return Table{}, fmt.Errorf("palette data is empty")
	}
	return Table{Descriptor: [3]int32{int32(descriptor[0]), int32(descriptor[1]), int32(bits)}, Data: data}, nil
}

func (t Table) entries() int {
	if t.Descriptor[0] == 0 {
		return 65536
	}
	return int(t.Descriptor[0])
}

// value returns the 8 bit intensity of the entry for a stored value. Values below the first
// mapped value use the first entry and values past the table use the last entry.
func (t Table) value(stored int32) uint8 {
	n := t.entries()
	if t.Descriptor[2] == 8 {
		if len(t.Data) < n {
			// packed
			n = min(n, 2*len(t.Data))
			i := clampIndex(stored-t.Descriptor[1], n)
			w := t.Data[i/2]
			if i%2 == 0 {
				return uint8(w)
			}
			return uint8(w >> 8)
		}
		return uint8(t.Data[clampIndex(stored-t.Descriptor[1], n)])
	}
	n = min(n, len(t.Data))
	return uint8(t.Data[clampIndex(stored-t.Descriptor[1], n)] >> 8)
}

func clampIndex(i int32, n int) int {
	if i < 0 {
		return 0
	}
	if int(i) >= n {
		return n - 1
	}
	return int(i)
}

// Palette maps single sample indices through red, green and blue tables.
type Palette struct {
	red, green, blue Table
}

// NewPalette returns the PALETTE COLOR LUT for the three channel tables.
func NewPalette(red, green, blue Table) *Palette {
	return &Palette{red, green, blue}
}

// Components implements LUT.
func (p *Palette) Components() int {
	return 1
}

// Map implements LUT.
func (p *Palette) Map(samples []int32) color.RGBA {
	s := samples[0]
	return color.RGBA{p.red.value(s), p.green.value(s), p.blue.value(s), 0xFF}
}
