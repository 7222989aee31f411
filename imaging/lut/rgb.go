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

import "image/color"

// RGB interprets three samples as red, green and blue. Samples wider than 8 bits are shifted down.
type RGB struct {
	shift uint
}

// NewRGB returns the LUT for samples of bitsStored bits.
func NewRGB(bitsStored int) *RGB {
	shift := uint(0)
	if bitsStored > 8 {
		shift = uint(bitsStored - 8)
	}
	return &RGB{shift}
}

// Components implements LUT.
func (r *RGB) Components() int {
	return 3
}

// Map implements LUT.
func (r *RGB) Map(samples []int32) color.RGBA {
	return color.RGBA{
		clampByte(samples[0] >> r.shift),
		clampByte(samples[1] >> r.shift),
		clampByte(samples[2] >> r.shift),
		0xFF,
	}
}
