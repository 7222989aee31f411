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

// Package lut maps decoded samples to displayable colors: the grayscale chain (modality rescale,
// VOI window, polarity), palette color tables and direct RGB.
package lut

import "image/color"

// LUT maps the samples of one pixel to an opaque color.
type LUT interface {
	// Components is the number of samples per pixel Map expects.
	Components() int

	// Map returns the color of the pixel with the given samples.
	Map(samples []int32) color.RGBA
}

func clampByte(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
