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

package compose

import (
	"image"
	"image/color"
)

// Bitmap is the interchange representation of a rendered frame: 32 bit BGRA pixels with rows
// stored bottom-up, as in a device independent bitmap.
type Bitmap struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// NewBitmap converts a rendered frame into a Bitmap.
func NewBitmap(img *image.RGBA) *Bitmap {
	b := img.Bounds()
	bm := &Bitmap{Width: b.Dx(), Height: b.Dy(), Stride: 4 * b.Dx()}
	bm.Pix = make([]byte, bm.Stride*bm.Height)
	for y := 0; y < bm.Height; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := bm.Pix[(bm.Height-1-y)*bm.Stride:]
		for x := 0; x < bm.Width; x++ {
			dst[4*x], dst[4*x+1], dst[4*x+2], dst[4*x+3] = src[4*x+2], src[4*x+1], src[4*x], src[4*x+3]
		}
	}
	return bm
}

// RGBAAt returns the color of the pixel at (x, y), with y counted from the top row.
func (bm *Bitmap) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= bm.Width || y >= bm.Height {
		return color.RGBA{}
	}
	p := bm.Pix[(bm.Height-1-y)*bm.Stride+4*x:]
	return color.RGBA{p[2], p[1], p[0], p[3]}
}
