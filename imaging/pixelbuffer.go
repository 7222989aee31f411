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

package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/pixeldata"
)

// PixelBuffer holds the decoded samples of one frame at the scale requested when it was decoded.
// It is replaced, never modified, when the frame or the scale changes.
type PixelBuffer struct {
	Width           int
	Height          int
	SamplesPerPixel int
	BitsStored      int
	Signed          bool
	Scale           float64
	Frame           int

	// Samples are interleaved (color-by-pixel), row by row.
	Samples []int32
}

// MinMax returns the smallest and largest sample.
func (b *PixelBuffer) MinMax() (int32, int32) {
	if len(b.Samples) == 0 {
		return 0, 0
	}
	lo, hi := b.Samples[0], b.Samples[0]
	for _, s := range b.Samples[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return lo, hi
}

// newPixelBuffer unpacks one native frame: bits stored are extracted below the high bit, signed
// samples are sign extended and color planes are interleaved.
func newPixelBuffer(info pixeldata.Info, raw []byte, frame int) (*PixelBuffer, error) {
	spp := info.Samples()
	if spp != 1 && spp != 3 {
		return nil, &DecodeError{Frame: frame, Reason: fmt.Sprintf("%d samples per pixel", spp)}
	}
	if info.BitsAllocated != 8 && info.BitsAllocated != 16 {
		return nil, &DecodeError{Frame: frame, Reason: fmt.Sprintf("%d bits allocated", info.BitsAllocated)}
	}
	bitsStored := info.BitsStored
	shift := info.HighBit + 1 - bitsStored
	if bitsStored < 1 || bitsStored > info.BitsAllocated || shift < 0 || info.HighBit >= info.BitsAllocated {
		return nil, &DecodeError{Frame: frame, Reason: fmt.Sprintf("%d bits stored with high bit %d", bitsStored, info.HighBit)}
	}

	n := info.Rows * info.Columns * spp
	if len(raw) < n*info.BitsAllocated/8 {
		return nil, &DecodeError{Frame: frame, Reason: fmt.Sprintf("%d bytes for %d samples", len(raw), n)}
	}

	signed := info.Signed()
	mask := uint32(1)<<bitsStored - 1
	signBit := uint32(1) << (bitsStored - 1)
	order := info.Syntax.ByteOrder
	samples := make([]int32, n)
	for i := range samples {
		var v uint32
		if info.BitsAllocated == 8 {
			v = uint32(raw[i])
		} else {
			v = uint32(order.Uint16(raw[2*i:]))
		}
		v = (v >> shift) & mask
		s := int32(v)
		if signed && v&signBit != 0 {
			s -= int32(1) << bitsStored
		}
		samples[i] = s
	}

	if spp == 3 && info.PlanarConfiguration == 1 {
		plane := info.Rows * info.Columns
		interleaved := make([]int32, n)
		for p := 0; p < plane; p++ {
			for c := 0; c < 3; c++ {
				interleaved[3*p+c] = samples[c*plane+p]
			}
		}
		samples = interleaved
	}

	return &PixelBuffer{
		Width:           info.Columns,
		Height:          info.Rows,
		SamplesPerPixel: spp,
		BitsStored:      bitsStored,
		Signed:          signed,
		Scale:           1,
		Frame:           frame,
		Samples:         samples,
	}, nil
}

// scaled returns the buffer resampled with nearest neighbour interpolation to
// max(1, floor(w*s)) x max(1, floor(h*s)). Samples go through 16 bit images, which hold every
// stored value exactly.
func (b *PixelBuffer) scaled(s float64) *PixelBuffer {
	if s == 1 {
		return b
	}
	w := max(1, int(math.Floor(float64(b.Width)*s)))
	h := max(1, int(math.Floor(float64(b.Height)*s)))
	bias := int32(0)
	if b.Signed {
		bias = 1 << 15
	}

	out := *b
	out.Width, out.Height, out.Scale = w, h, s
	out.Samples = make([]int32, w*h*b.SamplesPerPixel)
	srcRect, dstRect := image.Rect(0, 0, b.Width, b.Height), image.Rect(0, 0, w, h)

	if b.SamplesPerPixel == 1 {
		src := image.NewGray16(srcRect)
		for i, v := range b.Samples {
			src.SetGray16(i%b.Width, i/b.Width, color.Gray16{Y: uint16(v + bias)})
		}
		dst := image.NewGray16(dstRect)
		draw.NearestNeighbor.Scale(dst, dstRect, src, srcRect, draw.Src, nil)
		for i := range out.Samples {
			out.Samples[i] = int32(dst.Gray16At(i%w, i/w).Y) - bias
		}
		return &out
	}

	src := image.NewRGBA64(srcRect)
	for p := 0; p < b.Width*b.Height; p++ {
		px := b.Samples[3*p:]
		src.SetRGBA64(p%b.Width, p/b.Width, color.RGBA64{
			R: uint16(px[0] + bias), G: uint16(px[1] + bias), B: uint16(px[2] + bias), A: 0xFFFF,
		})
	}
	dst := image.NewRGBA64(dstRect)
	draw.NearestNeighbor.Scale(dst, dstRect, src, srcRect, draw.Src, nil)
	for p := 0; p < w*h; p++ {
		c := dst.RGBA64At(p%w, p/w)
		out.Samples[3*p] = int32(c.R) - bias
		out.Samples[3*p+1] = int32(c.G) - bias
		out.Samples[3*p+2] = int32(c.B) - bias
	}
	return &out
}
