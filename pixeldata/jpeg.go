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
	"fmt"
	"image"
	"image/color"

	"github.com/gen2brain/jpegn"
)

// jpegCodec decodes the 8 bit JPEG processes (Baseline and Extended with 8 bit samples).
type jpegCodec struct{}

func (jpegCodec) Decode(frame []byte, info Info, params Params) (*Decoded, error) {
	// color conversion only applies to color frames; grayscale stays single sample
	toRGB := params.ConvertColorSpaceToRGB && info.Samples() > 1
	img, err := jpegn.Decode(bytes.NewReader(frame), &jpegn.Options{ToRGBA: toRGB})
	if err != nil {
		return nil, fmt.Errorf("decoding jpeg frame: %w", err)
	}

	b := img.Bounds()
	d := &Decoded{Rows: b.Dy(), Columns: b.Dx(), BitsAllocated: 8, BitsStored: 8}
	switch src := img.(type) {
	case *image.Gray:
		d.SamplesPerPixel = 1
		d.Photometric = "MONOCHROME2"
		if info.Photometric == "MONOCHROME1" {
			d.Photometric = info.Photometric
		}
		d.Data = make([]byte, 0, b.Dx()*b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			d.Data = append(d.Data, src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]...)
		}
	case *image.YCbCr:
		if toRGB {
			d.SamplesPerPixel, d.Photometric, d.Data = 3, "RGB", rgbSamples(img)
			break
		}
		d.SamplesPerPixel = 3
		d.Photometric = "YBR_FULL"
		d.Data = make([]byte, 0, 3*b.Dx()*b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := src.YCbCrAt(x, y)
				d.Data = append(d.Data, c.Y, c.Cb, c.Cr)
			}
		}
	default:
		d.SamplesPerPixel, d.Photometric, d.Data = 3, "RGB", rgbSamples(img)
	}
	return d, nil
}

func rgbSamples(img image.Image) []byte {
	b := img.Bounds()
	data := make([]byte, 0, 3*b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			data = append(data, c.R, c.G, c.B)
		}
	}
	return data
}
