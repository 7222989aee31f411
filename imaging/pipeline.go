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
	"github.com/GoogleCloudPlatform/go-dicom-imaging/imaging/lut"
)

// Kind identifies the variant of a Pipeline.
type Kind int

// Pipeline variants.
const (
	Grayscale Kind = iota
	RGB
	PaletteColor
)

func (k Kind) String() string {
	switch k {
	case Grayscale:
		return "Grayscale"
	case RGB:
		return "RGB"
	case PaletteColor:
		return "PaletteColor"
	default:
		return "Unknown"
	}
}

// Pipeline turns the samples of a PixelBuffer into colors. The variants are GrayscalePipeline,
// RGBPipeline and PaletteColorPipeline.
type Pipeline interface {
	Kind() Kind

	// LUT returns the lookup table for the samples of buf.
	LUT(buf *PixelBuffer) lut.LUT

	pipeline()
}

// GrayscalePipeline renders MONOCHROME1 and MONOCHROME2 images through the modality rescale and
// the VOI window of its RenderOptions.
type GrayscalePipeline struct {
	options *RenderOptions
	invert  bool
}

func (p *GrayscalePipeline) Kind() Kind { return Grayscale }
func (p *GrayscalePipeline) pipeline()  {}

// Options returns the live rendering options of the pipeline.
func (p *GrayscalePipeline) Options() *RenderOptions { return p.options }

// Inverted is true for MONOCHROME1 images.
func (p *GrayscalePipeline) Inverted() bool { return p.invert }

func (p *GrayscalePipeline) LUT(buf *PixelBuffer) lut.LUT {
	lo, hi := buf.MinMax()
	return lut.NewGrayscale(lut.GrayscaleParams{
		MinValue:         lo,
		MaxValue:         hi,
		RescaleSlope:     p.options.RescaleSlope,
		RescaleIntercept: p.options.RescaleIntercept,
		WindowCenter:     p.options.WindowCenter,
		WindowWidth:      p.options.WindowWidth,
		Function:         p.options.Function,
		Invert:           p.invert,
	})
}

// RGBPipeline renders RGB samples directly.
type RGBPipeline struct{}

func (p *RGBPipeline) Kind() Kind { return RGB }
func (p *RGBPipeline) pipeline()  {}

func (p *RGBPipeline) LUT(buf *PixelBuffer) lut.LUT {
	return lut.NewRGB(buf.BitsStored)
}

// PaletteColorPipeline renders indices through the palette color lookup tables of the image.
type PaletteColorPipeline struct {
	red, green, blue lut.Table
}

func (p *PaletteColorPipeline) Kind() Kind { return PaletteColor }
func (p *PaletteColorPipeline) pipeline()  {}

func (p *PaletteColorPipeline) LUT(buf *PixelBuffer) lut.LUT {
	return lut.NewPalette(p.red, p.green, p.blue)
}
