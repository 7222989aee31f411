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

// Package compose assembles a displayable raster from the samples of one frame, a lookup table and
// any number of binary overlay planes.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/imaging/lut"
)

// Graphic is the root of a composition: interleaved samples of one frame and the overlay layers
// drawn on top of it.
type Graphic struct {
	width      int
	height     int
	components int
	samples    []int32
	layers     []layer
}

type layer struct {
	mask   *image.Alpha
	origin image.Point
	color  color.Color
}

// NewGraphic returns a composition root for width x height pixels of the given number of samples.
func NewGraphic(width, height, components int, samples []int32) (*Graphic, error) {
	if width <= 0 || height <= 0 || components <= 0 {
		return nil, fmt.Errorf("invalid graphic geometry %vx%vx%v", width, height, components)
	}
	if len(samples) != width*height*components {
		return nil, fmt.Errorf("got %v samples for %vx%vx%v graphic", len(samples), width, height, components)
	}
	return &Graphic{width: width, height: height, components: components, samples: samples}, nil
}

// Bounds returns the rectangle of the composed raster.
func (g *Graphic) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// AddOverlay adds a layer above the ones added before. The mask is positioned at origin, in the
// pixel coordinates of the unscaled frame, and both are scaled by scale to match the samples.
func (g *Graphic) AddOverlay(mask *image.Alpha, origin image.Point, c color.Color, scale float64) {
	if scale != 1 {
		mask = scaleMask(mask, scale)
		origin = image.Pt(int(math.Floor(float64(origin.X)*scale)), int(math.Floor(float64(origin.Y)*scale)))
	}
	g.layers = append(g.layers, layer{mask, origin, c})
}

// Render maps every pixel through l and draws the overlay layers in the order they were added, so
// later layers cover earlier ones.
func (g *Graphic) Render(l lut.LUT) (*image.RGBA, error) {
	if l.Components() != g.components {
		return nil, fmt.Errorf("lookup table expects %v samples per pixel, graphic has %v", l.Components(), g.components)
	}

	dst := image.NewRGBA(g.Bounds())
	c := g.components
	for y := 0; y < g.height; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			px := l.Map(g.samples[i*c : (i+1)*c])
			row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = px.R, px.G, px.B, px.A
		}
	}

	for _, ly := range g.layers {
		mb := ly.mask.Bounds()
		r := image.Rectangle{Min: ly.origin, Max: ly.origin.Add(mb.Size())}
		draw.DrawMask(dst, r, image.NewUniform(ly.color), image.Point{}, ly.mask, mb.Min, draw.Over)
	}
	return dst, nil
}

func scaleMask(mask *image.Alpha, scale float64) *image.Alpha {
	b := mask.Bounds()
	w := max(1, int(math.Floor(float64(b.Dx())*scale)))
	h := max(1, int(math.Floor(float64(b.Dy())*scale)))
	scaled := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, b, draw.Src, nil)
	return scaled
}
