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
	"math"
	"strings"
)

// VOIFunction is the VOI LUT Function (0028,1056).
type VOIFunction string

// VOI LUT functions defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.11.2.1.3
const (
	Linear      VOIFunction = "LINEAR"
	LinearExact VOIFunction = "LINEAR_EXACT"
	Sigmoid     VOIFunction = "SIGMOID"
)

// ParseVOIFunction returns the function named by the defined term. An empty term is LINEAR.
func ParseVOIFunction(term string) (VOIFunction, error) {
	switch f := VOIFunction(strings.ToUpper(strings.TrimSpace(term))); f {
	case "":
		return Linear, nil
	case Linear, LinearExact, Sigmoid:
		return f, nil
	default:
		return "", fmt.Errorf("unknown VOI LUT function %q", term)
	}
}

// GrayscaleParams are the inputs of the grayscale chain. Stored values in [MinValue, MaxValue] are
// rescaled with RescaleSlope and RescaleIntercept, windowed and optionally inverted.
type GrayscaleParams struct {
	MinValue int32
	MaxValue int32

	RescaleSlope     float64
	RescaleIntercept float64

	WindowCenter float64
	WindowWidth  float64
	Function     VOIFunction

	// Invert maps the minimum to white, as required for MONOCHROME1.
	Invert bool
}

// Grayscale is a precomputed table over the range of stored values.
type Grayscale struct {
	min   int32
	table []uint8
}

// NewGrayscale computes the table for p. A zero RescaleSlope is treated as 1 and widths below the
// minimum of the VOI function are raised to it.
func NewGrayscale(p GrayscaleParams) *Grayscale {
	if p.MaxValue < p.MinValue {
		p.MinValue, p.MaxValue = p.MaxValue, p.MinValue
	}
	if p.RescaleSlope == 0 {
		p.RescaleSlope = 1
	}
	voi := voiFunc(p.Function, p.WindowCenter, p.WindowWidth)

	g := &Grayscale{min: p.MinValue, table: make([]uint8, int64(p.MaxValue)-int64(p.MinValue)+1)}
	for i := range g.table {
		x := float64(int64(p.MinValue)+int64(i))*p.RescaleSlope + p.RescaleIntercept
		y := voi(x)
		if p.Invert {
			y = 255 - y
		}
		g.table[i] = uint8(math.Round(y))
	}
	return g
}

// Components implements LUT.
func (g *Grayscale) Components() int {
	return 1
}

// Map implements LUT. Values outside the table range are clamped.
func (g *Grayscale) Map(samples []int32) color.RGBA {
	i := int64(samples[0]) - int64(g.min)
	if i < 0 {
		i = 0
	}
	if i >= int64(len(g.table)) {
		i = int64(len(g.table)) - 1
	}
	v := g.table[i]
	return color.RGBA{v, v, v, 0xFF}
}

// voiFunc returns the VOI transformation to [0, 255] described in
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.11.2.1.2
func voiFunc(f VOIFunction, c, w float64) func(float64) float64 {
	const yMin, yMax = 0.0, 255.0
	switch f {
	case LinearExact:
		if w <= 0 {
			w = math.SmallestNonzeroFloat64
		}
		return func(x float64) float64 {
			switch {
			case x <= c-w/2:
				return yMin
			case x > c+w/2:
				return yMax
			default:
				return ((x-c)/w+0.5)*(yMax-yMin) + yMin
			}
		}
	case Sigmoid:
		if w <= 0 {
			w = 1
		}
		return func(x float64) float64 {
			return (yMax-yMin)/(1+math.Exp(-4*(x-c)/w)) + yMin
		}
	default:
		if w < 1 {
			w = 1
		}
		return func(x float64) float64 {
			switch {
			case x <= c-0.5-(w-1)/2:
				return yMin
			case x > c-0.5+(w-1)/2:
				return yMax
			default:
				return ((x-(c-0.5))/(w-1)+0.5)*(yMax-yMin) + yMin
			}
		}
	}
}
