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
	"strings"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-imaging/imaging/lut"
)

// Photometric interpretations with a rendering pipeline, see
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.7.6.3.1.2
const (
	Monochrome1       = "MONOCHROME1"
	Monochrome2       = "MONOCHROME2"
	PhotometricRGB    = "RGB"
	PaletteColorModel = "PALETTE COLOR"
)

// resolveColorModel returns the photometric interpretation of ds. Data sets without one (such as
// ACR-NEMA files) are classified by Samples per Pixel: 0 or 1 sample is PALETTE COLOR when a red
// palette table is present and MONOCHROME2 otherwise. Any other number of samples is taken to be
// RGB without further checks.
func resolveColorModel(ds *dicom.DataSet) string {
	if p, err := ds.StringValue(dicom.PhotometricInterpretationTag); err == nil && strings.TrimSpace(p) != "" {
		return strings.TrimSpace(p)
	}

	samples := int64(0)
	if v, err := ds.IntValue(dicom.SamplesPerPixelTag); err == nil {
		samples = v
	}
	switch samples {
	case 0, 1:
		if ds.Has(dicom.RedPaletteColorLookupTableDataTag) {
			return PaletteColorModel
		}
		return Monochrome2
	default:
		return PhotometricRGB
	}
}

// selectPipeline builds the pipeline for the color model of ds. Grayscale pipelines share options
// when it is not nil; otherwise new options are read from ds, falling back to the value range of
// buf for the window.
func selectPipeline(ds *dicom.DataSet, buf *PixelBuffer, options *RenderOptions) (Pipeline, *RenderOptions, error) {
	model := resolveColorModel(ds)
	switch model {
	case Monochrome1, Monochrome2:
		if options == nil {
			options = newRenderOptions(ds, buf)
		}
		return &GrayscalePipeline{options: options, invert: model == Monochrome1}, options, nil
	case PhotometricRGB:
		return &RGBPipeline{}, options, nil
	case PaletteColorModel:
		p, err := newPaletteColorPipeline(ds)
		if err != nil {
			return nil, options, err
		}
		return p, options, nil
	default:
		return nil, options, &UnsupportedPipelineError{ColorModel: model}
	}
}

func newPaletteColorPipeline(ds *dicom.DataSet) (*PaletteColorPipeline, error) {
	channels := []struct {
		name       string
		descriptor dicom.DataElementTag
		data       dicom.DataElementTag
	}{
		{"red", dicom.RedPaletteColorLookupTableDescriptorTag, dicom.RedPaletteColorLookupTableDataTag},
		{"green", dicom.GreenPaletteColorLookupTableDescriptorTag, dicom.GreenPaletteColorLookupTableDataTag},
		{"blue", dicom.BluePaletteColorLookupTableDescriptorTag, dicom.BluePaletteColorLookupTableDataTag},
	}

	var tables [3]lut.Table
	for i, ch := range channels {
		descriptor, err := ds.IntValues(ch.descriptor)
		if err != nil {
			return nil, fmt.Errorf("reading %s palette descriptor: %w", ch.name, err)
		}
		data, err := ds.Uint16Values(ch.data)
		if err != nil {
			return nil, fmt.Errorf("reading %s palette data: %w", ch.name, err)
		}
		if tables[i], err = lut.NewTable(descriptor, data); err != nil {
			return nil, fmt.Errorf("%s palette: %w", ch.name, err)
		}
	}
	return &PaletteColorPipeline{tables[0], tables[1], tables[2]}, nil
}

// newRenderOptions reads the modality rescale and the first VOI window of ds. Without a window the
// full range of rescaled values in buf is shown.
func newRenderOptions(ds *dicom.DataSet, buf *PixelBuffer) *RenderOptions {
	o := &RenderOptions{RescaleSlope: 1, Function: lut.Linear}
	if v, err := ds.FloatValues(dicom.RescaleSlopeTag); err == nil && len(v) > 0 && v[0] != 0 {
		o.RescaleSlope = v[0]
	}
	if v, err := ds.FloatValues(dicom.RescaleInterceptTag); err == nil && len(v) > 0 {
		o.RescaleIntercept = v[0]
	}
	if term, err := ds.StringValue(dicom.VOILUTFunctionTag); err == nil {
		if f, err := lut.ParseVOIFunction(term); err == nil {
			o.Function = f
		}
	}

	centers, errC := ds.FloatValues(dicom.WindowCenterTag)
	widths, errW := ds.FloatValues(dicom.WindowWidthTag)
	if errC == nil && errW == nil && len(centers) > 0 && len(widths) > 0 && widths[0] > 0 {
		o.WindowCenter, o.WindowWidth = centers[0], max(widths[0], 1)
		return o
	}

	lo, hi := buf.MinMax()
	a := float64(lo)*o.RescaleSlope + o.RescaleIntercept
	b := float64(hi)*o.RescaleSlope + o.RescaleIntercept
	a, b = min(a, b), max(a, b)
	o.WindowCenter = (a + b) / 2
	o.WindowWidth = max(b-a, 1)
	return o
}
