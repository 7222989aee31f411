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
	"errors"
	"image/color"
	"testing"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-imaging/imaging/lut"
)

// rgbDataSet returns a 2x2 image with three 8 bit samples per pixel. An empty photometric
// interpretation leaves the attribute out.
func rgbDataSet(photometric string) *dicom.DataSet {
	ds := dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.TransferSyntaxUIDTag:   []string{dicom.ExplicitVRLittleEndianUID},
		dicom.SamplesPerPixelTag:     []uint16{3},
		dicom.RowsTag:                []uint16{2},
		dicom.ColumnsTag:             []uint16{2},
		dicom.BitsAllocatedTag:       []uint16{8},
		dicom.BitsStoredTag:          []uint16{8},
		dicom.HighBitTag:             []uint16{7},
		dicom.PlanarConfigurationTag: []uint16{0},
		dicom.PixelDataTag:           []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120},
	})
	if photometric != "" {
		ds.Set(dicom.PhotometricInterpretationTag, []string{photometric})
	}
	return ds
}

// paletteDataSet returns a 2x2 image of indices 0 to 3 through a four entry palette of red,
// green, blue and black. The photometric interpretation is left out.
func paletteDataSet() *dicom.DataSet {
	return dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.TransferSyntaxUIDTag:                      []string{dicom.ExplicitVRLittleEndianUID},
		dicom.RowsTag:                                   []uint16{2},
		dicom.ColumnsTag:                                []uint16{2},
		dicom.BitsAllocatedTag:                          []uint16{8},
		dicom.RedPaletteColorLookupTableDescriptorTag:   []uint16{4, 0, 16},
		dicom.GreenPaletteColorLookupTableDescriptorTag: []uint16{4, 0, 16},
		dicom.BluePaletteColorLookupTableDescriptorTag:  []uint16{4, 0, 16},
		dicom.RedPaletteColorLookupTableDataTag:         []uint16{0xFFFF, 0, 0, 0},
		dicom.GreenPaletteColorLookupTableDataTag:       []uint16{0, 0xFFFF, 0, 0},
		dicom.BluePaletteColorLookupTableDataTag:        []uint16{0, 0, 0xFFFF, 0},
		dicom.PixelDataTag:                              []byte{0, 1, 2, 3},
	})
}

func TestResolveColorModel(t *testing.T) {
	testCases := []struct {
		name     string
		elements map[dicom.DataElementTag]interface{}
		want     string
	}{
		{
			"explicit photometric interpretation",
			map[dicom.DataElementTag]interface{}{
				dicom.PhotometricInterpretationTag:      []string{"MONOCHROME1"},
				dicom.SamplesPerPixelTag:                []uint16{3},
				dicom.RedPaletteColorLookupTableDataTag: []uint16{0},
			},
			"MONOCHROME1",
		},
		{
			"explicit unsupported photometric interpretation",
			map[dicom.DataElementTag]interface{}{
				dicom.PhotometricInterpretationTag: []string{"YBR_FULL"},
			},
			"YBR_FULL",
		},
		{
			"no samples per pixel",
			map[dicom.DataElementTag]interface{}{},
			"MONOCHROME2",
		},
		{
			"one sample",
			map[dicom.DataElementTag]interface{}{
				dicom.SamplesPerPixelTag: []uint16{1},
			},
			"MONOCHROME2",
		},
		{
			"one sample with palette",
			map[dicom.DataElementTag]interface{}{
				dicom.SamplesPerPixelTag:                []uint16{1},
				dicom.RedPaletteColorLookupTableDataTag: []uint16{0},
			},
			"PALETTE COLOR",
		},
		{
			"zero samples with palette",
			map[dicom.DataElementTag]interface{}{
				dicom.SamplesPerPixelTag:                []uint16{0},
				dicom.RedPaletteColorLookupTableDataTag: []uint16{0},
			},
			"PALETTE COLOR",
		},
		{
			"three samples",
			map[dicom.DataElementTag]interface{}{
				dicom.SamplesPerPixelTag: []uint16{3},
			},
			"RGB",
		},
		{
			"four samples",
			map[dicom.DataElementTag]interface{}{
				dicom.SamplesPerPixelTag:                []uint16{4},
				dicom.RedPaletteColorLookupTableDataTag: []uint16{0},
			},
			"RGB",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveColorModel(dicom.NewDataSet(tc.elements)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderImage_paletteFallback(t *testing.T) {
	im, _ := newTestImage(t, paletteDataSet())
	img := render(t, im, 0)

	if k := im.Pipeline().Kind(); k != PaletteColor {
		t.Fatalf("got %v pipeline, want %v", k, PaletteColor)
	}
	want := map[[2]int]color.RGBA{
		{0, 0}: {0xFF, 0, 0, 0xFF},
		{1, 0}: {0, 0xFF, 0, 0xFF},
		{0, 1}: {0, 0, 0xFF, 0xFF},
		{1, 1}: {0, 0, 0, 0xFF},
	}
	for p, c := range want {
		if got := img.RGBAAt(p[0], p[1]); got != c {
			t.Fatalf("%v: got %v, want %v", p, got, c)
		}
	}
	if _, ok := im.Options(); ok {
		t.Fatalf("got options for a palette color image")
	}
}

func TestRenderImage_rgb(t *testing.T) {
	for _, photometric := range []string{"RGB", ""} {
		t.Run("photometric="+photometric, func(t *testing.T) {
			im, _ := newTestImage(t, rgbDataSet(photometric))
			img := render(t, im, 0)
			if k := im.Pipeline().Kind(); k != RGB {
				t.Fatalf("got %v pipeline, want %v", k, RGB)
			}
			if got, want := img.RGBAAt(1, 1), (color.RGBA{100, 110, 120, 0xFF}); got != want {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}
}

func TestSelectPipeline_paletteErrors(t *testing.T) {
	ds := paletteDataSet()
	ds.Set(dicom.GreenPaletteColorLookupTableDescriptorTag, []uint16{4, 0, 12})
	if _, _, err := selectPipeline(ds, &PixelBuffer{}, nil); err == nil {
		t.Fatalf("selectPipeline(_) => nil error for 12 bit palette entries")
	}

	ds = paletteDataSet()
	delete(ds.Elements, dicom.BluePaletteColorLookupTableDataTag)
	_, _, err := selectPipeline(ds, &PixelBuffer{}, nil)
	if !errors.Is(err, dicom.ErrElementNotFound) {
		t.Fatalf("selectPipeline(_) => %v, want %v", err, dicom.ErrElementNotFound)
	}
}

func TestSelectPipeline_reusesOptions(t *testing.T) {
	existing := &RenderOptions{WindowCenter: 40, WindowWidth: 400, RescaleSlope: 1}
	p, got, err := selectPipeline(grayscaleDataSet([]byte{0, 1, 2, 3}), &PixelBuffer{}, existing)
	if err != nil {
		t.Fatalf("selectPipeline(_) => %v", err)
	}
	if got != existing || p.(*GrayscalePipeline).Options() != existing {
		t.Fatalf("got options %+v, want the existing ones", got)
	}
}

func TestNewRenderOptions(t *testing.T) {
	testCases := []struct {
		name     string
		elements map[dicom.DataElementTag]interface{}
		samples  []int32
		want     RenderOptions
	}{
		{
			"window from data set",
			map[dicom.DataElementTag]interface{}{
				dicom.WindowCenterTag:   []string{"40", "300"},
				dicom.WindowWidthTag:    []string{"400", "1500"},
				dicom.VOILUTFunctionTag: []string{"SIGMOID"},
			},
			[]int32{0, 10},
			RenderOptions{WindowCenter: 40, WindowWidth: 400, Function: lut.Sigmoid, RescaleSlope: 1},
		},
		{
			"window from rescaled range",
			map[dicom.DataElementTag]interface{}{
				dicom.RescaleSlopeTag:     []string{"2"},
				dicom.RescaleInterceptTag: []string{"-1024"},
			},
			[]int32{0, 100},
			RenderOptions{WindowCenter: -924, WindowWidth: 200, Function: lut.Linear, RescaleSlope: 2, RescaleIntercept: -1024},
		},
		{
			"flat frame",
			map[dicom.DataElementTag]interface{}{},
			[]int32{7, 7},
			RenderOptions{WindowCenter: 7, WindowWidth: 1, Function: lut.Linear, RescaleSlope: 1},
		},
		{
			"zero slope and unknown function",
			map[dicom.DataElementTag]interface{}{
				dicom.RescaleSlopeTag:   []string{"0"},
				dicom.VOILUTFunctionTag: []string{"CUSTOM"},
			},
			[]int32{0, 4},
			RenderOptions{WindowCenter: 2, WindowWidth: 4, Function: lut.Linear, RescaleSlope: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := newRenderOptions(dicom.NewDataSet(tc.elements), &PixelBuffer{Samples: tc.samples})
			if *got != tc.want {
				t.Fatalf("got %+v, want %+v", *got, tc.want)
			}
		})
	}
}
