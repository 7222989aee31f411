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
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

func setOverlay(ds *dicom.DataSet, group uint16, overlayType string, rows, columns uint16, origin []int16, data []byte) {
	ds.Set(dicom.OverlayTypeTag.WithGroup(group), []string{overlayType})
	ds.Set(dicom.OverlayRowsTag.WithGroup(group), []uint16{rows})
	ds.Set(dicom.OverlayColumnsTag.WithGroup(group), []uint16{columns})
	ds.Set(dicom.OverlayOriginTag.WithGroup(group), origin)
	ds.Set(dicom.OverlayBitsAllocatedTag.WithGroup(group), []uint16{1})
	ds.Set(dicom.OverlayBitPositionTag.WithGroup(group), []uint16{0})
	if data != nil {
		ds.Set(dicom.OverlayDataTag.WithGroup(group), data)
	}
}

func TestExtractGraphicOverlays(t *testing.T) {
	ds := grayscaleDataSet([]byte{0, 0, 0, 0})
	setOverlay(ds, 0x6004, "R", 2, 2, []int16{1, 1}, []byte{0x0F})
	setOverlay(ds, 0x6002, "G", 1, 1, []int16{2, 2}, []byte{0x01})
	setOverlay(ds, 0x6000, "G", 2, 2, []int16{1, 1}, []byte{0x0F})
	setOverlay(ds, 0x6006, "G", 2, 2, []int16{1, 1}, []byte{})
	setOverlay(ds, 0x6008, "G", 2, 2, []int16{1, 1}, nil)
	ds.Set(dicom.OverlayLabelTag.WithGroup(0x6002), []string{"marker"})

	got := extractGraphicOverlays(ds, DefaultOverlayColor, zerolog.Nop())

	var groups []uint16
	for _, o := range got {
		groups = append(groups, o.Group)
	}
	if want := []uint16{0x6000, 0x6002}; !reflect.DeepEqual(groups, want) {
		t.Fatalf("got groups %x, want %x", groups, want)
	}
	want := &Overlay{
		Group:       0x6002,
		Rows:        1,
		Columns:     1,
		Origin:      image.Pt(1, 1),
		Type:        "G",
		Label:       "marker",
		FrameOrigin: 1,
		FrameCount:  1,
		Data:        []byte{0x01},
		Color:       DefaultOverlayColor,
	}
	if !reflect.DeepEqual(got[1], want) {
		t.Fatalf("got %+v, want %+v", got[1], want)
	}
}

func TestExtractGraphicOverlays_bigEndianWords(t *testing.T) {
	ds := grayscaleDataSet([]byte{0, 0, 0, 0})
	ds.Set(dicom.TransferSyntaxUIDTag, []string{dicom.ExplicitVRBigEndianUID})
	setOverlay(ds, 0x6000, "G", 2, 8, []int16{1, 1}, []byte{0x00, 0x01})

	got := extractGraphicOverlays(ds, DefaultOverlayColor, zerolog.Nop())
	if len(got) != 1 {
		t.Fatalf("got %v overlays, want 1", len(got))
	}
	if want := []byte{0x01, 0x00}; !reflect.DeepEqual(got[0].Data, want) {
		t.Fatalf("got %v, want %v", got[0].Data, want)
	}
}

func TestOverlayMask(t *testing.T) {
	o := &Overlay{Rows: 1, Columns: 2, FrameOrigin: 2, FrameCount: 2, Data: []byte{0x06}}
	testCases := []struct {
		frame int
		want  []uint8
		ok    bool
	}{
		{0, nil, false},
		{1, []uint8{0x00, 0xFF}, true},
		{2, []uint8{0xFF, 0x00}, true},
		{3, nil, false},
	}

	for _, tc := range testCases {
		mask, ok := o.Mask(tc.frame)
		if ok != tc.ok {
			t.Fatalf("Mask(%v) => %v, want %v", tc.frame, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if !reflect.DeepEqual(mask.Pix, tc.want) {
			t.Fatalf("Mask(%v) => %v, want %v", tc.frame, mask.Pix, tc.want)
		}
	}
}

func TestOverlayMask_shortData(t *testing.T) {
	o := &Overlay{Rows: 4, Columns: 4, FrameOrigin: 1, FrameCount: 2, Data: []byte{0xFF, 0xFF}}
	if _, ok := o.Mask(1); ok {
		t.Fatalf("Mask(1) => true for a frame past the overlay data")
	}
}

func TestRenderImage_overlays(t *testing.T) {
	ds := grayscaleDataSet([]byte{0, 0, 0, 0})
	setOverlay(ds, 0x6000, "G", 2, 2, []int16{1, 1}, []byte{0x0F})
	setOverlay(ds, 0x6002, "G", 1, 1, []int16{2, 2}, []byte{0x01})
	im, _ := newTestImage(t, ds)

	img := render(t, im, 0)
	for _, p := range []image.Point{{0, 0}, {1, 1}} {
		if got := img.RGBAAt(p.X, p.Y); got != DefaultOverlayColor {
			t.Fatalf("%v: got %v, want %v", p, got, DefaultOverlayColor)
		}
	}

	overlays := im.Overlays()
	if len(overlays) != 2 {
		t.Fatalf("got %v overlays, want 2", len(overlays))
	}
	red, green := color.RGBA{0xFF, 0, 0, 0xFF}, color.RGBA{0, 0xFF, 0, 0xFF}
	overlays[0].Color, overlays[1].Color = red, green

	img = render(t, im, 0)
	if got := img.RGBAAt(0, 0); got != red {
		t.Fatalf("got %v, want %v", got, red)
	}
	if got := img.RGBAAt(1, 1); got != green {
		t.Fatalf("got %v under the later overlay, want %v", got, green)
	}
}

func TestRenderImage_overlayColorAndScale(t *testing.T) {
	ds := grayscaleDataSet([]byte{0, 0, 0, 0})
	setOverlay(ds, 0x6000, "G", 1, 1, []int16{2, 2}, []byte{0x01})
	blue := color.RGBA{0, 0, 0xFF, 0xFF}
	im, _ := newTestImage(t, ds, WithOverlayColor(blue), WithScale(2))

	img := render(t, im, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			covered := x >= 2 && y >= 2
			if got := img.RGBAAt(x, y); (got == blue) != covered {
				t.Fatalf("(%v, %v): got %v, overlay expected %v", x, y, got, covered)
			}
		}
	}
}
