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
	"encoding/binary"
	"image"
	"image/color"
	"strings"

	"github.com/rs/zerolog"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

// Overlay is a graphic overlay plane (60xx) as described in
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.9.2
type Overlay struct {
	Group   uint16
	Rows    int
	Columns int

	// Origin is the position of the top left overlay pixel in the image, zero based.
	Origin image.Point

	Type        string
	Description string
	Label       string

	// FrameOrigin is the one based image frame the first overlay frame applies to.
	FrameOrigin int
	FrameCount  int

	// Data holds the overlay bits, least significant bit first.
	Data []byte

	Color color.RGBA
}

// Mask returns the plane of the overlay for the zero based image frame, or false when the overlay
// has no frame for it.
func (o *Overlay) Mask(frame int) (*image.Alpha, bool) {
	k := frame + 1 - o.FrameOrigin
	if k < 0 || k >= o.FrameCount {
		return nil, false
	}
	size := o.Rows * o.Columns
	first := k * size
	if (first+size+7)/8 > len(o.Data) {
		return nil, false
	}

	mask := image.NewAlpha(image.Rect(0, 0, o.Columns, o.Rows))
	for i := 0; i < size; i++ {
		bit := first + i
		if o.Data[bit/8]&(1<<(bit%8)) != 0 {
			mask.Pix[i] = 0xFF
		}
	}
	return mask, true
}

// extractGraphicOverlays returns the graphic overlays of ds that carry overlay data, in ascending
// group order.
func extractGraphicOverlays(ds *dicom.DataSet, c color.RGBA, logger zerolog.Logger) []*Overlay {
	order := binary.ByteOrder(binary.LittleEndian)
	if syntax, err := ds.TransferSyntax(); err == nil {
		order = syntax.ByteOrder
	}

	overlays := []*Overlay{}
	for _, group := range ds.OverlayGroups() {
		tag := func(t dicom.DataElementTag) dicom.DataElementTag { return t.WithGroup(group) }

		overlayType, _ := ds.StringValue(tag(dicom.OverlayTypeTag))
		overlayType = strings.ToUpper(strings.TrimSpace(overlayType))
		if overlayType != "G" {
			continue
		}
		elem, err := ds.Element(tag(dicom.OverlayDataTag))
		if err != nil {
			continue
		}
		data, ok := elem.ValueField.([]byte)
		if !ok || len(data) == 0 {
			continue
		}
		rows, errRows := ds.IntValue(tag(dicom.OverlayRowsTag))
		columns, errColumns := ds.IntValue(tag(dicom.OverlayColumnsTag))
		if errRows != nil || errColumns != nil || rows <= 0 || columns <= 0 {
			logger.Debug().Uint16("group", group).Msg("skipping overlay without size")
			continue
		}
		if elem.VR == dicom.OWVR && order == binary.BigEndian {
			data = swapWords(data)
		}

		o := &Overlay{
			Group:       group,
			Rows:        int(rows),
			Columns:     int(columns),
			Type:        overlayType,
			FrameOrigin: 1,
			FrameCount:  1,
			Data:        data,
			Color:       c,
		}
		if origin, err := ds.IntValues(tag(dicom.OverlayOriginTag)); err == nil && len(origin) == 2 {
			o.Origin = image.Pt(int(origin[1])-1, int(origin[0])-1)
		}
		o.Description, _ = ds.StringValue(tag(dicom.OverlayDescriptionTag))
		o.Label, _ = ds.StringValue(tag(dicom.OverlayLabelTag))
		if v, err := ds.IntValue(tag(dicom.ImageFrameOriginTag)); err == nil && v > 0 {
			o.FrameOrigin = int(v)
		}
		if v, err := ds.IntValue(tag(dicom.NumberOfFramesInOverlayTag)); err == nil && v > 0 {
			o.FrameCount = int(v)
		}
		overlays = append(overlays, o)
	}
	return overlays
}

func swapWords(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	for i := 0; i+1 < len(out); i += 2 {
		out[i], out[i+1] = out[i+1], out[i]
	}
	return out
}
