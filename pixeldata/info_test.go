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
	"errors"
	"testing"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

func TestReadInfo(t *testing.T) {
	ds := dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.TransferSyntaxUIDTag:         []string{dicom.ExplicitVRBigEndianUID},
		dicom.RowsTag:                      []uint16{4},
		dicom.ColumnsTag:                   []uint16{3},
		dicom.BitsAllocatedTag:             []uint16{16},
		dicom.BitsStoredTag:                []uint16{12},
		dicom.NumberOfFramesTag:            []string{"2"},
		dicom.PhotometricInterpretationTag: []string{"MONOCHROME1"},
	})
	got, err := ReadInfo(ds)
	if err != nil {
		t.Fatalf("ReadInfo(_) => %v", err)
	}
	want := Info{
		Rows: 4, Columns: 3, SamplesPerPixel: 0, BitsAllocated: 16, BitsStored: 12, HighBit: 11,
		NumberOfFrames: 2, Photometric: "MONOCHROME1", Syntax: dicom.ExplicitVRBigEndian,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got.Samples() != 1 {
		t.Fatalf("got %v samples, want 1", got.Samples())
	}
	if got.FrameLength() != 24 {
		t.Fatalf("got frame length %v, want 24", got.FrameLength())
	}
}

func TestReadInfo_missingAttribute(t *testing.T) {
	testCases := []struct {
		name    string
		missing dicom.DataElementTag
	}{
		{"rows", dicom.RowsTag},
		{"columns", dicom.ColumnsTag},
		{"bits allocated", dicom.BitsAllocatedTag},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
				dicom.RowsTag:          []uint16{1},
				dicom.ColumnsTag:       []uint16{1},
				dicom.BitsAllocatedTag: []uint16{8},
			})
			delete(ds.Elements, tc.missing)
			if _, err := ReadInfo(ds); !errors.Is(err, ErrMissingAttribute) {
				t.Fatalf("got %v, want %v", err, ErrMissingAttribute)
			}
		})
	}
}
