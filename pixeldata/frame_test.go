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
	"reflect"
	"testing"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

func nativeDataSet(frames string, pixels []byte) *dicom.DataSet {
	return dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.TransferSyntaxUIDTag: []string{dicom.ExplicitVRLittleEndianUID},
		dicom.RowsTag:              []uint16{1},
		dicom.ColumnsTag:           []uint16{2},
		dicom.BitsAllocatedTag:     []uint16{8},
		dicom.NumberOfFramesTag:    []string{frames},
		dicom.PixelDataTag:         pixels,
	})
}

func TestFrame(t *testing.T) {
	ds := nativeDataSet("3", []byte{1, 2, 3, 4, 5, 6})
	testCases := []struct {
		frame int
		want  []byte
		err   error
	}{
		{0, []byte{1, 2}, nil},
		{2, []byte{5, 6}, nil},
		{3, nil, ErrFrameOutOfRange},
		{-1, nil, ErrFrameOutOfRange},
	}

	for _, tc := range testCases {
		got, err := Frame(ds, tc.frame)
		if !errors.Is(err, tc.err) {
			t.Fatalf("Frame(_, %v) => %v, want %v", tc.frame, err, tc.err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Frame(_, %v) => %v, want %v", tc.frame, got, tc.want)
		}
	}
}

func TestFrame_shortPixelData(t *testing.T) {
	ds := nativeDataSet("3", []byte{1, 2, 3, 4})
	if _, err := Frame(ds, 2); !errors.Is(err, ErrShortPixelData) {
		t.Fatalf("got %v, want %v", err, ErrShortPixelData)
	}
}

func TestFrame_encapsulated(t *testing.T) {
	ds := nativeDataSet("1", nil)
	ds.Set(dicom.TransferSyntaxUIDTag, []string{dicom.JPEGBaselineUID})
	ds.Set(dicom.PixelDataTag, dicom.NewEncapsulatedPixelData([]byte{0xFF, 0xD8}))
	if _, err := Frame(ds, 0); !errors.Is(err, ErrUnsupportedTransferSyntax) {
		t.Fatalf("got %v, want %v", err, ErrUnsupportedTransferSyntax)
	}
}

func TestAssembleFrame(t *testing.T) {
	eoi := []byte{0xFF, 0xD9}
	testCases := []struct {
		name      string
		pixels    *dicom.EncapsulatedPixelData
		numFrames int
		frame     int
		want      []byte
	}{
		{
			"single frame spans all fragments",
			&dicom.EncapsulatedPixelData{Fragments: [][]byte{{1, 2}, {3, 4}}},
			1, 0,
			[]byte{1, 2, 3, 4},
		},
		{
			"basic offset table",
			&dicom.EncapsulatedPixelData{
				OffsetTable: []uint32{0, 20},
				Fragments:   [][]byte{{1, 2}, {3, 4}, {5, 6}},
			},
			2, 1,
			[]byte{5, 6},
		},
		{
			"basic offset table first frame",
			&dicom.EncapsulatedPixelData{
				OffsetTable: []uint32{0, 20},
				Fragments:   [][]byte{{1, 2}, {3, 4}, {5, 6}},
			},
			2, 0,
			[]byte{1, 2, 3, 4},
		},
		{
			"one fragment per frame",
			&dicom.EncapsulatedPixelData{Fragments: [][]byte{{1, 2}, {3, 4}}},
			2, 1,
			[]byte{3, 4},
		},
		{
			"grouped by end of image marker",
			&dicom.EncapsulatedPixelData{Fragments: [][]byte{{1, 2}, {3, 0xFF, 0xD9, 0}, {5, 6}, eoi, {7, 8}}},
			2, 1,
			[]byte{5, 6, 0xFF, 0xD9},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := assembleFrame(tc.pixels, tc.frame, tc.numFrames)
			if err != nil {
				t.Fatalf("assembleFrame(_, %v, %v) => %v", tc.frame, tc.numFrames, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAssembleFrame_errors(t *testing.T) {
	p := &dicom.EncapsulatedPixelData{Fragments: [][]byte{{1, 2}}}
	if _, err := assembleFrame(p, 1, 1); !errors.Is(err, ErrFrameOutOfRange) {
		t.Fatalf("got %v, want %v", err, ErrFrameOutOfRange)
	}
	if _, err := assembleFrame(&dicom.EncapsulatedPixelData{}, 0, 1); !errors.Is(err, ErrShortPixelData) {
		t.Fatalf("got %v, want %v", err, ErrShortPixelData)
	}
}
