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
	"image/color"
	"testing"
)

func gray(v uint8) color.RGBA {
	return color.RGBA{v, v, v, 0xFF}
}

func TestGrayscale(t *testing.T) {
	testCases := []struct {
		name   string
		params GrayscaleParams
		in     int32
		want   color.RGBA
	}{
		{
			"linear below window",
			GrayscaleParams{MinValue: 0, MaxValue: 255, WindowCenter: 128, WindowWidth: 100},
			50,
			gray(0),
		},
		{
			"linear above window",
			GrayscaleParams{MinValue: 0, MaxValue: 255, WindowCenter: 128, WindowWidth: 100},
			200,
			gray(255),
		},
		{
			"linear identity window",
			GrayscaleParams{MinValue: 0, MaxValue: 255, WindowCenter: 128, WindowWidth: 256},
			100,
			gray(100),
		},
		{
			"linear exact center",
			GrayscaleParams{MinValue: 0, MaxValue: 255, WindowCenter: 100, WindowWidth: 50, Function: LinearExact},
			100,
			gray(128),
		},
		{
			"sigmoid center",
			GrayscaleParams{MinValue: 0, MaxValue: 255, WindowCenter: 100, WindowWidth: 50, Function: Sigmoid},
			100,
			gray(128),
		},
		{
			"rescale moves value into window",
			GrayscaleParams{MinValue: 0, MaxValue: 4095, RescaleSlope: 1, RescaleIntercept: -1024, WindowCenter: 40, WindowWidth: 1},
			1100,
			gray(255),
		},
		{
			"inverted",
			GrayscaleParams{MinValue: 0, MaxValue: 255, WindowCenter: 128, WindowWidth: 100, Invert: true},
			50,
			gray(255),
		},
		{
			"signed values clamp to table",
			GrayscaleParams{MinValue: -100, MaxValue: 100, WindowCenter: 0, WindowWidth: 101},
			-500,
			gray(0),
		},
		{
			"zero width is raised to one",
			GrayscaleParams{MinValue: 0, MaxValue: 10, WindowCenter: 5, WindowWidth: 0},
			6,
			gray(255),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewGrayscale(tc.params).Map([]int32{tc.in}); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseVOIFunction(t *testing.T) {
	testCases := []struct {
		in      string
		want    VOIFunction
		wantErr bool
	}{
		{"", Linear, false},
		{"LINEAR_EXACT", LinearExact, false},
		{"sigmoid ", Sigmoid, false},
		{"CUBIC", "", true},
	}

	for _, tc := range testCases {
		got, err := ParseVOIFunction(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ParseVOIFunction(%q) => (%v, %v), want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestPalette(t *testing.T) {
	red, err := NewTable([]int64{4, 10, 16}, []uint16{0x0000, 0x5500, 0xAA00, 0xFF00})
	if err != nil {
		t.Fatalf("NewTable(_, _) => %v", err)
	}
	green, err := NewTable([]int64{4, 10, 8}, []uint16{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewTable(_, _) => %v", err)
	}
	blue, err := NewTable([]int64{4, 10, 8}, []uint16{0x0605, 0x0807})
	if err != nil {
		t.Fatalf("NewTable(_, _) => %v", err)
	}
	p := NewPalette(red, green, blue)

	testCases := []struct {
		in   int32
		want color.RGBA
	}{
		{10, color.RGBA{0x00, 1, 5, 0xFF}},
		{12, color.RGBA{0xAA, 3, 7, 0xFF}},
		{0, color.RGBA{0x00, 1, 5, 0xFF}},
		{100, color.RGBA{0xFF, 4, 8, 0xFF}},
	}
	for _, tc := range testCases {
		if got := p.Map([]int32{tc.in}); got != tc.want {
			t.Fatalf("Map(%v) => %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewTable_errors(t *testing.T) {
	testCases := []struct {
		name       string
		descriptor []int64
		data       []uint16
	}{
		{"short descriptor", []int64{4, 0}, []uint16{1}},
		{"unsupported bits", []int64{4, 0, 12}, []uint16{1}},
		{"empty data", []int64{4, 0, 16}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTable(tc.descriptor, tc.data); err == nil {
				t.Fatalf("expected error for %v", tc.descriptor)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	testCases := []struct {
		bits int
		in   []int32
		want color.RGBA
	}{
		{8, []int32{1, 2, 3}, color.RGBA{1, 2, 3, 0xFF}},
		{12, []int32{4095, 16, 0}, color.RGBA{255, 1, 0, 0xFF}},
	}
	for _, tc := range testCases {
		if got := NewRGB(tc.bits).Map(tc.in); got != tc.want {
			t.Fatalf("Map(%v) => %v, want %v", tc.in, got, tc.want)
		}
	}
}
