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

package config

import (
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile(%v) => %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
format: bmp
scale: 0.5
window:
  center: 40
  width: 400
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%v) => %v", path, err)
	}
	want := &Config{
		LogLevel:     "info",
		Format:       FormatBMP,
		Scale:        0.5,
		OverlayColor: "#FF00FF",
		Window:       &WindowConfig{Center: 40, Width: 400},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoad_environment(t *testing.T) {
	t.Setenv("DCMRENDER_SCALE", "2")
	t.Setenv("DCMRENDER_LOG_LEVEL", "debug")
	t.Setenv("DCMRENDER_OVERLAY_COLOR", "#00FF00")

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") => %v", err)
	}
	want := &Config{LogLevel: "debug", Format: FormatPNG, Scale: 2, OverlayColor: "#00FF00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoad_errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "scale: [1"},
		{"unknown format", "format: tiff"},
		{"zero scale", "scale: 0"},
		{"bad color", "overlay_color: magenta"},
		{"narrow window", "window: {center: 0, width: 0}"},
		{"bad log level", "log_level: loud"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Fatalf("Load(_) => nil error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load(_) => nil error for a missing file")
	}
}

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF00FF", color.RGBA{0xFF, 0x00, 0xFF, 0xFF}, false},
		{" #102030 ", color.RGBA{0x10, 0x20, 0x30, 0xFF}, false},
		{"FF00FF", color.RGBA{}, true},
		{"#FF00F", color.RGBA{}, true},
		{"#GG0000", color.RGBA{}, true},
	}

	for _, tc := range testCases {
		got, err := ParseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseColor(%q) => %v, want error %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseColor(%q) => %v, want %v", tc.in, got, tc.want)
		}
	}
}
