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
	"image/color"

	"github.com/rs/zerolog"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/imaging/lut"
)

// RenderOptions are the grayscale rendering parameters. They are created with the first Grayscale
// pipeline of an Image and kept across frame changes.
type RenderOptions struct {
	WindowCenter float64
	WindowWidth  float64
	Function     lut.VOIFunction

	RescaleSlope     float64
	RescaleIntercept float64
}

// Option configures an Image.
type Option func(*Image)

// WithLogger sets the logger for debug output of decoding and rendering.
func WithLogger(logger zerolog.Logger) Option {
	return func(im *Image) {
		im.logger = logger
	}
}

// WithMetrics sets the collectors updated by the Image.
func WithMetrics(m *Metrics) Option {
	return func(im *Image) {
		im.metrics = m
	}
}

// WithOverlayColor sets the color graphic overlays are drawn with.
func WithOverlayColor(c color.Color) Option {
	return func(im *Image) {
		im.overlayColor = color.RGBAModel.Convert(c).(color.RGBA)
	}
}

// WithScale sets the initial scale factor.
func WithScale(s float64) Option {
	return func(im *Image) {
		im.scale = s
	}
}
