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
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-imaging/imaging/compose"
	"github.com/GoogleCloudPlatform/go-dicom-imaging/pixeldata"
)

// ErrInvalidScale is returned for scale factors that are not finite and positive.
var ErrInvalidScale = errors.New("scale must be a finite number greater than 0")

// DefaultOverlayColor is the color graphic overlays are drawn with unless WithOverlayColor is
// given.
var DefaultOverlayColor = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}

// Image renders the frames of one data set. The decoded frame, the rendering pipeline and the
// graphic overlays are built on the first render and reused by the following ones.
type Image struct {
	source *dicom.DataSet
	info   pixeldata.Info
	store  *pixelStore

	logger       zerolog.Logger
	metrics      *Metrics
	overlayColor color.RGBA
	scale        float64

	buffer   *PixelBuffer
	pipeline Pipeline
	options  *RenderOptions
	overlays []*Overlay
}

// NewImage returns an Image for ds. No pixel data is decoded until the first render.
func NewImage(ds *dicom.DataSet, opts ...Option) (*Image, error) {
	im := &Image{
		source:       ds,
		logger:       log.Logger,
		overlayColor: DefaultOverlayColor,
		scale:        1,
	}
	for _, opt := range opts {
		opt(im)
	}
	if !validScale(im.scale) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidScale, im.scale)
	}
	if im.metrics == nil {
		im.metrics = NewMetrics(nil)
	}

	info, err := pixeldata.ReadInfo(ds)
	if err != nil {
		return nil, fmt.Errorf("reading image pixel module: %w", err)
	}
	im.info = info
	im.store = &pixelStore{logger: im.logger, metrics: im.metrics}
	return im, nil
}

// Open parses the DICOM file at path and returns an Image for it.
func Open(path string, opts ...Option) (*Image, error) {
	ds, err := dicom.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %v: %w", path, err)
	}
	return NewImage(ds, opts...)
}

// RenderImage renders frame as an image.
func (im *Image) RenderImage(frame int) (image.Image, error) {
	start := time.Now()
	img, err := im.composeCurrentFrame(frame)
	if err != nil {
		return nil, err
	}
	im.metrics.Renders.WithLabelValues("image").Inc()
	im.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	return img, nil
}

// RenderBitmap renders frame as a bottom-up BGRA bitmap.
func (im *Image) RenderBitmap(frame int) (*compose.Bitmap, error) {
	start := time.Now()
	img, err := im.composeCurrentFrame(frame)
	if err != nil {
		return nil, err
	}
	im.metrics.Renders.WithLabelValues("bitmap").Inc()
	im.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	return compose.NewBitmap(img), nil
}

// composeCurrentFrame brings the caches up to date for frame and composes it. The caches are only
// updated once the whole frame has been rendered, so a failed render leaves the Image as it was.
func (im *Image) composeCurrentFrame(frame int) (*image.RGBA, error) {
	logger := im.logger.With().Str("render_id", uuid.NewString()).Int("frame", frame).Logger()

	ds, err := im.store.normalize(im.source)
	if err != nil {
		return nil, &DecodeError{Frame: frame, Reason: "normalizing pixel data", Err: err}
	}

	buf := im.buffer
	if buf == nil || buf.Frame != frame {
		if buf, err = im.store.decodeFrame(ds, frame, im.scale); err != nil {
			return nil, err
		}
	}

	pipeline, options := im.pipeline, im.options
	if pipeline == nil {
		if pipeline, options, err = selectPipeline(ds, buf, im.options); err != nil {
			return nil, err
		}
		im.metrics.PipelineSelections.Inc()
		logger.Debug().Stringer("pipeline", pipeline.Kind()).Msg("selected pipeline")
	}

	overlays := im.overlays
	if overlays == nil {
		overlays = extractGraphicOverlays(ds, im.overlayColor, logger)
	}

	g, err := compose.NewGraphic(buf.Width, buf.Height, buf.SamplesPerPixel, buf.Samples)
	if err != nil {
		return nil, &DecodeError{Frame: frame, Reason: "composing frame", Err: err}
	}
	for _, o := range overlays {
		if mask, ok := o.Mask(frame); ok {
			g.AddOverlay(mask, o.Origin, o.Color, buf.Scale)
		}
	}
	img, err := g.Render(pipeline.LUT(buf))
	if err != nil {
		return nil, fmt.Errorf("rendering frame %d with %v pipeline: %w", frame, pipeline.Kind(), err)
	}

	im.buffer, im.pipeline, im.options, im.overlays = buf, pipeline, options, overlays
	logger.Debug().Int("width", buf.Width).Int("height", buf.Height).Int("overlays", len(overlays)).Msg("rendered frame")
	return img, nil
}

// SetScale sets the factor applied to the width and height of rendered frames. Changing it
// drops the decoded frame; the pipeline is kept.
func (im *Image) SetScale(s float64) error {
	if !validScale(s) {
		return fmt.Errorf("%w: got %v", ErrInvalidScale, s)
	}
	if s == im.scale {
		return nil
	}
	im.scale = s
	im.buffer = nil
	return nil
}

// Scale returns the current scale factor.
func (im *Image) Scale() float64 {
	return im.scale
}

// Reset drops the decoded frame, the pipeline and the overlays. The window settings survive and
// are picked up again if the next pipeline is Grayscale.
func (im *Image) Reset() {
	im.buffer = nil
	im.pipeline = nil
	im.overlays = nil
}

// Pipeline returns the active pipeline, or nil before the first successful render and after
// Reset.
func (im *Image) Pipeline() Pipeline {
	return im.pipeline
}

// Options returns a copy of the rendering options, or false if none have been created yet.
func (im *Image) Options() (RenderOptions, bool) {
	if im.options == nil {
		return RenderOptions{}, false
	}
	return *im.options, true
}

// SetWindowCenter sets the VOI window center. It has no effect unless the active pipeline is
// Grayscale.
func (im *Image) SetWindowCenter(c float64) {
	if p, ok := im.pipeline.(*GrayscalePipeline); ok {
		p.Options().WindowCenter = c
	}
}

// SetWindowWidth sets the VOI window width, which is at least 1. It has no effect unless the
// active pipeline is Grayscale.
func (im *Image) SetWindowWidth(w float64) {
	if p, ok := im.pipeline.(*GrayscalePipeline); ok {
		p.Options().WindowWidth = max(w, 1)
	}
}

// NumberOfFrames returns the number of frames in the image.
func (im *Image) NumberOfFrames() int {
	return im.info.NumberOfFrames
}

// Width returns the width of rendered frames at the current scale.
func (im *Image) Width() int {
	return scaledDimension(im.info.Columns, im.scale)
}

// Height returns the height of rendered frames at the current scale.
func (im *Image) Height() int {
	return scaledDimension(im.info.Rows, im.scale)
}

// Overlays returns the graphic overlays found by the last successful render.
func (im *Image) Overlays() []*Overlay {
	return im.overlays
}

func validScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}

func scaledDimension(n int, s float64) int {
	if s == 1 {
		return n
	}
	return max(1, int(math.Floor(float64(n)*s)))
}
