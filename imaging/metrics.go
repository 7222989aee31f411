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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the expensive steps of rendering.
type Metrics struct {
	FrameDecodes       prometheus.Counter
	PipelineSelections prometheus.Counter
	Normalizations     prometheus.Counter

	Renders        *prometheus.CounterVec
	RenderDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FrameDecodes: f.NewCounter(prometheus.CounterOpts{
			Name: "imaging_frame_decodes_total",
			Help: "Total number of frames decoded into pixel buffers",
		}),
		PipelineSelections: f.NewCounter(prometheus.CounterOpts{
			Name: "imaging_pipeline_selections_total",
			Help: "Total number of rendering pipelines constructed",
		}),
		Normalizations: f.NewCounter(prometheus.CounterOpts{
			Name: "imaging_normalizations_total",
			Help: "Total number of data sets converted to an uncompressed transfer syntax",
		}),
		Renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imaging_renders_total",
				Help: "Total number of rendered frames",
			},
			[]string{"output"}, // output: image or bitmap
		),
		RenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "imaging_render_duration_seconds",
			Help:    "Duration of frame renders in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}),
	}
}
