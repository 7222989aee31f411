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
	"fmt"

	"github.com/rs/zerolog"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-imaging/pixeldata"
)

// pixelStore converts data sets to an uncompressed syntax and decodes single frames from them.
type pixelStore struct {
	logger  zerolog.Logger
	metrics *Metrics

	// source is the data set normalized was derived from
	source     *dicom.DataSet
	normalized *dicom.DataSet
}

// normalize returns ds with its pixel data in Explicit VR Little Endian when ds is encapsulated,
// and ds itself otherwise. The result is kept for as long as the same data set is passed in.
func (s *pixelStore) normalize(ds *dicom.DataSet) (*dicom.DataSet, error) {
	if s.normalized != nil && s.source == ds {
		return s.normalized, nil
	}

	normalized := ds
	if syntax, err := ds.TransferSyntax(); err == nil && syntax.Encapsulated {
		params := pixeldata.Params{ConvertColorSpaceToRGB: syntax.UID == dicom.JPEGBaselineUID}
		normalized, err = pixeldata.ChangeTransferSyntax(ds, dicom.ExplicitVRLittleEndian, params)
		if err != nil {
			return nil, fmt.Errorf("normalizing %v pixel data: %w", syntax, err)
		}
		s.metrics.Normalizations.Inc()
		s.logger.Debug().Str("syntax", syntax.UID).Bool("rgb", params.ConvertColorSpaceToRGB).Msg("normalized pixel data")
	}

	s.source, s.normalized = ds, normalized
	return normalized, nil
}

// decodeFrame decodes one frame of a normalized data set and applies the scale.
func (s *pixelStore) decodeFrame(ds *dicom.DataSet, frame int, scale float64) (*PixelBuffer, error) {
	info, err := pixeldata.ReadInfo(ds)
	if err != nil {
		return nil, &DecodeError{Frame: frame, Reason: "reading image pixel module", Err: err}
	}
	raw, err := pixeldata.Frame(ds, frame)
	if err != nil {
		return nil, &DecodeError{Frame: frame, Reason: "reading frame", Err: err}
	}
	buf, err := newPixelBuffer(info, raw, frame)
	if err != nil {
		return nil, err
	}

	s.metrics.FrameDecodes.Inc()
	s.logger.Debug().Int("frame", frame).Float64("scale", scale).Msg("decoded frame")
	return buf.scaled(scale), nil
}
