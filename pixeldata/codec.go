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
	"fmt"
	"sync"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/dicom"
)

// Params controls how compressed frames are decoded.
type Params struct {
	// ConvertColorSpaceToRGB requests color frames as RGB rather than in the color space of the
	// bitstream (e.g. YBR_FULL for JPEG).
	ConvertColorSpaceToRGB bool
}

// Decoded is an uncompressed frame produced by a Codec. Samples are interleaved (color-by-pixel)
// and occupy BitsAllocated bits each, little endian for 16 bit samples.
type Decoded struct {
	Rows            int
	Columns         int
	SamplesPerPixel int
	BitsAllocated   int
	BitsStored      int
	Signed          bool
	Photometric     string
	Data            []byte
}

// Codec decodes the compressed bitstream of one frame.
type Codec interface {
	Decode(frame []byte, info Info, params Params) (*Decoded, error)
}

var (
	codecsMu sync.RWMutex
	codecs   = map[string]Codec{}
)

func init() {
	RegisterCodec(dicom.JPEGBaselineUID, jpegCodec{})
	RegisterCodec(dicom.JPEGExtendedUID, jpegCodec{})
}

// RegisterCodec makes a Codec available for the transfer syntax with the given UID, replacing any
// Codec registered before.
func RegisterCodec(uid string, c Codec) {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs[uid] = c
}

// LookupCodec returns the Codec registered for the transfer syntax UID.
func LookupCodec(uid string) (Codec, error) {
	codecsMu.RLock()
	defer codecsMu.RUnlock()
	c, ok := codecs[uid]
	if !ok {
		return nil, fmt.Errorf("no codec for %v: %w", uid, ErrUnsupportedTransferSyntax)
	}
	return c, nil
}
