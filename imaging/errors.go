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

import "fmt"

// UnsupportedPipelineError is returned when the photometric interpretation of an image has no
// rendering pipeline.
type UnsupportedPipelineError struct {
	ColorModel string
}

func (e *UnsupportedPipelineError) Error() string {
	return fmt.Sprintf("no rendering pipeline for photometric interpretation %q", e.ColorModel)
}

// DecodeError is returned when the samples of a frame cannot be decoded, either because the frame
// does not exist or because the sample layout is not supported.
type DecodeError struct {
	Frame  int
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decoding frame %d: %s", e.Frame, e.Reason)
	}
	return fmt.Sprintf("decoding frame %d: %s: %v", e.Frame, e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
