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

// Package imaging renders the frames of a DICOM image.
//
// An Image wraps a parsed data set and lazily maintains three caches: the decoded samples of the
// last rendered frame (PixelBuffer), the rendering Pipeline chosen from the photometric
// interpretation, and the graphic overlays. Changing the frame or the scale only drops the
// PixelBuffer; the Pipeline, and with it the window settings, lives until Reset.
//
// Compressed data sets are converted once to Explicit VR Little Endian before the first frame is
// decoded. JPEG Baseline images are converted to RGB as part of that step.
//
// An Image is not safe for concurrent use.
package imaging
