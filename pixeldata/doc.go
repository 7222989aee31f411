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

// Package pixeldata reads the Image Pixel Module of a DICOM data set: the frame geometry and sample
// layout (Info), the bytes of a single frame (Frame, EncapsulatedFrame) and the conversion of
// encapsulated pixel data to an uncompressed transfer syntax (ChangeTransferSyntax).
//
// Compressed frames are decoded by the Codec registered for their transfer syntax. JPEG Baseline
// and JPEG Extended are registered by default; other encapsulated syntaxes report
// ErrUnsupportedTransferSyntax unless a Codec is registered with RegisterCodec.
package pixeldata
