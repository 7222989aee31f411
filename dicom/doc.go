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

// Package dicom parses and writes the DICOM file format as specified in
// [http://dicom.nema.org/medical/dicom/current/output/pdf/part05.pdf] and exposes the parsed
// DataSet as the container consumed by the pixeldata and imaging packages.
//
// Parse buffers every DataElement of a file into a DataSet. Value fields are decoded according
// to their VR: text VRs become []string (decoded with the Specific Character Set), binary number
// VRs and OD/OF/OL become typed slices, OB/OW/UN become []byte in file byte order, SQ becomes
// *Sequence and pixel data in the encapsulated format becomes *EncapsulatedPixelData.
//
// Construct performs the inverse operation for the uncompressed transfer syntaxes and for
// encapsulated pixel data. The DataSet accessors (StringValue, IntValue, FloatValues, ...)
// provide the typed, tag based lookups the rendering pipeline relies on.
package dicom
