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

package dicom

import (
	"encoding/binary"
	"testing"
)

func TestLookupTransferSyntax(t *testing.T) {
	testCases := []struct {
		name             string
		uid              string
		wantImplicit     bool
		wantEncapsulated bool
		wantLossy        bool
		wantOrder        binary.ByteOrder
	}{
		{"implicit", ImplicitVRLittleEndianUID, true, false, false, binary.LittleEndian},
		{"big endian", ExplicitVRBigEndianUID, false, false, false, binary.BigEndian},
		{"jpeg baseline", JPEGBaselineUID, false, true, true, binary.LittleEndian},
		{"rle", RLELosslessUID, false, true, false, binary.LittleEndian},
		{"unknown", "1.2.3.4", false, true, false, binary.LittleEndian},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := LookupTransferSyntax(tc.uid)
			if s.UID != tc.uid {
				t.Fatalf("got uid %v, want %v", s.UID, tc.uid)
			}
			if s.Implicit != tc.wantImplicit || s.Encapsulated != tc.wantEncapsulated || s.Lossy != tc.wantLossy {
				t.Fatalf("got %+v, want implicit=%v encapsulated=%v lossy=%v",
					s, tc.wantImplicit, tc.wantEncapsulated, tc.wantLossy)
			}
			if s.ByteOrder != tc.wantOrder {
				t.Fatalf("got %v, want %v", s.ByteOrder, tc.wantOrder)
			}
		})
	}
}
