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

// Overlay planes are stored in the repeating groups 6000-601E (even numbers only), see
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.9.2
const (
	firstOverlayGroup = 0x6000
	lastOverlayGroup  = 0x601E
)

// OverlayGroups returns the group numbers of the overlay planes present in ds in ascending order.
// A group is present when the data set holds at least one element of it.
func (ds *DataSet) OverlayGroups() []uint16 {
	present := map[uint16]bool{}
	for tag := range ds.Elements {
		group := tag.GroupNumber()
		if group >= firstOverlayGroup && group <= lastOverlayGroup && group%2 == 0 {
			present[group] = true
		}
	}

	groups := []uint16{}
	for g := uint16(firstOverlayGroup); g <= lastOverlayGroup; g += 2 {
		if present[g] {
			groups = append(groups, g)
		}
	}
	return groups
}
