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

// Transform describes a transformation applied to a DataElement
type Transform func(*DataElement) (*DataElement, error)

// ParseOption configures the behavior of the Parse function.
type ParseOption struct {
	transform Transform
}

// WithTransform returns a ParseOption that applies the given transformation to each DataElement in
// the DICOM file in the order encountered. For DataElements that contain a sequence, the transform
// is applied to nested DataElements first (i.e. transform is called on DataElements in post-order).
// If the transform returns an error, Parse stops and returns the error. If it returns a nil
// DataElement, the element is left out of the DataSet returned by Parse.
func WithTransform(t Transform) ParseOption {
	return ParseOption{t}
}

// DropGroupLengths will exclude all group length elements (gggg,0000) from the returned DataSet
var DropGroupLengths = WithTransform(func(element *DataElement) (*DataElement, error) {
	if element.Tag.ElementNumber() == 0 {
		return nil, nil
	}
	return element, nil
})

// DropPixelData will exclude the Pixel Data element (7FE0,0010) from the returned DataSet. It is
// useful when only the attributes of an instance are needed.
var DropPixelData = WithTransform(func(element *DataElement) (*DataElement, error) {
	if element.Tag == PixelDataTag {
		return nil, nil
	}
	return element, nil
})

func applyOptions(elem *DataElement, opts []ParseOption) (*DataElement, error) {
	var err error
	for _, opt := range opts {
		if opt.transform == nil {
			continue
		}
		elem, err = opt.transform(elem)
		if err != nil {
			return nil, err
		}
		if elem == nil {
			return nil, nil
		}
	}
	return elem, nil
}
