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
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrElementNotFound is returned by the DataSet accessors when the requested tag is absent.
var ErrElementNotFound = errors.New("data element not found")

// DataElement models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataElement struct {
	Tag DataElementTag

	// Value Representation
	VR *VR

	// ValueField represents the field within a Data Element that contains its value(s)
	// Can be any of of the following types:
	// []string,
	// []byte
	// []int16,
	// []uint16,
	// []int32,
	// []uint32,
	// []float32,
	// []float64
	// *EncapsulatedPixelData
	// *Sequence
	ValueField interface{}

	// ValueLength is equal to the length of the ValueField in bytes.
	// Can be equal to 0xFFFFFFFF to represent an undefined length:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
	ValueLength uint32
}

func (e *DataElement) String() string {
	return e.string(0)
}

func (e *DataElement) string(indentLvl int) string {
	prefix := strings.Repeat(">", indentLvl)
	switch v := e.ValueField.(type) {
	case *Sequence:
		return fmt.Sprintf("%v%v %v #%v %v", prefix, e.Tag, e.VR, int32(e.ValueLength), v.string(indentLvl))
	case []byte:
		return fmt.Sprintf("%v%v %v #%v [%d bytes]", prefix, e.Tag, e.VR, e.ValueLength, len(v))
	case *EncapsulatedPixelData:
		return fmt.Sprintf("%v%v %v #%v [%d fragments]", prefix, e.Tag, e.VR, int32(e.ValueLength), len(v.Fragments))
	case []string:
		return fmt.Sprintf("%v%v %v #%v [%v]", prefix, e.Tag, e.VR, e.ValueLength, strings.Join(v, "\\"))
	default:
		return fmt.Sprintf("%v%v %v #%v %v", prefix, e.Tag, e.VR, e.ValueLength, v)
	}
}

// StringValue returns the value of a DataElement holding exactly one string.
func (e *DataElement) StringValue() (string, error) {
	strs, ok := e.ValueField.([]string)
	if !ok {
		return "", fmt.Errorf("expected []string for %v, got %T", e.Tag, e.ValueField)
	}
	if len(strs) != 1 {
		return "", fmt.Errorf("expected exactly 1 value for %v, got %v", e.Tag, len(strs))
	}
	return strs[0], nil
}

// IntValues returns the values of an integer DataElement (IS, US, SS, UL, SL) as int64.
func (e *DataElement) IntValues() ([]int64, error) {
	var ret []int64
	switch v := e.ValueField.(type) {
	case []string:
		for _, s := range v {
			i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing integer string of %v: %w", e.Tag, err)
			}
			ret = append(ret, i)
		}
	case []uint16:
		for _, i := range v {
			ret = append(ret, int64(i))
		}
	case []int16:
		for _, i := range v {
			ret = append(ret, int64(i))
		}
	case []uint32:
		for _, i := range v {
			ret = append(ret, int64(i))
		}
	case []int32:
		for _, i := range v {
			ret = append(ret, int64(i))
		}
	default:
		return nil, fmt.Errorf("expected an integer type for %v, got %T", e.Tag, e.ValueField)
	}
	return ret, nil
}

// IntValue returns the first value of an integer DataElement.
func (e *DataElement) IntValue() (int64, error) {
	values, err := e.IntValues()
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("expected at least 1 value for %v", e.Tag)
	}
	return values[0], nil
}

// FloatValues returns the values of a numeric DataElement (DS, IS, FL, FD or any integer VR)
// as float64.
func (e *DataElement) FloatValues() ([]float64, error) {
	var ret []float64
	switch v := e.ValueField.(type) {
	case []string:
		for _, s := range v {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing decimal string of %v: %w", e.Tag, err)
			}
			ret = append(ret, f)
		}
	case []float32:
		for _, f := range v {
			ret = append(ret, float64(f))
		}
	case []float64:
		ret = append(ret, v...)
	default:
		ints, err := e.IntValues()
		if err != nil {
			return nil, fmt.Errorf("expected a numeric type for %v, got %T", e.Tag, e.ValueField)
		}
		for _, i := range ints {
			ret = append(ret, float64(i))
		}
	}
	return ret, nil
}

// DataSet models a DICOM Data Set as defined
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataSet struct {
	// Elements is a map of DataElement tags to *DataElement
	Elements map[DataElementTag]*DataElement

	// Length is the length in bytes of the DataSet when it is a sequence item. It is equal to
	// UndefinedLength for items delimited by an Item Delimitation Item.
	Length uint32
}

// NewDataSet creates a DataSet from a map of tags to value fields. The VR of every element is
// taken from the data dictionary.
func NewDataSet(elements map[DataElementTag]interface{}) *DataSet {
	ds := &DataSet{Elements: map[DataElementTag]*DataElement{}}
	for tag, value := range elements {
		if tag != PixelDataTag {
			ds.Set(tag, value)
		}
	}
	// pixel data goes last since its VR depends on Bits Allocated
	if value, ok := elements[PixelDataTag]; ok {
		ds.Set(PixelDataTag, value)
	}
	return ds
}

// Set adds or replaces the element with the given tag. The VR is taken from the data dictionary,
// except for sequences (SQ), encapsulated pixel data (OB) and native pixel data with at most 8
// bits allocated (OB).
func (ds *DataSet) Set(tag DataElementTag, value interface{}) {
	length := uint32(0)
	vr := tag.DictionaryVR()
	switch v := value.(type) {
	case *Sequence:
		vr, length = SQVR, UndefinedLength
	case *EncapsulatedPixelData:
		vr, length = OBVR, UndefinedLength
	case []byte:
		if tag == PixelDataTag && ds.bitsAllocated() <= 8 {
			vr = OBVR
		}
		length = uint32(len(v))
	}
	ds.Elements[tag] = &DataElement{tag, vr, value, length}
}

func (ds *DataSet) bitsAllocated() int64 {
	v, err := ds.IntValue(BitsAllocatedTag)
	if err != nil {
		return 16
	}
	return v
}

// Merge returns a DataSet containing the elements of both data sets. Elements of other replace
// elements of ds with the same tag.
func (ds *DataSet) Merge(other *DataSet) *DataSet {
	ret := ds.Clone()
	for tag, elem := range other.Elements {
		ret.Elements[tag] = elem
	}
	return ret
}

// Clone returns a shallow copy of ds. The element structs are copied, their value fields are
// shared.
func (ds *DataSet) Clone() *DataSet {
	ret := &DataSet{Elements: make(map[DataElementTag]*DataElement, len(ds.Elements)), Length: ds.Length}
	for tag, elem := range ds.Elements {
		copied := *elem
		ret.Elements[tag] = &copied
	}
	return ret
}

// SortedTags returns the tags of the DataSet in ascending order
func (ds *DataSet) SortedTags() []DataElementTag {
	tags := make([]DataElementTag, 0, len(ds.Elements))
	for tag := range ds.Elements {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// SortedElements returns the elements of the DataSet in ascending tag order
func (ds *DataSet) SortedElements() []*DataElement {
	tags := ds.SortedTags()
	elems := make([]*DataElement, len(tags))
	for i, tag := range tags {
		elems[i] = ds.Elements[tag]
	}
	return elems
}

// MetaElements returns a DataSet containing only the file meta elements (0002,xxxx) of ds.
func (ds *DataSet) MetaElements() *DataSet {
	ret := &DataSet{Elements: map[DataElementTag]*DataElement{}}
	for tag, elem := range ds.Elements {
		if tag.IsMetaElement() {
			ret.Elements[tag] = elem
		}
	}
	return ret
}

func (ds *DataSet) String() string {
	return ds.string(0)
}

func (ds *DataSet) string(indentLvl int) string {
	lines := make([]string, 0, len(ds.Elements))
	for _, elem := range ds.SortedElements() {
		lines = append(lines, elem.string(indentLvl))
	}
	return strings.Join(lines, "\n")
}

// Has reports whether ds contains an element with the given tag.
func (ds *DataSet) Has(tag DataElementTag) bool {
	_, ok := ds.Elements[tag]
	return ok
}

// Element returns the element with the given tag or ErrElementNotFound.
func (ds *DataSet) Element(tag DataElementTag) (*DataElement, error) {
	elem, ok := ds.Elements[tag]
	if !ok {
		return nil, fmt.Errorf("%v: %w", tag, ErrElementNotFound)
	}
	return elem, nil
}

// StringValue returns the single string value of the element with the given tag.
func (ds *DataSet) StringValue(tag DataElementTag) (string, error) {
	elem, err := ds.Element(tag)
	if err != nil {
		return "", err
	}
	return elem.StringValue()
}

// IntValue returns the first integer value of the element with the given tag.
func (ds *DataSet) IntValue(tag DataElementTag) (int64, error) {
	elem, err := ds.Element(tag)
	if err != nil {
		return 0, err
	}
	return elem.IntValue()
}

// IntValues returns the integer values of the element with the given tag.
func (ds *DataSet) IntValues(tag DataElementTag) ([]int64, error) {
	elem, err := ds.Element(tag)
	if err != nil {
		return nil, err
	}
	return elem.IntValues()
}

// FloatValues returns the numeric values of the element with the given tag.
func (ds *DataSet) FloatValues(tag DataElementTag) ([]float64, error) {
	elem, err := ds.Element(tag)
	if err != nil {
		return nil, err
	}
	return elem.FloatValues()
}

// BytesValue returns the raw bytes of an OB, OW or UN element in file byte order.
func (ds *DataSet) BytesValue(tag DataElementTag) ([]byte, error) {
	elem, err := ds.Element(tag)
	if err != nil {
		return nil, err
	}
	b, ok := elem.ValueField.([]byte)
	if !ok {
		return nil, fmt.Errorf("expected []byte for %v, got %T", tag, elem.ValueField)
	}
	return b, nil
}

// Uint16Values returns the values of a US element, or the words of an OW element decoded with
// the byte order of the data set's transfer syntax.
func (ds *DataSet) Uint16Values(tag DataElementTag) ([]uint16, error) {
	elem, err := ds.Element(tag)
	if err != nil {
		return nil, err
	}
	switch v := elem.ValueField.(type) {
	case []uint16:
		return v, nil
	case []int16:
		ret := make([]uint16, len(v))
		for i, s := range v {
			ret[i] = uint16(s)
		}
		return ret, nil
	case []byte:
		if len(v)%2 != 0 {
			return nil, fmt.Errorf("odd byte length %v for words of %v", len(v), tag)
		}
		order := ds.byteOrder()
		ret := make([]uint16, len(v)/2)
		for i := range ret {
			ret[i] = order.Uint16(v[2*i:])
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("expected []uint16 or []byte for %v, got %T", tag, elem.ValueField)
	}
}

// TransferSyntax returns the transfer syntax named by the TransferSyntaxUID (0002,0010) element.
func (ds *DataSet) TransferSyntax() (TransferSyntax, error) {
	uid, err := ds.StringValue(TransferSyntaxUIDTag)
	if err != nil {
		return TransferSyntax{}, fmt.Errorf("reading transfer syntax uid: %w", err)
	}
	return LookupTransferSyntax(uid), nil
}

func (ds *DataSet) byteOrder() binary.ByteOrder {
	syntax, err := ds.TransferSyntax()
	if err != nil {
		return binary.LittleEndian
	}
	return syntax.ByteOrder
}
