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
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/encoding"
)

// writeDataSet writes the elements of ds in ascending tag order. A Specific Character Set element
// in ds selects the repertoire used to encode its text values.
func writeDataSet(dw *dcmWriter, md dicomMetaData, ds *DataSet) error {
	if elem, ok := ds.Elements[SpecificCharacterSetTag]; ok {
		if terms, ok := elem.ValueField.([]string); ok {
			md.charset = encodingForTerms(terms)
		}
	}
	for _, elem := range ds.SortedElements() {
		if err := writeDataElement(dw, md, elem); err != nil {
			return fmt.Errorf("writing data element %v: %w", elem.Tag, err)
		}
	}
	return nil
}

// writeDataElement writes a single element. The VR is taken from the dictionary when missing and
// the value length is always recalculated. Sequences and encapsulated pixel data are written with
// undefined length. []byte values are written as they are, so they must already be in the byte
// order of the syntax.
func writeDataElement(dw *dcmWriter, md dicomMetaData, element *DataElement) error {
	syntax := md.syntax
	vr := element.VR
	if vr == nil {
		vr = element.Tag.DictionaryVR()
	}

	if err := dw.Tag(syntax.ByteOrder, element.Tag); err != nil {
		return fmt.Errorf("writing tag: %w", err)
	}
	if err := writeVR(dw, syntax, vr); err != nil {
		return fmt.Errorf("writing VR: %w", err)
	}

	switch v := element.ValueField.(type) {
	case *Sequence:
		if err := writeValueLength(dw, syntax, vr, UndefinedLength); err != nil {
			return fmt.Errorf("writing length: %w", err)
		}
		return writeSequence(dw, md, v)
	case *EncapsulatedPixelData:
		if err := writeValueLength(dw, syntax, vr, UndefinedLength); err != nil {
			return fmt.Errorf("writing length: %w", err)
		}
		return writeEncapsulatedPixelData(dw, v)
	}

	value, err := encodeValue(vr, md, element.ValueField)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	if int64(len(value)) >= math.MaxUint32 {
		return fmt.Errorf("value of %v bytes is too long", len(value))
	}
	if err := writeValueLength(dw, syntax, vr, uint32(len(value))); err != nil {
		return fmt.Errorf("writing length: %w", err)
	}
	return dw.Bytes(value)
}

func writeVR(dw *dcmWriter, syntax TransferSyntax, vr *VR) error {
	if syntax.Implicit {
		// implicit VR syntax does not include VR in the DICOM file
		return nil
	}
	return dw.String(vr.Name)
}

// writeValueLength writes the length field. For explicit VR, lengths can be stored in a 32 bit
// field or a 16 bit field depending on the VR type. The 2 cases are defined at the link:
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func writeValueLength(dw *dcmWriter, syntax TransferSyntax, vr *VR, length uint32) error {
	if syntax.Implicit {
		return dw.UInt32(syntax.ByteOrder, length)
	}

	if vr.has32BitLength() {
		if err := dw.UInt16(syntax.ByteOrder, 0); err != nil {
			return fmt.Errorf("writing reserved field: %w", err)
		}
		return dw.UInt32(syntax.ByteOrder, length)
	}

	if length > math.MaxUint16 {
		return fmt.Errorf("value length %v exceeds the 16-bit length field of %v", length, vr)
	}
	return dw.UInt16(syntax.ByteOrder, uint16(length))
}

// encodeValue returns the bytes of a value field padded to an even length.
func encodeValue(vr *VR, md dicomMetaData, valueField interface{}) ([]byte, error) {
	switch vr.kind {
	case textVR:
		return encodeText(vr, md.charset, ' ', valueField)
	case uniqueIdentifierVR:
		return encodeText(vr, nil, 0x00, valueField)
	case numberBinaryVR:
		return encodeNumbers(md.syntax.ByteOrder, valueField)
	case bulkDataVR:
		if b, ok := valueField.([]byte); ok {
			if len(b)%2 != 0 {
				b = append(append([]byte{}, b...), 0x00)
			}
			return b, nil
		}
		return encodeNumbers(md.syntax.ByteOrder, valueField)
	case tagVR:
		tags, ok := valueField.([]uint32)
		if !ok {
			return nil, fmt.Errorf("unexpected type for tag VR: %T (expected []uint32)", valueField)
		}
		buf := make([]byte, 4*len(tags))
		for i, t := range tags {
			tag := DataElementTag(t)
			md.syntax.ByteOrder.PutUint16(buf[4*i:], tag.GroupNumber())
			md.syntax.ByteOrder.PutUint16(buf[4*i+2:], tag.ElementNumber())
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("cannot encode %T with vr %v", valueField, vr)
	}
}

func encodeText(vr *VR, coding encoding.Encoding, padding byte, v interface{}) ([]byte, error) {
	strs, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("expected type []string got %T", v)
	}

	b := []byte(strings.Join(strs, "\\"))
	if vr.charset && coding != nil {
		encoded, err := coding.NewEncoder().Bytes(b)
		if err != nil {
			return nil, fmt.Errorf("encoding text of %v: %w", vr, err)
		}
		b = encoded
	}
	if len(b)%2 != 0 {
		b = append(b, padding)
	}
	return b, nil
}

func encodeNumbers(order binary.ByteOrder, v interface{}) ([]byte, error) {
	switch v.(type) {
	case []int16, []uint16, []int32, []uint32, []float32, []float64:
	default:
		return nil, fmt.Errorf("unsupported binary number type: %T", v)
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, order, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSequence writes the items with undefined length, each closed by an Item Delimitation Item
// and the whole sequence by a Sequence Delimitation Item.
func writeSequence(dw *dcmWriter, md dicomMetaData, seq *Sequence) error {
	order := md.syntax.ByteOrder
	for _, item := range seq.Items {
		if err := dw.Tag(order, ItemTag); err != nil {
			return fmt.Errorf("writing item tag: %w", err)
		}
		if err := dw.UInt32(order, UndefinedLength); err != nil {
			return fmt.Errorf("writing item length: %w", err)
		}
		if err := writeDataSet(dw, md, item); err != nil {
			return fmt.Errorf("writing sequence item: %w", err)
		}
		if err := dw.Delimiter(order, ItemDelimitationItemTag); err != nil {
			return err
		}
	}
	return dw.Delimiter(order, SequenceDelimitationItemTag)
}
