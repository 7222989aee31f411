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
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
)

// dicomMetaData is the state needed to decode the elements of a data set: the transfer syntax and
// the character repertoire selected by the Specific Character Set.
type dicomMetaData struct {
	syntax  TransferSyntax
	charset encoding.Encoding
}

var defaultMetaData = dicomMetaData{ExplicitVRLittleEndian, defaultCharacterRepertoire}

// readDataSet reads DataElements until the input ends or an Item Delimitation Item is found.
func readDataSet(dr *dcmReader, md dicomMetaData, opts []ParseOption) (*DataSet, error) {
	ds := &DataSet{Elements: map[DataElementTag]*DataElement{}}
	for {
		elem, err := readDataElement(dr, md, opts)
		if err == io.EOF {
			return ds, nil
		}
		if err != nil {
			return nil, err
		}
		if elem.Tag == SpecificCharacterSetTag {
			if terms, ok := elem.ValueField.([]string); ok {
				md.charset = encodingForTerms(terms)
			}
		}

		processed, err := applyOptions(elem, opts)
		if err != nil {
			return nil, err
		}
		if processed != nil { // nil check to test if ParseOption wants to filter out element
			ds.Elements[processed.Tag] = processed
		}
	}
}

func readDataElement(dr *dcmReader, md dicomMetaData, opts []ParseOption) (*DataElement, error) {
	syntax := md.syntax
	tag, err := dr.Tag(syntax.ByteOrder)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}

	if tag == ItemDelimitationItemTag {
		// handles the case when we are parsing a nested data set within a sequence with undefined
		// length. This code should never run for the top level data set
		length, err := dr.UInt32(syntax.ByteOrder)
		if err != nil {
			return nil, fmt.Errorf("reading 32 bit length of item delimitation: %w", err)
		}
		if length != 0 {
			return nil, fmt.Errorf("wrong length for item delimiter. got %v, want %v", length, 0)
		}
		return nil, io.EOF
	}

	vr, err := readVR(dr, syntax, tag)
	if err != nil {
		return nil, fmt.Errorf("getting vr of %v: %w", tag, err)
	}

	length, err := readValueLength(dr, syntax, vr)
	if err != nil {
		return nil, fmt.Errorf("getting length of %v: %w", tag, err)
	}

	if syntax.Implicit && vr == UNVR && length == UndefinedLength {
		// an unknown element of undefined length in the implicit syntax can only be a sequence
		vr = SQVR
	}

	value, err := readValue(tag, dr, vr, length, md, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing value of %v: %w", tag, err)
	}

	return &DataElement{tag, vr, value, length}, nil
}

func readVR(dr *dcmReader, syntax TransferSyntax, tag DataElementTag) (*VR, error) {
	if syntax.Implicit {
		return tag.DictionaryVR(), nil
	}
	vrString, err := dr.String(vrSize)
	if err != nil {
		return nil, fmt.Errorf("reading vr: %w", err)
	}
	return lookupVRByName(vrString)
}

func readValueLength(dr *dcmReader, syntax TransferSyntax, vr *VR) (uint32, error) {
	if syntax.Implicit {
		return dr.UInt32(syntax.ByteOrder)
	}
	if vr.has32BitLength() {
		if _, err := dr.UInt16(syntax.ByteOrder); err != nil {
			return 0, fmt.Errorf("reading reserved field: %w", err)
		}
		length, err := dr.UInt32(syntax.ByteOrder)
		if err != nil {
			return 0, fmt.Errorf("reading 32 bit length: %w", err)
		}
		return length, nil
	}

	length, err := dr.UInt16(syntax.ByteOrder)
	if err != nil {
		return 0, fmt.Errorf("reading 16 bit length: %w", err)
	}
	return uint32(length), nil
}

func readValue(tag DataElementTag, dr *dcmReader, vr *VR, length uint32, md dicomMetaData, opts []ParseOption) (interface{}, error) {
	if length == UndefinedLength && vr != SQVR && tag != PixelDataTag {
		return nil, errors.New("undefined length is only supported for sequences and pixel data")
	}

	switch vr.kind {
	case textVR:
		return readText(dr, length, vr, md.charset)
	case numberBinaryVR:
		return readNumberBinary(dr, length, vr, md.syntax.ByteOrder)
	case bulkDataVR:
		return readBulkData(dr, tag, vr, length, md.syntax.ByteOrder)
	case uniqueIdentifierVR:
		return readUID(dr, length)
	case sequenceVR:
		return readSequence(dr, length, md, opts)
	case tagVR:
		return readTag(dr, md.syntax, length)
	default:
		return nil, fmt.Errorf("unknown vr type found: %v", vr.kind)
	}
}

func readTag(dr *dcmReader, syntax TransferSyntax, length uint32) ([]uint32, error) {
	ret := make([]uint32, length/4) // 4 bytes per tag

	for i := range ret {
		t, err := dr.Tag(syntax.ByteOrder)
		if err != nil {
			return nil, err
		}
		ret[i] = uint32(t)
	}
	return ret, dr.Skip(int64(length % 4))
}

func readText(dr *dcmReader, length uint32, vr *VR, coding encoding.Encoding) ([]string, error) {
	if length == 0 {
		return []string{}, nil
	}

	raw, err := dr.Bytes(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading text field value: %w", err)
	}
	valueField := string(raw)
	if vr.charset {
		if valueField, err = decodeText(coding, raw); err != nil {
			return nil, err
		}
	}

	// ST, LT, UT and UR do not have value multiplicity; only trailing padding is insignificant
	switch vr {
	case STVR, LTVR, UTVR, URVR:
		return []string{strings.TrimRightFunc(valueField, unicode.IsSpace)}, nil
	}

	strs := strings.Split(valueField, "\\")
	for i, s := range strs {
		strs[i] = strings.TrimFunc(s, func(r rune) bool { return r == 0x00 || unicode.IsSpace(r) })
	}
	return strs, nil
}

func readUID(dr *dcmReader, length uint32) ([]string, error) {
	if length == 0 {
		return []string{}, nil
	}
	valueField, err := dr.String(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading uid field value: %w", err)
	}
	strs := strings.Split(valueField, "\\")
	for i, s := range strs {
		strs[i] = strings.TrimFunc(s, func(r rune) bool { return r == 0x00 || r == ' ' })
	}
	return strs, nil
}

func readNumberBinary(dr *dcmReader, length uint32, vr *VR, order binary.ByteOrder) (interface{}, error) {
	raw, err := dr.Bytes(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading binary number field: %w", err)
	}

	var data interface{}
	switch vr {
	case SSVR:
		data = make([]int16, length/2)
	case USVR:
		data = make([]uint16, length/2)
	case SLVR:
		data = make([]int32, length/4)
	case ULVR:
		data = make([]uint32, length/4)
	case FLVR:
		data = make([]float32, length/4)
	case FDVR:
		data = make([]float64, length/8)
	default:
		return nil, fmt.Errorf("unknown vr: %v", vr)
	}

	if err := binary.Read(bytes.NewReader(raw), order, data); err != nil {
		return nil, fmt.Errorf("binary.Read(_, _, _) => %w", err)
	}

	return data, nil
}

func readBulkData(dr *dcmReader, tag DataElementTag, vr *VR, length uint32, order binary.ByteOrder) (interface{}, error) {
	if length == UndefinedLength {
		// Specified in http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
		// (7FE0,0010) and undefined length means pixel data in encapsulated (compressed) format
		return readEncapsulatedPixelData(dr)
	}

	buff, err := dr.Bytes(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading bulk data: %w", err)
	}

	var valueField interface{}
	switch vr {
	case OLVR:
		valueField = make([]uint32, len(buff)/4)
	case ODVR:
		valueField = make([]float64, len(buff)/8)
	case OFVR:
		valueField = make([]float32, len(buff)/4)
	default:
		// OB, OW and UN keep the bytes in file order
		return buff, nil
	}

	if err := binary.Read(bytes.NewReader(buff), order, valueField); err != nil {
		return nil, fmt.Errorf("reading to buffer: %w", err)
	}
	return valueField, nil
}
