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
	"fmt"
	"io"
)

// Sequence models a DICOM sequence
type Sequence struct {
	Items []*DataSet
}

func (seq *Sequence) String() string {
	return seq.string(0)
}

func (seq *Sequence) string(indentLvl int) string {
	str := ""
	for _, item := range seq.Items {
		str += "\n" + item.string(indentLvl+1)
	}
	return str
}

func (seq *Sequence) append(dataSet *DataSet) {
	seq.Items = append(seq.Items, dataSet)
}

// readSequence reads the items of a sequence. Sequences of explicit length are read from a
// limited reader until EOF, sequences of undefined length until the Sequence Delimitation Item.
func readSequence(dr *dcmReader, length uint32, md dicomMetaData, opts []ParseOption) (*Sequence, error) {
	seq := &Sequence{Items: []*DataSet{}}
	if length != UndefinedLength {
		dr = dr.Limit(int64(length))
	}

	for {
		tag, err := processItemTag(dr, md.syntax.ByteOrder)
		if err == io.EOF {
			if length == UndefinedLength {
				return nil, fmt.Errorf("unexpected EOF in undefined length sequence")
			}
			return seq, nil
		}
		if err != nil {
			return nil, err
		}

		itemLength, err := dr.UInt32(md.syntax.ByteOrder)
		if err != nil {
			return nil, fmt.Errorf("reading sequence item length: %w", err)
		}
		if tag == SequenceDelimitationItemTag {
			if itemLength != 0 {
				return nil, fmt.Errorf("expected 0 length on sequence delimiter length")
			}
			if length != UndefinedLength {
				return nil, fmt.Errorf("unexpected sequence delimitation item tag in explicit length sequence")
			}
			return seq, nil
		}

		itemReader := dr
		if itemLength != UndefinedLength {
			itemReader = dr.Limit(int64(itemLength))
		}
		item, err := readDataSet(itemReader, md, opts)
		if err != nil {
			return nil, fmt.Errorf("reading sequence item: %w", err)
		}
		item.Length = itemLength
		seq.append(item)
	}
}

func processItemTag(dr *dcmReader, order binary.ByteOrder) (DataElementTag, error) {
	tag, err := dr.Tag(order)
	if err == io.EOF {
		return tag, io.EOF
	}
	if err != nil {
		return tag, fmt.Errorf("unexpected error reading item tag: %w", err)
	}
	if tag != ItemTag && tag != SequenceDelimitationItemTag {
		return tag, fmt.Errorf("invalid item tag in sequence, got %v want %v or %v",
			tag, ItemTag, SequenceDelimitationItemTag)
	}

	return tag, nil
}
