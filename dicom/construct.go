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
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Construct writes the given *DataSet as a DICOM file to the given io.Writer. The desired output
// transfer syntax is specified as a required TransferSyntax DataElement (0002,0010). By default,
// there is no validation against the DICOM standard of any form.
//
// If a *DataElement in the *DataSet is missing VR it will be filled in from the DICOM Data
// Dictionary. The ValueLength of DataElements are ignored and re-calculated, including the File
// Meta Information Group Length. The data set is not modified.
func Construct(w io.Writer, dataSet *DataSet) error {
	syntax, err := dataSet.TransferSyntax()
	if err != nil {
		return fmt.Errorf("getting transfer syntax from data set: %w", err)
	}

	dw := &dcmWriter{w}
	if err := writeDicomSignature(dw); err != nil {
		return err
	}
	if err := writeMetaHeader(dw, dataSet); err != nil {
		return fmt.Errorf("writing meta header: %w", err)
	}

	body := &DataSet{Elements: map[DataElementTag]*DataElement{}}
	for tag, elem := range dataSet.Elements {
		if !tag.IsMetaElement() {
			body.Elements[tag] = elem
		}
	}
	md := dicomMetaData{syntax, defaultCharacterRepertoire}

	if !syntax.Deflated {
		return writeDataSet(dw, md, body)
	}
	fw, err := flate.NewWriter(w, flate.DefaultCompression)
	if err != nil {
		return fmt.Errorf("creating deflate writer: %w", err)
	}
	if err := writeDataSet(&dcmWriter{fw}, md, body); err != nil {
		return err
	}
	return fw.Close()
}

// writeMetaHeader writes the file meta elements in explicit VR little endian as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1, preceded by the
// group length computed from them.
func writeMetaHeader(dw *dcmWriter, dataSet *DataSet) error {
	meta := dataSet.MetaElements()
	delete(meta.Elements, FileMetaInformationGroupLengthTag)

	var buf bytes.Buffer
	if err := writeDataSet(&dcmWriter{&buf}, defaultMetaData, meta); err != nil {
		return err
	}

	groupLength := &DataElement{
		Tag:        FileMetaInformationGroupLengthTag,
		VR:         ULVR,
		ValueField: []uint32{uint32(buf.Len())},
	}
	if err := writeDataElement(dw, defaultMetaData, groupLength); err != nil {
		return fmt.Errorf("writing group length: %w", err)
	}
	return dw.Bytes(buf.Bytes())
}

func writeDicomSignature(dw *dcmWriter) error {
	if err := dw.Bytes(make([]byte, 128)); err != nil {
		return fmt.Errorf("writing DICOM preamble: %w", err)
	}

	if err := dw.String("DICM"); err != nil {
		return fmt.Errorf("writing DICOM signature: %w", err)
	}

	return nil
}
