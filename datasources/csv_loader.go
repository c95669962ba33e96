/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/google/tablekit/core/columns"
)

// CsvLoader implements DataSourceLoader for CSV files.
// All fields are loaded as strings; comparators interpret them.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
type CsvLoader struct {
	fsys fs.FS
}

// NewCsvLoader creates a new CSV loader reading from the file system.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// NewCsvLoaderFS creates a CSV loader reading file_path from fsys.
func NewCsvLoaderFS(fsys fs.FS) *CsvLoader {
	return &CsvLoader{fsys: fsys}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load loads a CSV file.
func (l *CsvLoader) Load(config map[string]string) (*RecordSet, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	hasHeader := config["has_header"] != "false"

	delimiter := ','
	if d := config["delimiter"]; d != "" {
		r, size := utf8.DecodeRuneInString(d)
		if size != len(d) {
			return nil, fmt.Errorf("delimiter %q is not a single character", d)
		}
		delimiter = r
	}

	file, err := l.open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	records, err := ReadCSV(file, hasHeader, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return records, nil
}

func (l *CsvLoader) open(path string) (io.ReadCloser, error) {
	if l.fsys != nil {
		return l.fsys.Open(path)
	}
	return os.Open(path)
}

// ReadCSV reads CSV records. Without a header the fields are named col_0,
// col_1 and so on. Short records leave their missing fields absent, which
// reads as an empty cell.
func ReadCSV(r io.Reader, hasHeader bool, delimiter rune) (*RecordSet, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	firstRow, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &RecordSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	var fields []string
	var pending [][]string
	if hasHeader {
		fields = firstRow
	} else {
		for i := range firstRow {
			fields = append(fields, fmt.Sprintf("col_%d", i))
		}
		pending = append(pending, firstRow)
	}

	set := &RecordSet{Fields: fields}
	add := func(record []string) {
		row := make(map[string]any, len(fields))
		for i, f := range fields {
			if i < len(record) {
				row[f] = record[i]
			}
		}
		set.Rows = append(set.Rows, columns.Row(row))
	}
	for _, record := range pending {
		add(record)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		add(record)
	}
	return set, nil
}
