package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/user/radsim_go/internal/errors"
)

// LoadMaterialTable opens the data file at path and parses it.
// A missing file is reported as apperrors.CodeNotFound.
func LoadMaterialTable(path string) (*MaterialTable, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("data file not found: %s", path), err)
		}
		return nil, apperrors.Wrap(apperrors.CodeMalformedData, fmt.Sprintf("failed to open data file %s", path), err)
	}
	defer file.Close()

	table, err := ParseMaterialTable(file)
	if err != nil {
		return nil, err
	}
	table.Source = path
	return table, nil
}

// ParseMaterialTable reads a whitespace-delimited material table.
// The first HeaderLines lines are skipped, blank lines are ignored, and every
// remaining line must hold exactly NumColumns finite numbers.
func ParseMaterialTable(r io.Reader) (*MaterialTable, error) {
	scanner := bufio.NewScanner(r)
	table := &MaterialTable{Rows: make([]Row, 0, 64)}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= HeaderLines {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != NumColumns {
			return nil, apperrors.New(apperrors.CodeMalformedData,
				fmt.Sprintf("line %d: expected %d columns, found %d", lineNo, NumColumns, len(fields)))
		}

		var values [NumColumns]float64
		for i, field := range fields {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.CodeMalformedData,
					fmt.Sprintf("line %d: column %q", lineNo, ColumnNames[i]), err)
			}
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, apperrors.New(apperrors.CodeMalformedData,
					fmt.Sprintf("line %d: column %q is not finite: %s", lineNo, ColumnNames[i], field))
			}
			values[i] = val
		}
		table.Rows = append(table.Rows, rowFromFields(values))
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedData, "failed to read data file", err)
	}

	if len(table.Rows) == 0 {
		return nil, apperrors.New(apperrors.CodeMalformedData,
			fmt.Sprintf("no data rows after %d header lines", HeaderLines))
	}
	return table, nil
}
