// Package tables reads the tabular sources a Dictionary is built from and
// the column-oriented simulation output files the statistics run over.
// Sources are CSV, optionally gzip-compressed (.csv.gz); columns are
// addressed by header name so extra columns in source spreadsheets are
// ignored.
package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/tukushan/simario/internal/dictionary"
)

// Header names of the dictionary source tables.
const (
	ColVarname     = "Varname"
	ColDescription = "Description"
	ColCodingsExpr = "CodingsExpr"
)

// ReadDescriptions reads a descriptions table with columns Varname and
// Description. Blank rows are passed through; the Dictionary constructor
// discards them.
func ReadDescriptions(path string) ([]dictionary.DescriptionRow, error) {
	records, err := readNamedColumns(path, ColVarname, ColDescription)
	if err != nil {
		return nil, err
	}
	rows := make([]dictionary.DescriptionRow, len(records))
	for i, rec := range records {
		rows[i] = dictionary.DescriptionRow{Varname: rec[0], Description: rec[1]}
	}
	return rows, nil
}

// ReadCodings reads a codings table with columns Varname and CodingsExpr.
func ReadCodings(path string) ([]dictionary.CodingRow, error) {
	records, err := readNamedColumns(path, ColVarname, ColCodingsExpr)
	if err != nil {
		return nil, err
	}
	rows := make([]dictionary.CodingRow, len(records))
	for i, rec := range records {
		rows[i] = dictionary.CodingRow{Varname: rec[0], Expr: rec[1]}
	}
	return rows, nil
}

// ReadColumn reads a single named column from a simulation output file as
// raw strings.
func ReadColumn(path, column string) ([]string, error) {
	records, err := readNamedColumns(path, column)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(records))
	for i, rec := range records {
		values[i] = rec[0]
	}
	return values, nil
}

// ReadNumericColumn reads a single named column parsed as float64s. Blank
// cells are rejected; simulation output carries no missing numerics.
func ReadNumericColumn(path, column string) ([]float64, error) {
	raw, err := ReadColumn(path, column)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw))
	for i, cell := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: column %q row %d: %w", path, column, i+2, err)
		}
		values[i] = v
	}
	return values, nil
}

// readNamedColumns reads the requested columns of every data row, located
// by the header row. Short records are padded with empty cells so trailing
// blank rows in exported spreadsheets do not fail the read.
func readNamedColumns(path string, columns ...string) ([][]string, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	indexes := make([]int, len(columns))
	for i, col := range columns {
		idx := -1
		for j, name := range header {
			if strings.TrimSpace(name) == col {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%s: missing required column %q", path, col)
		}
		indexes[i] = idx
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		row := make([]string, len(indexes))
		for i, idx := range indexes {
			if idx < len(rec) {
				row[i] = rec[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// open returns a reader for path, transparently decompressing gzip
// sources.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &gzipFile{file: f, Reader: zr}, nil
}

// gzipFile closes both the decompressor and the underlying file.
type gzipFile struct {
	file *os.File
	*gzip.Reader
}

func (g *gzipFile) Close() error {
	if err := g.Reader.Close(); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}
