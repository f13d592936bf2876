// Package svmlight implements the line-oriented sparse exchange format
// used to pass datasets across the process boundary to the external
// solver tools, plus the whitespace-delimited numeric table format the
// classify tool writes its predictions in.
//
// Each data line is
//
//	<label> <index>:<value> <index>:<value> ...
//
// with 1-based feature indices. Indices omitted from a line are zero.
package svmlight

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Dump writes X and y in the sparse exchange format. Zero-valued
// features are omitted; feature indices are written 1-based. The
// label values are written exactly as given (callers are responsible
// for any label-offset convention of the consuming tool).
func Dump(w io.Writer, X [][]float64, y []int) error {
	if len(X) != len(y) {
		return fmt.Errorf("svmlight: %d feature rows but %d labels", len(X), len(y))
	}

	bw := bufio.NewWriter(w)
	for i, row := range X {
		if _, err := bw.WriteString(strconv.Itoa(y[i])); err != nil {
			return fmt.Errorf("svmlight: write row %d: %w", i, err)
		}
		for j, v := range row {
			if v == 0 {
				continue
			}
			if _, err := fmt.Fprintf(bw, " %d:%s", j+1, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return fmt.Errorf("svmlight: write row %d: %w", i, err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("svmlight: write row %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// DumpFile writes X and y to a new file at path.
func DumpFile(path string, X [][]float64, y []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("svmlight: create %s: %w", path, err)
	}
	if err := Dump(f, X, y); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a sparse exchange file back into a dense matrix and label
// vector. All rows are widened to the largest feature index seen in
// the file; omitted indices come back as zero.
func Load(r io.Reader) ([][]float64, []int, error) {
	type sparseRow struct {
		label    int
		features map[int]float64
	}

	var rows []sparseRow
	maxIndex := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		label, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("svmlight: line %d: bad label %q: %w", lineNo, fields[0], err)
		}

		features := make(map[int]float64, len(fields)-1)
		for _, field := range fields[1:] {
			idxStr, valStr, ok := strings.Cut(field, ":")
			if !ok {
				return nil, nil, fmt.Errorf("svmlight: line %d: bad feature %q, expected index:value", lineNo, field)
			}
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 1 {
				return nil, nil, fmt.Errorf("svmlight: line %d: bad feature index %q (indices are 1-based)", lineNo, idxStr)
			}
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("svmlight: line %d: bad feature value %q: %w", lineNo, valStr, err)
			}
			features[idx] = val
			if idx > maxIndex {
				maxIndex = idx
			}
		}

		rows = append(rows, sparseRow{label: label, features: features})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("svmlight: read: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("svmlight: no data lines")
	}

	X := make([][]float64, len(rows))
	y := make([]int, len(rows))
	for i, row := range rows {
		dense := make([]float64, maxIndex)
		for idx, val := range row.features {
			dense[idx-1] = val
		}
		X[i] = dense
		y[i] = row.label
	}
	return X, y, nil
}

// LoadFile reads a sparse exchange file from disk.
func LoadFile(path string) ([][]float64, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("svmlight: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// LoadTable reads a whitespace-delimited numeric table, one row per
// line. All rows must have the same number of columns. This is the
// format the external classify tool writes: column 0 is the predicted
// 1-based label, the remaining columns are per-class decision scores.
func LoadTable(r io.Reader) ([][]float64, error) {
	var table [][]float64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("svmlight: table line %d: bad value %q: %w", lineNo, field, err)
			}
			row[i] = v
		}

		if len(table) > 0 && len(row) != len(table[0]) {
			return nil, fmt.Errorf("svmlight: table line %d: %d columns, expected %d", lineNo, len(row), len(table[0]))
		}
		table = append(table, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("svmlight: read table: %w", err)
	}
	return table, nil
}

// LoadTableFile reads a numeric table from disk.
func LoadTableFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("svmlight: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadTable(f)
}
