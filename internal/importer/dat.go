package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/BoxStack/internal/model"
)

// datHeaderLines is the number of header lines preceding the item list in
// an instance file:
//
//	Bin size: 100 100 100
//	Number of bins: 1
//	Number of items per bin: 100
//	Total volume of items: 1000000
//	Items (length width height):
//	12 40 7
//	...
const datHeaderLines = 5

// ImportDat reads an instance file from disk. The problem is named after
// the file without its extension.
func ImportDat(path string) (model.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Problem{}, fmt.Errorf("failed to open instance file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseDat(f, name)
}

// ParseDat parses an instance in the text format shown on datHeaderLines.
// Header values are taken from the trailing tokens of their lines so the
// label wording is free. Blank item lines are skipped.
func ParseDat(r io.Reader, name string) (model.Problem, error) {
	p := model.Problem{Name: name}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())

		switch lineNum {
		case 1:
			dims, err := trailingInts(fields, 3, lineNum)
			if err != nil {
				return model.Problem{}, err
			}
			p.BinSize = model.V(dims[0], dims[1], dims[2])
		case 2:
			v, err := trailingInts(fields, 1, lineNum)
			if err != nil {
				return model.Problem{}, err
			}
			p.NBins = v[0]
		case 3:
			v, err := trailingInts(fields, 1, lineNum)
			if err != nil {
				return model.Problem{}, err
			}
			p.NItems = v[0]
		case 4:
			if len(fields) == 0 {
				return model.Problem{}, fmt.Errorf("%w: line %d: missing total volume", ErrMalformed, lineNum)
			}
			v, err := strconv.ParseInt(fields[len(fields)-1], 10, 64)
			if err != nil {
				return model.Problem{}, fmt.Errorf("%w: line %d: invalid total volume %q", ErrMalformed, lineNum, fields[len(fields)-1])
			}
			p.TotalVolume = v
		case datHeaderLines:
			// column header
		default:
			if len(fields) == 0 {
				continue
			}
			if len(fields) != 3 {
				return model.Problem{}, fmt.Errorf("%w: line %d: expected 3 dimensions, got %d fields", ErrMalformed, lineNum, len(fields))
			}
			dims, err := trailingInts(fields, 3, lineNum)
			if err != nil {
				return model.Problem{}, err
			}
			item := model.Item{
				ID:    fmt.Sprintf("%d", len(p.Items)+1),
				Label: fmt.Sprintf("Item %d", len(p.Items)+1),
				Size:  model.V(dims[0], dims[1], dims[2]),
			}
			p.Items = append(p.Items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Problem{}, fmt.Errorf("failed to read instance: %w", err)
	}
	if lineNum < datHeaderLines {
		return model.Problem{}, fmt.Errorf("%w: header has %d of %d lines", ErrMalformed, lineNum, datHeaderLines)
	}

	if err := p.Validate(); err != nil {
		return model.Problem{}, err
	}
	return p, nil
}

func trailingInts(fields []string, n, lineNum int) ([]int, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: line %d: expected %d values, got %d fields", ErrMalformed, lineNum, n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields[len(fields)-n:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid integer %q", ErrMalformed, lineNum, f)
		}
		out[i] = v
	}
	return out, nil
}
