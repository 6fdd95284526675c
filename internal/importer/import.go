package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoxStack/internal/model"
)

// Import loads a problem from path, choosing the loader by extension.
// Instance (.dat, .txt) and JSON files carry their own bin size; item lists
// (.csv, .xlsx) are packed into binSize. Warnings from item list imports are
// returned alongside the problem.
func Import(path string, binSize model.Vec3) (model.Problem, []string, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".dat", ".txt":
		p, err := ImportDat(path)
		return p, nil, err
	case ".json":
		p, err := ImportJSON(path)
		return p, nil, err
	case ".csv":
		res := ImportCSV(path)
		p, err := res.Problem(name, binSize)
		return p, res.Warnings, err
	case ".xlsx", ".xlsm":
		res := ImportExcel(path)
		p, err := res.Problem(name, binSize)
		return p, res.Warnings, err
	default:
		return model.Problem{}, nil, fmt.Errorf("%w: unsupported file type %q", ErrMalformed, filepath.Ext(path))
	}
}
