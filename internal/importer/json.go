package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/tidwall/gjson"
)

// ImportJSON reads a JSON problem description from disk.
func ImportJSON(path string) (model.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Problem{}, fmt.Errorf("failed to read problem file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseJSON(data, name)
}

// ParseJSON reads a problem of the form
//
//	{"name": "...", "bin": [x, y, z], "bins": 1,
//	 "items": [[l, w, h], {"label": "a", "size": [l, w, h], "quantity": 2}]}
//
// Items may be plain triples or objects; "name" overrides the given default.
func ParseJSON(data []byte, name string) (model.Problem, error) {
	if !gjson.ValidBytes(data) {
		return model.Problem{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	doc := gjson.ParseBytes(data)

	p := model.Problem{Name: name, NBins: 1}
	if n := doc.Get("name"); n.Exists() {
		p.Name = n.String()
	}
	if b := doc.Get("bins"); b.Exists() {
		p.NBins = int(b.Int())
	}

	bin, err := triple(doc.Get("bin"))
	if err != nil {
		return model.Problem{}, fmt.Errorf("%w: bin: %v", ErrMalformed, err)
	}
	p.BinSize = bin

	var parseErr error
	doc.Get("items").ForEach(func(key, value gjson.Result) bool {
		idx := len(p.Items)
		if value.IsArray() {
			size, err := triple(value)
			if err != nil {
				parseErr = fmt.Errorf("%w: items[%s]: %v", ErrMalformed, key.String(), err)
				return false
			}
			p.Items = append(p.Items, model.Item{
				ID:    fmt.Sprintf("%d", idx+1),
				Label: fmt.Sprintf("Item %d", idx+1),
				Size:  size,
			})
			return true
		}

		size, err := triple(value.Get("size"))
		if err != nil {
			parseErr = fmt.Errorf("%w: items[%s].size: %v", ErrMalformed, key.String(), err)
			return false
		}
		label := value.Get("label").String()
		qty := 1
		if q := value.Get("quantity"); q.Exists() {
			qty = int(q.Int())
		}
		if qty <= 0 {
			parseErr = fmt.Errorf("%w: items[%s]: quantity must be positive", ErrMalformed, key.String())
			return false
		}
		for i := 0; i < qty; i++ {
			it := model.NewItem(label, size[0], size[1], size[2])
			if label == "" {
				it.Label = fmt.Sprintf("Item %d", len(p.Items)+1)
			}
			p.Items = append(p.Items, it)
		}
		return true
	})
	if parseErr != nil {
		return model.Problem{}, parseErr
	}

	p.NItems = len(p.Items)
	p.TotalVolume = p.ItemVolume()
	if err := p.Validate(); err != nil {
		return model.Problem{}, err
	}
	return p, nil
}

func triple(r gjson.Result) (model.Vec3, error) {
	if !r.IsArray() {
		return model.Vec3{}, fmt.Errorf("expected [x, y, z], got %q", r.Raw)
	}
	vals := r.Array()
	if len(vals) != 3 {
		return model.Vec3{}, fmt.Errorf("expected 3 values, got %d", len(vals))
	}
	var v model.Vec3
	for i, x := range vals {
		if x.Type != gjson.Number || x.Num != float64(int(x.Num)) {
			return model.Vec3{}, fmt.Errorf("value %q is not an integer", x.Raw)
		}
		v[i] = int(x.Int())
	}
	return v, nil
}
