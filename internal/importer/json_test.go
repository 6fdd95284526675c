package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxStack/internal/model"
)

func TestParseJSON_TriplesAndObjects(t *testing.T) {
	data := []byte(`{
		"name": "mixed",
		"bin": [20, 10, 10],
		"items": [
			[10, 10, 5],
			{"label": "crate", "size": [5, 5, 5], "quantity": 3},
			{"size": [2, 2, 2]}
		]
	}`)

	p, err := ParseJSON(data, "default")
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if p.Name != "mixed" {
		t.Errorf("expected name mixed, got %s", p.Name)
	}
	if p.BinSize != model.V(20, 10, 10) {
		t.Errorf("expected bin 20x10x10, got %s", p.BinSize)
	}
	if len(p.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(p.Items))
	}
	if p.Items[1].Label != "crate" || p.Items[3].Label != "crate" {
		t.Errorf("expected crate copies at 1..3, got %q and %q", p.Items[1].Label, p.Items[3].Label)
	}
	if p.Items[4].Label != "Item 5" {
		t.Errorf("expected generated label, got %q", p.Items[4].Label)
	}
	if p.NBins != 1 || p.NItems != 5 {
		t.Errorf("unexpected header: bins=%d items=%d", p.NBins, p.NItems)
	}
	if p.TotalVolume != 500+375+8 {
		t.Errorf("expected total volume 883, got %d", p.TotalVolume)
	}
}

func TestParseJSON_DefaultName(t *testing.T) {
	p, err := ParseJSON([]byte(`{"bin":[5,5,5],"items":[[1,1,1]]}`), "fallback")
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if p.Name != "fallback" {
		t.Errorf("expected fallback name, got %q", p.Name)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid json":   `{"bin": [1,2`,
		"missing bin":    `{"items": [[1,1,1]]}`,
		"short bin":      `{"bin": [1,2], "items": [[1,1,1]]}`,
		"fractional":     `{"bin": [10,10,10], "items": [[1.5,1,1]]}`,
		"bad quantity":   `{"bin": [10,10,10], "items": [{"size":[1,1,1],"quantity":0}]}`,
		"string in size": `{"bin": [10,10,10], "items": [["a",1,1]]}`,
	}
	for name, input := range cases {
		_, err := ParseJSON([]byte(input), name)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", name, err)
		}
	}

	if _, err := ParseJSON([]byte(`{"bin":[10,10,10],"items":[]}`), "empty"); !errors.Is(err, model.ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem for no items, got %v", err)
	}
}

func TestImportJSON_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order-17.json")
	if err := os.WriteFile(path, []byte(`{"bin":[10,10,10],"items":[[10,10,10]]}`), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if p.Name != "order-17" || len(p.Items) != 1 {
		t.Errorf("unexpected problem %+v", p)
	}
}
