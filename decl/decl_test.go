package decl

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	enum "github.com/goliatone/go-enum"
)

const fixture = `
enum "content.Status" {
  entry "draft"     { value = 0 }
  entry "published" { value = 1 }
  entry "archived"  { value = 2 }
}

enum "http.Status" {
  type   = "int"
  strict = true

  entry "ok"        { value = 200 }
  entry "not_found" { value = 404 }
}
`

func TestLoad(t *testing.T) {
	defs, err := Load("fixture.hcl", []byte(fixture))
	if err != nil {
		t.Fatalf("unexpected error from Load: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}

	status := defs["content.Status"]
	if status == nil {
		t.Fatalf("expected content.Status to be defined")
	}
	if status.Strict() {
		t.Fatalf("expected content.Status to be non-strict")
	}
	if got := status.Names(); !reflect.DeepEqual(got, []string{"draft", "published", "archived"}) {
		t.Fatalf("unexpected names: %v", got)
	}
	if e := status.Get("draft"); e == nil || e.Value() != int64(0) {
		t.Fatalf("expected draft to hold int64(0), got %#v", e)
	}

	http := defs["http.Status"]
	if http == nil {
		t.Fatalf("expected http.Status to be defined")
	}
	if !http.Strict() {
		t.Fatalf("expected http.Status to be strict")
	}
	if http.ValueType() != reflect.TypeOf(int64(0)) {
		t.Fatalf("unexpected value type: %v", http.ValueType())
	}
	if name, ok := http.NameFor(int64(404)); !ok || name != "not_found" {
		t.Fatalf("expected NameFor(404) to return not_found, got %q (%v)", name, ok)
	}
}

func TestLoadedDefinitionsRoundTrip(t *testing.T) {
	defs, err := Load("fixture.hcl", []byte(fixture))
	if err != nil {
		t.Fatalf("unexpected error from Load: %v", err)
	}
	d := defs["content.Status"]
	for _, e := range d.All() {
		text, err := e.Serialize()
		if err != nil {
			t.Fatalf("unexpected error from Serialize: %v", err)
		}
		back, err := enum.Deserialize(d, []byte(text))
		if err != nil {
			t.Fatalf("unexpected error from Deserialize: %v", err)
		}
		if !e.Equal(back) {
			t.Fatalf("expected round-trip equality for %v", e)
		}
	}
}

func TestLoadValueTypes(t *testing.T) {
	src := `
enum "mixed.Kind" {
  entry "label" { value = "a" }
  entry "flag"  { value = true }
  entry "count" { value = 7 }
  entry "ratio" { value = 0.5 }
}
`
	defs, err := Load("types.hcl", []byte(src))
	if err != nil {
		t.Fatalf("unexpected error from Load: %v", err)
	}
	d := defs["mixed.Kind"]
	cases := []struct {
		name string
		want any
	}{
		{"label", "a"},
		{"flag", true},
		{"count", int64(7)},
		{"ratio", 0.5},
	}
	for _, tc := range cases {
		e := d.Get(tc.name)
		if e == nil || e.Value() != tc.want {
			t.Fatalf("expected %s to hold %v (%T), got %#v", tc.name, tc.want, tc.want, e)
		}
	}
}

func TestLoadFloatType(t *testing.T) {
	src := `
enum "scale.Factor" {
  type = "float"

  entry "half" { value = 0.5 }
  entry "unit" { value = 1 }
}
`
	defs, err := Load("floats.hcl", []byte(src))
	if err != nil {
		t.Fatalf("unexpected error from Load: %v", err)
	}
	d := defs["scale.Factor"]
	if e := d.Get("unit"); e == nil || e.Value() != 1.0 {
		t.Fatalf("expected declared float type to convert whole numbers, got %#v", e)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"invalid syntax", `enum "x" {`},
		{"unknown type", `
enum "x" {
  type = "decimal"
  entry "a" { value = 1 }
}
`},
		{"strict without type", `
enum "x" {
  strict = true
  entry "a" { value = 1 }
}
`},
		{"type mismatch", `
enum "x" {
  type = "int"
  entry "a" { value = "nope" }
}
`},
		{"null value", `
enum "x" {
  entry "a" { value = null }
}
`},
		{"duplicate enum", `
enum "x" {
  entry "a" { value = 1 }
}
enum "x" {
  entry "b" { value = 2 }
}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.name+".hcl", []byte(tc.src)); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadSurfacesRegistryErrors(t *testing.T) {
	src := `
enum "x" {
  entry "a" { value = 1 }
  entry "a" { value = 2 }
}
`
	_, err := Load("dup.hcl", []byte(src))
	if !errors.Is(err, enum.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	src = `
enum "x" {
  entry "a" { value = 1 }
  entry "b" { value = 1 }
}
`
	_, err = Load("dupval.hcl", []byte(src))
	if !errors.Is(err, enum.ErrDuplicateValue) {
		t.Fatalf("expected ErrDuplicateValue, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enums.hcl")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}
	defs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error from LoadFile: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
