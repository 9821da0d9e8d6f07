// Package decl loads enum definitions from declarative HCL files.
//
// A file holds one or more enum blocks:
//
//	enum "http.Status" {
//	  type   = "int"
//	  strict = true
//
//	  entry "ok"        { value = 200 }
//	  entry "not_found" { value = 404 }
//	}
package decl

import (
	"fmt"
	"math/big"
	"os"
	"reflect"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	enum "github.com/goliatone/go-enum"
)

type declFile struct {
	Enums []*enumBlock `hcl:"enum,block"`
}

type enumBlock struct {
	Name    string        `hcl:"name,label"`
	Type    *string       `hcl:"type,optional"`
	Strict  *bool         `hcl:"strict,optional"`
	Entries []*entryBlock `hcl:"entry,block"`
}

type entryBlock struct {
	Name  string    `hcl:"name,label"`
	Value cty.Value `hcl:"value"`
}

// typeDescriptors maps the declarable type names to the Go types entry
// values are converted to.
var typeDescriptors = map[string]reflect.Type{
	"int":    reflect.TypeOf(int64(0)),
	"string": reflect.TypeOf(""),
	"float":  reflect.TypeOf(float64(0)),
	"bool":   reflect.TypeOf(false),
}

// Load parses src as HCL and returns the definitions it declares, keyed by
// enum name. filename is used for diagnostics only.
func Load(filename string, src []byte) (map[string]*enum.Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decl: failed to parse %s: %w", filename, diags)
	}

	var parsed declFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("decl: failed to decode %s: %w", filename, diags)
	}

	defs := make(map[string]*enum.Definition, len(parsed.Enums))
	for _, block := range parsed.Enums {
		if _, exists := defs[block.Name]; exists {
			return nil, fmt.Errorf("decl: duplicate enum %q in %s", block.Name, filename)
		}
		def, err := buildDefinition(block)
		if err != nil {
			return nil, fmt.Errorf("decl: enum %q in %s: %w", block.Name, filename, err)
		}
		defs[block.Name] = def
	}
	return defs, nil
}

// LoadFile reads path and loads the definitions it declares.
func LoadFile(path string) (map[string]*enum.Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decl: failed to read %s: %w", path, err)
	}
	return Load(path, src)
}

func buildDefinition(block *enumBlock) (*enum.Definition, error) {
	def := enum.New(block.Name)
	strict := block.Strict != nil && *block.Strict

	if block.Type != nil {
		t, ok := typeDescriptors[*block.Type]
		if !ok {
			return nil, fmt.Errorf("unknown type %q (want int, string, float or bool)", *block.Type)
		}
		if err := def.SetType(t, strict); err != nil {
			return nil, err
		}
	} else if strict {
		// strict is declared together with the value type; a strict enum
		// without one cannot reject anything coherently.
		return nil, fmt.Errorf("strict requires a type declaration")
	}

	for _, e := range block.Entries {
		value, err := goValue(e.Value, block.Type)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		if _, err := def.Add(e.Name, value); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
	}
	return def, nil
}

// goValue converts an HCL attribute value to its Go representation. Numbers
// become int64 unless the enclosing enum declares type "float" or the literal
// cannot be represented exactly as an integer.
func goValue(v cty.Value, declared *string) (any, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("value must not be null")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if declared != nil && *declared == "float" {
			f, _ := bf.Float64()
			return f, nil
		}
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
}
