/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclManifestFile represents the top-level structure of an HCL manifest.
type hclManifestFile struct {
	Provider string      `hcl:"provider"`
	Pivots   []*hclPivot `hcl:"pivot,block"`
}

type hclPivot struct {
	Name          string            `hcl:"name,label"`
	Function      string            `hcl:"function"`
	SupportsBatch *bool             `hcl:"supports_batch,optional"`
	Schema        map[string]string `hcl:"schema,optional"`
	Entities      []*hclEntity      `hcl:"entity,block"`
}

type hclEntity struct {
	Name   string         `hcl:"name,label"`
	Param  *string        `hcl:"param,optional"`
	Params hcl.Expression `hcl:"params,optional"`
}

func parseHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL manifest %s: %w", filename, diags)
	}

	var parsed hclManifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL manifest %s: %w", filename, diags)
	}

	m := &Manifest{Provider: parsed.Provider}
	for _, p := range parsed.Pivots {
		spec := PivotSpec{
			Name:          p.Name,
			Function:      p.Function,
			SupportsBatch: p.SupportsBatch,
			Schema:        p.Schema,
			Entities:      make(map[string]BindingSpec, len(p.Entities)),
		}
		for _, e := range p.Entities {
			if _, dup := spec.Entities[e.Name]; dup {
				return nil, fmt.Errorf("%s: pivot %q binds entity %q twice", filename, p.Name, e.Name)
			}
			b, err := decodeHCLBinding(e)
			if err != nil {
				return nil, fmt.Errorf("%s: pivot %q entity %q: %w", filename, p.Name, e.Name, err)
			}
			spec.Entities[e.Name] = b
		}
		m.Pivots = append(m.Pivots, spec)
	}
	return m, nil
}

func decodeHCLBinding(e *hclEntity) (BindingSpec, error) {
	var b BindingSpec
	if e.Param != nil {
		b.Param = *e.Param
	}
	if e.Params == nil {
		return b, nil
	}

	val, diags := e.Params.Value(nil)
	if diags.HasErrors() {
		return b, diags
	}
	if val.IsNull() {
		return b, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return b, fmt.Errorf("params must be an object, got %s", val.Type().FriendlyName())
	}
	params, err := ctyToGo(val)
	if err != nil {
		return b, err
	}
	b.Params = params.(map[string]any)
	return b, nil
}

// ctyToGo converts a known cty value to plain Go values. Whole numbers become
// int; other numbers become float64.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case t.IsListType() || t.IsTupleType() || t.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	case t.IsMapType() || t.IsObjectType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = gv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", t.FriendlyName())
}
