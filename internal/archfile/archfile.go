// Package archfile loads VGG configuration rows from HCL files.
//
// A file holds one or more architecture blocks. Numbers in the stage list
// are convolution channel counts and the string "M" is a pooling marker:
//
//	architecture "VGG11-slim" {
//	  description = "VGG11 with halved early widths"
//	  stages      = [32, "M", 64, "M", 256, 256, "M", 512, 512, "M", 512, 512, "M"]
//	}
package archfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/born-ml/vgg/internal/ctxlog"
	"github.com/born-ml/vgg/internal/vgg"
)

// PoolMarker is the stage-list entry for a pooling stage.
const PoolMarker = "M"

// Definition is one architecture block.
type Definition struct {
	Name        string
	Description string
	Row         vgg.Row
}

// hclFile is the top-level structure of an architecture file.
type hclFile struct {
	Architectures []*hclArchitecture `hcl:"architecture,block"`
}

type hclArchitecture struct {
	Name        string         `hcl:"name,label"`
	Description *string        `hcl:"description,optional"`
	Stages      hcl.Expression `hcl:"stages"`
}

// Parse decodes architecture definitions from HCL source. filename is used
// in diagnostics only.
func Parse(src []byte, filename string) ([]Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file, filename)
}

// LoadFile reads and decodes an architecture file.
func LoadFile(ctx context.Context, path string) ([]Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading architecture file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	defs, err := decode(file, path)
	if err != nil {
		return nil, err
	}

	for _, def := range defs {
		logger.Debug("Architecture decoded.", "name", def.Name, "stages", def.Row.String())
	}
	logger.Info("Architecture file loaded.", "path", path, "architectures", len(defs))
	return defs, nil
}

// Register adds every definition to catalog, stopping at the first error.
func Register(catalog *vgg.Catalog, defs []Definition) error {
	for _, def := range defs {
		if err := catalog.Add(def.Name, def.Row); err != nil {
			return err
		}
	}
	return nil
}

func decode(file *hcl.File, filename string) ([]Definition, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	defs := make([]Definition, 0, len(parsed.Architectures))
	seen := make(map[string]bool, len(parsed.Architectures))
	for _, arch := range parsed.Architectures {
		if seen[arch.Name] {
			return nil, fmt.Errorf("%s: architecture %q defined twice: %w", filename, arch.Name, vgg.ErrDuplicateArchitecture)
		}
		seen[arch.Name] = true

		row, diags := decodeStages(arch.Stages)
		if diags.HasErrors() {
			return nil, fmt.Errorf("architecture %q in %s: %w", arch.Name, filename, diags)
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("architecture %q in %s: %w", arch.Name, filename, err)
		}

		def := Definition{Name: arch.Name, Row: row}
		if arch.Description != nil {
			def.Description = *arch.Description
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// decodeStages converts the stages expression, a tuple mixing numbers and
// the pool marker, into a Row.
func decodeStages(expr hcl.Expression) (vgg.Row, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	rng := expr.Range()
	if val.IsNull() || !val.IsKnown() || !(val.Type().IsTupleType() || val.Type().IsListType()) {
		return nil, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid stages",
			Detail:   fmt.Sprintf("stages must be a list of channel counts and %q markers.", PoolMarker),
			Subject:  &rng,
		})
	}

	row := make(vgg.Row, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		idx, _ := key.AsBigFloat().Int64()

		stage, err := decodeStage(elem)
		if err != nil {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid stage",
				Detail:   fmt.Sprintf("Element %d: %s.", idx, err),
				Subject:  &rng,
			})
			continue
		}
		row = append(row, stage)
	}
	return row, diags
}

func decodeStage(v cty.Value) (vgg.Stage, error) {
	if v.IsNull() || !v.IsKnown() {
		return vgg.Stage{}, fmt.Errorf("value must be known and not null")
	}

	switch v.Type() {
	case cty.String:
		if s := v.AsString(); s != PoolMarker {
			return vgg.Stage{}, fmt.Errorf("unknown marker %q, only %q is allowed", s, PoolMarker)
		}
		return vgg.Pool(), nil
	case cty.Number:
		if !v.AsBigFloat().IsInt() {
			return vgg.Stage{}, fmt.Errorf("channel count %s is not an integer", v.AsBigFloat().Text('g', -1))
		}
		var n int
		if err := gocty.FromCtyValue(v, &n); err != nil {
			return vgg.Stage{}, fmt.Errorf("channel count: %w", err)
		}
		if n <= 0 {
			return vgg.Stage{}, fmt.Errorf("channel count must be positive, got %d", n)
		}
		return vgg.Channels(n), nil
	default:
		return vgg.Stage{}, fmt.Errorf("expected a number or %q, got %s", PoolMarker, v.Type().FriendlyName())
	}
}
