package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"bonk/internal/ast"
	"bonk/internal/sema"
	"bonk/internal/source"
)

// DefinitionJSON is one named definition with its inferred type.
type DefinitionJSON struct {
	Kind      string `json:"kind" yaml:"kind"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Footprint uint32 `json:"footprint" yaml:"footprint"`
	Line      uint32 `json:"line" yaml:"line"`
	Col       uint32 `json:"col" yaml:"col"`
}

// ModuleTypesJSON lists the definitions of one module in source order.
type ModuleTypesJSON struct {
	Module      string           `json:"module" yaml:"module"`
	Path        string           `json:"path" yaml:"path"`
	OK          bool             `json:"ok" yaml:"ok"`
	Definitions []DefinitionJSON `json:"definitions" yaml:"definitions"`
}

// BuildModuleTypes walks tree and asks res for the type of every bowl,
// parameter, blok and hive.
func BuildModuleTypes(name string, tree *ast.Builder, fs *source.FileSet, res sema.Result, mode PathMode) ModuleTypesJSON {
	out := ModuleTypesJSON{Module: name, OK: res.OK, Definitions: []DefinitionJSON{}}
	if !tree.Root.IsValid() {
		return out
	}
	out.Path = displayPath(fs.Get(tree.Nodes.Span(tree.Root).File), mode, "")
	tree.Nodes.Inspect(tree.Root, func(id ast.NodeID) bool {
		kind := tree.Nodes.Kind(id)
		switch kind {
		case ast.NodeBowl, ast.NodeBlok, ast.NodeHive:
		default:
			return true
		}
		_, nameSpan, ok := tree.DeclName(id)
		if !ok {
			return true
		}
		label := kind.String()
		if bowl, ok := tree.Nodes.Bowl(id); ok && bowl.IsParam {
			label = "param"
		}
		ty := res.TypeOf(id)
		pos, _ := fs.Resolve(nameSpan)
		out.Definitions = append(out.Definitions, DefinitionJSON{
			Kind:      label,
			Name:      res.Symbols().DisplayName(id),
			Type:      res.Label(ty),
			Footprint: res.Footprint(ty),
			Line:      pos.Line,
			Col:       pos.Col,
		})
		return true
	})
	return out
}

// FormatTypesText prints an aligned table per module.
func FormatTypesText(w io.Writer, mods []ModuleTypesJSON) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, m := range mods {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s (%s)\n", m.Module, m.Path)
		for _, d := range m.Definitions {
			fmt.Fprintf(tw, "%d:%d\t%s\t%s\t%s\t%d\n", d.Line, d.Col, d.Kind, d.Name, d.Type, d.Footprint)
		}
	}
	return tw.Flush()
}

func FormatTypesJSON(w io.Writer, mods []ModuleTypesJSON) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(mods)
}

func FormatTypesYAML(w io.Writer, mods []ModuleTypesJSON) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(mods); err != nil {
		return err
	}
	return enc.Close()
}
