// Package report renders a dry-run of the engine as canonical YAML or JSON.
package report

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/engine"
	"gopkg.in/yaml.v3"
)

// Fields returns the report for st as plain maps and slices.
func Fields(st engine.Step) map[string]any {
	cls := st.Classification
	out := map[string]any{
		"command": commandFields(st.Original),
		"classification": map[string]any{
			"passthrough": cls.Passthrough,
		},
	}
	if cls.Passthrough {
		return out
	}
	out["classification"] = map[string]any{
		"passthrough": false,
		"unit":        cls.Unit,
		"outDir":      cls.OutDir,
		"binary":      cls.Binary,
		"hasTarget":   cls.HasTarget,
		"input":       cls.Input,
		"tooling":     cls.Tooling,
		"excluded":    cls.Excluded,
	}
	p := st.Plan
	pl := map[string]any{
		"request": p.Request.String(),
		"rewrite": p.Rewrite,
		"lto":     p.LTO,
		"repair":  p.Repair,
	}
	optional(pl, "emit", p.Emit)
	optional(pl, "sysroot", p.Sysroot)
	optional(pl, "dispatch", p.Dispatch)
	optional(pl, "irPath", p.IRPath)
	optional(pl, "outputPath", p.OutputPath)
	out["plan"] = pl
	out["rewritten"] = commandFields(st.Command)
	return out
}

func optional(m map[string]any, k, v string) {
	if v != "" {
		m[k] = v
	}
}

func commandFields(c command.Command) map[string]any {
	args := make([]any, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, a)
	}
	m := map[string]any{"program": c.Program, "args": args}
	optional(m, "dir", c.Dir)
	return m
}

// YAML returns canonical YAML for st: keys sorted at every level, two-space
// indent, exactly one trailing newline.
func YAML(st engine.Step) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(canonicalNode(Fields(st))); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, '\n'), nil
}

// JSON returns indented JSON for st. encoding/json sorts map keys.
func JSON(st engine.Step) ([]byte, error) {
	b, err := json.MarshalIndent(Fields(st), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func scalarFrom(v any) *yaml.Node {
	n := &yaml.Node{}
	_ = n.Encode(v)
	return n
}

func canonicalNode(v any) *yaml.Node {
	switch x := v.(type) {
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			n.Content = append(n.Content, scalarNode(k), canonicalNode(x[k]))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, it := range x {
			n.Content = append(n.Content, canonicalNode(it))
		}
		return n
	default:
		return scalarFrom(x)
	}
}
