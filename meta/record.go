package meta

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Group is a free form mapping copied from the configuration document
type Group map[string]any

func (g Group) clone() Group {
	if g == nil {
		return nil
	}
	out := make(Group, len(g))
	for k, v := range g {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return map[string]any(Group(vv).clone())
	case Group:
		return vv.clone()
	case []any:
		out := make([]any, len(vv))
		for i := range vv {
			out[i] = cloneValue(vv[i])
		}
		return out
	}
	return v
}

// MarshalYAML keeps floats written as floats, eg: 1.0 stays 1.0
func (g Group) MarshalYAML() (any, error) {
	return encodeValue(map[string]any(g))
}

func encodeValue(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case Group:
		return encodeValue(map[string]any(vv))
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			vn, err := encodeValue(vv[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range vv {
			vn, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, vn)
		}
		return n, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(vv)}, nil
	}

	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Processing ...
type Processing struct {
	Timestamp       string `yaml:"timestamp"`
	SoftwareVersion string `yaml:"software_version"`
}

// Original describes the source image
type Original struct {
	Path       string `yaml:"path"`
	Dimensions [2]int `yaml:"dimensions,flow"`
	Format     string `yaml:"format"`
	Size       int64  `yaml:"size"`
	Checksum   string `yaml:"checksum"`
}

// Processed describes the resized image
type Processed struct {
	Dimensions [2]int `yaml:"dimensions,flow"`
	Format     string `yaml:"format"`
}

// Image ...
type Image struct {
	Original  Original  `yaml:"original"`
	Processed Processed `yaml:"processed"`
}

// Record is the metadata written to sidecars and embedded into images
type Record struct {
	Project    Group      `yaml:"project"`
	Parameters Group      `yaml:"parameters"`
	Contact    Group      `yaml:"contact"`
	Processing Processing `yaml:"processing"`
	Image      *Image     `yaml:"image,omitempty"`
}

func (r *Record) clone() *Record {
	out := &Record{
		Project:    r.Project.clone(),
		Parameters: r.Parameters.clone(),
		Contact:    r.Contact.clone(),
		Processing: r.Processing,
	}
	if r.Image != nil {
		img := *r.Image
		out.Image = &img
	}
	return out
}

// Marshal serializes the record as YAML
func (r *Record) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads a record from a sidecar document
func Parse(data []byte) (*Record, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
