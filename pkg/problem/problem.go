// Package problem loads exam-style problem documents and solves them.
//
// A document names one of three kinds: a counter whose trace is matched against
// multiple-choice candidates, a latch stepped through a list of drives, or a set of gate
// expressions to count. Documents are YAML (default) or JSON.
package problem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Kind selects how a problem is solved.
type Kind string

const (
	KindCounter Kind = "counter"
	KindLatch   Kind = "latch"
	KindGates   Kind = "gates"
)

// Problem is the decoded form of a problem document.
type Problem struct {
	Kind  Kind   `json:"kind" mapstructure:"kind"`
	Title string `json:"title,omitempty" mapstructure:"title"`

	// Counter problems: either a catalog circuit or an inline counter.
	Circuit    string              `json:"circuit,omitempty" mapstructure:"circuit"`
	Counter    *CounterSpec        `json:"counter,omitempty" mapstructure:"counter"`
	Cycles     int                 `json:"cycles,omitempty" mapstructure:"cycles"`
	Policy     string              `json:"policy,omitempty" mapstructure:"policy"`
	Candidates map[string][]string `json:"candidates,omitempty" mapstructure:"candidates"`

	// Latch problems.
	Latch   string     `json:"latch,omitempty" mapstructure:"latch"`
	Initial []string   `json:"initial,omitempty" mapstructure:"initial"`
	Steps   [][]string `json:"steps,omitempty" mapstructure:"steps"`
	Expect  []string   `json:"expect,omitempty" mapstructure:"expect"`

	// Gate counting problems: kind -> expressions.
	Gates map[string][]string `json:"gates,omitempty" mapstructure:"gates"`

	// Answer is the expected option, used to grade the solution when present.
	Answer string `json:"answer,omitempty" mapstructure:"answer"`
}

// CounterSpec describes an inline counter.
type CounterSpec struct {
	Name      string         `json:"name,omitempty" mapstructure:"name"`
	Initial   string         `json:"initial,omitempty" mapstructure:"initial"`
	FlipFlops []FlipFlopSpec `json:"flipflops" mapstructure:"flipflops"`
}

// FlipFlopSpec wires one flip-flop with literal sources ("0", "1", "q2", "!q1").
type FlipFlopSpec struct {
	J string `json:"j" mapstructure:"j"`
	K string `json:"k" mapstructure:"k"`
}

// Load reads a problem document from disk. The extension picks the decoder:
// .json uses JSON, anything else YAML.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem: %w", err)
	}
	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if p.Title == "" {
		p.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Parse decodes and validates a document.
func Parse(data []byte, ext string) (*Problem, error) {
	data, err := Sanitize(data)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any)
	if strings.EqualFold(ext, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		m, ok := nodeValue(&doc).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("failed to parse yaml: document must be a mapping")
		}
		raw = m
	}

	p, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// nodeValue converts a YAML node into generic values, keeping every scalar
// as its source text. Unquoted states such as 010 stay "010" instead of
// being resolved as numbers; mapstructure converts text to the field types.
func nodeValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = nodeValue(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			out[i] = nodeValue(c)
		}
		return out
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		if n.ShortTag() == "!!null" {
			return nil
		}
		return n.Value
	}
}

// Decode maps a generic document onto a Problem.
// Numbers are accepted where strings are expected, so JSON states written as
// numbers decode (and are zero-padded when solved).
func Decode(raw map[string]any) (*Problem, error) {
	var p Problem
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonNumberToString,
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode problem: %w", err)
	}
	p.Kind = Kind(strings.ToLower(strings.TrimSpace(string(p.Kind))))
	return &p, nil
}

func jsonNumberToString(from, to reflect.Type, data any) (any, error) {
	if n, ok := data.(json.Number); ok && to.Kind() == reflect.String {
		return n.String(), nil
	}
	return data, nil
}
