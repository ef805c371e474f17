// internal/domain/models/schema.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueTerm is one categorical value of a schema variable.
type ValueTerm struct {
	Name        string
	TargetClass string
}

// Variable is one entry of the global schema's variable_info, with its value
// terms in declaration order.
type Variable struct {
	Name   string
	Class  string
	Values []ValueTerm
}

// Prefix is an ontology prefix and the namespace URI it abbreviates.
type Prefix struct {
	Name string
	URI  string
}

// GlobalSchema is the part of the collaboration's global schema the portal
// reads. Variables keep the order in which the schema document declares them.
type GlobalSchema struct {
	Variables []Variable
	// Prefixes is optional; nil means the portal defaults.
	Prefixes []Prefix
}

// Variable returns the variable with the given name.
func (g GlobalSchema) Variable(name string) (Variable, bool) {
	for _, v := range g.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

type variableBody struct {
	Class        string `json:"class" yaml:"class"`
	ValueMapping struct {
		Terms orderedTerms `json:"terms" yaml:"terms"`
	} `json:"value_mapping" yaml:"value_mapping"`
}

type termBody struct {
	TargetClass string `json:"target_class" yaml:"target_class"`
}

type orderedTerms []ValueTerm

// UnmarshalJSON decodes {"<value>": {"target_class": ...}} keeping key order.
func (o *orderedTerms) UnmarshalJSON(b []byte) error {
	out := orderedTerms{}
	err := decodeOrderedObject(b, func(key string, raw json.RawMessage) error {
		var t termBody
		if err := json.Unmarshal(raw, &t); err != nil {
			return fmt.Errorf("term %q: %w", key, err)
		}
		out = append(out, ValueTerm{Name: key, TargetClass: t.TargetClass})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// UnmarshalYAML decodes the same shape from a YAML mapping node.
func (o *orderedTerms) UnmarshalYAML(n *yaml.Node) error {
	out := orderedTerms{}
	err := walkMapping(n, func(key string, val *yaml.Node) error {
		var t termBody
		if err := val.Decode(&t); err != nil {
			return fmt.Errorf("term %q: %w", key, err)
		}
		out = append(out, ValueTerm{Name: key, TargetClass: t.TargetClass})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

type orderedVariables []Variable

func (o *orderedVariables) UnmarshalJSON(b []byte) error {
	out := orderedVariables{}
	err := decodeOrderedObject(b, func(key string, raw json.RawMessage) error {
		var body variableBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return fmt.Errorf("variable %q: %w", key, err)
		}
		out = append(out, Variable{Name: key, Class: body.Class, Values: []ValueTerm(body.ValueMapping.Terms)})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

func (o *orderedVariables) UnmarshalYAML(n *yaml.Node) error {
	out := orderedVariables{}
	err := walkMapping(n, func(key string, val *yaml.Node) error {
		var body variableBody
		if err := val.Decode(&body); err != nil {
			return fmt.Errorf("variable %q: %w", key, err)
		}
		out = append(out, Variable{Name: key, Class: body.Class, Values: []ValueTerm(body.ValueMapping.Terms)})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

type orderedPrefixes []Prefix

func (o *orderedPrefixes) UnmarshalJSON(b []byte) error {
	out := orderedPrefixes{}
	err := decodeOrderedObject(b, func(key string, raw json.RawMessage) error {
		var uri string
		if err := json.Unmarshal(raw, &uri); err != nil {
			return fmt.Errorf("prefix %q: %w", key, err)
		}
		out = append(out, Prefix{Name: key, URI: uri})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

func (o *orderedPrefixes) UnmarshalYAML(n *yaml.Node) error {
	out := orderedPrefixes{}
	err := walkMapping(n, func(key string, val *yaml.Node) error {
		out = append(out, Prefix{Name: key, URI: val.Value})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

type schemaDoc struct {
	VariableInfo orderedVariables `json:"variable_info" yaml:"variable_info"`
	Prefixes     orderedPrefixes  `json:"prefixes" yaml:"prefixes"`
}

func (d schemaDoc) schema() GlobalSchema {
	g := GlobalSchema{Variables: []Variable(d.VariableInfo)}
	if len(d.Prefixes) > 0 {
		g.Prefixes = []Prefix(d.Prefixes)
	}
	return g
}

// UnmarshalJSON decodes a global schema document.
func (g *GlobalSchema) UnmarshalJSON(b []byte) error {
	var doc schemaDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*g = doc.schema()
	return nil
}

// UnmarshalYAML decodes a global schema document written as YAML.
func (g *GlobalSchema) UnmarshalYAML(n *yaml.Node) error {
	var doc schemaDoc
	if err := n.Decode(&doc); err != nil {
		return err
	}
	*g = doc.schema()
	return nil
}

// decodeOrderedObject calls fn for every member of a JSON object in document
// order. A JSON null is treated as an empty object.
func decodeOrderedObject(b []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// walkMapping calls fn for every key/value pair of a YAML mapping in order.
func walkMapping(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
