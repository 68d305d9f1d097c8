package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the variants of a metadata Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is a tagged metadata value: string, number, bool, list or map.
// It round-trips through both JSON (commit.json) and YAML (index.yaml)
// without falling back to interface{} typed maps.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

// Metadata is the open metadata map carried by branches and commits.
type Metadata map[string]Value

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

func (v Value) AsMap() (map[string]Value, bool) { return v.m, v.kind == KindMap }

// StringList converts a list value whose elements are all strings.
func (v Value) StringList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]string, 0, len(v.list))
	for _, item := range v.list {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// plain returns the untagged representation used by both codecs.
func (v Value) plain() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]interface{}, len(v.list))
		for i, item := range v.list {
			out[i] = item.plain()
		}
		return out
	case KindMap:
		out := make(map[string]interface{}, len(v.m))
		for k, item := range v.m {
			out[k] = item.plain()
		}
		return out
	}
	return nil
}

// fromPlain converts a decoded interface{} tree into a tagged Value.
func fromPlain(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case bool:
		return Bool(t), nil
	case []interface{}:
		list := make([]Value, len(t))
		for i, item := range t {
			v, err := fromPlain(item)
			if err != nil {
				return Value{}, err
			}
			list[i] = v
		}
		return Value{kind: KindList, list: list}, nil
	case map[string]interface{}:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			v, err := fromPlain(item)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Map(m), nil
	}
	return Value{}, fmt.Errorf("unsupported metadata value of type %T", raw)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.plain())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := fromPlain(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	return v.plain(), nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromPlain(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
