package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValueRoundTripJSON(t *testing.T) {
	meta := Metadata{
		"name":    String("feature-x"),
		"count":   Number(3),
		"enabled": Bool(true),
		"tags":    List(String("auth"), String("cache")),
		"nested":  Map(map[string]Value{"depth": Number(2)}),
	}

	encoded, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("failed to marshal metadata: %v", err)
	}

	var decoded Metadata
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("failed to unmarshal metadata: %v", err)
	}

	if s, ok := decoded["name"].AsString(); !ok || s != "feature-x" {
		t.Errorf("name did not round-trip: %v", decoded["name"])
	}
	if n, ok := decoded["count"].AsNumber(); !ok || n != 3 {
		t.Errorf("count did not round-trip: %v", decoded["count"])
	}
	if b, ok := decoded["enabled"].AsBool(); !ok || !b {
		t.Errorf("enabled did not round-trip: %v", decoded["enabled"])
	}
	if tags, ok := decoded["tags"].StringList(); !ok || len(tags) != 2 || tags[0] != "auth" {
		t.Errorf("tags did not round-trip: %v", decoded["tags"])
	}
	nested, ok := decoded["nested"].AsMap()
	if !ok {
		t.Fatalf("nested did not round-trip: %v", decoded["nested"])
	}
	if d, ok := nested["depth"].AsNumber(); !ok || d != 2 {
		t.Errorf("nested depth did not round-trip: %v", nested["depth"])
	}
}

func TestValueRoundTripYAML(t *testing.T) {
	meta := Metadata{
		"topic": String("merge engine"),
		"runs":  Number(7),
		"flags": List(Bool(true), Bool(false)),
	}

	encoded, err := yaml.Marshal(meta)
	if err != nil {
		t.Fatalf("failed to marshal metadata: %v", err)
	}

	var decoded Metadata
	if err := yaml.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("failed to unmarshal metadata: %v", err)
	}

	if s, ok := decoded["topic"].AsString(); !ok || s != "merge engine" {
		t.Errorf("topic did not round-trip: %v", decoded["topic"])
	}
	if n, ok := decoded["runs"].AsNumber(); !ok || n != 7 {
		t.Errorf("runs did not round-trip: %v", decoded["runs"])
	}
	flags, ok := decoded["flags"].AsList()
	if !ok || len(flags) != 2 {
		t.Fatalf("flags did not round-trip: %v", decoded["flags"])
	}
	if b, ok := flags[0].AsBool(); !ok || !b {
		t.Errorf("first flag did not round-trip: %v", flags[0])
	}
}
