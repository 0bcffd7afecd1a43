/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/GitCraigRash/just-eval/schema"
)

func TestReflect(t *testing.T) {
	type verdict struct {
		Reason string  `json:"reason" jsonschema:"description=Short rationale for the score"`
		Score  float64 `json:"score" jsonschema:"description=Likert score from 1 to 5"`
	}
	type record struct {
		Instruction string             `json:"instruction" jsonschema:"description=Query posed to the model,required"`
		Candidate   string             `json:"candidate" jsonschema:"description=Model output under evaluation,required"`
		Verdicts    map[string]verdict `json:"verdicts,omitempty"`
	}

	s := schema.Reflect(&record{})
	if s == nil {
		t.Fatal("expected schema")
	}
	if s.Type != "object" {
		t.Fatalf("unexpected type: %q", s.Type)
	}

	if len(s.Required) != 2 || s.Required[0] != "instruction" || s.Required[1] != "candidate" {
		t.Fatalf("unexpected required: %#v", s.Required)
	}

	props := s.Properties
	if props == nil {
		t.Fatal("expected properties")
	}

	instruction, ok := props.Get("instruction")
	if !ok {
		t.Fatal("missing instruction property")
	}
	if instruction.Description != "Query posed to the model" {
		t.Fatalf("unexpected description: %q", instruction.Description)
	}

	verdicts, ok := props.Get("verdicts")
	if !ok {
		t.Fatal("missing verdicts property")
	}
	valueSchema := verdicts.AdditionalProperties
	if valueSchema == nil {
		t.Fatal("expected verdict value schema")
	}
	score, ok := valueSchema.Properties.Get("score")
	if !ok {
		t.Fatal("missing score property")
	}
	if score.Description != "Likert score from 1 to 5" {
		t.Fatalf("unexpected score description: %q", score.Description)
	}
}

func TestReflectType(t *testing.T) {
	type sample struct {
		Name string `json:"name" jsonschema:"description=Name,required"`
	}

	s := schema.ReflectType[sample]()
	if s == nil {
		t.Fatal("expected schema")
	}
	if len(s.Required) != 1 || s.Required[0] != "name" {
		t.Fatalf("unexpected required: %#v", s.Required)
	}
}

func TestMarshalIndent(t *testing.T) {
	type sample struct {
		Mode string `json:"mode" jsonschema:"description=Scoring rubric to apply"`
	}

	raw, err := schema.MarshalIndent(&sample{})
	if err != nil {
		t.Fatalf("MarshalIndent() = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("rendered schema is not valid JSON: %v", err)
	}
	if decoded["type"] != "object" {
		t.Fatalf("unexpected type: %v", decoded["type"])
	}
	props, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatal("expected properties object")
	}
	if _, ok := props["mode"]; !ok {
		t.Fatal("missing mode property")
	}
}
