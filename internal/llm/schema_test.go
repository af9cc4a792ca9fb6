package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStripKeywords_Recursive(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":             "object",
			"propertyOrdering": []any{"a"},
			"properties": map[string]any{
				"a": map[string]any{"type": "string"},
			},
		},
		"propertyOrdering": []any{"ignored"},
	}

	out := stripKeywords(def, "propertyOrdering")

	if _, ok := out["propertyOrdering"]; ok {
		t.Fatal("top-level keyword not stripped")
	}
	items := out["items"].(map[string]any)
	if _, ok := items["propertyOrdering"]; ok {
		t.Fatal("nested keyword not stripped")
	}
	if _, ok := def["propertyOrdering"]; !ok {
		t.Fatal("input definition was modified")
	}
}

func TestPortableDefinition(t *testing.T) {
	obj := map[string]any{"type": "object"}
	if _, wrapped := portableDefinition(obj); wrapped {
		t.Fatal("object root should not be wrapped")
	}

	arr := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	out, wrapped := portableDefinition(arr)
	if !wrapped {
		t.Fatal("array root should be wrapped")
	}
	props := out["properties"].(map[string]any)
	if props[wrappedRootKey].(map[string]any)["type"] != "array" {
		t.Fatalf("wrapped schema lost its array root: %v", out)
	}
}

func TestUnwrapRoot(t *testing.T) {
	got, err := unwrapRoot(json.RawMessage(`{"items":[1,2]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Fatalf("got %s", got)
	}

	_, err = unwrapRoot(json.RawMessage(`{"other":[]}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}
