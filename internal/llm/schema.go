package llm

import (
	"encoding/json"
	"fmt"
	"slices"
)

// wrappedRootKey holds an array-rooted payload for providers whose
// structured output mode requires an object at the top level.
const wrappedRootKey = "items"

// geminiOnlyKeywords are schema keywords understood by Gemini and rejected
// (or ignored) everywhere else.
var geminiOnlyKeywords = []string{"propertyOrdering"}

// stripKeywords returns a deep copy of def without the named keywords.
func stripKeywords(def map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(def))
	for k, v := range def {
		if slices.Contains(keys, k) {
			continue
		}
		out[k] = stripValue(v, keys)
	}
	return out
}

func stripValue(v any, keys []string) any {
	switch t := v.(type) {
	case map[string]any:
		return stripKeywords(t, keys...)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = stripValue(e, keys)
		}
		return out
	default:
		return v
	}
}

// portableDefinition prepares def for OpenAI-style structured output. It
// drops Gemini-only keywords and, for non-object roots, nests the schema
// under wrappedRootKey. wrapped reports whether responses must be passed
// through unwrapRoot.
func portableDefinition(def map[string]any) (out map[string]any, wrapped bool) {
	clean := stripKeywords(def, geminiOnlyKeywords...)
	if t, _ := clean["type"].(string); t == "object" {
		return clean, false
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			wrappedRootKey: clean,
		},
		"required":             []any{wrappedRootKey},
		"additionalProperties": false,
	}, true
}

// unwrapRoot extracts the payload nested by portableDefinition.
func unwrapRoot(content json.RawMessage) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(content, &obj); err != nil {
		return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	inner, ok := obj[wrappedRootKey]
	if !ok {
		return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("missing %q in wrapped response", wrappedRootKey)}
	}
	return inner, nil
}
