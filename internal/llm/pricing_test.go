package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gemini-2.5-flash"); c == nil || c.InputPerMTok != 0.3 {
		t.Fatalf("unexpected cost %+v", c)
	}
	if c := LookupCost("google/gemini-2.0-flash-001"); c == nil {
		t.Fatal("expected vendor-prefixed id to resolve")
	}
	if c := LookupCost("mock"); c != nil {
		t.Fatalf("expected nil for unknown model, got %+v", c)
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	got := c.Cost(1_000_000, 200_000)
	if math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("Cost = %f, want 2.0", got)
	}
}
