package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "user-") {
		t.Errorf("expected prefix %q, got %q", "user-", got)
	}
	// prefix + dash + 21-char nanoid
	if len(got) != len("user-")+21 {
		t.Errorf("unexpected length %d for %q", len(got), got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := Generate("item")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestMustGenerate(t *testing.T) {
	id := MustGenerate("sess")
	if !strings.HasPrefix(id, "sess-") {
		t.Errorf("expected prefix %q, got %q", "sess-", id)
	}
}
