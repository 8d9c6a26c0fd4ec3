package token

import (
	"strings"
	"testing"
)

func TestGenerateHasThreeSegments(t *testing.T) {
	value := Generate()
	segments := strings.Split(value, "-")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d (%q)", len(segments), value)
	}
	for index, segment := range segments {
		if segment == "" {
			t.Fatalf("segment %d is empty in %q", index, value)
		}
	}
}

func TestGenerateProducesNoDuplicates(t *testing.T) {
	const total = 10000
	seen := make(map[string]struct{}, total)
	for i := 0; i < total; i++ {
		value := Generate()
		if _, exists := seen[value]; exists {
			t.Fatalf("duplicate token after %d generations: %q", i, value)
		}
		seen[value] = struct{}{}
	}
}

func TestToID(t *testing.T) {
	if got := ToID("abc123-def456-xyz"); got != "abc123" {
		t.Fatalf("expected first segment, got %q", got)
	}
	if got := ToID(""); got != "" {
		t.Fatalf("expected empty id for empty token, got %q", got)
	}
	if got := ToID("solo"); got != "solo" {
		t.Fatalf("expected whole token without separator, got %q", got)
	}
}
