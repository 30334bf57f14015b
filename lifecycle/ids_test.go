package lifecycle

import (
	"strings"
	"testing"
)

// TestUUIDCodeGenerator checks prefix, length and uniqueness of generated
// employee codes.
func TestUUIDCodeGenerator(t *testing.T) {
	g := UUIDCodeGenerator{}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := g.NewCode()
		if !strings.HasPrefix(code, "EMP") {
			t.Fatalf("Expected EMP prefix, got %q", code)
		}
		if len(code) != len("EMP")+32 {
			t.Fatalf("Unexpected code length for %q", code)
		}
		if seen[code] {
			t.Fatalf("Duplicate code generated: %q", code)
		}
		seen[code] = true
	}

	custom := UUIDCodeGenerator{Prefix: "STAFF"}
	if !strings.HasPrefix(custom.NewCode(), "STAFF") {
		t.Error("Expected custom prefix to be used")
	}
}
