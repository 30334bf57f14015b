package lifecycle

import (
	"strings"

	"github.com/google/uuid"
)

// CodeGenerator produces external employee codes. Codes must be unique
// across all employees; the generator is injected so tests and alternative
// id strategies can replace it.
type CodeGenerator interface {
	NewCode() string
}

// UUIDCodeGenerator generates collision-resistant employee codes from
// random 128-bit UUIDs.
type UUIDCodeGenerator struct {
	// Prefix is prepended to every generated code; defaults to "EMP".
	Prefix string
}

// NewCode returns a new employee code
func (g UUIDCodeGenerator) NewCode() string {
	prefix := g.Prefix
	if prefix == "" {
		prefix = "EMP"
	}
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
