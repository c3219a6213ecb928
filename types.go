package sieve

// UnknownPolicy controls how input keys that no field accepts are handled.
type UnknownPolicy int

const (
	UnknownIgnore UnknownPolicy = iota // Silently drop unknown keys.
	UnknownStrict                      // Flag unknown keys with a schema-level issue.
)

// CleanOpt bundles per-invocation options for a clean pass.
type CleanOpt struct {
	// Context is an opaque caller-supplied value forwarded verbatim to every
	// context-aware validator step. The engine never inspects it.
	Context any
	// FailFast stops the pass after the first issue instead of collecting all.
	FailFast bool
}

// omittedType is the sentinel stored for optional fields absent from input.
type omittedType struct{}

func (omittedType) String() string { return "omitted" }

// Omitted marks an optional field that was absent from the raw input and has
// no default. Omitted values never appear in a Cleaned result; dependency
// maps hand it to dependent steps so they can tell "absent" from "null".
var Omitted omittedType

// IsOmitted reports whether v is the Omitted sentinel.
func IsOmitted(v any) bool {
	_, ok := v.(omittedType)
	return ok
}
