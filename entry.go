package enum

import (
	"fmt"
	"hash/fnv"
)

// Unknown is the fallback name returned by non-strict definitions when a
// value cannot be resolved to a registered name.
const Unknown = "unknown"

// Entry is an immutable (definition, value) pair exposed to callers as the
// enum instance. Entries do not store their own name: it is resolved through
// the owning definition's reverse map at the moment it is needed, so removal
// immediately reverts the entry to unregistered.
type Entry struct {
	def   *Definition
	value any
}

// Definition returns the owning definition.
func (e *Entry) Definition() *Definition { return e.def }

// Value returns the raw registered value.
func (e *Entry) Value() any { return e.value }

// Name resolves the entry's registered name. When the value is not (or no
// longer) registered, strict definitions fail with ErrNotFound and
// non-strict definitions return Unknown.
func (e *Entry) Name() (string, error) {
	if name, ok := e.def.nameFor(e.value); ok {
		return name, nil
	}
	if e.def.Strict() {
		return "", fmt.Errorf("%w: unregistered enum value: %v", ErrNotFound, e.value)
	}
	return Unknown, nil
}

// String returns the resolved name, falling back to Unknown even for strict
// definitions so the entry stays printable. Use Name for strict-aware
// resolution.
func (e *Entry) String() string {
	if name, ok := e.def.nameFor(e.value); ok {
		return name
	}
	return Unknown
}

// Equal reports whether other belongs to the exact same definition and holds
// an equal value. Entries of structurally identical but distinct definitions
// are never equal.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.def == other.def && e.value == other.value
}

// Hash returns a hash derived solely from the entry's value, consistent with
// Equal for entries of the same definition.
func (e *Entry) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%T=%v", e.value, e.value)
	return h.Sum64()
}

// GoString implements fmt.GoStringer: #<http.Status ok:200>.
func (e *Entry) GoString() string {
	return fmt.Sprintf("#<%s %s:%v>", e.def.name, e.String(), e.value)
}
