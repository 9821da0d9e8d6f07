package enum

import "errors"

// Registry errors. All failures wrap one of these sentinels so callers can
// branch with errors.Is while still receiving a message that names the
// offending entry.
var (
	// ErrConfig indicates an invalid type descriptor or a value that cannot
	// be used as a map key.
	ErrConfig = errors.New("enum: invalid configuration")
	// ErrTypeMismatch indicates an entry value that violates the declared
	// value-type constraint.
	ErrTypeMismatch = errors.New("enum: invalid value type")
	// ErrDuplicateValue indicates a value already registered under another name.
	ErrDuplicateValue = errors.New("enum: duplicate value")
	// ErrDuplicateName indicates a name already registered.
	ErrDuplicateName = errors.New("enum: duplicate name")
	// ErrNotFound indicates a lookup for an unregistered name or value.
	ErrNotFound = errors.New("enum: not found")
	// ErrMalformedInput indicates input to Deserialize that is not a JSON object.
	ErrMalformedInput = errors.New("enum: malformed input")
	// ErrMissingField indicates a JSON object without the required "name" key.
	ErrMissingField = errors.New("enum: missing field")
)
