package enum

import (
	"encoding/json"
	"fmt"
)

type encodeConfig struct {
	prefix string
	indent string
}

// EncodeOption adjusts JSON formatting without altering the two-key wire
// shape.
type EncodeOption func(*encodeConfig)

// WithIndent enables pretty-printed output, mirroring json.MarshalIndent.
func WithIndent(prefix, indent string) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.prefix = prefix
		cfg.indent = indent
	}
}

type entryWire struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// MarshalJSON encodes the entry as {"name": <resolved>, "value": <raw>}.
// Name resolution follows the definition's strict policy: strict definitions
// fail with ErrNotFound for unregistered values, non-strict ones encode the
// Unknown fallback.
func (e *Entry) MarshalJSON() ([]byte, error) {
	name, err := e.Name()
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryWire{Name: name, Value: e.value})
}

// Serialize returns the entry's JSON text, optionally pretty-printed.
func (e *Entry) Serialize(opts ...EncodeOption) (string, error) {
	var cfg encodeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	var (
		data []byte
		err  error
	)
	if cfg.indent != "" || cfg.prefix != "" {
		data, err = json.MarshalIndent(e, cfg.prefix, cfg.indent)
	} else {
		data, err = json.Marshal(e)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Deserialize resolves a wire object {"name": ..., "value": ...} against d.
// Only the name drives resolution; a value payload, if present, is ignored
// so the registry stays authoritative over the wire. Unresolved names fail
// with ErrNotFound when d is strict and return (nil, nil) otherwise.
func Deserialize(d *Definition, data []byte) (*Entry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedInput)
	}
	nameRaw, ok := raw["name"]
	if !ok || string(nameRaw) == "null" {
		return nil, fmt.Errorf("%w: missing 'name' key", ErrMissingField)
	}
	var name string
	if err := json.Unmarshal(nameRaw, &name); err != nil {
		return nil, fmt.Errorf("%w: 'name' must be a string", ErrMalformedInput)
	}
	if e := d.Get(name); e != nil {
		return e, nil
	}
	if d.Strict() {
		return nil, fmt.Errorf("%w: unregistered enum name: %s", ErrNotFound, name)
	}
	return nil, nil
}
