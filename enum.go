// Package enum implements a declarative registry mapping symbolic names to
// unique values, with optional type constraints, strict or fallback lookup
// semantics, and JSON round-tripping.
package enum

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Definition is an isolated registry of named values, analogous to one enum
// type. Each Definition owns its own maps and flags; definitions never share
// or inherit entries.
//
// Mutation (SetType, Add, Remove) is expected during a composition phase,
// typically at program startup. Reads are guarded so concurrent lookups
// remain safe regardless.
type Definition struct {
	mu        sync.RWMutex
	id        string
	name      string
	valueType reflect.Type
	strict    bool
	byName    map[string]*Entry
	byValue   map[any]string
	order     []string
}

// Option configures a Definition at construction time.
type Option func(*Definition)

// WithType declares the value-type constraint and strict flag up front.
// Equivalent to calling SetType with a valid descriptor.
func WithType(t reflect.Type, strict bool) Option {
	return func(d *Definition) {
		if t == nil {
			return
		}
		d.valueType = t
		d.strict = strict
	}
}

// New constructs an empty definition. The name is the fully-qualified display
// name used in debug output, e.g. "http.Status".
func New(name string, opts ...Option) *Definition {
	d := &Definition{
		id:      uuid.NewString(),
		name:    name,
		byName:  make(map[string]*Entry),
		byValue: make(map[any]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// ID returns the unique identity of this definition instance.
func (d *Definition) ID() string { return d.id }

// Name returns the definition's display name.
func (d *Definition) Name() string { return d.name }

// String implements fmt.Stringer.
func (d *Definition) String() string { return d.name }

// SetType declares the value-type constraint for subsequently added entries.
// The descriptor must be a non-nil reflect.Type; anything else fails with
// ErrConfig. The constraint is not applied retroactively to entries added
// before the call.
func (d *Definition) SetType(descriptor any, strict bool) error {
	t, ok := descriptor.(reflect.Type)
	if !ok || t == nil {
		return fmt.Errorf("%w: type descriptor %v is not a reflect.Type", ErrConfig, descriptor)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.valueType = t
	d.strict = strict
	return nil
}

// Strict reports whether resolution failures raise errors instead of
// returning the Unknown fallback.
func (d *Definition) Strict() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.strict
}

// ValueType returns the declared value-type constraint, or nil when the
// definition accepts any value type.
func (d *Definition) ValueType() reflect.Type {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.valueType
}

// Add registers value under name and returns the entry bound to this
// definition. Validation order is fixed: type constraint, duplicate value,
// duplicate name. A failed Add leaves the definition unchanged.
func (d *Definition) Add(name string, value any) (*Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.valueType != nil {
		vt := reflect.TypeOf(value)
		if vt == nil || !vt.AssignableTo(d.valueType) {
			return nil, fmt.Errorf("%w for %q: expected %s, got %s",
				ErrTypeMismatch, name, d.valueType, typeName(value))
		}
	}
	if vt := reflect.TypeOf(value); vt != nil && !vt.Comparable() {
		return nil, fmt.Errorf("%w: value of type %s is not comparable", ErrConfig, vt)
	}
	if existing, ok := d.byValue[value]; ok {
		return nil, fmt.Errorf("%w: %v already registered as %q", ErrDuplicateValue, value, existing)
	}
	if existing, ok := d.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q already registered with value %v", ErrDuplicateName, name, existing.value)
	}

	e := &Entry{def: d, value: value}
	d.byName[name] = e
	d.byValue[value] = name
	d.order = append(d.order, name)
	return e, nil
}

// MustAdd is Add that panics on error. Useful from package init blocks.
func (d *Definition) MustAdd(name string, value any) *Entry {
	e, err := d.Add(name, value)
	if err != nil {
		panic(err)
	}
	return e
}

// Get returns the entry registered under name, or nil when absent. It never
// returns an error.
func (d *Definition) Get(name string) *Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byName[name]
}

// Fetch returns the entry registered under name, failing with ErrNotFound
// when absent.
func (d *Definition) Fetch(name string) (*Entry, error) {
	if e := d.Get(name); e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("%w: unregistered enum name: %s", ErrNotFound, name)
}

// NameFor reverse-looks-up the name bound to value. The second return is
// false when value was never registered or has been removed.
func (d *Definition) NameFor(value any) (string, bool) {
	vt := reflect.TypeOf(value)
	if vt != nil && !vt.Comparable() {
		return "", false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.byValue[value]
	return name, ok
}

// EntryFor returns the registered singleton entry for value when present,
// otherwise a detached entry bound to this definition. Detached entries
// resolve their name per the definition's strict policy.
func (d *Definition) EntryFor(value any) *Entry {
	if name, ok := d.NameFor(value); ok {
		return d.Get(name)
	}
	return &Entry{def: d, value: value}
}

// All returns every entry in registration order.
func (d *Definition) All() []*Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entries := make([]*Entry, 0, len(d.order))
	for _, name := range d.order {
		entries = append(entries, d.byName[name])
	}
	return entries
}

// Names returns all registered names in registration order.
func (d *Definition) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// Values returns all registered values in registration order, parallel to
// Names.
func (d *Definition) Values() []any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	values := make([]any, 0, len(d.order))
	for _, name := range d.order {
		values = append(values, d.byName[name].value)
	}
	return values
}

// Len returns the number of registered entries.
func (d *Definition) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// Remove deletes the entry registered under name from both maps and returns
// it. Returns nil when name was never registered; a second Remove for the
// same name is a no-op. The removed entry stays valid for its own value but
// its name resolution reverts to unregistered.
func (d *Definition) Remove(name string) *Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.byName[name]
	if !ok {
		return nil
	}
	delete(d.byName, name)
	delete(d.byValue, e.value)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return e
}

func (d *Definition) nameFor(value any) (string, bool) {
	return d.NameFor(value)
}

func typeName(value any) string {
	if value == nil {
		return "<nil>"
	}
	return reflect.TypeOf(value).String()
}
