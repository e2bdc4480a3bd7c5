// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// reTag matches scalar payloads carrying an inline type tag, e.g.
// "RESTRICT!{core.ReferenceAction}". The payload group is greedy: in a
// payload containing "!{" itself, everything up to the last opening brace
// belongs to the payload and the last braces carry the tag.
var reTag = regexp.MustCompile(`^(.*)!\{(.*)\}$`)

// A Registry maps type-tag names to scalar decoders. The zero-value-like
// registry obtained from NewRegistry is empty; the package-level functions
// operate on a default registry preloaded with the built-in time, bool,
// int64 and float64 kinds. Registration is expected at init time, decoding
// is safe for concurrent use afterwards.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]func(payload string) (Value, error)
}

// NewRegistry returns an empty scalar-decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]func(string) (Value, error))}
}

// RegisterType records a constructor for scalars tagged with name. The
// constructor receives the untagged payload; a constructor error surfaces
// from Decode as *ConstructError. It panics if fn is nil or name was
// already registered.
func (r *Registry) RegisterType(name string, fn func(payload string) (Value, error)) {
	if fn == nil {
		panic("structure: RegisterType constructor is nil")
	}
	r.register(name, func(payload string) (Value, error) {
		v, err := fn(payload)
		if err != nil {
			return nil, &ConstructError{TypeName: name, Payload: payload, Err: err}
		}
		return v, nil
	})
}

// RegisterTime records a temporal kind under name. Payloads are ISO-8601
// texts; see ParseTime for the accepted layouts.
func (r *Registry) RegisterTime(name string) {
	r.register(name, func(payload string) (Value, error) {
		t, err := ParseTime(payload)
		if err != nil {
			return nil, &ConstructError{TypeName: name, Payload: payload, Err: err}
		}
		return Time{V: t}, nil
	})
}

// RegisterEnum records an enumeration kind under name with the given
// member set. Payloads must match a member exactly; a miss surfaces from
// Decode as *UnknownEnumError.
func (r *Registry) RegisterEnum(name string, members ...string) {
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	r.register(name, func(payload string) (Value, error) {
		if !set[payload] {
			return nil, &UnknownEnumError{TypeName: name, Member: payload}
		}
		return Enum{Type: name, Member: payload}, nil
	})
}

func (r *Registry) register(name string, fn func(string) (Value, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.decoders[name]; dup {
		panic("structure: type tag registered twice: " + name)
	}
	r.decoders[name] = fn
}

// Decode coerces a raw scalar into a Value. Untagged scalars pass through
// as String verbatim; tagged scalars are decoded by the registered kind.
// An unregistered tag fails with *UnknownTypeError.
func (r *Registry) Decode(s string) (Value, error) {
	m := reTag.FindStringSubmatch(s)
	if m == nil {
		return String{V: s}, nil
	}
	payload, name := m[1], m[2]
	r.mu.RLock()
	fn, ok := r.decoders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownTypeError{TypeName: name}
	}
	return fn(payload)
}

// defaultRegistry backs the package-level codec functions.
var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.RegisterTime("time.Time")
	defaultRegistry.RegisterTime("timestamp")
	defaultRegistry.RegisterTime("date")
	defaultRegistry.RegisterType("bool", func(payload string) (Value, error) {
		b, err := strconv.ParseBool(payload)
		if err != nil {
			return nil, err
		}
		return Bool{V: b}, nil
	})
	defaultRegistry.RegisterType("int64", func(payload string) (Value, error) {
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil, err
		}
		return Number{V: n}, nil
	})
	defaultRegistry.RegisterType("float64", func(payload string) (Value, error) {
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return nil, err
		}
		return Float{V: f}, nil
	})
}

// DecodeScalar coerces a raw scalar using the default registry.
func DecodeScalar(s string) (Value, error) { return defaultRegistry.Decode(s) }

// RegisterType records a constructed kind on the default registry.
func RegisterType(name string, fn func(payload string) (Value, error)) {
	defaultRegistry.RegisterType(name, fn)
}

// RegisterTime records a temporal kind on the default registry.
func RegisterTime(name string) { defaultRegistry.RegisterTime(name) }

// RegisterEnum records an enumeration kind on the default registry.
func RegisterEnum(name string, members ...string) {
	defaultRegistry.RegisterEnum(name, members...)
}

// EncodeScalar renders a Value as a tagged scalar for formats whose
// primitive set cannot carry it natively. It reports false for kinds every
// format renders directly (strings, numbers, booleans).
func EncodeScalar(v Value) (string, bool) {
	switch v := v.(type) {
	case Time:
		return v.V.Format(time.RFC3339Nano) + "!{time.Time}", true
	case Enum:
		return v.Member + "!{" + v.Type + "}", true
	}
	return "", false
}

// timeLayouts are the accepted ISO-8601 renderings, tried in order.
// Zone-less layouts parse as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// ParseTime parses an ISO-8601 temporal literal.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time literal %q", s)
}

type (
	// An UnknownTypeError is returned when a scalar carries a type tag no
	// decoder is registered for, or when an element kind is looked up under
	// an unregistered type name.
	UnknownTypeError struct {
		TypeName string
	}

	// A ConstructError is returned when a registered constructor rejects
	// its payload.
	ConstructError struct {
		TypeName string
		Payload  string
		Err      error
	}

	// An UnknownEnumError is returned when an enum payload names no member
	// of the registered enumeration.
	UnknownEnumError struct {
		TypeName string
		Member   string
	}
)

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("structure: unknown type tag %q", e.TypeName)
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("structure: construct %q value from %q: %v", e.TypeName, e.Payload, e.Err)
}

// Unwrap returns the underlying constructor error.
func (e *ConstructError) Unwrap() error { return e.Err }

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("structure: unknown member %q for enum %q", e.Member, e.TypeName)
}
