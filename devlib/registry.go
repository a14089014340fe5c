// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package devlib

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/dlsim/dlsim"
)

// Attrs is the attribute map a circuit description supplies for one
// component instance.
//
type Attrs map[string]any

// Int returns the integer attribute key, or def if absent. Non-integer
// values also fall back to def.
func (a Attrs) Int(key string, def int) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return def
}

// Time returns the attribute key as a Timestamp, or def if absent.
func (a Attrs) Time(key string, def dlsim.Timestamp) dlsim.Timestamp {
	if n := a.Int(key, -1); n >= 0 {
		return dlsim.Timestamp(n)
	}
	return def
}

// String returns the string attribute key, or def if absent.
func (a Attrs) String(key, def string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return def
}

// A Factory builds a device from its attribute map.
//
type Factory func(attrs Attrs) (dlsim.Component, error)

// A Registry maps component kind names to factories. The file-loading
// collaborator resolves every "kind" in a circuit description through a
// registry, so new device kinds can be added without touching either the
// loader or the engine.
//
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry pre-populated with the devlib catalog.
//
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	for kind, f := range builtins {
		r.factories[kind] = f
	}
	return r
}

// Register adds a factory for the given kind. Registering a kind twice is an
// error.
//
func (r *Registry) Register(kind string, f Factory) error {
	if _, ok := r.factories[kind]; ok {
		return errors.Errorf("component kind %q already registered", kind)
	}
	r.factories[kind] = f
	return nil
}

// New builds a device of the given kind.
//
func (r *Registry) New(kind string, attrs Attrs) (dlsim.Component, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, errors.Errorf("unknown component kind %q", kind)
	}
	dev, err := f(attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "build %q", kind)
	}
	return dev, nil
}

// Known reports whether kind has a registered factory.
//
func (r *Registry) Known(kind string) bool {
	_, ok := r.factories[kind]
	return ok
}

// Kinds returns the registered kind names in sorted order.
//
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// gateFactory adapts one of the n-ary gate constructors.
func gateFactory(ctor func(inputs, width int, delay dlsim.Timestamp) *Gate) Factory {
	return func(a Attrs) (dlsim.Component, error) {
		inputs := a.Int("inputs", 2)
		if inputs < 2 {
			return nil, errors.Errorf("gate needs at least 2 inputs, got %d", inputs)
		}
		width := a.Int("width", 1)
		if width < 1 {
			return nil, errors.Errorf("invalid width %d", width)
		}
		return ctor(inputs, width, a.Time("delay", DefaultDelay)), nil
	}
}

// invFactory adapts the single-input gate constructors.
func invFactory(ctor func(width int, delay dlsim.Timestamp) *Inverter) Factory {
	return func(a Attrs) (dlsim.Component, error) {
		width := a.Int("width", 1)
		if width < 1 {
			return nil, errors.Errorf("invalid width %d", width)
		}
		return ctor(width, a.Time("delay", DefaultDelay)), nil
	}
}

var builtins = map[string]Factory{
	"and":  gateFactory(And),
	"nand": gateFactory(Nand),
	"or":   gateFactory(Or),
	"nor":  gateFactory(Nor),
	"xor":  gateFactory(Xor),
	"xnor": gateFactory(Xnor),
	"not":  invFactory(Not),
	"buf":  invFactory(Buf),
	"dff": func(a Attrs) (dlsim.Component, error) {
		width := a.Int("width", 1)
		if width < 1 {
			return nil, errors.Errorf("invalid width %d", width)
		}
		return NewDFF(width, a.Time("delay", DefaultDelay)), nil
	},
	"register": func(a Attrs) (dlsim.Component, error) {
		width := a.Int("width", 1)
		if width < 1 {
			return nil, errors.Errorf("invalid width %d", width)
		}
		return NewRegister(width, a.Time("delay", DefaultDelay)), nil
	},
	"clock": func(a Attrs) (dlsim.Component, error) {
		period := a.Time("period", 0)
		if period == 0 {
			return nil, errors.New("clock needs a positive period")
		}
		return NewClock(period, a.Time("phase", 0)), nil
	},
	"const": func(a Attrs) (dlsim.Component, error) {
		lit := a.String("value", "")
		if lit == "" {
			return nil, errors.New("const needs a value")
		}
		v, err := dlsim.ParseSignal(lit)
		if err != nil {
			return nil, err
		}
		return Const(v), nil
	},
}
