package types

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrExternalCycle is returned when forcing an external type re-enters
// itself before the first load finished.
var ErrExternalCycle = errors.New("external type depends on itself")

// Loader produces the type of a definition in another module, already
// imported into the requesting interner.
type Loader func() (TypeID, error)

type externalState uint8

const (
	externalPending externalState = iota
	externalLoading
	externalDone
)

// External is a lazily resolved reference to another module's definition.
type External struct {
	Module string
	Name   string
	load   Loader
	state  externalState
	target TypeID
	err    error
}

type externalKey struct {
	module string
	name   string
}

// RegisterExternal interns an external reference to name in module. The
// first registration for a (module, name) pair supplies the loader.
func (in *Interner) RegisterExternal(module, name string, load Loader) TypeID {
	key := externalKey{module: module, name: name}
	if id, ok := in.extIndex[key]; ok {
		return id
	}
	in.externals = append(in.externals, External{Module: module, Name: name, load: load})
	slot, err := safecast.Conv[uint32](len(in.externals) - 1)
	if err != nil {
		panic(fmt.Errorf("external slot overflow: %w", err))
	}
	id := in.internRaw(Type{Kind: KindExternal, Payload: slot})
	in.extIndex[key] = id
	return id
}

// ExternalInfo returns the record behind an external TypeID.
func (in *Interner) ExternalInfo(id TypeID) (*External, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindExternal || int(tt.Payload) >= len(in.externals) {
		return nil, false
	}
	return &in.externals[tt.Payload], true
}

// Resolve forces external types and returns the concrete type; other types
// are returned unchanged. A resolution that still contains Never is handed
// out but not memoized, so it is retried once the foreign recursion settles.
func (in *Interner) Resolve(id TypeID) (TypeID, error) {
	for range maxExternalHops {
		ext, ok := in.ExternalInfo(id)
		if !ok {
			return id, nil
		}
		switch ext.state {
		case externalDone:
			if ext.err != nil {
				return in.builtins.Error, ext.err
			}
			id = ext.target
			continue
		case externalLoading:
			return in.builtins.Error, fmt.Errorf("%s of %s: %w", ext.Name, ext.Module, ErrExternalCycle)
		}
		if ext.load == nil {
			ext.state, ext.err = externalDone, fmt.Errorf("%s of %s: no loader", ext.Name, ext.Module)
			return in.builtins.Error, ext.err
		}
		ext.state = externalLoading
		target, err := ext.load()
		// load may have appended to in.externals
		ext, _ = in.ExternalInfo(id)
		if err != nil {
			ext.state, ext.err = externalDone, err
			return in.builtins.Error, err
		}
		if in.ContainsNever(target) {
			ext.state = externalPending
			id = target
			continue
		}
		ext.state, ext.target = externalDone, target
		id = target
	}
	return in.builtins.Error, fmt.Errorf("external type chain too long")
}

const maxExternalHops = 64
