package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the fixed types.
type Builtins struct {
	Buul    TypeID
	Shrt    TypeID
	Nubr    TypeID
	Long    TypeID
	Flot    TypeID
	Dobl    TypeID
	Strg    TypeID
	Null    TypeID
	Error   TypeID
	Never   TypeID
	Nothing TypeID
}

// Param describes one declared blok parameter.
type Param struct {
	Name string
	Type TypeID
	Decl DeclRef
}

// BlokInfo stores the parameter list of a blok declaration. All blok types
// sharing a declaration share this record; they differ by return type only.
type BlokInfo struct {
	Name   string
	Params []Param
}

// HiveInfo stores metadata for a nominal hive type.
type HiveInfo struct {
	Name string
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// One interner serves one module and is not safe for concurrent use.
type Interner struct {
	types     []Type
	index     map[Type]TypeID
	builtins  Builtins
	bloks     map[DeclRef]*BlokInfo
	hives     map[DeclRef]*HiveInfo
	externals []External
	extIndex  map[externalKey]TypeID
}

// NewInterner constructs an interner seeded with the fixed types.
func NewInterner() *Interner {
	in := &Interner{
		types:     make([]Type, 1, 64), // reserve 0 as NoTypeID
		index:     make(map[Type]TypeID, 64),
		bloks:     make(map[DeclRef]*BlokInfo),
		hives:     make(map[DeclRef]*HiveInfo),
		externals: make([]External, 1), // reserve 0
		extIndex:  make(map[externalKey]TypeID),
	}
	in.builtins = Builtins{
		Buul:    in.Intern(Type{Kind: KindBuul}),
		Shrt:    in.Intern(Type{Kind: KindShrt}),
		Nubr:    in.Intern(Type{Kind: KindNubr}),
		Long:    in.Intern(Type{Kind: KindLong}),
		Flot:    in.Intern(Type{Kind: KindFlot}),
		Dobl:    in.Intern(Type{Kind: KindDobl}),
		Strg:    in.Intern(Type{Kind: KindStrg}),
		Null:    in.Intern(Type{Kind: KindNull}),
		Error:   in.Intern(Type{Kind: KindError}),
		Never:   in.Intern(Type{Kind: KindNever}),
		Nothing: in.Intern(Type{Kind: KindNothing}),
	}
	return in
}

// Builtins returns TypeIDs for the fixed types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Primitive returns the builtin TypeID for a primitive kind.
func (in *Interner) Primitive(k Kind) TypeID {
	if !k.IsPrimitive() {
		return NoTypeID
	}
	return in.Intern(Type{Kind: k})
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind is a shortcut for the descriptor kind; KindInvalid for unknown IDs.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// Len reports the number of interned types.
func (in *Interner) Len() int { return len(in.types) - 1 }

// Many interns `many elem`.
func (in *Interner) Many(elem TypeID) TypeID {
	return in.Intern(MakeMany(elem))
}

// RegisterHive interns the nominal hive type declared at decl.
func (in *Interner) RegisterHive(decl DeclRef, name string) TypeID {
	if _, ok := in.hives[decl]; !ok {
		in.hives[decl] = &HiveInfo{Name: name}
	}
	return in.Intern(Type{Kind: KindHive, Decl: decl})
}

// HiveInfo returns metadata for the provided hive TypeID.
func (in *Interner) HiveInfo(id TypeID) (*HiveInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindHive {
		return nil, false
	}
	info, ok := in.hives[tt.Decl]
	return info, ok
}

// DeclareBlok records the parameter list of a blok declaration. Repeated
// calls for the same declaration keep the first record.
func (in *Interner) DeclareBlok(decl DeclRef, name string, params []Param) {
	if _, ok := in.bloks[decl]; ok {
		return
	}
	in.bloks[decl] = &BlokInfo{Name: name, Params: cloneParams(params)}
}

// Blok interns the type of blok decl returning result. DeclareBlok must
// have been called for decl.
func (in *Interner) Blok(decl DeclRef, result TypeID) TypeID {
	if _, ok := in.bloks[decl]; !ok {
		panic(fmt.Errorf("types: blok %v used before declaration", decl))
	}
	return in.Intern(Type{Kind: KindBlok, Decl: decl, Elem: result})
}

// BlokInfo returns the parameter record for a blok TypeID.
func (in *Interner) BlokInfo(id TypeID) (*BlokInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindBlok {
		return nil, false
	}
	info, ok := in.bloks[tt.Decl]
	return info, ok
}

// Result returns the return type of a blok TypeID.
func (in *Interner) Result(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindBlok {
		return NoTypeID, false
	}
	return tt.Elem, true
}

func cloneParams(params []Param) []Param {
	if len(params) == 0 {
		return nil
	}
	out := make([]Param, len(params))
	copy(out, params)
	return out
}
