package types

import (
	"fmt"

	"bonk/internal/ast"
	"bonk/internal/source"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBuul
	KindShrt
	KindNubr
	KindLong
	KindFlot
	KindDobl
	KindStrg
	KindHive
	KindBlok
	KindMany
	KindExternal
	KindNull
	KindError
	KindNever
	KindNothing
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBuul:
		return "buul"
	case KindShrt:
		return "shrt"
	case KindNubr:
		return "nubr"
	case KindLong:
		return "long"
	case KindFlot:
		return "flot"
	case KindDobl:
		return "dobl"
	case KindStrg:
		return "strg"
	case KindHive:
		return "hive"
	case KindBlok:
		return "blok"
	case KindMany:
		return "many"
	case KindExternal:
		return "external"
	case KindNull:
		return "null"
	case KindError:
		return "error"
	case KindNever:
		return "never"
	case KindNothing:
		return "nothing"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether k is one of the keyword types.
func (k Kind) IsPrimitive() bool {
	return k >= KindBuul && k <= KindStrg
}

// IsArithmetic reports whether k is a numeric primitive.
func (k Kind) IsArithmetic() bool {
	return k >= KindShrt && k <= KindDobl
}

// DeclRef names a declaration node across modules: hive and blok types are
// nominal and keep their identity when imported into another interner.
type DeclRef struct {
	File source.FileID
	Node ast.NodeID
}

func (d DeclRef) IsValid() bool { return d.File != 0 && d.Node.IsValid() }

// Type is a compact descriptor for any supported type.
//
//	many T  -> Elem = T
//	blok    -> Decl, Elem = return type
//	hive    -> Decl
//	external-> Payload = slot in the externals table
type Type struct {
	Kind    Kind
	Elem    TypeID
	Decl    DeclRef
	Payload uint32
}

// MakeMany describes an array of elem.
func MakeMany(elem TypeID) Type {
	return Type{Kind: KindMany, Elem: elem}
}

// PrimKind maps a written primitive keyword to its type kind.
func PrimKind(p ast.PrimKind) Kind {
	switch p {
	case ast.PrimBuul:
		return KindBuul
	case ast.PrimShrt:
		return KindShrt
	case ast.PrimNubr:
		return KindNubr
	case ast.PrimLong:
		return KindLong
	case ast.PrimFlot:
		return KindFlot
	case ast.PrimDobl:
		return KindDobl
	case ast.PrimStrg:
		return KindStrg
	default:
		return KindInvalid
	}
}
