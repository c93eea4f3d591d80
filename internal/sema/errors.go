package sema

import "errors"

// ErrUnknownMember is returned by ModuleResolver.MemberType when the hive
// has no member with the requested name.
var ErrUnknownMember = errors.New("unknown member")

// ErrUnknownExport is returned when a module has no top-level definition
// with the requested name.
var ErrUnknownExport = errors.New("no such definition")
