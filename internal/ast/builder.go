package ast

import (
	"bonk/internal/source"
)

type Hints struct{ Nodes uint }

// Builder owns one module's tree: the node arenas, the module's string
// interner and the root program node.
type Builder struct {
	Nodes   *Nodes
	Strings *source.Interner
	File    source.FileID
	Root    NodeID
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Nodes:   NewNodes(hints.Nodes),
		Strings: strings,
	}
}

// Name returns the text of an interned name.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// Intern is a shortcut for b.Strings.Intern.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// DeclName returns the declared name of a hive, blok or bowl node.
func (b *Builder) DeclName(id NodeID) (source.StringID, source.Span, bool) {
	switch b.Nodes.Kind(id) {
	case NodeHive:
		h, _ := b.Nodes.Hive(id)
		return h.Name, h.NameSpan, true
	case NodeBlok:
		f, _ := b.Nodes.Blok(id)
		return f.Name, f.NameSpan, true
	case NodeBowl:
		v, _ := b.Nodes.Bowl(id)
		return v.Name, v.NameSpan, true
	default:
		return source.NoStringID, source.Span{}, false
	}
}
