package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bonk/internal/ast"
	"bonk/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) the program span points at sf and lies within its content
// 2) every node span belongs to sf and is contained in its parent's span
// 3) non-empty items of the program are ordered and do not overlap
func CheckSpanInvariants(b *ast.Builder, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	prog, ok := b.Nodes.Program(b.Root)
	if !ok {
		return fmt.Errorf("root %d is not a program", b.Root)
	}
	root := b.Nodes.Span(b.Root)
	if root.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", root.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.End > lenContent || root.Start > root.End {
		return fmt.Errorf("program span %v outside content of %d bytes", root, lenContent)
	}

	if err := nested(b, b.Root, sf.ID); err != nil {
		return err
	}

	var prev source.Span
	for i, it := range prog.Items {
		sp := b.Nodes.Span(it)
		if sp.Empty() {
			continue
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("item %s %v overlaps previous item %v", b.Nodes.Kind(it), sp, prev)
		}
		prev = sp
	}
	return nil
}

func nested(b *ast.Builder, id ast.NodeID, file source.FileID) error {
	parent := b.Nodes.Span(id)
	for _, child := range b.Nodes.Children(id) {
		sp := b.Nodes.Span(child)
		if sp.File != file {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", b.Nodes.Kind(child), sp.File, file)
		}
		if !parent.Contains(sp) {
			return fmt.Errorf("%s %v does not contain %s %v", b.Nodes.Kind(id), parent, b.Nodes.Kind(child), sp)
		}
		if err := nested(b, child, file); err != nil {
			return err
		}
	}
	return nil
}
