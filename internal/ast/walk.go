package ast

// Children returns the direct children of id in source order. Type
// expressions of annotations are included; names are not nodes.
func (n *Nodes) Children(id NodeID) []NodeID {
	node := n.Get(id)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case NodeProgram:
		p, _ := n.Program(id)
		return p.Items
	case NodeHive:
		h, _ := n.Hive(id)
		return h.Members
	case NodeBlok:
		f, _ := n.Blok(id)
		out := make([]NodeID, 0, len(f.Params)+2)
		out = append(out, f.Params...)
		return appendValid(out, f.Return, f.Body)
	case NodeBowl:
		v, _ := n.Bowl(id)
		return appendValid(nil, v.Type, v.Value)
	case NodeBlock:
		b, _ := n.Block(id)
		return b.Stmts
	case NodeLoop:
		l, _ := n.Loop(id)
		return appendValid(nil, l.Body)
	case NodeArray:
		a, _ := n.Array(id)
		return a.Elems
	case NodeBinary:
		b, _ := n.Binary(id)
		return appendValid(nil, b.Left, b.Right)
	case NodeUnary:
		u, _ := n.Unary(id)
		return appendValid(nil, u.Operand)
	case NodeCall:
		c, _ := n.Call(id)
		out := appendValid(make([]NodeID, 0, len(c.Args)+1), c.Callee)
		return append(out, c.Args...)
	case NodeCallArg:
		a, _ := n.CallArg(id)
		return appendValid(nil, a.Value)
	case NodeMember:
		m, _ := n.Member(id)
		return appendValid(nil, m.Target)
	case NodeCast:
		c, _ := n.Cast(id)
		return appendValid(nil, c.Operand, c.Type)
	case NodeBonk:
		b, _ := n.Bonk(id)
		return appendValid(nil, b.Value)
	case NodeTypeExpr:
		t, _ := n.TypeExpr(id)
		return appendValid(nil, t.Elem)
	case NodeHelp, NodeIdent, NodeNumber, NodeString, NodeNull, NodeBrek, NodeRebonk:
		return nil
	default:
		return nil
	}
}

func appendValid(out []NodeID, ids ...NodeID) []NodeID {
	for _, id := range ids {
		if id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// Inspect walks the subtree rooted at id depth-first in source order,
// calling fn before children. Returning false from fn skips the children.
func (n *Nodes) Inspect(id NodeID, fn func(NodeID) bool) {
	if !id.IsValid() || !fn(id) {
		return
	}
	for _, child := range n.Children(id) {
		n.Inspect(child, fn)
	}
}
