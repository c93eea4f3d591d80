package ast

type (
	// NodeID addresses any node of the tree; all kinds share one ID space.
	NodeID uint32
	// PayloadID indexes the per-kind payload arena.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
