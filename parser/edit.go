package parser

import "fmt"

// Edit describes a single text replacement. Old bounds refer to the text
// before the edit, NewEnd to the text after it.
type Edit struct {
	StartByte   int
	OldEndByte  int
	NewEndByte  int
	StartPoint  Point
	OldEndPoint Point
	NewEndPoint Point
}

func (e Edit) String() string {
	return fmt.Sprintf("edit %d..%d -> %d..%d (%s %s -> %s)",
		e.StartByte, e.OldEndByte, e.StartByte, e.NewEndByte,
		e.StartPoint, e.OldEndPoint, e.NewEndPoint)
}

func (e Edit) delta() int {
	return e.NewEndByte - e.OldEndByte
}

// overlaps reports whether r intersects the replaced text. A node that
// merely touches an edit boundary is not affected by it.
func (e Edit) overlaps(r Range) bool {
	return r.StartByte < e.OldEndByte && r.EndByte > e.StartByte
}

func (e Edit) shiftPoint(p Point) Point {
	if p.Row == e.OldEndPoint.Row {
		return Point{Row: e.NewEndPoint.Row, Column: e.NewEndPoint.Column + p.Column - e.OldEndPoint.Column}
	}
	return Point{Row: p.Row + e.NewEndPoint.Row - e.OldEndPoint.Row, Column: p.Column}
}

func (e Edit) editRange(r Range) Range {
	out := r
	switch {
	case r.StartByte >= e.OldEndByte:
		out.StartByte = r.StartByte + e.delta()
		out.StartPoint = e.shiftPoint(r.StartPoint)
	case r.StartByte > e.StartByte:
		out.StartByte = e.StartByte
		out.StartPoint = e.StartPoint
	}
	switch {
	case r.EndByte >= e.OldEndByte:
		out.EndByte = r.EndByte + e.delta()
		out.EndPoint = e.shiftPoint(r.EndPoint)
	case r.EndByte > e.StartByte:
		out.EndByte = e.NewEndByte
		out.EndPoint = e.NewEndPoint
	}
	return out
}

// Edit returns a copy of the tree whose ranges account for e. Nodes that
// intersect the edit are marked changed and will not be reused by a later
// parse. Subtrees that end before the edit are shared with n.
func (n *Node) Edit(e Edit) *Node {
	if n.Range.EndByte <= e.StartByte && !e.overlaps(n.Range) {
		return n
	}
	c := *n
	c.Range = e.editRange(n.Range)
	c.changed = n.changed || e.overlaps(n.Range)
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Edit(e)
		}
	}
	return &c
}

// Changed reports whether an Edit touched this node.
func (n *Node) Changed() bool {
	return n.changed
}
