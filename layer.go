package whiteboard

import "container/list"

// Node is anything that can live in the scene graph. Every Node is backed
// by a Layer; Widgets and their variants embed one.
type Node interface {
	// Base returns the Layer that holds the node's tree state.
	Base() *Layer
	// Render draws the node and its subtree.
	Render(s Surface)
}

// Layer is an ordered container node.
//
// Children live in a doubly linked list and are rendered in list order.
// ZIndex is a fractional key used only to place new siblings; it never
// reorders rendering.
type Layer struct {
	Name   string
	ZIndex string

	// Visible hides the layer and its whole subtree when false.
	Visible bool
	// Interactive marks nodes that take part in hit-testing.
	Interactive bool

	parent   *Layer
	elem     *list.Element
	children *list.List
	self     Node
}

// NewLayer creates an empty visible layer.
func NewLayer(name string) *Layer {
	l := &Layer{Name: name, Visible: true}
	l.self = l
	return l
}

// Base implements Node.
func (l *Layer) Base() *Layer { return l }

// node returns the outermost value embedding l.
func (l *Layer) node() Node {
	if l.self != nil {
		return l.self
	}
	return l
}

// Parent returns the node holding l, or nil for a detached or root node.
func (l *Layer) Parent() Node {
	if l.parent == nil {
		return nil
	}
	return l.parent.node()
}

func (l *Layer) list() *list.List {
	if l.children == nil {
		l.children = list.New()
	}
	return l.children
}

// AddChild appends child to the end of the child list.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (l *Layer) AddChild(child Node) {
	c := l.adopt(child)
	c.elem = l.list().PushBack(child)
	attached(child)
}

// AddChildren appends each node in order.
func (l *Layer) AddChildren(children ...Node) {
	for _, c := range children {
		l.AddChild(c)
	}
}

// InsertBefore inserts child immediately before mark, which must be a child
// of l.
func (l *Layer) InsertBefore(child, mark Node) {
	m := mark.Base()
	if m.parent != l {
		panic("whiteboard: mark's parent is not this layer")
	}
	c := l.adopt(child)
	c.elem = l.list().InsertBefore(child, m.elem)
	attached(child)
}

func (l *Layer) adopt(child Node) *Layer {
	if child == nil {
		panic("whiteboard: cannot add nil child")
	}
	c := child.Base()
	if isAncestor(c, l) {
		panic("whiteboard: adding child would create a cycle")
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = l
	return c
}

// RemoveChild detaches child and reports whether it was a child of l.
func (l *Layer) RemoveChild(child Node) bool {
	if child == nil {
		return false
	}
	c := child.Base()
	if c.parent != l {
		return false
	}
	l.detach(c)
	attached(child)
	return true
}

// RemoveFromParent detaches l from its parent. No-op for a detached node.
func (l *Layer) RemoveFromParent() {
	if l.parent != nil {
		l.parent.RemoveChild(l.node())
	}
}

func (l *Layer) detach(c *Layer) {
	l.children.Remove(c.elem)
	c.elem = nil
	c.parent = nil
}

// Len returns the number of children.
func (l *Layer) Len() int {
	if l.children == nil {
		return 0
	}
	return l.children.Len()
}

// FirstChild returns the first child or nil.
func (l *Layer) FirstChild() Node {
	if l.children == nil || l.children.Front() == nil {
		return nil
	}
	return l.children.Front().Value.(Node)
}

// LastChild returns the last child or nil.
func (l *Layer) LastChild() Node {
	if l.children == nil || l.children.Back() == nil {
		return nil
	}
	return l.children.Back().Value.(Node)
}

// Each calls fn for every child in list order until fn returns false.
// fn may remove the child it is visiting.
func (l *Layer) Each(fn func(Node) bool) {
	if l.children == nil {
		return
	}
	for e := l.children.Front(); e != nil; {
		next := e.Next()
		if !fn(e.Value.(Node)) {
			return
		}
		e = next
	}
}

// Children returns a snapshot of the child list.
func (l *Layer) Children() []Node {
	out := make([]Node, 0, l.Len())
	l.Each(func(n Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Render draws every visible child in list order, each inside its own
// Save/Restore pair. A layer draws nothing of its own.
func (l *Layer) Render(s Surface) {
	if !l.Visible {
		return
	}
	l.renderChildren(s)
}

func (l *Layer) renderChildren(s Surface) {
	l.Each(func(n Node) bool {
		if !n.Base().Visible {
			return true
		}
		s.Save()
		n.Render(s)
		s.Restore()
		return true
	})
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Layer) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// attached refreshes cached state that depends on a node's ancestry.
func attached(n Node) {
	if w, ok := n.(widgetNode); ok {
		w.widget().updateBounds()
	}
}
