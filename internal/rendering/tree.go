// Package rendering maps CV data, a template and a color theme onto a style-annotated visual tree.
package rendering

// Kind is the structural type of a visual node
type Kind string

const (
	KindCanvas     Kind = "canvas"
	KindBox        Kind = "box"
	KindSection    Kind = "section"
	KindHeader     Kind = "header"
	KindTitle      Kind = "title"
	KindHeading    Kind = "heading"
	KindSubheading Kind = "subheading"
	KindText       Kind = "text"
	KindInline     Kind = "inline"
	KindImage      Kind = "image"
	KindList       Kind = "list"
	KindItem       Kind = "item"
	KindBar        Kind = "bar"
)

// Node is one element of the VisualTree. Role is the semantic name used by
// tests and serializers ("header.name", "section.skills", "skill.fill", ...).
type Node struct {
	Kind     Kind              `json:"kind"`
	Role     string            `json:"role,omitempty"`
	Text     string            `json:"text,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node with the given role, or nil.
func (n *Node) Find(role string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Role == role {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node with the given role in document order.
func (n *Node) FindAll(role string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Role == role {
			out = append(out, c)
		}
		return true
	})
	return out
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	var s string
	n.Walk(func(c *Node) bool {
		s += c.Text
		return true
	})
	return s
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Role: n.Role, Text: n.Text}
	if n.Style != nil {
		out.Style = make(map[string]string, len(n.Style))
		for k, v := range n.Style {
			out.Style[k] = v
		}
	}
	if n.Attrs != nil {
		out.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// css is shorthand for a style map literal
type css = map[string]string

func el(kind Kind, role string, style css, children ...*Node) *Node {
	return &Node{Kind: kind, Role: role, Style: style, Children: compact(children)}
}

func txt(kind Kind, role, text string, style css) *Node {
	return &Node{Kind: kind, Role: role, Text: text, Style: style}
}

// compact drops nil children so optional sections can be passed inline.
func compact(nodes []*Node) []*Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
