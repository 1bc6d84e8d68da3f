// Package tree defines the intermediate tree shared by TemplateParser,
// Optimizer, Specializer and CodeEmitter (spec.md §3). The tree is owned
// exclusively by whichever stage currently holds it: the optimizer may
// replace subtrees wholesale, and the specializer builds new nodes
// rather than mutating in place.
package tree

import (
	"fmt"

	"github.com/mohae/stachec/stachetag"
)

// NodeType discriminates the variant of a Node.
type NodeType int

const (
	NodeString NodeType = iota
	NodeRaw
	NodeCharRef
	NodeComment
	NodeTag
	NodeSpecial
	NodeEmitCode
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeString:
		return "String"
	case NodeRaw:
		return "Raw"
	case NodeCharRef:
		return "CharRef"
	case NodeComment:
		return "Comment"
	case NodeTag:
		return "Tag"
	case NodeSpecial:
		return "Special"
	case NodeEmitCode:
		return "EmitCode"
	case NodeList:
		return "List"
	default:
		return "Unknown"
	}
}

// Node is an element of the intermediate tree. The interface is
// trivial; the unexported method keeps implementations local to this
// package.
type Node interface {
	Type() NodeType
	String() string
	unexported()
}

type nodeType NodeType

func (nodeType) unexported() {}

// String is plain text content.
type String string

func (s String) Type() NodeType { return NodeString }
func (s String) String() string { return string(s) }
func (s String) unexported()    {}

// Raw is literal pre-rendered HTML, produced only by the Optimizer.
type Raw struct {
	HTML string
}

func (r *Raw) Type() NodeType { return NodeRaw }
func (r *Raw) String() string { return r.HTML }
func (r *Raw) unexported()    {}

// CharRef is a single HTML character reference, carrying both its
// source spelling and its decoded value.
type CharRef struct {
	HTML string
	Str  string
}

func (c *CharRef) Type() NodeType { return NodeCharRef }
func (c *CharRef) String() string { return c.HTML }
func (c *CharRef) unexported()    {}

// Comment holds an HTML comment's text. TemplateParser never produces
// these from stache comments (those are absorbed, spec.md §4.2 step 4);
// this node type exists for literal `<!-- ... -->` HTML comments.
type Comment struct {
	Text string
}

func (c *Comment) Type() NodeType { return NodeComment }
func (c *Comment) String() string { return fmt.Sprintf("<!--%s-->", c.Text) }
func (c *Comment) unexported()    {}

// Reserved attribute-map keys. $specials holds whole-attribute-set
// Special nodes (e.g. `<div {{attrs}}>`); $dynamic is added by the
// Specializer (spec.md §4.5 step 4) and holds the EmitCode nodes
// generated from them.
const (
	AttrSpecialsKey = "$specials"
	AttrDynamicKey  = "$dynamic"
)

// Attrs is a Tag's attribute map: plain keys map to a Node (String,
// CharRef, Special, EmitCode, or List of those); $specials and
// $dynamic are List-valued under the reserved keys above.
type Attrs map[string]Node

// Specials returns the $specials entries as SpecialNodes, or nil if
// none are present.
func (a Attrs) Specials() []*Special {
	v, ok := a[AttrSpecialsKey]
	if !ok {
		return nil
	}
	list, ok := v.(List)
	if !ok {
		return nil
	}
	out := make([]*Special, 0, len(list))
	for _, n := range list {
		if s, ok := n.(*Special); ok {
			out = append(out, s)
		}
	}
	return out
}

// Tag is an HTML element: a name, an optional attribute map, and
// children. Attrs is nil when the element has none.
type Tag struct {
	TagName  string
	Attrs    Attrs
	Children List
}

func (t *Tag) Type() NodeType { return NodeTag }
func (t *Tag) String() string { return fmt.Sprintf("<%s>", t.TagName) }
func (t *Tag) unexported()    {}

// Special wraps a StacheTag awaiting specialization. TemplateParser
// produces these; the Specializer consumes them and never lets one
// survive into CodeEmitter's input (spec.md §4.4).
type Special struct {
	Tag *stachetag.StacheTag
}

func (s *Special) Type() NodeType { return NodeSpecial }
func (s *Special) String() string { return fmt.Sprintf("{{%s}}", stachetag.JoinPath(s.Tag.Path)) }
func (s *Special) unexported()    {}

// EmitCode is verbatim target-language source. Only the Specializer
// creates these; CodeEmitter serializes them unchanged.
type EmitCode struct {
	Source string
}

func (e *EmitCode) Type() NodeType { return NodeEmitCode }
func (e *EmitCode) String() string { return e.Source }
func (e *EmitCode) unexported()    {}

// List is an ordered sequence of sibling nodes.
type List []Node

func (l List) Type() NodeType { return NodeList }
func (l List) String() string {
	s := "["
	for i, n := range l {
		if i > 0 {
			s += ", "
		}
		s += n.String()
	}
	return s + "]"
}
func (l List) unexported() {}
