package model

import (
	"strings"

	"axc-go/packages/engine/util"
)

// Node represents a node in the structural model tree.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	Visit(visitor Visitor)
}

// Attribute represents one attribute on an element.
type Attribute struct {
	Name       string
	Value      string
	sourceSpan *util.ParseSourceSpan
	KeySpan    *util.ParseSourceSpan
	ValueSpan  *util.ParseSourceSpan
}

// NewAttribute creates a new Attribute node.
func NewAttribute(name, value string, sourceSpan, keySpan, valueSpan *util.ParseSourceSpan) *Attribute {
	return &Attribute{
		Name:       name,
		Value:      value,
		sourceSpan: sourceSpan,
		KeySpan:    keySpan,
		ValueSpan:  valueSpan,
	}
}

// SourceSpan returns the source span.
func (a *Attribute) SourceSpan() *util.ParseSourceSpan {
	return a.sourceSpan
}

// Visit implements the Node interface.
func (a *Attribute) Visit(visitor Visitor) {
	visitor.VisitAttribute(a)
}

// Element represents an element node. Elements are immutable after the
// fragment that owns them is constructed; the resolution engine attaches
// behavior and style to elements through a separate annotation table, never
// by mutating the element itself.
type Element struct {
	Name            string
	Attrs           []*Attribute
	Children        []Node
	Parent          *Element
	IsSelfClosing   bool
	IsVoid          bool
	sourceSpan      *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

// NewElement creates a new Element node.
func NewElement(name string, attrs []*Attribute, children []Node, isSelfClosing bool, sourceSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *Element {
	return &Element{
		Name:            name,
		Attrs:           attrs,
		Children:        children,
		IsSelfClosing:   isSelfClosing,
		IsVoid:          IsVoidTag(name),
		sourceSpan:      sourceSpan,
		StartSourceSpan: startSourceSpan,
		EndSourceSpan:   endSourceSpan,
	}
}

// SourceSpan returns the source span.
func (e *Element) SourceSpan() *util.ParseSourceSpan {
	return e.sourceSpan
}

// Visit implements the Node interface.
func (e *Element) Visit(visitor Visitor) {
	visitor.VisitElement(e)
}

// Attr returns the value of the named attribute. The second return value
// reports whether the attribute is present at all, so an empty declared
// value is distinguishable from an absent attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// AttrMap returns the attributes as a map. Attribute order on the element is
// preserved by Attrs; for duplicate names the first occurrence wins.
func (e *Element) AttrMap() map[string]string {
	m := make(map[string]string, len(e.Attrs))
	for _, attr := range e.Attrs {
		if _, ok := m[attr.Name]; !ok {
			m[attr.Name] = attr.Value
		}
	}
	return m
}

// ID returns the element's id attribute, or "".
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return strings.TrimSpace(id)
}

// Classes returns the class tokens declared on the element.
func (e *Element) Classes() []string {
	class, ok := e.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

// Role returns the first token of the element's explicit role attribute,
// or "". Implicit roles are the concern of ImplicitRole.
func (e *Element) Role() string {
	role, ok := e.Attr("role")
	if !ok {
		return ""
	}
	tokens := strings.Fields(role)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// AriaAttrs returns the element's aria-* attributes in declaration order.
func (e *Element) AriaAttrs() []*Attribute {
	var out []*Attribute
	for _, attr := range e.Attrs {
		if strings.HasPrefix(attr.Name, "aria-") {
			out = append(out, attr)
		}
	}
	return out
}

// Path returns a short CSS-like path for the element, for use in issue
// reports: ancestor tags joined by " > ", with id and classes on the leaf.
func (e *Element) Path() string {
	var parts []string
	for cur := e; cur != nil; cur = cur.Parent {
		parts = append(parts, "")
		copy(parts[1:], parts)
		seg := cur.Name
		if cur == e {
			if id := cur.ID(); id != "" {
				seg += "#" + id
			} else if classes := cur.Classes(); len(classes) > 0 {
				seg += "." + strings.Join(classes, ".")
			}
		}
		parts[0] = seg
	}
	return strings.Join(parts, " > ")
}

// TextContent returns the concatenated, whitespace-normalized text of the
// element's subtree.
func (e *Element) TextContent() string {
	var sb strings.Builder
	var walk func(n Node)
	walk = func(n Node) {
		switch node := n.(type) {
		case *Text:
			sb.WriteString(node.Value)
			sb.WriteString(" ")
		case *Element:
			for _, child := range node.Children {
				walk(child)
			}
		}
	}
	walk(e)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Text represents a text node.
type Text struct {
	Value      string
	sourceSpan *util.ParseSourceSpan
}

// NewText creates a new Text node.
func NewText(value string, sourceSpan *util.ParseSourceSpan) *Text {
	return &Text{
		Value:      value,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span.
func (t *Text) SourceSpan() *util.ParseSourceSpan {
	return t.sourceSpan
}

// Visit implements the Node interface.
func (t *Text) Visit(visitor Visitor) {
	visitor.VisitText(t)
}

// Comment represents a comment node.
type Comment struct {
	Value      string
	sourceSpan *util.ParseSourceSpan
}

// NewComment creates a new Comment node.
func NewComment(value string, sourceSpan *util.ParseSourceSpan) *Comment {
	return &Comment{
		Value:      value,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span.
func (c *Comment) SourceSpan() *util.ParseSourceSpan {
	return c.sourceSpan
}

// Visit implements the Node interface.
func (c *Comment) Visit(visitor Visitor) {
	visitor.VisitComment(c)
}

// Visitor visits structural model nodes.
type Visitor interface {
	VisitElement(element *Element)
	VisitAttribute(attribute *Attribute)
	VisitText(text *Text)
	VisitComment(comment *Comment)
}

// RecursiveVisitor is a Visitor base that descends into element children.
// Embed it and override the methods of interest.
type RecursiveVisitor struct {
	Delegate Visitor
}

// VisitElement visits an element's attributes and children.
func (r *RecursiveVisitor) VisitElement(element *Element) {
	v := r.delegate()
	for _, attr := range element.Attrs {
		attr.Visit(v)
	}
	for _, child := range element.Children {
		child.Visit(v)
	}
}

// VisitAttribute visits an attribute.
func (r *RecursiveVisitor) VisitAttribute(*Attribute) {}

// VisitText visits a text node.
func (r *RecursiveVisitor) VisitText(*Text) {}

// VisitComment visits a comment node.
func (r *RecursiveVisitor) VisitComment(*Comment) {}

func (r *RecursiveVisitor) delegate() Visitor {
	if r.Delegate != nil {
		return r.Delegate
	}
	return r
}

// WalkElements calls fn for every element in the subtree rooted at el, in
// document order, el included. Returning false stops the walk.
func WalkElements(el *Element, fn func(*Element) bool) bool {
	if el == nil {
		return true
	}
	if !fn(el) {
		return false
	}
	for _, child := range el.Children {
		if childEl, ok := child.(*Element); ok {
			if !WalkElements(childEl, fn) {
				return false
			}
		}
	}
	return true
}
