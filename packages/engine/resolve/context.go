package resolve

import (
	"strings"

	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/model"
	"axc-go/packages/engine/schema"
	"axc-go/packages/engine/style"
)

// ElementContext is the merged, read-only view of one element: the element
// itself, its resolved actions and style rules, and the computed semantic
// fields the analyzers consume. Contexts are recomputed on demand and never
// cached across merges.
type ElementContext struct {
	Element  *model.Element
	Fragment *model.Fragment

	Actions []behavior.Action
	Rules   []*style.Rule

	IsFocusable        bool
	IsInteractive      bool
	HasClickHandler    bool
	HasKeyboardHandler bool
	ComputedRole       string
	AccessibleName     string

	doc *MergedDocument
}

// Roles that take their accessible name from subtree content when no ARIA
// label applies.
var nameFromContentRoles = map[string]bool{
	"button": true, "link": true, "tab": true, "menuitem": true,
	"menuitemcheckbox": true, "menuitemradio": true, "option": true,
	"checkbox": true, "radio": true, "switch": true, "treeitem": true,
	"heading": true, "listitem": true, "row": true, "cell": true,
	"columnheader": true, "rowheader": true, "tooltip": true,
}

// Context projects one element of the merged document. The element must
// belong to one of the document's fragments.
func (d *MergedDocument) Context(el *model.Element) *ElementContext {
	ctx := &ElementContext{
		Element:  el,
		Fragment: d.fragmentOf[el],
		doc:      d,
	}
	if ann := d.annotations[el]; ann != nil {
		ctx.Actions = ann.Actions
		ctx.Rules = ann.Rules
	}

	attrs := el.AttrMap()
	if tabIndex, ok := model.TabIndex(attrs); ok {
		ctx.IsFocusable = tabIndex >= 0
	} else {
		ctx.IsFocusable = model.IsNativelyFocusable(el.Name, attrs)
	}

	for _, action := range ctx.Actions {
		handler, ok := action.(*behavior.EventHandlerAction)
		if !ok {
			continue
		}
		if behavior.IsClickActivation(handler.Event) {
			ctx.HasClickHandler = true
		}
		if behavior.IsKeyboardEvent(handler.Event) {
			ctx.HasKeyboardHandler = true
		}
	}

	role := el.Role()
	if role == "" {
		role = model.ImplicitRole(el.Name, attrs)
	}
	ctx.ComputedRole = role

	ctx.IsInteractive = model.IsNativelyInteractive(el.Name) ||
		schema.DefaultRegistry().IsInteractive(role) ||
		ctx.HasClickHandler || ctx.HasKeyboardHandler

	ctx.AccessibleName = d.accessibleName(el, role, attrs)
	return ctx
}

// accessibleName computes a practical subset of the accessible name
// algorithm: aria-labelledby (resolved across fragments), then aria-label,
// then host-language attributes, then subtree content for roles named from
// content.
func (d *MergedDocument) accessibleName(el *model.Element, role string, attrs map[string]string) string {
	if refs, ok := attrs["aria-labelledby"]; ok {
		var parts []string
		for _, id := range strings.Fields(refs) {
			for _, target := range d.idIndex[id] {
				if label, ok := target.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
					parts = append(parts, strings.TrimSpace(label))
				} else if text := target.TextContent(); text != "" {
					parts = append(parts, text)
				}
				break
			}
		}
		if name := strings.Join(parts, " "); name != "" {
			return name
		}
	}
	if label, ok := attrs["aria-label"]; ok && strings.TrimSpace(label) != "" {
		return strings.TrimSpace(label)
	}
	switch strings.ToLower(el.Name) {
	case "img", "area":
		if alt, ok := attrs["alt"]; ok && strings.TrimSpace(alt) != "" {
			return strings.TrimSpace(alt)
		}
	case "input":
		if value, ok := attrs["value"]; ok && strings.TrimSpace(value) != "" {
			typ := strings.ToLower(attrs["type"])
			if typ == "button" || typ == "submit" || typ == "reset" {
				return strings.TrimSpace(value)
			}
		}
	}
	if nameFromContentRoles[role] {
		if text := el.TextContent(); text != "" {
			return text
		}
	}
	if title, ok := attrs["title"]; ok {
		return strings.TrimSpace(title)
	}
	return ""
}

// EffectiveProperty resolves the cascade for one property over the
// element's attached rules: highest specificity wins, ties broken by
// declaration order with later winning, inline declarations outranking
// everything.
func (c *ElementContext) EffectiveProperty(name string) (string, *style.Rule, bool) {
	name = strings.ToLower(name)
	var winner *style.Rule
	for _, rule := range c.Rules {
		if _, ok := rule.Properties[name]; !ok {
			continue
		}
		if winner == nil {
			winner = rule
			continue
		}
		switch rule.Specificity.Compare(winner.Specificity) {
		case 1:
			winner = rule
		case 0:
			if c.doc.ruleOrder[rule] >= c.doc.ruleOrder[winner] {
				winner = rule
			}
		}
	}
	if winner == nil {
		return "", nil, false
	}
	return winner.Properties[name], winner, true
}

// hiddenProperties are the properties whose effective values can suppress
// rendering.
var hiddenProperties = []string{
	"display", "visibility", "opacity", "content-visibility", "clip", "clip-path",
}

// Hidden reports whether the element's own effective style suppresses it
// from rendering.
func (c *ElementContext) Hidden() (bool, *style.Rule) {
	for _, prop := range hiddenProperties {
		if value, rule, ok := c.EffectiveProperty(prop); ok && style.HidesValue(prop, value) {
			return true, rule
		}
	}
	return false, nil
}

// EffectivelyHidden reports whether the element or any of its ancestors is
// hidden by resolved style.
func (c *ElementContext) EffectivelyHidden() (bool, *style.Rule) {
	if hidden, rule := c.Hidden(); hidden {
		return true, rule
	}
	for ancestor := c.Element.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if hidden, rule := c.doc.Context(ancestor).Hidden(); hidden {
			return true, rule
		}
	}
	return false, nil
}
