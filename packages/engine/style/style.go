// Package style defines the style model: flat rule sets with selectors,
// cascade specificity and the four accessibility-relevant property flags.
// Rule declarations arrive as raw CSS text from external style parsers and
// are tokenized here once, at model construction time.
package style

import (
	"strconv"
	"strings"

	"axc-go/packages/engine/selector"
	"axc-go/packages/engine/util"
)

// Flags are the accessibility-relevant property classes a rule touches,
// derived once from the property map when the rule is built.
type Flags struct {
	AffectsFocus       bool
	AffectsVisibility  bool
	AffectsContrast    bool
	AffectsInteraction bool
}

// Rule is one style rule of the style model.
type Rule struct {
	// SelectorText is the raw selector as written in the source.
	SelectorText string
	// Selector is the parsed form, nil when the selector text uses syntax
	// outside the supported grammar. A rule with a nil selector matches no
	// element.
	Selector *selector.Selector
	// Properties maps declared property names to their values.
	Properties map[string]string
	// PropertyOrder preserves declaration order of the property names.
	PropertyOrder []string
	// Specificity ranks the rule in the cascade.
	Specificity selector.Specificity
	// SourceID identifies the sheet the rule came from.
	SourceID string
	// Index is the rule's global declaration position, used to break
	// specificity ties: later wins.
	Index int
	// Inline marks a rule synthesized from a style attribute.
	Inline bool
	// Flags are the derived accessibility flags.
	Flags Flags

	sourceSpan *util.ParseSourceSpan
}

// NewRule creates a rule from selector text and raw declaration text,
// parsing the selector, tokenizing the declarations and deriving the
// specificity and accessibility flags.
func NewRule(selectorText, cssText, sourceID string, index int, sourceSpan *util.ParseSourceSpan) *Rule {
	props, order := ScanDeclarations(cssText)
	rule := &Rule{
		SelectorText:  selectorText,
		Properties:    props,
		PropertyOrder: order,
		SourceID:      sourceID,
		Index:         index,
		sourceSpan:    sourceSpan,
	}
	if sel, err := selector.ParseSelector(selectorText); err == nil {
		rule.Selector = sel
		rule.Specificity = sel.Specificity()
	}
	rule.Flags = DeriveFlags(rule.Selector, props)
	return rule
}

// InlineRule creates the synthetic rule for an element's style attribute.
// Inline declarations outrank any stylesheet selector.
func InlineRule(cssText, sourceID string, index int, sourceSpan *util.ParseSourceSpan) *Rule {
	props, order := ScanDeclarations(cssText)
	return &Rule{
		SelectorText:  "",
		Properties:    props,
		PropertyOrder: order,
		Specificity:   selector.InlineSpecificity,
		SourceID:      sourceID,
		Index:         index,
		Inline:        true,
		Flags:         DeriveFlags(nil, props),
		sourceSpan:    sourceSpan,
	}
}

// SourceSpan returns the source span.
func (r *Rule) SourceSpan() *util.ParseSourceSpan {
	return r.sourceSpan
}

// Property returns a declared property value.
func (r *Rule) Property(name string) (string, bool) {
	v, ok := r.Properties[strings.ToLower(name)]
	return v, ok
}

// Hides reports whether applying this rule alone suppresses the element
// from visual rendering.
func (r *Rule) Hides() bool {
	for name, value := range r.Properties {
		if HidesValue(name, value) {
			return true
		}
	}
	return false
}

// Sheet groups the rules parsed from one source file.
type Sheet struct {
	SourceID string
	Rules    []*Rule
}

// NewSheet creates a new Sheet.
func NewSheet(sourceID string, rules []*Rule) *Sheet {
	return &Sheet{SourceID: sourceID, Rules: rules}
}

var focusProperties = map[string]bool{
	"outline": true, "outline-width": true, "outline-style": true,
	"outline-color": true, "outline-offset": true,
}

var visibilityProperties = map[string]bool{
	"display": true, "visibility": true, "opacity": true,
	"clip": true, "clip-path": true, "content-visibility": true,
}

var contrastProperties = map[string]bool{
	"color": true, "background": true, "background-color": true,
	"background-image": true, "filter": true,
}

var interactionProperties = map[string]bool{
	"pointer-events": true, "cursor": true, "touch-action": true,
	"user-select": true,
}

var focusPseudoClasses = map[string]bool{
	"focus": true, "focus-visible": true, "focus-within": true,
}

// DeriveFlags computes the accessibility flags for a property map. A rule
// whose selector targets a focus pseudo-class affects focus appearance
// whatever it declares.
func DeriveFlags(sel *selector.Selector, props map[string]string) Flags {
	var flags Flags
	if sel != nil {
		for _, pseudo := range sel.PseudoClasses {
			if focusPseudoClasses[pseudo] {
				flags.AffectsFocus = true
			}
		}
	}
	for name := range props {
		switch {
		case focusProperties[name]:
			flags.AffectsFocus = true
		case visibilityProperties[name]:
			flags.AffectsVisibility = true
		case contrastProperties[name]:
			flags.AffectsContrast = true
		case interactionProperties[name]:
			flags.AffectsInteraction = true
		}
	}
	return flags
}

// HidesValue reports whether one property/value pair suppresses rendering:
// display suppressed, zero or near-zero opacity, or clipped away.
func HidesValue(name, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	switch strings.ToLower(name) {
	case "display":
		return value == "none"
	case "visibility":
		return value == "hidden" || value == "collapse"
	case "opacity":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f <= 0.05
		}
	case "content-visibility":
		return value == "hidden"
	case "clip":
		// The classic clip pattern, rect(0,0,0,0) and friends.
		return strings.HasPrefix(value, "rect(") && !strings.ContainsAny(value, "123456789")
	case "clip-path":
		return value == "inset(100%)" || value == "inset(50%)" || value == "circle(0)" ||
			value == "circle(0px)" || value == "polygon(0 0, 0 0, 0 0)"
	}
	return false
}
