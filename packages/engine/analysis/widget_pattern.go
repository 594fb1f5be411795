package analysis

import (
	"fmt"
	"strings"

	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/model"
	"axc-go/packages/engine/resolve"
	"axc-go/packages/engine/schema"
)

// WidgetPatternAnalyzer validates that an element carrying an interactive
// ARIA role has every component a complete implementation of that role
// requires, not just the role attribute. Structural, relational, behavioral
// and stateful facets are checked independently per role, and one issue is
// reported per missing piece. A complete pattern yields zero issues.
type WidgetPatternAnalyzer struct {
	registry schema.RoleRegistry
}

// NewWidgetPatternAnalyzer creates the analyzer against the default role
// catalog.
func NewWidgetPatternAnalyzer() *WidgetPatternAnalyzer {
	return &WidgetPatternAnalyzer{registry: schema.DefaultRegistry()}
}

// Kind implements the Analyzer interface.
func (a *WidgetPatternAnalyzer) Kind() string { return "widget-pattern" }

// Analyze implements the Analyzer interface.
func (a *WidgetPatternAnalyzer) Analyze(doc *resolve.MergedDocument) []Issue {
	var issues []Issue
	for _, el := range doc.Elements() {
		// Only explicitly declared roles are validated; implicit host
		// language roles come with their semantics built in.
		role := el.Role()
		if role == "" {
			continue
		}
		pattern, ok := a.registry.Pattern(role)
		if !ok {
			continue
		}
		ctx := doc.Context(el)
		issues = append(issues, a.checkStructural(doc, el, pattern)...)
		issues = append(issues, a.checkRelational(el, pattern)...)
		issues = append(issues, a.checkBehavioral(doc, el, pattern)...)
		issues = append(issues, a.checkStateful(ctx, pattern)...)
		if pattern.NameRequired && ctx.AccessibleName == "" {
			issues = append(issues, Issue{
				Kind:        "widget/missing-name",
				Severity:    SeverityError,
				WCAG:        []string{"4.1.2"},
				File:        fileOf(el),
				Line:        lineOf(el),
				ElementPath: el.Path(),
				Message:     fmt.Sprintf("element with role %q has no accessible name; add aria-label or aria-labelledby", role),
				Confidence:  ConfidenceHigh,
				Fix:         &SuggestedFix{Description: "label the element", Attribute: "aria-label"},
			})
		}
	}
	return issues
}

// AnalyzeFileScope implements the Analyzer interface. Widget validation is
// inherently structural; without a structural model there is nothing to
// validate.
func (a *WidgetPatternAnalyzer) AnalyzeFileScope([]behavior.Action) []Issue {
	return nil
}

// checkStructural verifies required ancestor context and required owned
// descendant roles. Descendants reachable through a resolved aria-owns
// reference count as owned.
func (a *WidgetPatternAnalyzer) checkStructural(doc *resolve.MergedDocument, el *model.Element, pattern *schema.RolePattern) []Issue {
	var issues []Issue

	if len(pattern.RequiredContext) > 0 && !hasAncestorRole(doc, el, pattern.RequiredContext) {
		issues = append(issues, Issue{
			Kind:        "widget/missing-context",
			Severity:    SeverityError,
			WCAG:        []string{"1.3.1"},
			File:        fileOf(el),
			Line:        lineOf(el),
			ElementPath: el.Path(),
			Message: fmt.Sprintf("role %q requires an ancestor with role %s",
				pattern.Role, oneOf(pattern.RequiredContext)),
			Confidence: ConfidenceHigh,
		})
	}

	for _, group := range pattern.RequiredOwned {
		if hasOwnedRole(doc, el, group) {
			continue
		}
		issues = append(issues, Issue{
			Kind:        "widget/missing-owned-role",
			Severity:    SeverityError,
			WCAG:        []string{"1.3.1"},
			File:        fileOf(el),
			Line:        lineOf(el),
			ElementPath: el.Path(),
			Message: fmt.Sprintf("role %q requires a descendant with role %s",
				pattern.Role, oneOf(group)),
			Confidence: ConfidenceHigh,
		})
	}
	return issues
}

// checkRelational verifies that required reference attributes are declared.
// Declared references that fail to resolve are the reference-integrity
// analyzer's concern, so the two analyzers never double-report.
func (a *WidgetPatternAnalyzer) checkRelational(el *model.Element, pattern *schema.RolePattern) []Issue {
	var issues []Issue
	for _, attr := range pattern.RelationAttrs {
		if el.HasAttr(attr) {
			continue
		}
		issues = append(issues, Issue{
			Kind:        "widget/missing-relation",
			Severity:    SeverityError,
			WCAG:        []string{"4.1.2", "1.3.1"},
			File:        fileOf(el),
			Line:        lineOf(el),
			ElementPath: el.Path(),
			Message:     fmt.Sprintf("role %q requires the %s attribute", pattern.Role, attr),
			Confidence:  ConfidenceHigh,
			Fix:         &SuggestedFix{Description: "add the reference attribute", Attribute: attr},
		})
	}

	for _, attr := range pattern.RequiredAttrs {
		if el.HasAttr(attr) {
			continue
		}
		issues = append(issues, Issue{
			Kind:        "widget/missing-required-attribute",
			Severity:    SeverityError,
			WCAG:        []string{"4.1.2"},
			File:        fileOf(el),
			Line:        lineOf(el),
			ElementPath: el.Path(),
			Message:     fmt.Sprintf("role %q requires the %s attribute", pattern.Role, attr),
			Confidence:  ConfidenceHigh,
			Fix:         &SuggestedFix{Description: "declare the state attribute", Attribute: attr},
		})
	}
	return issues
}

// checkBehavioral verifies the role's keyboard requirement groups against
// the resolved action set. A keyboard handler on the element, an ancestor
// or a descendant satisfies a group (composite widgets commonly delegate),
// and any key of a group counts.
func (a *WidgetPatternAnalyzer) checkBehavioral(doc *resolve.MergedDocument, el *model.Element, pattern *schema.RolePattern) []Issue {
	var issues []Issue
	for _, groupName := range pattern.KeyGroups {
		group, ok := a.registry.KeyGroup(groupName)
		if !ok {
			continue
		}
		if groupName == "activation" && model.IsNativelyInteractive(el.Name) {
			// Native interactive elements activate from the keyboard on
			// their own; requiring an explicit handler would be a false
			// positive.
			continue
		}
		if keyboardSatisfied(doc, el, group) {
			continue
		}
		issues = append(issues, Issue{
			Kind:        "widget/missing-keyboard",
			Severity:    SeverityError,
			WCAG:        []string{"2.1.1"},
			File:        fileOf(el),
			Line:        lineOf(el),
			ElementPath: el.Path(),
			Message: fmt.Sprintf("role %q has no keydown handler referencing %s (%s)",
				pattern.Role, oneOf(group.Keys), groupName),
			Confidence: ConfidenceHigh,
		})
	}
	return issues
}

// checkStateful verifies that state-reflecting attributes declared
// statically are also written at runtime. A static aria-expanded="false"
// with no state mutation behind it is misleading, not informative.
func (a *WidgetPatternAnalyzer) checkStateful(ctx *resolve.ElementContext, pattern *schema.RolePattern) []Issue {
	var issues []Issue
	for _, attr := range pattern.RequiredStates {
		if !ctx.Element.HasAttr(attr) {
			// Absence is the relational/attribute facet's finding.
			continue
		}
		if hasStateMutation(ctx.Actions, attr) {
			continue
		}
		issues = append(issues, Issue{
			Kind:        "widget/static-state",
			Severity:    SeverityError,
			WCAG:        []string{"4.1.2"},
			File:        fileOf(ctx.Element),
			Line:        lineOf(ctx.Element),
			ElementPath: ctx.Element.Path(),
			Message: fmt.Sprintf("%s is declared statically but no state mutation ever updates it",
				attr),
			Confidence: ConfidenceMedium,
		})
	}
	return issues
}

func hasAncestorRole(doc *resolve.MergedDocument, el *model.Element, roles []string) bool {
	for ancestor := el.Parent; ancestor != nil; ancestor = ancestor.Parent {
		role := doc.Context(ancestor).ComputedRole
		for _, want := range roles {
			if strings.EqualFold(role, want) {
				return true
			}
		}
	}
	return false
}

func hasOwnedRole(doc *resolve.MergedDocument, el *model.Element, roles []string) bool {
	found := false
	model.WalkElements(el, func(desc *model.Element) bool {
		if desc == el {
			return true
		}
		role := doc.Context(desc).ComputedRole
		for _, want := range roles {
			if strings.EqualFold(role, want) {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return true
	}
	for _, ref := range doc.ResolvedRefs {
		if ref.From != el || ref.Attr != "aria-owns" {
			continue
		}
		role := doc.Context(ref.To).ComputedRole
		for _, want := range roles {
			if strings.EqualFold(role, want) {
				return true
			}
		}
	}
	return false
}

// keyboardSatisfied reports whether any resolved keydown-family handler on
// the element, its ancestors or its descendants references a key of the
// group.
func keyboardSatisfied(doc *resolve.MergedDocument, el *model.Element, group *schema.KeyGroup) bool {
	check := func(candidate *model.Element) bool {
		for _, action := range doc.Context(candidate).Actions {
			handler, ok := action.(*behavior.EventHandlerAction)
			if !ok || !behavior.IsKeyboardEvent(handler.Event) {
				continue
			}
			for _, key := range group.Keys {
				if handler.ReferencesKey(key) {
					return true
				}
			}
		}
		return false
	}

	satisfied := false
	model.WalkElements(el, func(desc *model.Element) bool {
		if check(desc) {
			satisfied = true
			return false
		}
		return true
	})
	if satisfied {
		return true
	}
	for ancestor := el.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if check(ancestor) {
			return true
		}
	}
	return false
}

func hasStateMutation(actions []behavior.Action, attr string) bool {
	for _, action := range actions {
		mutation, ok := action.(*behavior.StateMutationAction)
		if ok && strings.EqualFold(mutation.Attribute, attr) {
			return true
		}
	}
	return false
}

func oneOf(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
