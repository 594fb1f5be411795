package analysis

import (
	"fmt"
	"sort"
	"strings"

	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/model"
	"axc-go/packages/engine/resolve"
)

// ConflictAnalyzer detects defects only visible by combining models: an
// element reachable by keyboard focus that resolved style hides, a focus
// outline suppressed with nothing replacing it, and interactive elements
// with pointer handlers but no keyboard handler. Because handlers are
// resolved across every fragment before this analyzer runs, a click handler
// in one file and a keydown handler in another do not produce a false
// positive.
type ConflictAnalyzer struct{}

// NewConflictAnalyzer creates the analyzer.
func NewConflictAnalyzer() *ConflictAnalyzer {
	return &ConflictAnalyzer{}
}

// Kind implements the Analyzer interface.
func (a *ConflictAnalyzer) Kind() string { return "cross-model-conflict" }

// Analyze implements the Analyzer interface.
func (a *ConflictAnalyzer) Analyze(doc *resolve.MergedDocument) []Issue {
	var issues []Issue
	for _, el := range doc.Elements() {
		ctx := doc.Context(el)

		if ctx.IsFocusable {
			if hidden, rule := ctx.EffectivelyHidden(); hidden {
				issues = append(issues, Issue{
					Kind:        "conflict/focusable-hidden",
					Severity:    SeverityError,
					WCAG:        []string{"2.4.3"},
					File:        fileOf(el),
					Line:        lineOf(el),
					ElementPath: el.Path(),
					Message: fmt.Sprintf("element is keyboard focusable but hidden by %s",
						describeRule(rule.SelectorText, rule.Inline)),
					Confidence: ConfidenceHigh,
				})
			}
			issues = append(issues, a.checkFocusAppearance(ctx)...)
		}

		if ctx.HasClickHandler && !ctx.HasKeyboardHandler && !model.IsNativelyInteractive(el.Name) {
			issues = append(issues, Issue{
				Kind:        "conflict/pointer-only-handler",
				Severity:    SeverityError,
				WCAG:        []string{"2.1.1"},
				File:        fileOf(el),
				Line:        lineOf(el),
				ElementPath: el.Path(),
				Message:     "element has a click handler but no keyboard handler in any supplied fragment",
				Confidence:  ConfidenceHigh,
			})
		}
	}
	return issues
}

// checkFocusAppearance flags a suppressed focus outline with no replacement
// focus styling anywhere in the element's resolved rules.
func (a *ConflictAnalyzer) checkFocusAppearance(ctx *resolve.ElementContext) []Issue {
	var suppressing *string
	compensated := false
	for _, rule := range ctx.Rules {
		outline, ok := rule.Property("outline")
		if !ok {
			outline, ok = rule.Property("outline-style")
		}
		if ok {
			value := strings.ToLower(strings.TrimSpace(outline))
			if value == "none" || value == "0" {
				text := describeRule(rule.SelectorText, rule.Inline)
				suppressing = &text
				continue
			}
			if rule.Flags.AffectsFocus {
				compensated = true
			}
		}
		if rule.Flags.AffectsFocus {
			if _, ok := rule.Property("box-shadow"); ok {
				compensated = true
			}
			if _, ok := rule.Property("border"); ok {
				compensated = true
			}
		}
	}
	if suppressing == nil || compensated {
		return nil
	}
	return []Issue{{
		Kind:        "conflict/focus-style-suppressed",
		Severity:    SeverityWarning,
		WCAG:        []string{"2.4.7"},
		File:        fileOf(ctx.Element),
		Line:        lineOf(ctx.Element),
		ElementPath: ctx.Element.Path(),
		Message: fmt.Sprintf("focus outline is removed by %s and nothing restores a visible focus style",
			*suppressing),
		Confidence: ConfidenceMedium,
	}}
}

// AnalyzeFileScope implements the Analyzer interface. Without structure the
// split-handler check degrades to grouping actions by their symbolic
// target within the one file, at low confidence: the keyboard handler may
// simply live in a file not supplied.
func (a *ConflictAnalyzer) AnalyzeFileScope(actions []behavior.Action) []Issue {
	type group struct {
		ref      behavior.ElementRef
		click    bool
		keyboard bool
	}
	groups := map[string]*group{}
	var keys []string

	for _, action := range actions {
		handler, ok := action.(*behavior.EventHandlerAction)
		if !ok {
			continue
		}
		key := action.Target().Key()
		g, seen := groups[key]
		if !seen {
			g = &group{ref: action.Target()}
			groups[key] = g
			keys = append(keys, key)
		}
		if behavior.IsClickActivation(handler.Event) {
			g.click = true
		}
		if behavior.IsKeyboardEvent(handler.Event) {
			g.keyboard = true
		}
	}

	sort.Strings(keys)
	var issues []Issue
	for _, key := range keys {
		g := groups[key]
		if !g.click || g.keyboard {
			continue
		}
		issues = append(issues, Issue{
			Kind:       "conflict/pointer-only-handler",
			Severity:   SeverityWarning,
			WCAG:       []string{"2.1.1"},
			Message:    fmt.Sprintf("target %s has a click handler but no keyboard handler in this file's behavior model", g.ref),
			Confidence: ConfidenceLow,
		})
	}
	return issues
}

func describeRule(selectorText string, inline bool) string {
	if inline {
		return "an inline style declaration"
	}
	return fmt.Sprintf("rule %q", selectorText)
}
