package analysis_test

import (
	"strings"
	"testing"

	"axc-go/packages/engine/analysis"
	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/model"
	"axc-go/packages/engine/resolve"
	"axc-go/packages/engine/style"
)

func conflictIssues(t *testing.T, doc *resolve.MergedDocument) []analysis.Issue {
	t.Helper()
	return analysis.Run(doc, []analysis.Analyzer{analysis.NewConflictAnalyzer()}, analysis.Options{})
}

func clickAction(ref behavior.ElementRef) *behavior.EventHandlerAction {
	return behavior.NewEventHandlerAction(ref, "click", behavior.TimingImmediate, nil)
}

func TestConflictFocusableHidden(t *testing.T) {
	t.Run("should flag a focusable element hidden by style", func(t *testing.T) {
		button := newEl("button", []string{"class", "ghost"})
		frag := newFragment(t, "app.html", newEl("body", nil, button))
		sheet := style.NewSheet("app.css", []*style.Rule{
			style.NewRule(".ghost", "display: none", "app.css", 0, nil),
		})
		doc := resolve.Merge([]*model.Fragment{frag}, nil, []*style.Sheet{sheet}, resolve.Options{})

		issues := conflictIssues(t, doc)
		if countKind(issues, "conflict/focusable-hidden") != 1 {
			t.Fatalf("expected a focusable-hidden issue, got %v", kinds(issues))
		}
		issue := issues[0]
		if issue.Severity != analysis.SeverityError || issue.Confidence != analysis.ConfidenceHigh {
			t.Errorf("unexpected grading %+v", issue)
		}
		if !strings.Contains(issue.Message, `".ghost"`) {
			t.Errorf("expected the hiding rule named in %q", issue.Message)
		}
	})

	t.Run("should flag hiding inherited from an ancestor", func(t *testing.T) {
		button := newEl("button", nil)
		wrapper := newEl("div", []string{"class", "collapsed"}, button)
		frag := newFragment(t, "app.html", newEl("body", nil, wrapper))
		sheet := style.NewSheet("app.css", []*style.Rule{
			style.NewRule(".collapsed", "visibility: hidden", "app.css", 0, nil),
		})
		doc := resolve.Merge([]*model.Fragment{frag}, nil, []*style.Sheet{sheet}, resolve.Options{})

		if countKind(conflictIssues(t, doc), "conflict/focusable-hidden") != 1 {
			t.Error("expected the ancestor hiding to be flagged")
		}
	})

	t.Run("should name an inline declaration as the cause", func(t *testing.T) {
		button := newEl("button", []string{"style", "display: none"})
		frag := newFragment(t, "app.html", newEl("body", nil, button))
		doc := resolve.Merge([]*model.Fragment{frag}, nil, nil, resolve.Options{})

		issues := conflictIssues(t, doc)
		if len(issues) != 1 || !strings.Contains(issues[0].Message, "inline style") {
			t.Errorf("expected the inline declaration named, got %v", issues)
		}
	})

	t.Run("should not flag hidden elements outside the tab order", func(t *testing.T) {
		div := newEl("div", []string{"class", "ghost"})
		frag := newFragment(t, "app.html", newEl("body", nil, div))
		sheet := style.NewSheet("app.css", []*style.Rule{
			style.NewRule(".ghost", "display: none", "app.css", 0, nil),
		})
		doc := resolve.Merge([]*model.Fragment{frag}, nil, []*style.Sheet{sheet}, resolve.Options{})

		if issues := conflictIssues(t, doc); len(issues) != 0 {
			t.Errorf("expected no issues for a non-focusable element, got %v", kinds(issues))
		}
	})
}

func TestConflictFocusStyle(t *testing.T) {
	t.Run("should flag a suppressed outline with no replacement", func(t *testing.T) {
		button := newEl("button", []string{"class", "btn"})
		frag := newFragment(t, "app.html", newEl("body", nil, button))
		sheet := style.NewSheet("app.css", []*style.Rule{
			style.NewRule(".btn:focus", "outline: none", "app.css", 0, nil),
		})
		doc := resolve.Merge([]*model.Fragment{frag}, nil, []*style.Sheet{sheet}, resolve.Options{})

		issues := conflictIssues(t, doc)
		if countKind(issues, "conflict/focus-style-suppressed") != 1 {
			t.Fatalf("expected a focus-style-suppressed issue, got %v", kinds(issues))
		}
	})

	t.Run("should accept a box-shadow replacement", func(t *testing.T) {
		button := newEl("button", []string{"class", "btn"})
		frag := newFragment(t, "app.html", newEl("body", nil, button))
		sheet := style.NewSheet("app.css", []*style.Rule{
			style.NewRule(".btn:focus", "outline: none", "app.css", 0, nil),
			style.NewRule(".btn:focus-visible", "box-shadow: 0 0 0 2px blue", "app.css", 1, nil),
		})
		doc := resolve.Merge([]*model.Fragment{frag}, nil, []*style.Sheet{sheet}, resolve.Options{})

		if issues := conflictIssues(t, doc); countKind(issues, "conflict/focus-style-suppressed") != 0 {
			t.Errorf("expected the replacement to satisfy, got %v", kinds(issues))
		}
	})

	t.Run("should leave untouched outlines alone", func(t *testing.T) {
		button := newEl("button", []string{"class", "btn"})
		frag := newFragment(t, "app.html", newEl("body", nil, button))
		sheet := style.NewSheet("app.css", []*style.Rule{
			style.NewRule(".btn", "color: red", "app.css", 0, nil),
		})
		doc := resolve.Merge([]*model.Fragment{frag}, nil, []*style.Sheet{sheet}, resolve.Options{})

		if issues := conflictIssues(t, doc); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", kinds(issues))
		}
	})
}

func TestConflictPointerOnly(t *testing.T) {
	t.Run("should flag a div with only a click handler", func(t *testing.T) {
		card := newEl("div", []string{"id", "card"})
		frag := newFragment(t, "app.html", newEl("body", nil, card))
		colls := []*behavior.Collection{behavior.NewCollection("app.js", []behavior.Action{
			clickAction(behavior.ElementRef{LiteralID: "card"}),
		})}
		doc := resolve.Merge([]*model.Fragment{frag}, colls, nil, resolve.Options{})

		issues := conflictIssues(t, doc)
		if countKind(issues, "conflict/pointer-only-handler") != 1 {
			t.Fatalf("expected a pointer-only issue, got %v", kinds(issues))
		}
	})

	t.Run("should not flag natively interactive elements", func(t *testing.T) {
		button := newEl("button", []string{"id", "save"})
		frag := newFragment(t, "app.html", newEl("body", nil, button))
		colls := []*behavior.Collection{behavior.NewCollection("app.js", []behavior.Action{
			clickAction(behavior.ElementRef{LiteralID: "save"}),
		})}
		doc := resolve.Merge([]*model.Fragment{frag}, colls, nil, resolve.Options{})

		if issues := conflictIssues(t, doc); len(issues) != 0 {
			t.Errorf("a button handles keyboard natively, got %v", kinds(issues))
		}
	})

	t.Run("should accept handlers split across behavior files", func(t *testing.T) {
		card := newEl("div", []string{"id", "card"})
		frag := newFragment(t, "app.html", newEl("body", nil, card))
		colls := []*behavior.Collection{
			behavior.NewCollection("click.js", []behavior.Action{
				clickAction(behavior.ElementRef{LiteralID: "card"}),
			}),
			behavior.NewCollection("keys.js", []behavior.Action{
				behavior.NewEventHandlerAction(behavior.ElementRef{LiteralID: "card"},
					"keydown", behavior.TimingImmediate, nil),
			}),
		}
		doc := resolve.Merge([]*model.Fragment{frag}, colls, nil, resolve.Options{})

		if issues := conflictIssues(t, doc); len(issues) != 0 {
			t.Errorf("handlers merge across files before analysis, got %v", kinds(issues))
		}
	})
}

func TestConflictFileScope(t *testing.T) {
	t.Run("should group one file's handlers by their target", func(t *testing.T) {
		actions := []behavior.Action{
			clickAction(behavior.ElementRef{LiteralID: "a"}),
			behavior.NewEventHandlerAction(behavior.ElementRef{LiteralID: "a"},
				"keydown", behavior.TimingImmediate, nil),
			clickAction(behavior.ElementRef{LiteralID: "b"}),
		}
		issues := analysis.RunFileScope(actions,
			[]analysis.Analyzer{analysis.NewConflictAnalyzer()}, analysis.Options{})

		if len(issues) != 1 {
			t.Fatalf("expected 1 issue, got %d: %v", len(issues), kinds(issues))
		}
		issue := issues[0]
		if issue.Kind != "conflict/pointer-only-handler" ||
			issue.Severity != analysis.SeverityWarning ||
			issue.Confidence != analysis.ConfidenceLow {
			t.Errorf("unexpected grading %+v", issue)
		}
		if !strings.Contains(issue.Message, "#b") {
			t.Errorf("expected the target named in %q", issue.Message)
		}
	})
}
