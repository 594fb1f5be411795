package analysis_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"axc-go/packages/engine/analysis"
	"axc-go/packages/engine/model"
	"axc-go/packages/engine/resolve"
)

func referenceIssues(t *testing.T, scope resolve.Scope, roots map[string]*model.Element) []analysis.Issue {
	t.Helper()
	var frags []*model.Fragment
	for _, sourceID := range sortedKeys(roots) {
		frags = append(frags, newFragment(t, sourceID, roots[sourceID]))
	}
	doc := resolve.Merge(frags, nil, nil, resolve.Options{Scope: scope})
	return analysis.Run(doc, []analysis.Analyzer{analysis.NewReferenceIntegrityAnalyzer()}, analysis.Options{})
}

func TestReferenceIntegrity(t *testing.T) {
	t.Run("should pass when every reference resolves", func(t *testing.T) {
		issues := referenceIssues(t, resolve.ScopePage, map[string]*model.Element{
			"app.html": newEl("body", nil,
				newEl("button", []string{"aria-controls", "panel"}),
				newEl("div", []string{"id", "panel"}),
			),
		})
		if len(issues) != 0 {
			t.Errorf("expected no issues, got %v", kinds(issues))
		}
	})

	t.Run("should report a dangling reference with a typo suggestion", func(t *testing.T) {
		issues := referenceIssues(t, resolve.ScopePage, map[string]*model.Element{
			"app.html": newEl("body", nil,
				newEl("label", []string{"id", "submitButton"}),
				newEl("div", []string{"aria-labelledby", "sumbitButton"}),
			),
		})
		if len(issues) != 1 {
			t.Fatalf("expected 1 issue, got %d: %v", len(issues), kinds(issues))
		}
		issue := issues[0]
		if issue.Kind != "reference/unresolved-id" {
			t.Errorf("unexpected kind %q", issue.Kind)
		}
		if !strings.Contains(issue.Message, `"sumbitButton"`) ||
			!strings.Contains(issue.Message, `did you mean "submitButton"`) {
			t.Errorf("unexpected message %q", issue.Message)
		}
		if issue.Fix == nil || issue.Fix.Attribute != "aria-labelledby" || issue.Fix.Value != "submitButton" {
			t.Errorf("unexpected fix %+v", issue.Fix)
		}
	})

	t.Run("should omit suggestions when nothing is close", func(t *testing.T) {
		issues := referenceIssues(t, resolve.ScopePage, map[string]*model.Element{
			"app.html": newEl("body", nil,
				newEl("label", []string{"id", "completelyDifferent"}),
				newEl("div", []string{"aria-describedby", "hint"}),
			),
		})
		if len(issues) != 1 {
			t.Fatalf("expected 1 issue, got %d", len(issues))
		}
		if strings.Contains(issues[0].Message, "did you mean") || issues[0].Fix != nil {
			t.Errorf("unexpected suggestion in %q", issues[0].Message)
		}
	})

	t.Run("should resolve references that live in another fragment", func(t *testing.T) {
		issues := referenceIssues(t, resolve.ScopeWorkspace, map[string]*model.Element{
			"a.html": newEl("body", nil, newEl("button", []string{"aria-controls", "panel"})),
			"b.html": newEl("body", nil, newEl("div", []string{"id", "panel"})),
		})
		if len(issues) != 0 {
			t.Errorf("expected no issues across fragments, got %v", kinds(issues))
		}
	})

	t.Run("should grade confidence by merge scope", func(t *testing.T) {
		roots := func() map[string]*model.Element {
			return map[string]*model.Element{
				"app.html": newEl("body", nil, newEl("div", []string{"aria-owns", "ghost"})),
			}
		}
		cases := []struct {
			scope resolve.Scope
			want  analysis.Confidence
		}{
			{resolve.ScopePage, analysis.ConfidenceHigh},
			{resolve.ScopeWorkspace, analysis.ConfidenceMedium},
			{resolve.ScopeSingleFile, analysis.ConfidenceLow},
		}
		for _, tc := range cases {
			issues := referenceIssues(t, tc.scope, roots())
			if len(issues) != 1 || issues[0].Confidence != tc.want {
				t.Errorf("scope %v: expected confidence %v, got %+v", tc.scope, tc.want, issues)
			}
		}
	})

	t.Run("should leave aria-activedescendant to the widget semantics", func(t *testing.T) {
		issues := referenceIssues(t, resolve.ScopePage, map[string]*model.Element{
			"app.html": newEl("body", nil,
				newEl("div", []string{"role", "listbox", "aria-activedescendant", "ghost"}),
			),
		})
		if len(issues) != 0 {
			t.Errorf("expected aria-activedescendant to be skipped, got %v", kinds(issues))
		}
	})
}

func TestSuggestIDs(t *testing.T) {
	t.Run("should rank by edit distance", func(t *testing.T) {
		got := analysis.SuggestIDs("sumbitButton", []string{"submitButton", "resetButton", "navBar"})
		if diff := cmp.Diff([]string{"submitButton"}, got); diff != "" {
			t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should return ties in lexical order", func(t *testing.T) {
		got := analysis.SuggestIDs("tab1", []string{"tab3", "tab2"})
		if diff := cmp.Diff([]string{"tab2", "tab3"}, got); diff != "" {
			t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should ignore case when measuring distance", func(t *testing.T) {
		got := analysis.SuggestIDs("SUBMITBUTTON", []string{"submitButton"})
		if diff := cmp.Diff([]string{"submitButton"}, got); diff != "" {
			t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should give up beyond the distance bound", func(t *testing.T) {
		if got := analysis.SuggestIDs("header", []string{"unrelatedThing"}); got != nil {
			t.Errorf("expected no suggestions, got %v", got)
		}
	})

	t.Run("should handle an empty id index", func(t *testing.T) {
		if got := analysis.SuggestIDs("anything", nil); got != nil {
			t.Errorf("expected no suggestions, got %v", got)
		}
	})
}
