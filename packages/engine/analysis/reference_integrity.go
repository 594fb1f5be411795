package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/resolve"
)

// maxSuggestionDistance bounds how different a known id may be from a
// missing one and still be offered as a "did you mean" suggestion. Two
// covers the common transposition typo; three still catches short renames
// without suggesting nonsense.
const maxSuggestionDistance = 3

// referenceCheckedAttrs are the reference attributes this analyzer reports
// on. aria-activedescendant is resolved by the engine but owned by the
// widget semantics, so it is not re-reported here.
var referenceCheckedAttrs = map[string]bool{
	"aria-labelledby":  true,
	"aria-describedby": true,
	"aria-controls":    true,
	"aria-owns":        true,
}

// ReferenceIntegrityAnalyzer verifies that every ARIA reference attribute
// points at an id that exists somewhere across the merged fragments, and
// offers edit-distance ranked suggestions for the ones that do not, the
// common case being a copy/paste or rename typo.
type ReferenceIntegrityAnalyzer struct{}

// NewReferenceIntegrityAnalyzer creates the analyzer.
func NewReferenceIntegrityAnalyzer() *ReferenceIntegrityAnalyzer {
	return &ReferenceIntegrityAnalyzer{}
}

// Kind implements the Analyzer interface.
func (a *ReferenceIntegrityAnalyzer) Kind() string { return "reference-integrity" }

// Analyze implements the Analyzer interface.
func (a *ReferenceIntegrityAnalyzer) Analyze(doc *resolve.MergedDocument) []Issue {
	var issues []Issue
	knownIDs := doc.AllIDs()

	for _, orphan := range doc.OrphanRefs {
		if !referenceCheckedAttrs[orphan.Attr] {
			continue
		}

		message := fmt.Sprintf("%s references id %q, which does not exist in any supplied fragment",
			orphan.Attr, orphan.MissingID)
		var fix *SuggestedFix
		if suggestions := SuggestIDs(orphan.MissingID, knownIDs); len(suggestions) > 0 {
			message += fmt.Sprintf("; did you mean %s?", oneOf(suggestions))
			fix = &SuggestedFix{
				Description: "replace the reference with the closest existing id",
				Attribute:   orphan.Attr,
				Value:       suggestions[0],
			}
		}

		issues = append(issues, Issue{
			Kind:        "reference/unresolved-id",
			Severity:    SeverityError,
			WCAG:        []string{"1.3.1", "4.1.2"},
			File:        fileOf(orphan.From),
			Line:        lineOf(orphan.From),
			ElementPath: orphan.From.Path(),
			Message:     message,
			Confidence:  referenceConfidence(doc.Scope),
			Fix:         fix,
		})
	}
	return issues
}

// AnalyzeFileScope implements the Analyzer interface. Without a structural
// model every id is unknown, so reporting would be pure noise.
func (a *ReferenceIntegrityAnalyzer) AnalyzeFileScope([]behavior.Action) []Issue {
	return nil
}

// referenceConfidence grades a dangling reference by how much structure was
// available: with the whole page merged a missing id is a real defect; with
// a single file it may simply live in markup not yet supplied.
func referenceConfidence(scope resolve.Scope) Confidence {
	switch scope {
	case resolve.ScopePage:
		return ConfidenceHigh
	case resolve.ScopeWorkspace:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// SuggestIDs ranks known ids by edit distance from the missing one and
// returns the closest match(es), nearest first, within the suggestion
// distance bound. Ties are returned in lexical order.
func SuggestIDs(missing string, knownIDs []string) []string {
	best := maxSuggestionDistance + 1
	var suggestions []string
	for _, id := range knownIDs {
		if id == missing {
			continue
		}
		dist := levenshtein.Distance(strings.ToLower(missing), strings.ToLower(id), nil)
		switch {
		case dist < best:
			best = dist
			suggestions = []string{id}
		case dist == best:
			suggestions = append(suggestions, id)
		}
	}
	if best > maxSuggestionDistance {
		return nil
	}
	sort.Strings(suggestions)
	return suggestions
}
