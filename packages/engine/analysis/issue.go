package analysis

import (
	"sort"

	"axc-go/packages/engine/model"
)

// Severity is the issue severity, mapped from the WCAG conformance level of
// the violated criteria.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Confidence qualifies how certain the engine is that an issue is real,
// given how complete the supplied fragment set was.
type Confidence int

const (
	ConfidenceHigh Confidence = iota
	ConfidenceMedium
	ConfidenceLow
)

// String returns the confidence name.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	}
	return "unknown"
}

// SuggestedFix is an optional machine-applicable payload an external fix
// applier may use. The engine itself never writes back to source.
type SuggestedFix struct {
	Description string
	Attribute   string
	Value       string
	Selector    string
	Snippet     string
}

// Issue is one reported accessibility finding.
type Issue struct {
	// Kind is a stable machine-readable identifier, e.g.
	// "widget/missing-keyboard".
	Kind     string
	Severity Severity
	// WCAG lists the success criteria the issue violates, e.g. "2.1.1".
	WCAG []string
	// File and Line locate the issue in its source fragment.
	File string
	Line int
	// ElementPath is a short CSS-like path to the offending element.
	ElementPath string
	// Message names the exact missing or invalid component.
	Message    string
	Confidence Confidence
	Fix        *SuggestedFix
}

// sortIssues orders issues deterministically, so identical inputs yield
// byte-identical issue lists regardless of analyzer registration order.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Message != b.Message {
			return a.Message < b.Message
		}
		return a.ElementPath < b.ElementPath
	})
}

// fileOf returns the source URL an element was parsed from, or "".
func fileOf(el *model.Element) string {
	return el.SourceSpan().SourceURL()
}

// lineOf returns the 1-based source line of an element, or 0 when the
// fragment carries no positions.
func lineOf(el *model.Element) int {
	return el.SourceSpan().StartLine()
}
