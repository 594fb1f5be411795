// Package analysis defines the analyzer framework and the built-in
// analyzers. Analyzers are side-effect-free and order-independent: running
// the same analyzer twice over the same merged document yields identical
// output, and the runner sorts the combined issue list so callers see a
// deterministic stream whatever the registration order.
package analysis

import (
	"fmt"
	"log/slog"

	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/resolve"
)

// Analyzer is one independent analysis pass. The set of implementations is
// closed and dispatched by static enumeration.
type Analyzer interface {
	// Kind returns the analyzer's stable identifier.
	Kind() string

	// Analyze consumes the merged document and reports issues.
	Analyze(doc *resolve.MergedDocument) []Issue

	// AnalyzeFileScope is the degraded entry point used when no structural
	// model is available, e.g. for script-only input.
	AnalyzeFileScope(actions []behavior.Action) []Issue
}

// Options configure one analysis run.
type Options struct {
	// Enabled filters analyzers by kind; empty means all registered.
	Enabled []string
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) enabled(kind string) bool {
	if len(o.Enabled) == 0 {
		return true
	}
	for _, k := range o.Enabled {
		if k == kind {
			return true
		}
	}
	return false
}

// DefaultAnalyzers returns the built-in analyzer set.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		NewWidgetPatternAnalyzer(),
		NewReferenceIntegrityAnalyzer(),
		NewConflictAnalyzer(),
	}
}

// Run executes the enabled analyzers over a merged document and returns the
// sorted issue list, prefixed by any diagnostics the merge recorded. When
// the document has no structural fragments, analyzers run in file scope
// over the orphaned actions instead.
func Run(doc *resolve.MergedDocument, analyzers []Analyzer, opts Options) []Issue {
	logger := opts.logger()
	issues := diagnosticsAsIssues(doc)

	if !doc.HasStructure() {
		var actions []behavior.Action
		for _, orphan := range doc.OrphanActions {
			actions = append(actions, orphan.Action)
		}
		return append(issues, RunFileScope(actions, analyzers, opts)...)
	}

	for _, analyzer := range analyzers {
		if !opts.enabled(analyzer.Kind()) {
			continue
		}
		issues = append(issues, runProtected(analyzer, logger, func() []Issue {
			return analyzer.Analyze(doc)
		})...)
	}

	sortIssues(issues)
	return issues
}

// RunFileScope executes the enabled analyzers in the degraded file-scope
// mode over a bare behavior model.
func RunFileScope(actions []behavior.Action, analyzers []Analyzer, opts Options) []Issue {
	logger := opts.logger()
	var issues []Issue
	for _, analyzer := range analyzers {
		if !opts.enabled(analyzer.Kind()) {
			continue
		}
		issues = append(issues, runProtected(analyzer, logger, func() []Issue {
			return analyzer.AnalyzeFileScope(actions)
		})...)
	}
	sortIssues(issues)
	return issues
}

// runProtected isolates analyzer failures: one analyzer panicking must not
// prevent the others from completing.
func runProtected(analyzer Analyzer, logger *slog.Logger, run func() []Issue) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("analysis: analyzer failed", "analyzer", analyzer.Kind(), "panic", r)
			issues = []Issue{{
				Kind:       "engine/analyzer-failure",
				Severity:   SeverityInfo,
				Message:    fmt.Sprintf("analyzer %q failed and was skipped: %v", analyzer.Kind(), r),
				Confidence: ConfidenceLow,
			}}
		}
	}()
	return run()
}

// diagnosticsAsIssues surfaces merge diagnostics in the issue stream, so
// callers consume a single ordered list.
func diagnosticsAsIssues(doc *resolve.MergedDocument) []Issue {
	var issues []Issue
	for _, diag := range doc.Diagnostics {
		issues = append(issues, Issue{
			Kind:       "engine/fragment-skipped",
			Severity:   SeverityInfo,
			File:       diag.SourceID,
			Message:    diag.Message,
			Confidence: ConfidenceLow,
		})
	}
	return issues
}
