// Package resolve implements the resolution engine: it merges structural
// model fragments with behavior and style collections by resolving selector
// and id references, records what could not be resolved, and projects the
// merged result as read-only element contexts for the analyzers.
package resolve

import (
	"sort"

	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/model"
	"axc-go/packages/engine/style"
)

// Scope describes how much of the project the fragment set covers.
type Scope int

const (
	ScopeSingleFile Scope = iota
	ScopeWorkspace
	ScopePage
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeSingleFile:
		return "single-file"
	case ScopeWorkspace:
		return "workspace"
	case ScopePage:
		return "whole-page"
	}
	return "unknown"
}

// Completeness score constants. The shape is what matters: confidence drops
// as the fragment count grows and recovers when cross-fragment references
// are seen to resolve.
const (
	// CompletenessFloor is the lowest base score however many fragments
	// are merged.
	CompletenessFloor = 0.3
	// FragmentPenalty is subtracted from 1.0 per merged fragment.
	FragmentPenalty = 0.1
	// CrossReferenceBonus is added once when any inter-fragment ARIA
	// reference resolved successfully.
	CrossReferenceBonus = 0.3
)

// Annotation holds what the merge attached to one element. Elements stay
// immutable; annotations live in a table keyed by element identity and are
// written exactly once, during the merge.
type Annotation struct {
	Actions []behavior.Action
	Rules   []*style.Rule
}

// OrphanAction is an action whose element reference resolved to nothing.
// Orphans are data for the analyzers, not errors.
type OrphanAction struct {
	Action   behavior.Action
	SourceID string
	Reason   string
}

// OrphanRef is an ARIA id reference that resolved to no element in the
// current fragment set.
type OrphanRef struct {
	From      *model.Element
	Attr      string
	MissingID string
}

// ResolvedRef is a successfully resolved ARIA id reference.
type ResolvedRef struct {
	From          *model.Element
	Attr          string
	ID            string
	To            *model.Element
	CrossFragment bool
}

// Diagnostic records a recovered input problem, e.g. a skipped malformed
// fragment.
type Diagnostic struct {
	SourceID string
	Message  string
}

// MergedDocument is the cross-referenced result of one merge. It is
// read-only after Merge returns and is never shared between analysis runs.
type MergedDocument struct {
	Scope     Scope
	Fragments []*model.Fragment

	OrphanActions []OrphanAction
	OrphanRefs    []OrphanRef
	ResolvedRefs  []ResolvedRef
	Diagnostics   []Diagnostic

	// Completeness is the [0,1] confidence that the fragment set contains
	// everything cross-references need.
	Completeness float64

	annotations map[*model.Element]*Annotation
	idIndex     map[string][]*model.Element
	fragmentOf  map[*model.Element]*model.Fragment
	ruleOrder   map[*style.Rule]int
	elements    []*model.Element
}

// HasStructure reports whether any structural fragment survived the merge.
// Without structure the analyzers fall back to file-scope analysis.
func (d *MergedDocument) HasStructure() bool {
	return len(d.Fragments) > 0
}

// Elements returns every merged element in fragment order, then document
// order within each fragment.
func (d *MergedDocument) Elements() []*model.Element {
	return d.elements
}

// ElementsByID returns the elements carrying the given id, across all
// fragments.
func (d *MergedDocument) ElementsByID(id string) []*model.Element {
	return d.idIndex[id]
}

// AllIDs returns every element id in the document, sorted.
func (d *MergedDocument) AllIDs() []string {
	out := make([]string, 0, len(d.idIndex))
	for id := range d.idIndex {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// FragmentOf returns the fragment owning an element, or nil.
func (d *MergedDocument) FragmentOf(el *model.Element) *model.Fragment {
	return d.fragmentOf[el]
}

// Annotation returns what the merge attached to an element. The result may
// be nil for elements nothing resolved to.
func (d *MergedDocument) Annotation(el *model.Element) *Annotation {
	return d.annotations[el]
}

// RuleOrder returns the global cascade position of an attached rule; later
// positions win specificity ties.
func (d *MergedDocument) RuleOrder(rule *style.Rule) int {
	return d.ruleOrder[rule]
}

func (d *MergedDocument) annotationFor(el *model.Element) *Annotation {
	ann, ok := d.annotations[el]
	if !ok {
		ann = &Annotation{}
		d.annotations[el] = ann
	}
	return ann
}
