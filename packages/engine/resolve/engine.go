package resolve

import (
	"log/slog"
	"sort"
	"strings"

	"axc-go/packages/engine/behavior"
	"axc-go/packages/engine/model"
	"axc-go/packages/engine/schema"
	"axc-go/packages/engine/selector"
	"axc-go/packages/engine/style"
)

// Options configure one merge. The zero value is usable.
type Options struct {
	Scope  Scope
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// actionReg tracks one behavior action through the matching pass.
type actionReg struct {
	action   behavior.Action
	sourceID string
	matched  bool
	failure  string
}

// Merge cross-links one or more structural fragments with zero or more
// behavior and style collections. It never fails outright: malformed
// fragments are skipped with a diagnostic, unresolvable references become
// orphan facts, and ambiguous selectors attach to every match. An action is
// not constrained to the fragment that declared it.
func Merge(fragments []*model.Fragment, behaviors []*behavior.Collection, styles []*style.Sheet, opts Options) *MergedDocument {
	logger := opts.logger()
	doc := &MergedDocument{
		Scope:       opts.Scope,
		annotations: make(map[*model.Element]*Annotation),
		idIndex:     make(map[string][]*model.Element),
		fragmentOf:  make(map[*model.Element]*model.Fragment),
		ruleOrder:   make(map[*style.Rule]int),
	}

	// Phase 1: index the structure. A fragment a parser handed back broken
	// degrades the run instead of aborting it.
	for _, fragment := range fragments {
		if fragment == nil {
			continue
		}
		if err := fragment.Validate(); err != nil {
			doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
				SourceID: fragment.SourceID,
				Message:  "skipped malformed fragment: " + err.Error(),
			})
			logger.Warn("resolve: skipping malformed fragment",
				"source", fragment.SourceID, "error", err)
			continue
		}
		doc.Fragments = append(doc.Fragments, fragment)
		for _, el := range fragment.Elements() {
			doc.elements = append(doc.elements, el)
			doc.fragmentOf[el] = fragment
			if id := el.ID(); id != "" {
				doc.idIndex[id] = append(doc.idIndex[id], el)
			}
		}
	}

	doc.resolveActions(behaviors)
	doc.resolveStyles(styles)
	doc.resolveReferences()
	doc.Completeness = doc.completeness()

	logger.Debug("resolve: merge complete",
		"fragments", len(doc.Fragments),
		"orphan_actions", len(doc.OrphanActions),
		"orphan_refs", len(doc.OrphanRefs),
		"completeness", doc.Completeness)
	return doc
}

// resolveActions attaches every behavior action to each element its
// reference matches, across every fragment.
func (d *MergedDocument) resolveActions(behaviors []*behavior.Collection) {
	matcher := selector.NewMatcher[*actionReg]()
	var regs []*actionReg

	for _, coll := range behaviors {
		if coll == nil {
			continue
		}
		for _, action := range coll.Actions {
			reg := &actionReg{action: action, sourceID: coll.SourceID}
			regs = append(regs, reg)
			ref := action.Target()

			switch {
			case ref.LiteralID != "":
				// A literal id is authoritative: resolve by index, uniquely
				// per id, across all fragments.
				for _, el := range d.idIndex[ref.LiteralID] {
					d.annotationFor(el).Actions = append(d.annotationFor(el).Actions, action)
					reg.matched = true
				}
				if !reg.matched {
					reg.failure = "no element with id " + ref.LiteralID
				}
			case ref.Selector != "":
				list, err := selector.ParseSelectorList(ref.Selector)
				if err != nil {
					reg.failure = "unsupported selector: " + err.Error()
					continue
				}
				matcher.AddSelectables(list, reg)
			case ref.BindingName != "":
				// Binding names resolve like ids; richer binding semantics
				// belong to the framework-specific behavior parsers.
				for _, el := range d.idIndex[ref.BindingName] {
					d.annotationFor(el).Actions = append(d.annotationFor(el).Actions, action)
					reg.matched = true
				}
				if !reg.matched {
					reg.failure = "unresolved binding " + ref.BindingName
				}
			default:
				reg.failure = "empty element reference"
			}
		}
	}

	for _, el := range d.elements {
		target := selector.TargetSelector(el)
		matcher.Match(target, func(_ *selector.Selector, reg *actionReg) {
			ann := d.annotationFor(el)
			ann.Actions = append(ann.Actions, reg.action)
			reg.matched = true
		})
	}

	for _, reg := range regs {
		if reg.matched {
			continue
		}
		reason := reg.failure
		if reason == "" {
			reason = "selector matched no element"
		}
		d.OrphanActions = append(d.OrphanActions, OrphanAction{
			Action:   reg.action,
			SourceID: reg.sourceID,
			Reason:   reason,
		})
	}
}

// resolveStyles attaches style rules to their matching elements and
// synthesizes an inline rule per style attribute. Attached rule lists are
// sorted by global declaration order so merge output is deterministic.
func (d *MergedDocument) resolveStyles(styles []*style.Sheet) {
	matcher := selector.NewMatcher[*style.Rule]()
	position := 0
	for _, sheet := range styles {
		if sheet == nil {
			continue
		}
		for _, rule := range sheet.Rules {
			d.ruleOrder[rule] = position
			position++
			if rule.Selector == nil {
				continue
			}
			matcher.AddSelectables([]*selector.Selector{rule.Selector}, rule)
		}
	}

	for _, el := range d.elements {
		target := selector.TargetSelector(el)
		ann := (*Annotation)(nil)
		matcher.Match(target, func(_ *selector.Selector, rule *style.Rule) {
			if ann == nil {
				ann = d.annotationFor(el)
			}
			ann.Rules = append(ann.Rules, rule)
		})

		if styleText, ok := el.Attr("style"); ok && strings.TrimSpace(styleText) != "" {
			fragment := d.fragmentOf[el]
			inline := style.InlineRule(styleText, fragment.SourceID, position, el.SourceSpan())
			d.ruleOrder[inline] = position
			position++
			d.annotationFor(el).Rules = append(d.annotationFor(el).Rules, inline)
		}

		if ann := d.annotations[el]; ann != nil && len(ann.Rules) > 1 {
			sort.SliceStable(ann.Rules, func(i, j int) bool {
				return d.ruleOrder[ann.Rules[i]] < d.ruleOrder[ann.Rules[j]]
			})
		}
	}
}

// resolveReferences resolves explicit ARIA id references by lookup across
// all fragments, not just the declaring one.
func (d *MergedDocument) resolveReferences() {
	for _, el := range d.elements {
		for _, attr := range el.Attrs {
			if !schema.IsReferenceAttr(attr.Name) {
				continue
			}
			for _, id := range strings.Fields(attr.Value) {
				targets := d.idIndex[id]
				if len(targets) == 0 {
					d.OrphanRefs = append(d.OrphanRefs, OrphanRef{
						From:      el,
						Attr:      attr.Name,
						MissingID: id,
					})
					continue
				}
				to := targets[0]
				d.ResolvedRefs = append(d.ResolvedRefs, ResolvedRef{
					From:          el,
					Attr:          attr.Name,
					ID:            id,
					To:            to,
					CrossFragment: d.fragmentOf[el] != d.fragmentOf[to],
				})
			}
		}
	}
}

// completeness computes the fragment-set confidence score: the base shrinks
// with fragment count, and resolving any inter-fragment reference earns the
// bonus back.
func (d *MergedDocument) completeness() float64 {
	base := 1.0 - FragmentPenalty*float64(len(d.Fragments))
	if base < CompletenessFloor {
		base = CompletenessFloor
	}
	for _, ref := range d.ResolvedRefs {
		if ref.CrossFragment {
			score := base + CrossReferenceBonus
			if score > 1.0 {
				score = 1.0
			}
			return score
		}
	}
	return base
}
