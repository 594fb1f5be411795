package selector

import (
	"axc-go/packages/engine/model"
)

// Matcher indexes compound selectors for bulk matching: register any number
// of selectors with an attached context value, then match element targets
// against all of them at once. The index nests partial matchers per selector
// part, so a compound selector only fires when every part matched.
type Matcher[T any] struct {
	elementMap          map[string][]*selectorContext[T]
	elementPartialMap   map[string]*Matcher[T]
	classMap            map[string][]*selectorContext[T]
	classPartialMap     map[string]*Matcher[T]
	attrValueMap        map[string]map[string][]*selectorContext[T]
	attrValuePartialMap map[string]map[string]*Matcher[T]
	listContexts        []*listContext
}

// NewMatcher creates a new Matcher.
func NewMatcher[T any]() *Matcher[T] {
	return &Matcher[T]{
		elementMap:          make(map[string][]*selectorContext[T]),
		elementPartialMap:   make(map[string]*Matcher[T]),
		classMap:            make(map[string][]*selectorContext[T]),
		classPartialMap:     make(map[string]*Matcher[T]),
		attrValueMap:        make(map[string]map[string][]*selectorContext[T]),
		attrValuePartialMap: make(map[string]map[string]*Matcher[T]),
	}
}

// MatchCallback receives each matched selector with its registered context.
type MatchCallback[T any] func(selector *Selector, context T)

// AddSelectables registers a selector list with a context value. A list
// fires its callback at most once per Match call, however many of its
// members match.
func (m *Matcher[T]) AddSelectables(selectors []*Selector, context T) {
	var list *listContext
	if len(selectors) > 1 {
		list = &listContext{selectors: selectors}
		m.listContexts = append(m.listContexts, list)
	}
	for _, sel := range selectors {
		m.addSelectable(sel, context, list)
	}
}

// attrPairs flattens id requirements and attribute tests into one ordered
// pair list; ids become tests on the id attribute.
func attrPairs(sel *Selector) []Attr {
	pairs := make([]Attr, 0, len(sel.IDs)+len(sel.Attrs))
	for _, id := range sel.IDs {
		pairs = append(pairs, Attr{Name: "id", Value: id})
	}
	return append(pairs, sel.Attrs...)
}

func (m *Matcher[T]) addSelectable(sel *Selector, context T, list *listContext) {
	matcher := m
	pairs := attrPairs(sel)
	selectable := &selectorContext[T]{
		selector:     sel,
		context:      context,
		list:         list,
		notSelectors: sel.NotSelectors,
	}

	if sel.Tag != "" {
		isTerminal := len(pairs) == 0 && len(sel.ClassNames) == 0
		if isTerminal {
			addTerminal(m.elementMap, sel.Tag, selectable)
		} else {
			matcher = addPartial(m.elementPartialMap, sel.Tag)
		}
	}

	for i, className := range sel.ClassNames {
		isTerminal := len(pairs) == 0 && i == len(sel.ClassNames)-1
		if isTerminal {
			addTerminal(matcher.classMap, className, selectable)
		} else {
			matcher = addPartial(matcher.classPartialMap, className)
		}
	}

	for i, pair := range pairs {
		isTerminal := i == len(pairs)-1
		if isTerminal {
			terminalValuesMap, ok := matcher.attrValueMap[pair.Name]
			if !ok {
				terminalValuesMap = make(map[string][]*selectorContext[T])
				matcher.attrValueMap[pair.Name] = terminalValuesMap
			}
			addTerminal(terminalValuesMap, pair.Value, selectable)
		} else {
			partialValuesMap, ok := matcher.attrValuePartialMap[pair.Name]
			if !ok {
				partialValuesMap = make(map[string]*Matcher[T])
				matcher.attrValuePartialMap[pair.Name] = partialValuesMap
			}
			matcher = addPartial(partialValuesMap, pair.Value)
		}
	}
}

func addTerminal[T any](m map[string][]*selectorContext[T], name string, selectable *selectorContext[T]) {
	m[name] = append(m[name], selectable)
}

func addPartial[T any](m map[string]*Matcher[T], name string) *Matcher[T] {
	matcher, ok := m[name]
	if !ok {
		matcher = NewMatcher[T]()
		m[name] = matcher
	}
	return matcher
}

// Match tests a target (built from an element, see TargetSelector) against
// every registered selector and reports whether anything matched.
// Pseudo-classes on registered selectors are not match conditions; a rule
// for ".btn:focus" applies to any ".btn" element.
func (m *Matcher[T]) Match(target *Selector, callback MatchCallback[T]) bool {
	result := false
	pairs := attrPairs(target)

	for _, list := range m.listContexts {
		list.alreadyMatched = false
	}

	result = m.matchTerminal(m.elementMap, target.Tag, target, callback) || result
	result = m.matchPartial(m.elementPartialMap, target.Tag, target, callback) || result

	for _, className := range target.ClassNames {
		result = m.matchTerminal(m.classMap, className, target, callback) || result
		result = m.matchPartial(m.classPartialMap, className, target, callback) || result
	}

	for _, pair := range pairs {
		if terminalValuesMap, ok := m.attrValueMap[pair.Name]; ok {
			if pair.Value != "" {
				// Presence-form selectors are registered under the empty value.
				result = m.matchTerminal(terminalValuesMap, "", target, callback) || result
			}
			result = m.matchTerminal(terminalValuesMap, pair.Value, target, callback) || result
		}
		if partialValuesMap, ok := m.attrValuePartialMap[pair.Name]; ok {
			if pair.Value != "" {
				result = m.matchPartial(partialValuesMap, "", target, callback) || result
			}
			result = m.matchPartial(partialValuesMap, pair.Value, target, callback) || result
		}
	}

	return result
}

func (m *Matcher[T]) matchTerminal(terminal map[string][]*selectorContext[T], name string, target *Selector, callback MatchCallback[T]) bool {
	selectables := terminal[name]
	if star, ok := terminal["*"]; ok {
		selectables = append(selectables, star...)
	}
	if len(selectables) == 0 {
		return false
	}
	result := false
	for _, selectable := range selectables {
		if selectable.finalize(target, callback) {
			result = true
		}
	}
	return result
}

func (m *Matcher[T]) matchPartial(partial map[string]*Matcher[T], name string, target *Selector, callback MatchCallback[T]) bool {
	nested, ok := partial[name]
	if !ok {
		return false
	}
	return nested.Match(target, callback)
}

// listContext tracks a comma-separated selector list so it fires only once.
type listContext struct {
	alreadyMatched bool
	selectors      []*Selector
}

type selectorContext[T any] struct {
	selector     *Selector
	context      T
	list         *listContext
	notSelectors []*Selector
}

func (sc *selectorContext[T]) finalize(target *Selector, callback MatchCallback[T]) bool {
	result := true
	if len(sc.notSelectors) > 0 && (sc.list == nil || !sc.list.alreadyMatched) {
		notMatcher := NewMatcher[struct{}]()
		notMatcher.AddSelectables(sc.notSelectors, struct{}{})
		result = !notMatcher.Match(target, nil)
	}
	if result && callback != nil && (sc.list == nil || !sc.list.alreadyMatched) {
		if sc.list != nil {
			sc.list.alreadyMatched = true
		}
		callback(sc.selector, sc.context)
	}
	return result
}

// Matches reports whether a single selector matches a target.
func Matches(sel *Selector, target *Selector) bool {
	m := NewMatcher[struct{}]()
	m.AddSelectables([]*Selector{sel}, struct{}{})
	return m.Match(target, nil)
}

// TargetSelector builds the match target for an element: its tag, id,
// classes and every attribute, so both presence and value forms of
// attribute selectors can match, including role and aria-* attributes.
func TargetSelector(el *model.Element) *Selector {
	target := NewSelector()
	target.Tag = el.Name
	if id := el.ID(); id != "" {
		target.AddID(id)
	}
	for _, class := range el.Classes() {
		target.AddClassName(class)
	}
	for _, attr := range el.Attrs {
		target.AddAttribute(attr.Name, attr.Value)
	}
	return target
}

// CandidateSelectors derives the per-element selector set the resolution
// engine indexes elements under: id, one per class token, tag, role and one
// per aria-* attribute in existence form.
func CandidateSelectors(el *model.Element) []string {
	var out []string
	if id := el.ID(); id != "" {
		out = append(out, "#"+id)
	}
	for _, class := range el.Classes() {
		out = append(out, "."+class)
	}
	out = append(out, el.Name)
	if role := el.Role(); role != "" {
		out = append(out, "[role="+role+"]")
	}
	for _, attr := range el.AriaAttrs() {
		out = append(out, "["+attr.Name+"]")
	}
	return out
}
