// Package behavior defines the behavior model: a flat collection of
// interaction records produced by external behavior parsers (event bindings,
// focus changes, attribute mutations, navigation effects). Each action
// carries a symbolic reference to the element(s) it targets; the resolution
// engine resolves those references, and an action whose reference matches
// nothing stays an orphan rather than an error.
package behavior

import (
	"strings"

	"axc-go/packages/engine/util"
)

// ActionKind discriminates the action variants.
type ActionKind int

const (
	ActionEventHandler ActionKind = iota
	ActionFocusChange
	ActionStateMutation
	ActionNavigationEffect
)

// String returns the kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionEventHandler:
		return "event-handler"
	case ActionFocusChange:
		return "focus-change"
	case ActionStateMutation:
		return "state-mutation"
	case ActionNavigationEffect:
		return "navigation-effect"
	}
	return "unknown"
}

// Timing classifies when an action's effect takes place relative to its
// trigger.
type Timing int

const (
	TimingImmediate Timing = iota
	TimingDelayed
	TimingConditional
	TimingDeferred
)

// String returns the timing name.
func (t Timing) String() string {
	switch t {
	case TimingImmediate:
		return "immediate"
	case TimingDelayed:
		return "delayed"
	case TimingConditional:
		return "conditional"
	case TimingDeferred:
		return "deferred"
	}
	return "unknown"
}

// ElementRef is a symbolic, unresolved reference to the element(s) an action
// targets. At least one of the fields is set by the producing parser.
type ElementRef struct {
	// Selector is a CSS-style selector string, e.g. "#submit" or ".menu-item".
	Selector string
	// BindingName is a source-level binding identifier, e.g. a template ref
	// or component property name, when the source had no selector.
	BindingName string
	// LiteralID is a bare element id when the source referenced one directly,
	// e.g. getElementById("submit").
	LiteralID string
}

// Key returns a stable identity for grouping actions that target the same
// symbolic reference.
func (r ElementRef) Key() string {
	return r.Selector + "\x00" + r.BindingName + "\x00" + r.LiteralID
}

// IsZero reports whether the reference is empty.
func (r ElementRef) IsZero() bool {
	return r.Selector == "" && r.BindingName == "" && r.LiteralID == ""
}

// String returns the most specific non-empty form of the reference.
func (r ElementRef) String() string {
	switch {
	case r.LiteralID != "":
		return "#" + r.LiteralID
	case r.Selector != "":
		return r.Selector
	case r.BindingName != "":
		return r.BindingName
	}
	return "<empty>"
}

// Action is one unit of the behavior model. Implementations are the four
// variants below; the set is closed.
type Action interface {
	Kind() ActionKind
	Target() ElementRef
	Timing() Timing
	// Meta is an open metadata map for algorithm-specific fields, e.g. the
	// originating UI framework.
	Meta() map[string]string
	SourceSpan() *util.ParseSourceSpan
}

type baseAction struct {
	target     ElementRef
	timing     Timing
	meta       map[string]string
	sourceSpan *util.ParseSourceSpan
}

func (b *baseAction) Target() ElementRef { return b.target }

func (b *baseAction) Timing() Timing { return b.timing }

func (b *baseAction) Meta() map[string]string {
	if b.meta == nil {
		b.meta = map[string]string{}
	}
	return b.meta
}

func (b *baseAction) SourceSpan() *util.ParseSourceSpan { return b.sourceSpan }

// EventHandlerAction represents an event binding: an event name and the
// handler the source attaches for it.
type EventHandlerAction struct {
	baseAction
	// Event is the DOM event name, lowercase ("click", "keydown", ...).
	Event string
	// KeyNames are key identifiers the handler body was seen to reference,
	// recorded by the behavior parser for keyboard handlers.
	KeyNames []string
	// HandlerBody is the raw handler source, when available.
	HandlerBody string
}

// NewEventHandlerAction creates a new EventHandlerAction.
func NewEventHandlerAction(target ElementRef, event string, timing Timing, sourceSpan *util.ParseSourceSpan) *EventHandlerAction {
	return &EventHandlerAction{
		baseAction: baseAction{target: target, timing: timing, sourceSpan: sourceSpan},
		Event:      strings.ToLower(event),
	}
}

// Kind implements the Action interface.
func (a *EventHandlerAction) Kind() ActionKind { return ActionEventHandler }

// ReferencesKey reports whether the handler is known to react to the given
// key name, either from the parser-recorded key list or from a scan of the
// raw handler body.
func (a *EventHandlerAction) ReferencesKey(name string) bool {
	for _, k := range a.KeyNames {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	if a.HandlerBody != "" {
		return containsWord(a.HandlerBody, name)
	}
	return false
}

// FocusChangeAction represents a programmatic focus move, e.g. a call to
// focus() or blur() on the target.
type FocusChangeAction struct {
	baseAction
	// Gains reports whether the target gains focus (focus) rather than
	// losing it (blur).
	Gains bool
}

// NewFocusChangeAction creates a new FocusChangeAction.
func NewFocusChangeAction(target ElementRef, gains bool, timing Timing, sourceSpan *util.ParseSourceSpan) *FocusChangeAction {
	return &FocusChangeAction{
		baseAction: baseAction{target: target, timing: timing, sourceSpan: sourceSpan},
		Gains:      gains,
	}
}

// Kind implements the Action interface.
func (a *FocusChangeAction) Kind() ActionKind { return ActionFocusChange }

// StateMutationAction represents a runtime write of an attribute or
// ARIA state on the target.
type StateMutationAction struct {
	baseAction
	// Attribute is the attribute name being written, e.g. "aria-expanded".
	Attribute string
	// Value is the written value when statically known, or "".
	Value string
}

// NewStateMutationAction creates a new StateMutationAction.
func NewStateMutationAction(target ElementRef, attribute, value string, timing Timing, sourceSpan *util.ParseSourceSpan) *StateMutationAction {
	return &StateMutationAction{
		baseAction: baseAction{target: target, timing: timing, sourceSpan: sourceSpan},
		Attribute:  strings.ToLower(attribute),
		Value:      value,
	}
}

// Kind implements the Action interface.
func (a *StateMutationAction) Kind() ActionKind { return ActionStateMutation }

// NavigationEffectAction represents a navigation side effect, e.g. a
// location assignment or router call.
type NavigationEffectAction struct {
	baseAction
	// TargetURL is the navigation target when statically known.
	TargetURL string
}

// NewNavigationEffectAction creates a new NavigationEffectAction.
func NewNavigationEffectAction(target ElementRef, targetURL string, timing Timing, sourceSpan *util.ParseSourceSpan) *NavigationEffectAction {
	return &NavigationEffectAction{
		baseAction: baseAction{target: target, timing: timing, sourceSpan: sourceSpan},
		TargetURL:  targetURL,
	}
}

// Kind implements the Action interface.
func (a *NavigationEffectAction) Kind() ActionKind { return ActionNavigationEffect }

// Collection groups the actions parsed from one source file.
type Collection struct {
	SourceID string
	Actions  []Action
}

// NewCollection creates a new Collection.
func NewCollection(sourceID string, actions []Action) *Collection {
	return &Collection{SourceID: sourceID, Actions: actions}
}

var clickActivationEvents = map[string]bool{
	"click": true, "dblclick": true, "mousedown": true, "mouseup": true,
	"pointerdown": true, "pointerup": true, "touchstart": true, "touchend": true,
}

var keyboardEvents = map[string]bool{
	"keydown": true, "keyup": true, "keypress": true,
}

// IsClickActivation reports whether the event name is a pointer-driven
// activation event.
func IsClickActivation(event string) bool {
	return clickActivationEvents[strings.ToLower(event)]
}

// IsKeyboardEvent reports whether the event name is a keyboard event.
func IsKeyboardEvent(event string) bool {
	return keyboardEvents[strings.ToLower(event)]
}

// containsWord reports whether body contains name delimited by non-word
// characters, so "ArrowRight" does not match inside "ArrowRightish".
func containsWord(body, name string) bool {
	if name == " " {
		// The space key is matched via its named forms only.
		return containsWord(body, "Space") || containsWord(body, "Spacebar")
	}
	idx := 0
	for {
		i := strings.Index(body[idx:], name)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(name)
		beforeOK := start == 0 || !isWordByte(body[start-1])
		afterOK := end == len(body) || !isWordByte(body[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
