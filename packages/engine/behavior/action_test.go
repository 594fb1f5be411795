package behavior_test

import (
	"testing"

	"axc-go/packages/engine/behavior"
)

func TestElementRef(t *testing.T) {
	t.Run("should prefer the most specific form in String", func(t *testing.T) {
		cases := []struct {
			ref  behavior.ElementRef
			want string
		}{
			{behavior.ElementRef{LiteralID: "save", Selector: ".btn"}, "#save"},
			{behavior.ElementRef{Selector: ".btn"}, ".btn"},
			{behavior.ElementRef{BindingName: "submitBtn"}, "submitBtn"},
			{behavior.ElementRef{}, "<empty>"},
		}
		for _, tc := range cases {
			if got := tc.ref.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		}
	})

	t.Run("should key equal references identically", func(t *testing.T) {
		a := behavior.ElementRef{Selector: "#save"}
		b := behavior.ElementRef{Selector: "#save"}
		c := behavior.ElementRef{LiteralID: "save"}
		if a.Key() != b.Key() {
			t.Error("expected equal keys for equal references")
		}
		if a.Key() == c.Key() {
			t.Error("expected different keys for selector vs literal id forms")
		}
	})

	t.Run("should report an empty reference", func(t *testing.T) {
		if !(behavior.ElementRef{}).IsZero() {
			t.Error("expected zero value to be zero")
		}
		if (behavior.ElementRef{BindingName: "x"}).IsZero() {
			t.Error("expected non-empty reference not to be zero")
		}
	})
}

func TestEventClassification(t *testing.T) {
	t.Run("should classify pointer activation events", func(t *testing.T) {
		for _, event := range []string{"click", "Click", "pointerdown", "touchend"} {
			if !behavior.IsClickActivation(event) {
				t.Errorf("expected %q to be a click activation", event)
			}
		}
		if behavior.IsClickActivation("keydown") || behavior.IsClickActivation("focus") {
			t.Error("non-pointer event classified as click activation")
		}
	})

	t.Run("should classify keyboard events", func(t *testing.T) {
		for _, event := range []string{"keydown", "keyup", "KeyPress"} {
			if !behavior.IsKeyboardEvent(event) {
				t.Errorf("expected %q to be a keyboard event", event)
			}
		}
		if behavior.IsKeyboardEvent("click") {
			t.Error("click classified as keyboard event")
		}
	})
}

func TestEventHandlerAction(t *testing.T) {
	target := behavior.ElementRef{LiteralID: "t1"}

	t.Run("should lowercase the event name", func(t *testing.T) {
		action := behavior.NewEventHandlerAction(target, "KeyDown", behavior.TimingImmediate, nil)
		if action.Event != "keydown" {
			t.Errorf("expected 'keydown', got %q", action.Event)
		}
		if action.Kind() != behavior.ActionEventHandler {
			t.Errorf("unexpected kind %v", action.Kind())
		}
	})

	t.Run("should match parser-recorded key names case-insensitively", func(t *testing.T) {
		action := behavior.NewEventHandlerAction(target, "keydown", behavior.TimingImmediate, nil)
		action.KeyNames = []string{"arrowright"}
		if !action.ReferencesKey("ArrowRight") {
			t.Error("expected recorded key to match")
		}
		if action.ReferencesKey("ArrowLeft") {
			t.Error("unexpected match for an unrecorded key")
		}
	})

	t.Run("should scan the handler body on word boundaries", func(t *testing.T) {
		action := behavior.NewEventHandlerAction(target, "keydown", behavior.TimingImmediate, nil)
		action.HandlerBody = `if (e.key === "ArrowRight") { next(); }`
		if !action.ReferencesKey("ArrowRight") {
			t.Error("expected body scan to find ArrowRight")
		}
		if action.ReferencesKey("Arrow") {
			t.Error("substring of an identifier must not match")
		}
	})

	t.Run("should match the space key via its named forms", func(t *testing.T) {
		action := behavior.NewEventHandlerAction(target, "keydown", behavior.TimingImmediate, nil)
		action.HandlerBody = `if (e.key === "Spacebar") toggle();`
		if !action.ReferencesKey(" ") {
			t.Error("expected the space key to match the Spacebar form")
		}
	})
}

func TestActionVariants(t *testing.T) {
	target := behavior.ElementRef{Selector: ".menu"}

	t.Run("should carry variant kinds and fields", func(t *testing.T) {
		focus := behavior.NewFocusChangeAction(target, true, behavior.TimingDelayed, nil)
		if focus.Kind() != behavior.ActionFocusChange || !focus.Gains {
			t.Error("focus change action fields wrong")
		}
		if focus.Timing() != behavior.TimingDelayed {
			t.Errorf("unexpected timing %v", focus.Timing())
		}

		mutation := behavior.NewStateMutationAction(target, "ARIA-Expanded", "true", behavior.TimingImmediate, nil)
		if mutation.Kind() != behavior.ActionStateMutation || mutation.Attribute != "aria-expanded" {
			t.Errorf("state mutation fields wrong: %+v", mutation)
		}

		nav := behavior.NewNavigationEffectAction(target, "/next", behavior.TimingDeferred, nil)
		if nav.Kind() != behavior.ActionNavigationEffect || nav.TargetURL != "/next" {
			t.Errorf("navigation fields wrong: %+v", nav)
		}
	})

	t.Run("should name kinds and timings", func(t *testing.T) {
		if behavior.ActionEventHandler.String() != "event-handler" {
			t.Errorf("unexpected kind name %q", behavior.ActionEventHandler.String())
		}
		if behavior.TimingConditional.String() != "conditional" {
			t.Errorf("unexpected timing name %q", behavior.TimingConditional.String())
		}
	})

	t.Run("should always return a usable meta map", func(t *testing.T) {
		action := behavior.NewEventHandlerAction(target, "click", behavior.TimingImmediate, nil)
		action.Meta()["framework"] = "plain"
		if action.Meta()["framework"] != "plain" {
			t.Error("meta map not retained")
		}
	})
}
