package model_test

import (
	"testing"

	"axc-go/packages/engine/model"
)

func TestIsNativelyFocusable(t *testing.T) {
	cases := []struct {
		name  string
		tag   string
		attrs map[string]string
		want  bool
	}{
		{"button", "button", nil, true},
		{"disabled button", "button", map[string]string{"disabled": ""}, false},
		{"anchor with href", "a", map[string]string{"href": "/home"}, true},
		{"anchor without href", "a", nil, false},
		{"hidden input", "input", map[string]string{"type": "hidden"}, false},
		{"text input", "input", map[string]string{"type": "text"}, true},
		{"video with controls", "video", map[string]string{"controls": ""}, true},
		{"video without controls", "video", nil, false},
		{"contenteditable div", "div", map[string]string{"contenteditable": ""}, true},
		{"contenteditable false", "div", map[string]string{"contenteditable": "false"}, false},
		{"plain div", "div", nil, false},
	}
	for _, tc := range cases {
		t.Run("should report "+tc.name, func(t *testing.T) {
			if got := model.IsNativelyFocusable(tc.tag, tc.attrs); got != tc.want {
				t.Errorf("IsNativelyFocusable(%q, %v) = %v, want %v", tc.tag, tc.attrs, got, tc.want)
			}
		})
	}
}

func TestTabIndex(t *testing.T) {
	t.Run("should parse a declared tabindex", func(t *testing.T) {
		n, ok := model.TabIndex(map[string]string{"tabindex": " -1 "})
		if !ok || n != -1 {
			t.Errorf("expected (-1, true), got (%d, %v)", n, ok)
		}
	})

	t.Run("should reject a malformed tabindex", func(t *testing.T) {
		if _, ok := model.TabIndex(map[string]string{"tabindex": "first"}); ok {
			t.Error("expected malformed tabindex to be ignored")
		}
	})

	t.Run("should report absence", func(t *testing.T) {
		if _, ok := model.TabIndex(nil); ok {
			t.Error("expected no tabindex")
		}
	})
}

func TestImplicitRole(t *testing.T) {
	cases := []struct {
		name  string
		tag   string
		attrs map[string]string
		want  string
	}{
		{"button tag", "button", nil, "button"},
		{"anchor with href", "a", map[string]string{"href": "/x"}, "link"},
		{"anchor without href", "a", nil, ""},
		{"checkbox input", "input", map[string]string{"type": "checkbox"}, "checkbox"},
		{"typeless input", "input", nil, "textbox"},
		{"range input", "input", map[string]string{"type": "range"}, "slider"},
		{"heading", "h2", nil, "heading"},
		{"list item", "li", nil, "listitem"},
		{"plain div", "div", nil, ""},
	}
	for _, tc := range cases {
		t.Run("should derive role for "+tc.name, func(t *testing.T) {
			if got := model.ImplicitRole(tc.tag, tc.attrs); got != tc.want {
				t.Errorf("ImplicitRole(%q, %v) = %q, want %q", tc.tag, tc.attrs, got, tc.want)
			}
		})
	}
}

func TestTagTables(t *testing.T) {
	t.Run("should mark void tags", func(t *testing.T) {
		if !model.IsVoidTag("IMG") || model.IsVoidTag("div") {
			t.Error("void tag table disagrees")
		}
	})

	t.Run("should mark natively interactive tags", func(t *testing.T) {
		if !model.IsNativelyInteractive("Button") || model.IsNativelyInteractive("span") {
			t.Error("interactive tag table disagrees")
		}
	})
}
