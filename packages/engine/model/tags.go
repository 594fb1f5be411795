package model

import (
	"strconv"
	"strings"
)

// Host-language element facts used when computing element semantics. The
// tables mirror the HTML spec; ARIA attributes layer on top of them in the
// resolution engine.

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoidTag reports whether the tag never has children.
func IsVoidTag(tag string) bool {
	return voidTags[strings.ToLower(tag)]
}

var nativelyInteractiveTags = map[string]bool{
	"a": true, "button": true, "input": true, "select": true,
	"textarea": true, "summary": true, "details": true,
}

// IsNativelyInteractive reports whether the tag is interactive by host
// language semantics, before any ARIA or script-attached behavior.
func IsNativelyInteractive(tag string) bool {
	return nativelyInteractiveTags[strings.ToLower(tag)]
}

// IsNativelyFocusable reports whether an element with the given tag and
// attributes participates in the tab order without an explicit tabindex.
func IsNativelyFocusable(tag string, attrs map[string]string) bool {
	switch strings.ToLower(tag) {
	case "button", "select", "textarea", "summary", "iframe":
		return !hasBoolAttr(attrs, "disabled")
	case "input":
		if strings.EqualFold(attrs["type"], "hidden") {
			return false
		}
		return !hasBoolAttr(attrs, "disabled")
	case "a", "area":
		_, ok := attrs["href"]
		return ok
	case "audio", "video":
		return hasBoolAttr(attrs, "controls")
	}
	if _, ok := attrs["contenteditable"]; ok {
		return !strings.EqualFold(attrs["contenteditable"], "false")
	}
	return false
}

// TabIndex parses the tabindex attribute. The second return value reports
// whether a valid tabindex is declared.
func TabIndex(attrs map[string]string) (int, bool) {
	raw, ok := attrs["tabindex"]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

var inputTypeRoles = map[string]string{
	"button": "button", "submit": "button", "reset": "button",
	"image": "button", "checkbox": "checkbox", "radio": "radio",
	"range": "slider", "number": "spinbutton", "search": "searchbox",
	"email": "textbox", "tel": "textbox", "text": "textbox", "url": "textbox",
}

var implicitTagRoles = map[string]string{
	"button": "button", "select": "listbox", "textarea": "textbox",
	"nav": "navigation", "main": "main", "header": "banner",
	"footer": "contentinfo", "aside": "complementary", "form": "form",
	"table": "table", "ul": "list", "ol": "list", "li": "listitem",
	"img": "img", "dialog": "dialog", "option": "option",
	"h1": "heading", "h2": "heading", "h3": "heading",
	"h4": "heading", "h5": "heading", "h6": "heading",
	"summary": "button", "progress": "progressbar", "hr": "separator",
}

// ImplicitRole returns the ARIA role implied by host language semantics for
// the given tag and attributes, or "" when none applies.
func ImplicitRole(tag string, attrs map[string]string) string {
	tag = strings.ToLower(tag)
	switch tag {
	case "a", "area":
		if _, ok := attrs["href"]; ok {
			return "link"
		}
		return ""
	case "input":
		typ := strings.ToLower(attrs["type"])
		if typ == "" {
			typ = "text"
		}
		return inputTypeRoles[typ]
	}
	return implicitTagRoles[tag]
}

func hasBoolAttr(attrs map[string]string, name string) bool {
	v, ok := attrs[name]
	if !ok {
		return false
	}
	return !strings.EqualFold(v, "false")
}
