// Package selector implements the selector grammar the resolution engine
// resolves behavior and style references with: compound selectors made of a
// tag, ids, classes, attribute tests, pseudo-classes and :not(), plus
// comma-separated lists. Combinators are not part of the grammar; references
// using them are treated as unresolvable by callers.
package selector

import (
	"fmt"
	"regexp"
	"strings"
)

// selectorRegexp group indices.
type selectorRegexpGroup int

const (
	groupAll       selectorRegexpGroup = iota
	groupNot                           // 1: ":not("
	groupTag                           // 2: tag with prefix
	groupPrefix                        // 3: prefix (. or #)
	groupAttr                          // 4: attribute name
	groupAttrValDQ                     // 5: attribute value (double quoted)
	groupAttrValSQ                     // 6: attribute value (single quoted)
	groupAttrValUQ                     // 7: attribute value (unquoted)
	groupNotEnd                        // 8: ")"
	groupPseudo                        // 9: pseudo-class / pseudo-element
	groupSeparator                     // 10: ","
)

var selectorRegexp = regexp.MustCompile(
	`(\:not\()|` + // 1: ":not("
		`(([\.\#]?)[-\w]+)|` + // 2: "tag"; 3: "."/"#"
		// 4: attribute name; 5: double quoted value; 6: single quoted value; 7: unquoted value
		`(?:\[([-\w]+)(?:=(?:"([^"]*)"|'([^']*)'|([^\]\s]+)))?\])|` +
		`(\))|` + // 8: ")"
		`(\:\:?[-\w]+)|` + // 9: ":focus", "::before"
		`(\s*,\s*)`, // 10: ","
)

// Attr is one attribute test of a selector: presence when Value is empty,
// exact value otherwise.
type Attr struct {
	Name  string
	Value string
}

// Selector represents one compound selector.
type Selector struct {
	Tag           string // "" when absent, "*" for the universal selector
	IDs           []string
	ClassNames    []string
	Attrs         []Attr
	PseudoClasses []string // without the leading ":", ordering preserved
	NotSelectors  []*Selector
}

// NewSelector creates an empty Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// ParseSelectorList parses a comma-separated selector list.
func ParseSelectorList(selector string) ([]*Selector, error) {
	if err := checkCombinators(selector); err != nil {
		return nil, err
	}

	results := []*Selector{}
	addResult := func(res []*Selector, sel *Selector) []*Selector {
		if len(sel.NotSelectors) > 0 && sel.Tag == "" &&
			len(sel.IDs) == 0 && len(sel.ClassNames) == 0 && len(sel.Attrs) == 0 {
			sel.Tag = "*"
		}
		return append(res, sel)
	}

	current := NewSelector()
	top := current
	inNot := false

	for _, match := range selectorRegexp.FindAllStringSubmatch(selector, -1) {
		if match[groupNot] != "" {
			if inNot {
				return nil, fmt.Errorf("nesting :not in a selector is not allowed")
			}
			inNot = true
			current = NewSelector()
			top.NotSelectors = append(top.NotSelectors, current)
		}

		if tag := match[groupTag]; tag != "" {
			switch match[groupPrefix] {
			case "#":
				current.AddID(tag[1:])
			case ".":
				current.AddClassName(tag[1:])
			default:
				if current.Tag != "" {
					return nil, fmt.Errorf("selector %q: more than one tag in a compound selector", selector)
				}
				current.Tag = tag
			}
		}

		if name := match[groupAttr]; name != "" {
			value := match[groupAttrValDQ]
			if value == "" {
				value = match[groupAttrValSQ]
			}
			if value == "" {
				value = match[groupAttrValUQ]
			}
			current.AddAttribute(name, value)
		}

		if match[groupNotEnd] != "" {
			inNot = false
			current = top
		}

		if pseudo := match[groupPseudo]; pseudo != "" {
			current.PseudoClasses = append(current.PseudoClasses, strings.TrimLeft(pseudo, ":"))
		}

		if match[groupSeparator] != "" {
			if inNot {
				return nil, fmt.Errorf("multiple selectors in :not are not supported")
			}
			results = addResult(results, top)
			top = NewSelector()
			current = top
		}
	}

	results = addResult(results, top)
	if len(results) == 1 && results[0].isEmpty() {
		return nil, fmt.Errorf("empty selector %q", selector)
	}
	return results, nil
}

// ParseSelector parses a single compound selector, rejecting lists.
func ParseSelector(selector string) (*Selector, error) {
	list, err := ParseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, fmt.Errorf("expected a single selector, got a list: %q", selector)
	}
	return list[0], nil
}

// checkCombinators rejects descendant/child/sibling combinators, which the
// matching engine does not model.
func checkCombinators(selector string) error {
	depth := 0
	lastSignificant := byte(',')
	for i := 0; i < len(selector); i++ {
		ch := selector[i]
		switch ch {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '>', '+', '~':
			if depth == 0 {
				return fmt.Errorf("selector %q: combinators are not supported", selector)
			}
		case ' ', '\t', '\n':
			if depth == 0 && lastSignificant != ',' {
				rest := strings.TrimLeft(selector[i:], " \t\n")
				if rest != "" && rest[0] != ',' {
					return fmt.Errorf("selector %q: descendant combinators are not supported", selector)
				}
			}
			continue
		}
		if ch != ' ' && ch != '\t' && ch != '\n' {
			lastSignificant = ch
		}
	}
	return nil
}

// AddID adds an id requirement.
func (s *Selector) AddID(id string) {
	s.IDs = append(s.IDs, id)
}

// AddClassName adds a class requirement. Class matching is case insensitive.
func (s *Selector) AddClassName(name string) {
	s.ClassNames = append(s.ClassNames, strings.ToLower(name))
}

// AddAttribute adds an attribute test. An empty value tests for presence.
func (s *Selector) AddAttribute(name, value string) {
	s.Attrs = append(s.Attrs, Attr{Name: strings.ToLower(name), Value: value})
}

func (s *Selector) isEmpty() bool {
	return s.Tag == "" && len(s.IDs) == 0 && len(s.ClassNames) == 0 &&
		len(s.Attrs) == 0 && len(s.PseudoClasses) == 0 && len(s.NotSelectors) == 0
}

// HasID reports whether the selector requires an id.
func (s *Selector) HasID() bool {
	return len(s.IDs) > 0
}

// String returns the canonical text of the selector.
func (s *Selector) String() string {
	var sb strings.Builder
	sb.WriteString(s.Tag)
	for _, id := range s.IDs {
		sb.WriteString("#")
		sb.WriteString(id)
	}
	for _, class := range s.ClassNames {
		sb.WriteString(".")
		sb.WriteString(class)
	}
	for _, attr := range s.Attrs {
		if attr.Value != "" {
			fmt.Fprintf(&sb, "[%s=%s]", attr.Name, attr.Value)
		} else {
			fmt.Fprintf(&sb, "[%s]", attr.Name)
		}
	}
	for _, pseudo := range s.PseudoClasses {
		sb.WriteString(":")
		sb.WriteString(pseudo)
	}
	for _, not := range s.NotSelectors {
		fmt.Fprintf(&sb, ":not(%s)", not.String())
	}
	return sb.String()
}

// Specificity is the four-part cascade precedence vector, ordered most to
// least significant: inline, id, class/attribute/pseudo-class, type.
type Specificity [4]int

// InlineSpecificity is the specificity of a style attribute declaration,
// which outranks any stylesheet selector.
var InlineSpecificity = Specificity{1, 0, 0, 0}

// Compare returns -1, 0 or 1 ordering s against o lexicographically.
func (s Specificity) Compare(o Specificity) int {
	for i := range s {
		if s[i] != o[i] {
			if s[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String returns the vector as "inline,id,class,type".
func (s Specificity) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", s[0], s[1], s[2], s[3])
}

// Specificity computes the selector's cascade precedence. :not() itself does
// not count, but its most specific argument does.
func (s *Selector) Specificity() Specificity {
	var sp Specificity
	sp[1] = len(s.IDs)
	sp[2] = len(s.ClassNames) + len(s.Attrs) + len(s.PseudoClasses)
	if s.Tag != "" && s.Tag != "*" {
		sp[3] = 1
	}
	var best Specificity
	for _, not := range s.NotSelectors {
		if inner := not.Specificity(); inner.Compare(best) > 0 {
			best = inner
		}
	}
	for i := range sp {
		sp[i] += best[i]
	}
	return sp
}
