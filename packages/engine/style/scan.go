package style

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// ScanDeclarations tokenizes a CSS declaration block ("display: none;
// opacity: 0.5") into a property map plus the declaration order of the
// property names. Later duplicates of a property overwrite earlier ones, as
// in a real declaration block; the name keeps its first position in the
// order. Malformed pieces are skipped, never fatal.
func ScanDeclarations(cssText string) (map[string]string, []string) {
	props := map[string]string{}
	var order []string

	s := scanner.New(cssText)
	var name string
	var value strings.Builder
	inValue := false

	flush := func() {
		if name == "" {
			value.Reset()
			inValue = false
			return
		}
		key := strings.ToLower(strings.TrimSpace(name))
		val := strings.TrimSpace(value.String())
		if key != "" && val != "" {
			if _, seen := props[key]; !seen {
				order = append(order, key)
			}
			props[key] = val
		}
		name = ""
		value.Reset()
		inValue = false
	}

	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}
		switch tok.Type {
		case scanner.TokenComment:
			continue
		case scanner.TokenChar:
			switch tok.Value {
			case ":":
				if !inValue {
					inValue = true
					continue
				}
			case ";", "}":
				flush()
				continue
			case "{":
				// Declaration blocks only; a stray brace resets state.
				name = ""
				value.Reset()
				inValue = false
				continue
			}
			if inValue {
				value.WriteString(tok.Value)
			}
		case scanner.TokenS:
			if inValue {
				value.WriteString(" ")
			}
		default:
			if inValue {
				value.WriteString(tok.Value)
			} else {
				name += tok.Value
			}
		}
	}
	flush()

	return props, order
}
