// Package schema holds the ARIA knowledge the analyzers consult: the widget
// pattern catalog (what a complete implementation of each interactive role
// requires) and the reference-attribute vocabulary. The catalog is data,
// compiled in from roles.yaml, so analyzer logic stays generic.
package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed roles.yaml
var rolesYAML []byte

// KeyGroup names a set of key identifiers that satisfy one keyboard
// requirement; any key of the group counts.
type KeyGroup struct {
	Name string   `yaml:"name"`
	Keys []string `yaml:"keys"`
}

// RolePattern describes what a complete implementation of one interactive
// ARIA role requires, across the four validation facets.
type RolePattern struct {
	Role            string     `yaml:"role"`
	RequiredAttrs   []string   `yaml:"required_attrs"`
	RequiredStates  []string   `yaml:"required_states"`
	RequiredContext []string   `yaml:"required_context"`
	RequiredOwned   [][]string `yaml:"required_owned"`
	RelationAttrs   []string   `yaml:"relation_attrs"`
	KeyGroups       []string   `yaml:"key_groups"`
	NameRequired    bool       `yaml:"name_required"`
	Interactive     bool       `yaml:"interactive"`
}

// RoleRegistry is the read-only interface to the widget pattern catalog.
type RoleRegistry interface {
	// Pattern returns the pattern for a role, when the catalog has one.
	Pattern(role string) (*RolePattern, bool)

	// AllRoles returns the cataloged role names, sorted.
	AllRoles() []string

	// IsInteractive reports whether the role marks its element interactive.
	IsInteractive(role string) bool

	// KeyGroup returns a keyboard requirement group by name.
	KeyGroup(name string) (*KeyGroup, bool)
}

type catalog struct {
	KeyGroups []KeyGroup    `yaml:"key_groups"`
	Roles     []RolePattern `yaml:"roles"`
}

type defaultRegistry struct {
	patterns  map[string]*RolePattern
	keyGroups map[string]*KeyGroup
	roles     []string
}

var registry = mustLoadRegistry()

// DefaultRegistry returns the registry built from the embedded catalog.
func DefaultRegistry() RoleRegistry {
	return registry
}

func mustLoadRegistry() *defaultRegistry {
	var cat catalog
	if err := yaml.Unmarshal(rolesYAML, &cat); err != nil {
		panic(fmt.Sprintf("schema: embedded roles.yaml is invalid: %v", err))
	}
	reg := &defaultRegistry{
		patterns:  make(map[string]*RolePattern, len(cat.Roles)),
		keyGroups: make(map[string]*KeyGroup, len(cat.KeyGroups)),
	}
	for i := range cat.KeyGroups {
		group := &cat.KeyGroups[i]
		reg.keyGroups[group.Name] = group
	}
	for i := range cat.Roles {
		pattern := &cat.Roles[i]
		for _, name := range pattern.KeyGroups {
			if _, ok := reg.keyGroups[name]; !ok {
				panic(fmt.Sprintf("schema: role %q references unknown key group %q", pattern.Role, name))
			}
		}
		reg.patterns[pattern.Role] = pattern
		reg.roles = append(reg.roles, pattern.Role)
	}
	sort.Strings(reg.roles)
	return reg
}

func (r *defaultRegistry) Pattern(role string) (*RolePattern, bool) {
	pattern, ok := r.patterns[strings.ToLower(role)]
	return pattern, ok
}

func (r *defaultRegistry) AllRoles() []string {
	out := make([]string, len(r.roles))
	copy(out, r.roles)
	return out
}

func (r *defaultRegistry) IsInteractive(role string) bool {
	pattern, ok := r.patterns[strings.ToLower(role)]
	return ok && pattern.Interactive
}

func (r *defaultRegistry) KeyGroup(name string) (*KeyGroup, bool) {
	group, ok := r.keyGroups[name]
	return group, ok
}

// ReferenceAttributes are the ARIA attributes whose values are id references
// into the document, resolved across all fragments by the resolution engine.
var ReferenceAttributes = []string{
	"aria-labelledby",
	"aria-describedby",
	"aria-controls",
	"aria-owns",
	"aria-activedescendant",
}

// IsReferenceAttr reports whether the attribute holds id references.
func IsReferenceAttr(name string) bool {
	for _, ref := range ReferenceAttributes {
		if ref == name {
			return true
		}
	}
	return false
}
