// Package groups loads the static rule set deciding which payment networks may
// be combined into a single card.
package groups

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"
)

// Item is one network code of a group with its optional smart selection pattern
type Item struct {
	Code  string `json:"code"  validate:"required"`
	Regex string `json:"regex"`
}

// Group is a set of network codes sharing one card. The first item's code identifies the group.
type Group struct {
	Items []Item `json:"items" validate:"required,min=1,dive"`

	patterns map[string]*regexp.Regexp
}

// ID returns the code of the first item
func (g *Group) ID() string {
	return g.Items[0].Code
}

// SmartSelectionPattern returns the compiled smart selection pattern for code, nil when there is none
func (g *Group) SmartSelectionPattern(code string) *regexp.Regexp {
	return g.patterns[code]
}

// Set maps network codes to the group they belong to
type Set struct {
	byCode map[string]*Group
}

// Lookup returns the group of code, nil when code is not grouped
func (s *Set) Lookup(code string) *Group {
	if s == nil {
		return nil
	}
	return s.byCode[code]
}

// Load reads a groups resource from path
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading groups resource [%s]: [%w]", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a groups resource. Patterns must match the whole input.
func Parse(data []byte) (*Set, error) {
	var groups []*Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("error decoding groups resource: [%w]", err)
	}

	v := validator.New()
	set := &Set{byCode: map[string]*Group{}}

	for _, g := range groups {
		if err := v.Struct(g); err != nil {
			return nil, fmt.Errorf("invalid group: [%w]", err)
		}
		g.patterns = map[string]*regexp.Regexp{}
		for _, item := range g.Items {
			if item.Regex != "" {
				r, err := regexp.Compile("^(?:" + item.Regex + ")$")
				if err != nil {
					return nil, fmt.Errorf("invalid smart selection regex for [%s]: [%w]", item.Code, err)
				}
				g.patterns[item.Code] = r
			}
			set.byCode[item.Code] = g
		}
	}

	log.Trace("payment groups loaded", log.Data{"groups": len(groups), "codes": len(set.byCode)})
	return set, nil
}

// NewSet builds a set from groups already in memory
func NewSet(groups ...[]Item) (*Set, error) {
	raw := make([]Group, 0, len(groups))
	for _, items := range groups {
		raw = append(raw, Group{Items: items})
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
