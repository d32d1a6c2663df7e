// Package validation loads the input validation rules and checks the values a
// payer enters before an operation is submitted.
package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"
)

// DefaultCode holds the rules applied when a network code has no rule of its own
const DefaultCode = "default"

// Rule is a full-match pattern for one input type
type Rule struct {
	Type  string `json:"type"  validate:"required"`
	Regex string `json:"regex" validate:"required"`
}

// CodeRules are the rules of one network code
type CodeRules struct {
	Code  string `json:"code"  validate:"required"`
	Items []Rule `json:"items" validate:"required,dive"`
}

// Validator checks input values against the loaded rules
type Validator struct {
	rules map[string]map[string]*regexp.Regexp
}

// Load reads a validation rules resource from path
func Load(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading validation resource [%s]: [%w]", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a validation rules resource
func Parse(data []byte) (*Validator, error) {
	var all []CodeRules
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("error decoding validation resource: [%w]", err)
	}

	v := validator.New()
	val := &Validator{rules: map[string]map[string]*regexp.Regexp{}}

	for _, cr := range all {
		if err := v.Struct(cr); err != nil {
			return nil, fmt.Errorf("invalid validation rules: [%w]", err)
		}
		byType := val.rules[cr.Code]
		if byType == nil {
			byType = map[string]*regexp.Regexp{}
			val.rules[cr.Code] = byType
		}
		for _, rule := range cr.Items {
			r, err := regexp.Compile("^(?:" + rule.Regex + ")$")
			if err != nil {
				return nil, fmt.Errorf("invalid regex for [%s/%s]: [%w]", cr.Code, rule.Type, err)
			}
			byType[rule.Type] = r
		}
	}

	log.Trace("validation rules loaded", log.Data{"codes": len(val.rules)})
	return val, nil
}

// Validate reports whether value is acceptable for the input type of the network code.
// Types without a rule accept any value.
func (v *Validator) Validate(code, inputType, value string) bool {
	r := v.lookup(code, inputType)
	if r == nil {
		return true
	}
	return r.MatchString(value)
}

func (v *Validator) lookup(code, inputType string) *regexp.Regexp {
	if v == nil {
		return nil
	}
	if r, ok := v.rules[code][inputType]; ok {
		return r
	}
	return v.rules[DefaultCode][inputType]
}
