// Package validation implements the declarative per-field rule sets applied
// to create and update payloads before they reach persistence.
//
// A Schema is an ordered list of fields, each carrying a list of rules. Every
// rule for every field is evaluated; failures accumulate into a flat message
// list that is returned to the caller verbatim.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind enumerates the supported rule variants.
type Kind int

const (
	NotEmpty Kind = iota
	IsString
	IsLength
	IsInt
	IsEmail
	IsIn
	IsAlphanumeric
	Custom
)

// Rule is a tagged variant: Kind selects the check, the remaining fields are
// its parameters. Message is returned verbatim on failure.
type Rule struct {
	Kind    Kind
	Min     int
	Max     int // 0 means no upper bound
	Allowed []string
	Check   func(value any) bool // Custom only
	Message string
}

// FieldRules binds one payload field to its rules.
type FieldRules struct {
	Field string
	Rules []Rule
}

// Schema is an ordered rule set for one entity operation.
type Schema []FieldRules

var validate = validator.New()

// Validate runs every rule of every field against the payload and returns all
// failure messages. A nil or empty result means the payload passed.
func (s Schema) Validate(payload map[string]any) []string {
	var errs []string
	for _, fr := range s {
		value, present := payload[fr.Field]
		for _, rule := range fr.Rules {
			if !rule.passes(value, present) {
				errs = append(errs, rule.Message)
			}
		}
	}
	return errs
}

func (r Rule) passes(value any, present bool) bool {
	switch r.Kind {
	case NotEmpty:
		return present && value != nil && stringify(value) != ""
	case IsString:
		if !present || value == nil {
			return false
		}
		_, ok := value.(string)
		return ok
	case IsLength:
		n := len(stringify(value))
		if n < r.Min {
			return false
		}
		return r.Max == 0 || n <= r.Max
	case IsInt:
		return isInteger(value)
	case IsEmail:
		return validate.Var(stringify(value), "email") == nil
	case IsIn:
		s := stringify(value)
		for _, allowed := range r.Allowed {
			if s == allowed {
				return true
			}
		}
		return false
	case IsAlphanumeric:
		return validate.Var(stringify(value), "alphanum") == nil
	case Custom:
		return r.Check == nil || r.Check(value)
	default:
		return false
	}
}

// isInteger accepts native integers, integral JSON numbers and strings of
// digits, matching what the HTTP layer hands over after JSON decoding.
func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int32, int64, uint, uint32, uint64:
		return true
	case float64:
		return v == float64(int64(v))
	case string:
		_, err := strconv.Atoi(strings.TrimSpace(v))
		return err == nil
	default:
		return false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
