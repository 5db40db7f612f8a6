package enums

import "fmt"

// RuleOperator is the comparison used by one grading condition.
type RuleOperator string

const (
	RuleOperatorGT RuleOperator = ">"
	RuleOperatorGE RuleOperator = ">="
	RuleOperatorLT RuleOperator = "<"
	RuleOperatorLE RuleOperator = "<="
	RuleOperatorEQ RuleOperator = "=="
)

var validRuleOperators = []RuleOperator{
	RuleOperatorGT,
	RuleOperatorGE,
	RuleOperatorLT,
	RuleOperatorLE,
	RuleOperatorEQ,
}

// String implements fmt.Stringer.
func (r RuleOperator) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RuleOperator.
func (r RuleOperator) IsValid() bool {
	for _, candidate := range validRuleOperators {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRuleOperator converts raw input into a RuleOperator.
func ParseRuleOperator(value string) (RuleOperator, error) {
	for _, candidate := range validRuleOperators {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rule operator %q", value)
}
