package enums

import "fmt"

// RuleMatchType controls how a grading rule combines its conditions.
type RuleMatchType string

const (
	RuleMatchAny     RuleMatchType = "any"
	RuleMatchAll     RuleMatchType = "all"
	RuleMatchDefault RuleMatchType = "default"
)

var validRuleMatchTypes = []RuleMatchType{
	RuleMatchAny,
	RuleMatchAll,
	RuleMatchDefault,
}

// String implements fmt.Stringer.
func (r RuleMatchType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RuleMatchType.
func (r RuleMatchType) IsValid() bool {
	for _, candidate := range validRuleMatchTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRuleMatchType converts raw input into a RuleMatchType.
func ParseRuleMatchType(value string) (RuleMatchType, error) {
	for _, candidate := range validRuleMatchTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rule match type %q", value)
}
