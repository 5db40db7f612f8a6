package enums

import "fmt"

// CustomerGrade is the tier assigned to a customer by the grading engine.
type CustomerGrade string

const (
	CustomerGradeA CustomerGrade = "A"
	CustomerGradeB CustomerGrade = "B"
	CustomerGradeC CustomerGrade = "C"
)

var validCustomerGrades = []CustomerGrade{
	CustomerGradeA,
	CustomerGradeB,
	CustomerGradeC,
}

// String implements fmt.Stringer.
func (c CustomerGrade) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerGrade.
func (c CustomerGrade) IsValid() bool {
	for _, candidate := range validCustomerGrades {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerGrade converts raw input into a CustomerGrade.
func ParseCustomerGrade(value string) (CustomerGrade, error) {
	for _, candidate := range validCustomerGrades {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer grade %q", value)
}
