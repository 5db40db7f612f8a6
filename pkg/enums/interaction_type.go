package enums

import "fmt"

// InteractionType tags a logged customer touchpoint.
type InteractionType string

const (
	InteractionTypeCall    InteractionType = "call"
	InteractionTypeEmail   InteractionType = "email"
	InteractionTypeMeeting InteractionType = "meeting"
	InteractionTypeOther   InteractionType = "other"
)

var validInteractionTypes = []InteractionType{
	InteractionTypeCall,
	InteractionTypeEmail,
	InteractionTypeMeeting,
	InteractionTypeOther,
}

// String implements fmt.Stringer.
func (i InteractionType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InteractionType.
func (i InteractionType) IsValid() bool {
	for _, candidate := range validInteractionTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInteractionType converts raw input into an InteractionType.
func ParseInteractionType(value string) (InteractionType, error) {
	for _, candidate := range validInteractionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid interaction type %q", value)
}
