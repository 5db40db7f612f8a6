package enums

// ReminderType classifies a derived customer reminder.
type ReminderType string

const (
	ReminderTypeNoOrder       ReminderType = "no_order"
	ReminderTypePendingAction ReminderType = "pending_action"
)

// String implements fmt.Stringer.
func (r ReminderType) String() string {
	return string(r)
}
