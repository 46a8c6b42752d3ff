package model

// Appointment is one booked slot for the clinic. The same shape serves both
// collections: an active appointment has an empty CompletedAt, a historical
// one carries the completion timestamp and is never mutated again. Date and
// Time are stored as strings ("2006-01-02" and "HH:MM") because every
// ordering and equality rule in this system is defined over the raw strings.
//
// Fields:
//
//	ID          – primary key identifier, assigned by the store.
//	Name        – client name, trimmed, non-empty.
//	Date        – calendar date of the slot.
//	Time        – time of day of the slot.
//	Service     – catalog service name chosen for the visit.
//	CreatedAt   – display timestamp set when the booking was accepted.
//	CompletedAt – display timestamp set by the completion workflow;
//	              empty for active appointments.
type Appointment struct {
	ID          uint64 `json:"id"`           // appointments.id / historical_appointments.id
	Name        string `json:"name"`         // client name
	Date        string `json:"date"`         // slot date, string-comparable
	Time        string `json:"time"`         // slot time, string-comparable
	Service     string `json:"service"`      // catalog service name
	CreatedAt   string `json:"created_at"`   // booking timestamp (display string)
	CompletedAt string `json:"completed_at,omitempty"` // completion timestamp, empty while active
}

// SlotKey returns the concatenation the active list is ordered by and the
// double-booking check compares on.
func (a Appointment) SlotKey() string {
	return a.Date + a.Time
}
