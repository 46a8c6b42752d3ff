// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentQueueName is the durable queue all appointment lifecycle events
// are published to.
const AppointmentQueueName = "appointment.events"

// Event types carried in AppointmentEvent.Type.
const (
	EventBooked    = "appointment.booked"
	EventCompleted = "appointment.completed"
	EventCancelled = "appointment.cancelled"
)

// AppointmentEvent is published when an appointment is booked, completed or
// cancelled. It carries enough information for downstream consumers to log,
// notify, or build reports without querying the primary database. State
// holds the workflow's terminal state, which is how a completion that
// created its historical copy but failed to delete the active record stays
// diagnosable.
type AppointmentEvent struct {
	Type          string `json:"type"`
	AppointmentID uint64 `json:"appointment_id"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Service       string `json:"service"`
	CreatedAt     string `json:"created_at"`
	CompletedAt   string `json:"completed_at,omitempty"`
	State         string `json:"state,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
