package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventReceptionistRegistered EventType = "receptionist.registered"
	EventDoctorRegistered       EventType = "doctor.registered"
	EventPatientRegistered      EventType = "patient.registered"
	EventPatientPassed          EventType = "patient.passed"
	EventPatientServed          EventType = "patient.served"
)

// Event is emitted after every successful mutation of the desk state.
// QueueIndex is the desk or doctor involved, -1 for patient registrations.
// Seq increases by one per event in the order the actions were applied.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Seq        uint64    `json:"seq"`
	Type       EventType `json:"type"`
	Actor      string    `json:"actor,omitempty"`
	QueueIndex int       `json:"queue_index"`
	Patient    *Patient  `json:"patient,omitempty"`
	At         time.Time `json:"at"`
}
