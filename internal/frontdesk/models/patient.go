package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PatientType is the triage class chosen at registration.
type PatientType string

const (
	PatientUrgent   PatientType = "urgent"
	PatientPriority PatientType = "priority"
	PatientNormal   PatientType = "normal"
)

// PatientTypes lists the classes in queue order.
var PatientTypes = []PatientType{PatientUrgent, PatientPriority, PatientNormal}

// Rank orders the classes: urgent before priority before normal.
func (t PatientType) Rank() int {
	switch t {
	case PatientUrgent:
		return 1
	case PatientPriority:
		return 2
	case PatientNormal:
		return 3
	default:
		return 4
	}
}

func (t PatientType) Valid() bool {
	return t.Rank() < 4
}

// Label is the display form used by the board.
func (t PatientType) Label() string {
	switch t {
	case PatientUrgent:
		return "Urgent"
	case PatientPriority:
		return "Priority"
	case PatientNormal:
		return "Normal"
	default:
		return string(t)
	}
}

// ParsePatientType accepts the english class names and the labels used by the
// old front-desk form (urgencia, prioridade).
func ParsePatientType(s string) (PatientType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent", "urgencia", "urgência":
		return PatientUrgent, nil
	case "priority", "prioridade":
		return PatientPriority, nil
	case "normal":
		return PatientNormal, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: urgent, priority, normal)", ErrInvalidPatientType, s)
	}
}

// Patient is a person moving through reception and then a doctor queue.
type Patient struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Type         PatientType `json:"type"`
	RegisteredAt time.Time   `json:"registered_at"`
}
