package models

import "fmt"

// Stage names the two service points a patient goes through.
type Stage string

const (
	StageReception Stage = "reception"
	StageDoctor    Stage = "doctor"
)

// Queue is one desk or doctor with the patients currently mapped to it.
type Queue struct {
	Index    int       `json:"index"`
	Number   int       `json:"number"`
	Owner    string    `json:"owner"`
	Patients []Patient `json:"patients"`
}

// Board is a point-in-time view of every queue.
type Board struct {
	Receptionists []string `json:"receptionists"`
	Doctors       []string `json:"doctors"`
	DeskQueues    []Queue  `json:"desk_queues"`
	DoctorQueues  []Queue  `json:"doctor_queues"`
	Waiting       int      `json:"waiting"`
	Passed        int      `json:"passed"`
}

func (b Board) HasDesks() bool   { return len(b.Receptionists) > 0 }
func (b Board) HasDoctors() bool { return len(b.Doctors) > 0 }

// Attendance is the result of a successful "attend next" action.
type Attendance struct {
	Stage   Stage   `json:"stage"`
	Index   int     `json:"index"`
	Number  int     `json:"number"`
	By      string  `json:"by"`
	Patient Patient `json:"patient"`
}

// Notice is the message shown to the operator after the attend.
func (a Attendance) Notice() string {
	if a.Stage == StageDoctor {
		return fmt.Sprintf("Patient %s was attended by doctor %s.", a.Patient.Name, a.By)
	}
	return fmt.Sprintf("Patient %s was attended at desk %d.", a.Patient.Name, a.Number)
}
