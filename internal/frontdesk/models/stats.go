package models

// ServiceCount is how many patients one receptionist or doctor attended.
type ServiceCount struct {
	Name   string `json:"name"`
	Served int    `json:"served"`
}

type TypeCount struct {
	Type  PatientType `json:"type"`
	Count int         `json:"count"`
}

// Stats is a snapshot of the running counters. TotalPatients counts
// registrations, not completed services.
type Stats struct {
	TotalPatients int            `json:"total_patients"`
	Receptionists []ServiceCount `json:"receptionists"`
	Doctors       []ServiceCount `json:"doctors"`
	ByType        []TypeCount    `json:"by_type"`
}
