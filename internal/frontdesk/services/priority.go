package services

import (
	"sort"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

// Prioritize returns the waiting patients ordered urgent, priority, normal.
// The sort is stable so arrival order is kept inside a class. The input is
// not modified.
func Prioritize(patients []models.Patient) []models.Patient {
	sorted := make([]models.Patient, len(patients))
	copy(sorted, patients)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Type.Rank() < sorted[j].Type.Rank()
	})
	return sorted
}
