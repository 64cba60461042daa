package services

import "github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"

// counter keeps served counts per name in first-registration order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) ensure(name string) {
	if _, ok := c.counts[name]; ok {
		return
	}
	c.counts[name] = 0
	c.order = append(c.order, name)
}

// reset sets the count of name to zero, keeping its first-seen position.
func (c *counter) reset(name string) {
	c.ensure(name)
	c.counts[name] = 0
}

func (c *counter) inc(name string) {
	c.ensure(name)
	c.counts[name]++
}

func (c *counter) snapshot() []models.ServiceCount {
	out := make([]models.ServiceCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, models.ServiceCount{Name: name, Served: c.counts[name]})
	}
	return out
}

// StatsAggregator holds the running counters. Nothing is ever decremented.
type StatsAggregator struct {
	totalPatients int
	receptionists *counter
	doctors       *counter
	byType        map[models.PatientType]int
}

func NewStatsAggregator() *StatsAggregator {
	return &StatsAggregator{
		receptionists: newCounter(),
		doctors:       newCounter(),
		byType:        make(map[models.PatientType]int),
	}
}

// AddReceptionist sets the counter of name to zero. Duplicate names share
// one counter, and registering the name again resets it.
func (s *StatsAggregator) AddReceptionist(name string) { s.receptionists.reset(name) }

func (s *StatsAggregator) AddDoctor(name string) { s.doctors.reset(name) }

func (s *StatsAggregator) RecordRegistration(t models.PatientType) {
	s.totalPatients++
	s.byType[t]++
}

func (s *StatsAggregator) RecordReception(receptionist string) { s.receptionists.inc(receptionist) }

func (s *StatsAggregator) RecordConsultation(doctor string) { s.doctors.inc(doctor) }

func (s *StatsAggregator) Snapshot() models.Stats {
	byType := make([]models.TypeCount, 0, len(models.PatientTypes))
	for _, t := range models.PatientTypes {
		byType = append(byType, models.TypeCount{Type: t, Count: s.byType[t]})
	}
	return models.Stats{
		TotalPatients: s.totalPatients,
		Receptionists: s.receptionists.snapshot(),
		Doctors:       s.doctors.snapshot(),
		ByType:        byType,
	}
}
