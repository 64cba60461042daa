package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

// EventSink receives desk events after the state change is applied.
type EventSink interface {
	Publish(ctx context.Context, event models.Event) error
}

// Desk owns the whole front-desk state: rosters, the two patient lists and
// the stats counters. Every action runs under one lock, so concurrent
// requests are applied one at a time in arrival order. Events reach the
// sinks in that same order.
type Desk struct {
	mu            sync.Mutex
	pubMu         sync.Mutex
	seq           uint64
	receptionists *Roster[string]
	doctors       *Roster[string]
	waiting       *Roster[models.Patient]
	passed        *Roster[models.Patient]
	stats         *StatsAggregator

	sinks  []EventSink
	logger zerolog.Logger
	now    func() time.Time
}

type Option func(*Desk)

func WithSinks(sinks ...EventSink) Option {
	return func(d *Desk) { d.sinks = append(d.sinks, sinks...) }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Desk) { d.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(d *Desk) { d.now = now }
}

func NewDesk(opts ...Option) *Desk {
	d := &Desk{
		receptionists: NewRoster[string](),
		doctors:       NewRoster[string](),
		waiting:       NewRoster[models.Patient](),
		passed:        NewRoster[models.Patient](),
		stats:         NewStatsAggregator(),
		logger:        zerolog.Nop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterReceptionist opens a new desk and returns its 1-based number. A
// blank name is ignored and reported as false.
func (d *Desk) RegisterReceptionist(ctx context.Context, name string) (int, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}

	d.mu.Lock()
	d.receptionists.Add(name)
	d.stats.AddReceptionist(name)
	number := d.receptionists.Size()
	ev := d.newEvent(models.EventReceptionistRegistered, name, number-1, nil)
	d.commit(ctx, ev)
	return number, true
}

// RegisterDoctor opens a new doctor queue. A blank name is ignored.
func (d *Desk) RegisterDoctor(ctx context.Context, name string) (int, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}

	d.mu.Lock()
	d.doctors.Add(name)
	d.stats.AddDoctor(name)
	number := d.doctors.Size()
	ev := d.newEvent(models.EventDoctorRegistered, name, number-1, nil)
	d.commit(ctx, ev)
	return number, true
}

// RegisterPatient puts a patient in the waiting list. A blank name returns
// (nil, nil) and changes nothing.
func (d *Desk) RegisterPatient(ctx context.Context, name string, t models.PatientType) (*models.Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if !t.Valid() {
		return nil, models.ErrInvalidPatientType
	}

	d.mu.Lock()
	p := models.Patient{
		ID:           uuid.New(),
		Name:         name,
		Type:         t,
		RegisteredAt: d.now(),
	}
	d.waiting.Add(p)
	d.stats.RecordRegistration(t)
	ev := d.newEvent(models.EventPatientRegistered, "", -1, &p)
	d.commit(ctx, ev)
	return &p, nil
}

// AttendAtDesk moves the next patient of desk index from the waiting list
// to the passed list and credits the receptionist.
func (d *Desk) AttendAtDesk(ctx context.Context, index int) (*models.Attendance, error) {
	d.mu.Lock()
	att, ev, err := d.attendAtDeskLocked(index)
	if err != nil {
		d.mu.Unlock()
		return nil, err
	}

	d.commit(ctx, ev)
	return att, nil
}

func (d *Desk) attendAtDeskLocked(index int) (*models.Attendance, models.Event, error) {
	receptionists := d.receptionists.ToSlice()
	ordered := Prioritize(d.waiting.ToSlice())

	patient, _, err := NextFor(ordered, len(receptionists), index)
	if err != nil {
		if errors.Is(err, models.ErrEmptyQueue) {
			err = &models.EmptyQueueError{Stage: models.StageReception, Number: index + 1}
		}
		return nil, models.Event{}, err
	}

	d.waiting.Remove(samePatient(patient))
	d.passed.Add(patient)
	by := receptionists[index]
	d.stats.RecordReception(by)

	att := &models.Attendance{
		Stage:   models.StageReception,
		Index:   index,
		Number:  index + 1,
		By:      by,
		Patient: patient,
	}
	return att, d.newEvent(models.EventPatientPassed, by, index, &patient), nil
}

// AttendAtDoctor removes the next patient of doctor index from the passed
// list and credits the doctor. The passed list keeps arrival order.
func (d *Desk) AttendAtDoctor(ctx context.Context, index int) (*models.Attendance, error) {
	d.mu.Lock()
	att, ev, err := d.attendAtDoctorLocked(index)
	if err != nil {
		d.mu.Unlock()
		return nil, err
	}

	d.commit(ctx, ev)
	return att, nil
}

func (d *Desk) attendAtDoctorLocked(index int) (*models.Attendance, models.Event, error) {
	doctors := d.doctors.ToSlice()

	patient, _, err := NextFor(d.passed.ToSlice(), len(doctors), index)
	if err != nil {
		if errors.Is(err, models.ErrEmptyQueue) {
			err = &models.EmptyQueueError{Stage: models.StageDoctor, Number: index + 1}
		}
		return nil, models.Event{}, err
	}

	d.passed.Remove(samePatient(patient))
	by := doctors[index]
	d.stats.RecordConsultation(by)

	att := &models.Attendance{
		Stage:   models.StageDoctor,
		Index:   index,
		Number:  index + 1,
		By:      by,
		Patient: patient,
	}
	return att, d.newEvent(models.EventPatientServed, by, index, &patient), nil
}

// Board computes the current queue layout. Desk and doctor queues are nil
// while nobody is registered for that stage.
func (d *Desk) Board() models.Board {
	d.mu.Lock()
	defer d.mu.Unlock()

	receptionists := d.receptionists.ToSlice()
	doctors := d.doctors.ToSlice()
	waiting := Prioritize(d.waiting.ToSlice())
	passed := d.passed.ToSlice()

	return models.Board{
		Receptionists: receptionists,
		Doctors:       doctors,
		DeskQueues:    buildQueues(waiting, receptionists),
		DoctorQueues:  buildQueues(passed, doctors),
		Waiting:       len(waiting),
		Passed:        len(passed),
	}
}

func (d *Desk) Stats() models.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats.Snapshot()
}

func buildQueues(patients []models.Patient, owners []string) []models.Queue {
	lists, err := Distribute(patients, len(owners))
	if err != nil {
		return nil
	}

	queues := make([]models.Queue, len(owners))
	for i, owner := range owners {
		queues[i] = models.Queue{
			Index:    i,
			Number:   i + 1,
			Owner:    owner,
			Patients: lists[i],
		}
	}
	return queues
}

func samePatient(p models.Patient) func(models.Patient) bool {
	return func(x models.Patient) bool { return x.ID == p.ID }
}

// newEvent must be called with mu held.
func (d *Desk) newEvent(t models.EventType, actor string, index int, p *models.Patient) models.Event {
	d.seq++
	return models.Event{
		ID:         uuid.New(),
		Seq:        d.seq,
		Type:       t,
		Actor:      actor,
		QueueIndex: index,
		Patient:    p,
		At:         d.now(),
	}
}

// commit releases the state lock and publishes ev. pubMu is taken before mu
// is released, so sinks see events in the order the actions were applied.
func (d *Desk) commit(ctx context.Context, ev models.Event) {
	d.pubMu.Lock()
	d.mu.Unlock()
	defer d.pubMu.Unlock()
	d.publish(ctx, ev)
}

// publish fans the event out. The in-memory state is already updated, so a
// failing sink is only logged.
func (d *Desk) publish(ctx context.Context, ev models.Event) {
	for _, sink := range d.sinks {
		if err := sink.Publish(ctx, ev); err != nil {
			d.logger.Warn().Err(err).
				Str("event", string(ev.Type)).
				Str("event_id", ev.ID.String()).
				Msg("event sink failed")
		}
	}
}
