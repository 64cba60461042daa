package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

type recordingSink struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, ev models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) types() []models.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func newTestDesk(t *testing.T) (*Desk, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	fixed := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	d := NewDesk(WithSinks(sink), WithClock(func() time.Time { return fixed }))
	return d, sink
}

func mustRegister(t *testing.T, d *Desk, name string, typ models.PatientType) *models.Patient {
	t.Helper()
	p, err := d.RegisterPatient(context.Background(), name, typ)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	if p == nil {
		t.Fatalf("register %s: patient was ignored", name)
	}
	return p
}

func TestDesk_BlankNamesAreIgnored(t *testing.T) {
	d, sink := newTestDesk(t)
	ctx := context.Background()

	if _, ok := d.RegisterReceptionist(ctx, "   "); ok {
		t.Error("expected blank receptionist to be ignored")
	}
	if _, ok := d.RegisterDoctor(ctx, ""); ok {
		t.Error("expected blank doctor to be ignored")
	}
	p, err := d.RegisterPatient(ctx, "\t", models.PatientNormal)
	if err != nil || p != nil {
		t.Errorf("expected blank patient to be ignored, got %v, %v", p, err)
	}

	stats := d.Stats()
	if stats.TotalPatients != 0 || len(stats.Receptionists) != 0 || len(stats.Doctors) != 0 {
		t.Errorf("expected no changes, got %+v", stats)
	}
	if len(sink.types()) != 0 {
		t.Errorf("expected no events, got %v", sink.types())
	}
}

func TestDesk_RegisterPatientRejectsUnknownType(t *testing.T) {
	d, _ := newTestDesk(t)

	_, err := d.RegisterPatient(context.Background(), "Ana", models.PatientType("vip"))
	if !errors.Is(err, models.ErrInvalidPatientType) {
		t.Fatalf("expected ErrInvalidPatientType, got %v", err)
	}
	if d.Stats().TotalPatients != 0 {
		t.Error("rejected patient must not be counted")
	}
}

func TestDesk_NamesAreTrimmed(t *testing.T) {
	d, _ := newTestDesk(t)
	d.RegisterReceptionist(context.Background(), "  Ana  ")
	if n, _ := d.RegisterReceptionist(context.Background(), "Bruno"); n != 2 {
		t.Errorf("expected desk number 2, got %d", n)
	}

	board := d.Board()
	if len(board.Receptionists) != 2 || board.Receptionists[0] != "Ana" {
		t.Errorf("expected [Ana Bruno], got %v", board.Receptionists)
	}
}

func TestDesk_BoardWithoutQueues(t *testing.T) {
	d, _ := newTestDesk(t)
	mustRegister(t, d, "Ana", models.PatientNormal)

	board := d.Board()
	if board.HasDesks() || board.DeskQueues != nil {
		t.Errorf("expected no desk queues, got %+v", board.DeskQueues)
	}
	if board.HasDoctors() || board.DoctorQueues != nil {
		t.Errorf("expected no doctor queues, got %+v", board.DoctorQueues)
	}
	if board.Waiting != 1 {
		t.Errorf("expected 1 waiting, got %d", board.Waiting)
	}
}

func TestDesk_AttendWithoutQueues(t *testing.T) {
	d, _ := newTestDesk(t)
	ctx := context.Background()
	mustRegister(t, d, "Ana", models.PatientNormal)

	if _, err := d.AttendAtDesk(ctx, 0); !errors.Is(err, models.ErrNoQueues) {
		t.Errorf("desk: expected ErrNoQueues, got %v", err)
	}
	if _, err := d.AttendAtDoctor(ctx, 0); !errors.Is(err, models.ErrNoQueues) {
		t.Errorf("doctor: expected ErrNoQueues, got %v", err)
	}
}

func TestDesk_BoardDistributesSortedPatients(t *testing.T) {
	d, _ := newTestDesk(t)
	ctx := context.Background()
	d.RegisterReceptionist(ctx, "Ana")
	d.RegisterReceptionist(ctx, "Bruno")

	mustRegister(t, d, "n1", models.PatientNormal)
	mustRegister(t, d, "u1", models.PatientUrgent)
	mustRegister(t, d, "p1", models.PatientPriority)
	mustRegister(t, d, "n2", models.PatientNormal)
	mustRegister(t, d, "u2", models.PatientUrgent)

	board := d.Board()
	if len(board.DeskQueues) != 2 {
		t.Fatalf("expected 2 desk queues, got %d", len(board.DeskQueues))
	}

	// sorted: u1 u2 p1 n1 n2 -> queue indices 0 1 0 1 0
	q0 := names(board.DeskQueues[0].Patients)
	q1 := names(board.DeskQueues[1].Patients)
	if len(q0) != 3 || q0[0] != "u1" || q0[1] != "p1" || q0[2] != "n2" {
		t.Errorf("desk 1: expected [u1 p1 n2], got %v", q0)
	}
	if len(q1) != 2 || q1[0] != "u2" || q1[1] != "n1" {
		t.Errorf("desk 2: expected [u2 n1], got %v", q1)
	}
	if board.DeskQueues[1].Number != 2 || board.DeskQueues[1].Owner != "Bruno" {
		t.Errorf("unexpected queue header: %+v", board.DeskQueues[1])
	}
}

func TestDesk_AttendAtDeskMovesPatient(t *testing.T) {
	d, sink := newTestDesk(t)
	ctx := context.Background()
	d.RegisterReceptionist(ctx, "Ana")
	d.RegisterReceptionist(ctx, "Bruno")
	d.RegisterDoctor(ctx, "Dr. Silva")

	mustRegister(t, d, "n1", models.PatientNormal)
	urgent := mustRegister(t, d, "u1", models.PatientUrgent)
	mustRegister(t, d, "p1", models.PatientPriority)

	att, err := d.AttendAtDesk(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.Patient.ID != urgent.ID {
		t.Errorf("expected the urgent patient, got %s", att.Patient.Name)
	}
	if att.By != "Ana" || att.Number != 1 || att.Stage != models.StageReception {
		t.Errorf("unexpected attendance: %+v", att)
	}
	if att.Notice() != "Patient u1 was attended at desk 1." {
		t.Errorf("unexpected notice: %q", att.Notice())
	}

	board := d.Board()
	if board.Waiting != 2 || board.Passed != 1 {
		t.Errorf("expected 2 waiting and 1 passed, got %d and %d", board.Waiting, board.Passed)
	}
	for _, q := range board.DeskQueues {
		for _, p := range q.Patients {
			if p.ID == urgent.ID {
				t.Errorf("passed patient reappeared in desk %d", q.Number)
			}
		}
	}
	if got := names(board.DoctorQueues[0].Patients); len(got) != 1 || got[0] != "u1" {
		t.Errorf("expected u1 in the doctor queue, got %v", got)
	}

	stats := d.Stats()
	if stats.Receptionists[0].Served != 1 || stats.Receptionists[1].Served != 0 {
		t.Errorf("unexpected receptionist counts: %+v", stats.Receptionists)
	}

	last := sink.types()[len(sink.types())-1]
	if last != models.EventPatientPassed {
		t.Errorf("expected %s event, got %s", models.EventPatientPassed, last)
	}
}

func TestDesk_AttendEmptyQueueChangesNothing(t *testing.T) {
	d, sink := newTestDesk(t)
	ctx := context.Background()
	d.RegisterReceptionist(ctx, "Ana")
	d.RegisterReceptionist(ctx, "Bruno")
	mustRegister(t, d, "only", models.PatientNormal)

	beforeBoard := d.Board()
	beforeStats := d.Stats()
	beforeEvents := len(sink.types())

	_, err := d.AttendAtDesk(ctx, 1)
	if !errors.Is(err, models.ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue, got %v", err)
	}
	if err.Error() != "No patients in the queue of desk 2." {
		t.Errorf("unexpected notice: %q", err.Error())
	}

	afterBoard := d.Board()
	afterStats := d.Stats()
	if afterBoard.Waiting != beforeBoard.Waiting || afterBoard.Passed != beforeBoard.Passed {
		t.Error("rosters changed after attending an empty queue")
	}
	for i := range beforeStats.Receptionists {
		if afterStats.Receptionists[i] != beforeStats.Receptionists[i] {
			t.Errorf("stats changed: %+v -> %+v", beforeStats.Receptionists, afterStats.Receptionists)
		}
	}
	if len(sink.types()) != beforeEvents {
		t.Error("no event expected for an empty queue")
	}
}

func TestDesk_AttendUnknownQueue(t *testing.T) {
	d, _ := newTestDesk(t)
	d.RegisterReceptionist(context.Background(), "Ana")

	if _, err := d.AttendAtDesk(context.Background(), 3); !errors.Is(err, models.ErrUnknownQueue) {
		t.Errorf("expected ErrUnknownQueue, got %v", err)
	}
}

func TestDesk_FullLifecycle(t *testing.T) {
	d, sink := newTestDesk(t)
	ctx := context.Background()
	d.RegisterReceptionist(ctx, "Ana")
	d.RegisterDoctor(ctx, "Dr. Silva")
	d.RegisterDoctor(ctx, "Dr. Souza")

	mustRegister(t, d, "a", models.PatientNormal)
	mustRegister(t, d, "b", models.PatientNormal)
	mustRegister(t, d, "c", models.PatientNormal)

	for i := 0; i < 3; i++ {
		if _, err := d.AttendAtDesk(ctx, 0); err != nil {
			t.Fatalf("attend %d: %v", i, err)
		}
	}

	// passed keeps arrival order: a b c -> doctor indices 0 1 0
	att, err := d.AttendAtDoctor(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.Patient.Name != "b" || att.By != "Dr. Souza" {
		t.Errorf("expected b attended by Dr. Souza, got %+v", att)
	}
	if att.Notice() != "Patient b was attended by doctor Dr. Souza." {
		t.Errorf("unexpected notice: %q", att.Notice())
	}

	// now a c -> 0 1, so doctor 2 gets c
	att, err = d.AttendAtDoctor(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.Patient.Name != "c" {
		t.Errorf("expected c after reassignment, got %s", att.Patient.Name)
	}

	if _, err := d.AttendAtDoctor(ctx, 1); !errors.Is(err, models.ErrEmptyQueue) {
		t.Errorf("expected empty doctor queue, got %v", err)
	}
	if _, err := d.AttendAtDesk(ctx, 0); !errors.Is(err, models.ErrEmptyQueue) {
		t.Errorf("expected empty desk queue, got %v", err)
	}

	stats := d.Stats()
	if stats.TotalPatients != 3 {
		t.Errorf("expected total 3, got %d", stats.TotalPatients)
	}
	if stats.Receptionists[0].Served != 3 {
		t.Errorf("expected Ana served 3, got %d", stats.Receptionists[0].Served)
	}
	if stats.Doctors[0].Served != 0 || stats.Doctors[1].Served != 2 {
		t.Errorf("unexpected doctor counts: %+v", stats.Doctors)
	}

	served := 0
	for _, typ := range sink.types() {
		if typ == models.EventPatientServed {
			served++
		}
	}
	if served != 2 {
		t.Errorf("expected 2 served events, got %d", served)
	}
}

func TestDesk_SinkErrorDoesNotFailAction(t *testing.T) {
	sink := &recordingSink{err: errors.New("ledger down")}
	d := NewDesk(WithSinks(sink))

	if _, ok := d.RegisterReceptionist(context.Background(), "Ana"); !ok {
		t.Fatal("expected registration to succeed")
	}
	if len(d.Board().Receptionists) != 1 {
		t.Error("state must be kept when a sink fails")
	}
}

func TestDesk_ConcurrentRegistrations(t *testing.T) {
	d, _ := newTestDesk(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.RegisterPatient(ctx, "p", models.PatientNormal)
		}()
	}
	wg.Wait()

	if got := d.Stats().TotalPatients; got != 50 {
		t.Errorf("expected 50 patients, got %d", got)
	}
	if got := d.Board().Waiting; got != 50 {
		t.Errorf("expected 50 waiting, got %d", got)
	}
}

func TestDesk_ReRegisteringReceptionistResetsCounter(t *testing.T) {
	d, _ := newTestDesk(t)
	ctx := context.Background()

	d.RegisterReceptionist(ctx, "Ana")
	mustRegister(t, d, "Bia", models.PatientNormal)
	if _, err := d.AttendAtDesk(ctx, 0); err != nil {
		t.Fatalf("attend: %v", err)
	}

	number, ok := d.RegisterReceptionist(ctx, "Ana")
	if !ok || number != 2 {
		t.Fatalf("expected a second desk, got %d %v", number, ok)
	}

	stats := d.Stats()
	if len(stats.Receptionists) != 1 || stats.Receptionists[0].Served != 0 {
		t.Errorf("expected Ana reset to 0 in one entry, got %+v", stats.Receptionists)
	}
	if got := len(d.Board().DeskQueues); got != 2 {
		t.Errorf("expected 2 desk queues, got %d", got)
	}
}

// orderedSink checks that events arrive with strictly increasing Seq.
type orderedSink struct {
	mu     sync.Mutex
	last   uint64
	count  int
	misses int
}

func (s *orderedSink) Publish(_ context.Context, ev models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.Seq != s.last+1 {
		s.misses++
	}
	s.last = ev.Seq
	s.count++
	return nil
}

func TestDesk_EventsReachSinksInActionOrder(t *testing.T) {
	sink := &orderedSink{}
	d := NewDesk(WithSinks(sink))
	ctx := context.Background()
	d.RegisterReceptionist(ctx, "Ana")
	d.RegisterDoctor(ctx, "Lima")

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			d.RegisterPatient(ctx, "p", models.PatientNormal)
		}()
		go func() {
			defer wg.Done()
			d.AttendAtDesk(ctx, 0)
		}()
		go func() {
			defer wg.Done()
			d.AttendAtDoctor(ctx, 0)
		}()
	}
	wg.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.misses != 0 {
		t.Errorf("%d events arrived out of order", sink.misses)
	}
	if uint64(sink.count) != sink.last {
		t.Errorf("expected %d events with contiguous seq, last seq %d", sink.count, sink.last)
	}
}

func TestDesk_PassedPublishedBeforeServed(t *testing.T) {
	d, sink := newTestDesk(t)
	ctx := context.Background()
	d.RegisterReceptionist(ctx, "Ana")
	d.RegisterDoctor(ctx, "Lima")
	p := mustRegister(t, d, "Bia", models.PatientUrgent)

	if _, err := d.AttendAtDesk(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AttendAtDoctor(ctx, 0); err != nil {
		t.Fatal(err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	var passed, served uint64
	for _, ev := range sink.events {
		if ev.Patient == nil || ev.Patient.ID != p.ID {
			continue
		}
		switch ev.Type {
		case models.EventPatientPassed:
			passed = ev.Seq
		case models.EventPatientServed:
			served = ev.Seq
		}
	}
	if passed == 0 || served <= passed {
		t.Errorf("expected passed (seq %d) before served (seq %d)", passed, served)
	}
}
