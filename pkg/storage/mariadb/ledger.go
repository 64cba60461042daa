package mariadb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

const createVisitLedger = `
	CREATE TABLE IF NOT EXISTS Visit_Ledger (
		id_event      CHAR(36)     NOT NULL PRIMARY KEY,
		event_type    VARCHAR(32)  NOT NULL,
		actor         VARCHAR(255) NULL,
		queue_index   INT          NULL,
		id_patient    CHAR(36)     NULL,
		patient_name  VARCHAR(255) NULL,
		patient_type  VARCHAR(16)  NULL,
		created_at    DATETIME(6)  NOT NULL,
		seq           BIGINT UNSIGNED NOT NULL,
		INDEX idx_visit_ledger_patient (id_patient)
	)
`

const insertVisitLedger = `
	INSERT INTO Visit_Ledger
		(id_event, event_type, actor, queue_index, id_patient, patient_name, patient_type, created_at, seq)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Ledger appends desk events to MariaDB as an audit trail. It is write-only:
// nothing here is ever loaded back into the desk.
type Ledger struct {
	DB *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{DB: db}
}

func (l *Ledger) EnsureSchema(ctx context.Context) error {
	if _, err := l.DB.ExecContext(ctx, createVisitLedger); err != nil {
		return fmt.Errorf("create Visit_Ledger: %w", err)
	}
	return nil
}

// Publish implements services.EventSink.
func (l *Ledger) Publish(ctx context.Context, ev models.Event) error {
	if _, err := l.DB.ExecContext(ctx, insertVisitLedger, ledgerArgs(ev)...); err != nil {
		return fmt.Errorf("insert Visit_Ledger %s: %w", ev.Type, err)
	}
	return nil
}

func ledgerArgs(ev models.Event) []interface{} {
	var (
		actor      sql.NullString
		queueIndex sql.NullInt64
		patientID  sql.NullString
		name       sql.NullString
		typ        sql.NullString
	)
	if ev.Actor != "" {
		actor = sql.NullString{String: ev.Actor, Valid: true}
	}
	if ev.QueueIndex >= 0 {
		queueIndex = sql.NullInt64{Int64: int64(ev.QueueIndex), Valid: true}
	}
	if ev.Patient != nil {
		patientID = sql.NullString{String: ev.Patient.ID.String(), Valid: true}
		name = sql.NullString{String: ev.Patient.Name, Valid: true}
		typ = sql.NullString{String: string(ev.Patient.Type), Valid: true}
	}

	return []interface{}{
		ev.ID.String(), string(ev.Type), actor, queueIndex, patientID, name, typ, ev.At.UTC(), ev.Seq,
	}
}
