package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"convite/internal/model"
)

// ErrDuplicateName is returned when an insert collides with the unique
// (event_id, guest_name) index — either a repeated confirmation or a lost
// race between two identical requests.
var ErrDuplicateName = errors.New("guest name already confirmed for this event")

type ConfirmationStore struct {
	db *sql.DB
}

func NewConfirmationStore(db *sql.DB) *ConfirmationStore {
	return &ConfirmationStore{db: db}
}

const confirmationCols = `id, event_id, guest_name, family_batch_id, confirmed_at`

// Create inserts one confirmation. familyBatchID is nil for individual
// submissions.
func (s *ConfirmationStore) Create(eventID int64, guestName string, familyBatchID *string) (*model.Confirmation, error) {
	var batch sql.NullString
	if familyBatchID != nil {
		batch = sql.NullString{String: *familyBatchID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO confirmations (event_id, guest_name, family_batch_id) VALUES (?, ?, ?)`,
		eventID, guestName, batch,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("insert confirmation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.getByID(id)
}

func (s *ConfirmationStore) getByID(id int64) (*model.Confirmation, error) {
	var c model.Confirmation
	err := s.db.QueryRow(
		`SELECT `+confirmationCols+` FROM confirmations WHERE id = ?`, id,
	).Scan(&c.ID, &c.EventID, &c.GuestName, &c.FamilyBatchID, &c.ConfirmedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query confirmation: %w", err)
	}
	return &c, nil
}

// ListByEvent returns an event's confirmations, most recent first.
func (s *ConfirmationStore) ListByEvent(eventID int64) ([]model.Confirmation, error) {
	rows, err := s.db.Query(
		`SELECT `+confirmationCols+` FROM confirmations
		 WHERE event_id = ?
		 ORDER BY confirmed_at DESC, id DESC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("query confirmations: %w", err)
	}
	defer rows.Close()

	var confirmations []model.Confirmation
	for rows.Next() {
		var c model.Confirmation
		if err := rows.Scan(&c.ID, &c.EventID, &c.GuestName, &c.FamilyBatchID, &c.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("scan confirmation: %w", err)
		}
		confirmations = append(confirmations, c)
	}
	return confirmations, rows.Err()
}

// Names returns every confirmed guest name for the event, oldest first.
func (s *ConfirmationStore) Names(eventID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT guest_name FROM confirmations WHERE event_id = ? ORDER BY id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("query guest names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan guest name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ExistsExact reports whether the event already has a confirmation with
// exactly this guest name (case-sensitive).
func (s *ConfirmationStore) ExistsExact(eventID int64, guestName string) (bool, error) {
	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM confirmations WHERE event_id = ? AND guest_name = ?`,
		eventID, guestName,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query exact name: %w", err)
	}
	return true, nil
}

// DeleteByEvent removes every confirmation for the event and returns how
// many rows were deleted. Calling it on an event with no confirmations is
// a no-op.
func (s *ConfirmationStore) DeleteByEvent(eventID int64) (int64, error) {
	result, err := s.db.Exec("DELETE FROM confirmations WHERE event_id = ?", eventID)
	if err != nil {
		return 0, fmt.Errorf("delete confirmations: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
