package store

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"convite/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventCols = `id, title, date_time, location, full_address, phone, maps_link, message, link_code, created_at`

// NewLinkCode builds the opaque public token for an event: six random
// base36 characters followed by the current unix milliseconds in base36.
// Uniqueness is by construction, not checked against the store.
func NewLinkCode() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, 6)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			panic(fmt.Sprintf("store: read random: %v", err))
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

func (s *EventStore) Create(title string, dateTime time.Time, location string, fullAddress, phone, mapsLink, message *string) (*model.Event, error) {
	result, err := s.db.Exec(
		`INSERT INTO events (title, date_time, location, full_address, phone, maps_link, message, link_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		title, dateTime.UTC(), location, nullable(fullAddress), nullable(phone), nullable(mapsLink), nullable(message), NewLinkCode(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	return s.get(`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
}

func (s *EventStore) GetByCode(code string) (*model.Event, error) {
	return s.get(`SELECT `+eventCols+` FROM events WHERE link_code = ?`, code)
}

func (s *EventStore) get(query string, arg any) (*model.Event, error) {
	var e model.Event
	err := s.db.QueryRow(query, arg).Scan(
		&e.ID, &e.Title, &e.DateTime, &e.Location, &e.FullAddress, &e.Phone,
		&e.MapsLink, &e.Message, &e.LinkCode, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}
	return &e, nil
}

// ListWithStats returns every event joined with its confirmation count and
// most recent confirmation time, newest-created first.
func (s *EventStore) ListWithStats() ([]model.EventStats, error) {
	rows, err := s.db.Query(
		`SELECT e.id, e.title, e.date_time, e.location, e.full_address, e.phone,
		        e.maps_link, e.message, e.link_code, e.created_at,
		        COUNT(c.id), MAX(c.confirmed_at)
		 FROM events e
		 LEFT JOIN confirmations c ON c.event_id = e.id
		 GROUP BY e.id
		 ORDER BY e.created_at DESC, e.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query event stats: %w", err)
	}
	defer rows.Close()

	var events []model.EventStats
	for rows.Next() {
		var e model.EventStats
		var last sql.NullTime
		if err := rows.Scan(
			&e.ID, &e.Title, &e.DateTime, &e.Location, &e.FullAddress, &e.Phone,
			&e.MapsLink, &e.Message, &e.LinkCode, &e.CreatedAt,
			&e.TotalConfirmations, &last,
		); err != nil {
			return nil, fmt.Errorf("scan event stats: %w", err)
		}
		if last.Valid {
			t := last.Time
			e.LastConfirmation = &t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update replaces every mutable field. The link code and creation time are
// immutable.
func (s *EventStore) Update(id int64, title string, dateTime time.Time, location string, fullAddress, phone, mapsLink, message *string) (*model.Event, error) {
	_, err := s.db.Exec(
		`UPDATE events
		 SET title = ?, date_time = ?, location = ?, full_address = ?, phone = ?, maps_link = ?, message = ?
		 WHERE id = ?`,
		title, dateTime.UTC(), location, nullable(fullAddress), nullable(phone), nullable(mapsLink), nullable(message), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return s.GetByID(id)
}

// Delete removes the event and all of its confirmations. The confirmations
// are deleted explicitly; the ON DELETE CASCADE constraint is only a backstop.
func (s *EventStore) Delete(id int64) error {
	if _, err := s.db.Exec("DELETE FROM confirmations WHERE event_id = ?", id); err != nil {
		return fmt.Errorf("delete event confirmations: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM events WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
