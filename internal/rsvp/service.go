// Package rsvp orchestrates guest confirmations: it resolves the event from
// its link code, runs the name-similarity checks, and records accepted
// names. Rejections carry an enumerated Reason so clients never have to
// pattern-match message text.
package rsvp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"convite/internal/guestmatch"
	"convite/internal/store"
)

// ErrEventNotFound is returned when the link code resolves to no event.
var ErrEventNotFound = errors.New("event not found")

// Reason tags why a confirmation request was rejected.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonValidation    Reason = "validation"
	ReasonDuplicate     Reason = "duplicate"
	ReasonNeedsFullName Reason = "needs_full_name"
)

// Result is the outcome of a confirmation request. Message is display text
// in the product locale; Reason is the machine-readable rejection category.
type Result struct {
	OK             bool
	Reason         Reason
	Message        string
	EventID        int64
	ConfirmedCount int
}

type Service struct {
	events        *store.EventStore
	confirmations *store.ConfirmationStore
}

func NewService(events *store.EventStore, confirmations *store.ConfirmationStore) *Service {
	return &Service{events: events, confirmations: confirmations}
}

func reject(reason Reason, message string) Result {
	return Result{OK: false, Reason: reason, Message: message}
}

// ConfirmGuest records a single guest for the event behind the link code.
// At most one row is inserted. An unknown code returns ErrEventNotFound;
// any other error is a store failure.
func (s *Service) ConfirmGuest(code, guestName string) (Result, error) {
	name := strings.TrimSpace(guestName)
	if name == "" {
		return reject(ReasonValidation, "Nome é obrigatório"), nil
	}

	event, err := s.events.GetByCode(code)
	if err != nil {
		return Result{}, err
	}
	if event == nil {
		return Result{}, ErrEventNotFound
	}

	existing, err := s.confirmations.Names(event.ID)
	if err != nil {
		return Result{}, err
	}

	switch d := guestmatch.Evaluate(name, existing); d.Outcome {
	case guestmatch.Duplicate:
		return reject(ReasonDuplicate, "Você já confirmou presença para este evento"), nil
	case guestmatch.NeedFullName:
		return reject(ReasonNeedsFullName,
			fmt.Sprintf("Já existe %q na lista. Por favor, digite seu nome completo para evitar confusão.", d.Match)), nil
	case guestmatch.NeedFullerName:
		return reject(ReasonNeedsFullName,
			fmt.Sprintf("Já existe %q na lista. Por favor, digite seu nome completo com mais detalhes (ex: João Silva Santos).", d.Match)), nil
	}

	if _, err := s.confirmations.Create(event.ID, name, nil); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			// Lost the race against an identical concurrent request; same
			// outcome as the pre-check.
			return reject(ReasonDuplicate, "Você já confirmou presença para este evento"), nil
		}
		return Result{}, err
	}

	return Result{
		OK:             true,
		Message:        "Presença confirmada com sucesso!",
		EventID:        event.ID,
		ConfirmedCount: 1,
	}, nil
}

// ConfirmFamily records a batch of guests under one fresh family batch tag.
// Names are processed in order and independently: exact duplicates are
// skipped, one-word names colliding with an existing first name abort the
// request, everything else is inserted. There is no rollback — inserts made
// before a later name's rejection stay in place.
func (s *Service) ConfirmFamily(code string, guestNames []string) (Result, error) {
	if len(guestNames) == 0 {
		return reject(ReasonValidation, "Lista de nomes é obrigatória"), nil
	}

	var valid []string
	for _, name := range guestNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			valid = append(valid, trimmed)
		}
	}
	if len(valid) == 0 {
		return reject(ReasonValidation, "Pelo menos um nome válido é obrigatório"), nil
	}

	event, err := s.events.GetByCode(code)
	if err != nil {
		return Result{}, err
	}
	if event == nil {
		return Result{}, ErrEventNotFound
	}

	existing, err := s.confirmations.Names(event.ID)
	if err != nil {
		return Result{}, err
	}

	batchID := "family_" + uuid.NewString()

	var confirmed int
	var alreadyConfirmed []string
	similarMatch := ""

	for _, name := range valid {
		exists, err := s.confirmations.ExistsExact(event.ID, name)
		if err != nil {
			return Result{}, err
		}
		if exists {
			alreadyConfirmed = append(alreadyConfirmed, name)
			continue
		}

		// The family path only applies the one-word first-name check; the
		// two-word refinement of the single-guest path intentionally does
		// not run here. The comparison happens in Go so accented first
		// names fold correctly.
		if len(strings.Fields(name)) == 1 {
			if match, found := guestmatch.FirstNameMatch(name, existing); found {
				if similarMatch == "" {
					similarMatch = match
				}
				continue
			}
		}

		if _, err := s.confirmations.Create(event.ID, name, &batchID); err != nil {
			if errors.Is(err, store.ErrDuplicateName) {
				alreadyConfirmed = append(alreadyConfirmed, name)
				continue
			}
			return Result{}, err
		}
		existing = append(existing, name)
		confirmed++
	}

	if similarMatch != "" {
		r := reject(ReasonNeedsFullName,
			fmt.Sprintf("Já existe alguém com o nome %q confirmado. Use nome completo para distinguir.", similarMatch))
		r.EventID = event.ID
		r.ConfirmedCount = confirmed
		return r, nil
	}

	if confirmed == 0 && len(alreadyConfirmed) > 0 {
		label := "Este nome já foi confirmado"
		if len(alreadyConfirmed) > 1 {
			label = "Estes nomes já foram confirmados"
		}
		r := reject(ReasonDuplicate, label+": "+strings.Join(alreadyConfirmed, ", "))
		r.EventID = event.ID
		return r, nil
	}

	var message string
	switch {
	case confirmed == len(valid) && confirmed == 1:
		message = "Presença confirmada com sucesso!"
	case confirmed == len(valid):
		message = fmt.Sprintf("%d presenças confirmadas com sucesso!", confirmed)
	default:
		message = fmt.Sprintf("%d de %d presenças confirmadas.", confirmed, len(valid))
		if len(alreadyConfirmed) > 0 {
			message += " Já confirmados: " + strings.Join(alreadyConfirmed, ", ")
		}
	}

	return Result{
		OK:             true,
		Message:        message,
		EventID:        event.ID,
		ConfirmedCount: confirmed,
	}, nil
}
