package entities

import (
	"fmt"
	"time"

	"secretsanta/internal/domain"
)

// EventStatus is the persisted lifecycle of an event.
type EventStatus string

const (
	StatusPending   EventStatus = "pending"
	StatusCompleted EventStatus = "completed"
)

type Event struct {
	ID           string
	Name         string
	DrawDate     time.Time
	Status       EventStatus
	CreatedAt    time.Time
	DrawnAt      time.Time // zero = not drawn yet
	Participants []Participant
}

func (e *Event) IsCompleted() bool {
	return e.Status == StatusCompleted
}

func (e *Event) IsPending() bool {
	return e.Status == StatusPending
}

// Clone returns a deep copy so that callers can prepare a mutation without
// exposing a half-applied record.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	out := *e
	out.Participants = make([]Participant, len(e.Participants))
	copy(out.Participants, e.Participants)
	return &out
}

// FindParticipant returns the participant with the given id, or nil.
func (e *Event) FindParticipant(id string) *Participant {
	for i := range e.Participants {
		if e.Participants[i].ID == id {
			return &e.Participants[i]
		}
	}
	return nil
}

// FindByToken returns the participant owning token, or nil.
func (e *Event) FindByToken(token string) *Participant {
	if token == "" {
		return nil
	}
	for i := range e.Participants {
		if e.Participants[i].Token == token {
			return &e.Participants[i]
		}
	}
	return nil
}

// Assignee returns the participant p has to gift, or nil before the draw.
func (e *Event) Assignee(p *Participant) *Participant {
	if p == nil || p.AssignedTo == "" {
		return nil
	}
	return e.FindParticipant(p.AssignedTo)
}

func (e *Event) AddParticipant(p Participant) error {
	if !e.IsPending() {
		return domain.ErrEventAlreadyCompleted
	}
	e.Participants = append(e.Participants, p)
	return nil
}

func (e *Event) UpdateParticipant(id, name, phone string) (*Participant, error) {
	if !e.IsPending() {
		return nil, domain.ErrEventAlreadyCompleted
	}
	p := e.FindParticipant(id)
	if p == nil {
		return nil, domain.ErrParticipantNotFound
	}
	p.Name = name
	p.Phone = phone
	return p, nil
}

func (e *Event) RemoveParticipant(id string) error {
	if !e.IsPending() {
		return domain.ErrEventAlreadyCompleted
	}
	for i := range e.Participants {
		if e.Participants[i].ID == id {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

// ApplyAssignments completes the event with the given giver -> receiver
// mapping. The mapping must be a derangement of the current participants;
// nothing is modified when it is not.
func (e *Event) ApplyAssignments(mapping map[string]string, drawnAt time.Time) error {
	if !e.IsPending() {
		return domain.ErrEventAlreadyCompleted
	}
	if len(e.Participants) < 2 {
		return domain.ErrInsufficientParticipants
	}
	if len(mapping) != len(e.Participants) {
		return fmt.Errorf("%w: %d attributions pour %d participants", domain.ErrInvalidAssignment, len(mapping), len(e.Participants))
	}
	received := make(map[string]bool, len(mapping))
	for _, p := range e.Participants {
		to, ok := mapping[p.ID]
		if !ok {
			return fmt.Errorf("%w: %s sans destinataire", domain.ErrInvalidAssignment, p.ID)
		}
		if to == p.ID {
			return fmt.Errorf("%w: %s tiré pour lui-même", domain.ErrInvalidAssignment, p.ID)
		}
		if e.FindParticipant(to) == nil {
			return fmt.Errorf("%w: destinataire %s inconnu", domain.ErrInvalidAssignment, to)
		}
		if received[to] {
			return fmt.Errorf("%w: %s reçoit deux cadeaux", domain.ErrInvalidAssignment, to)
		}
		received[to] = true
	}

	for i := range e.Participants {
		e.Participants[i].AssignedTo = mapping[e.Participants[i].ID]
	}
	e.Status = StatusCompleted
	e.DrawnAt = drawnAt
	return nil
}
