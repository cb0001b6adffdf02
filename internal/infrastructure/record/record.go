// Package record is the persisted JSON form of an event, shared by every
// storage backend:
//
//	{"id", "name", "drawDate", "status", "createdAt", "drawnAt",
//	 "participants": [{"id", "name", "phone", "token", "assignedTo", "joinedAt"}]}
//
// Timestamps are RFC 3339; drawnAt and assignedTo are null until the draw.
package record

import (
	"encoding/json"
	"fmt"
	"time"

	"secretsanta/internal/domain/entities"
)

type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	DrawDate     time.Time     `json:"drawDate"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	DrawnAt      *time.Time    `json:"drawnAt"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Token      string    `json:"token"`
	AssignedTo *string   `json:"assignedTo"`
	JoinedAt   time.Time `json:"joinedAt"`
}

func FromDomain(e *entities.Event) Event {
	out := Event{
		ID:           e.ID,
		Name:         e.Name,
		DrawDate:     e.DrawDate.UTC(),
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt.UTC(),
		Participants: make([]Participant, len(e.Participants)),
	}
	if !e.DrawnAt.IsZero() {
		t := e.DrawnAt.UTC()
		out.DrawnAt = &t
	}
	for i, p := range e.Participants {
		rp := Participant{
			ID:       p.ID,
			Name:     p.Name,
			Phone:    p.Phone,
			Token:    p.Token,
			JoinedAt: p.JoinedAt.UTC(),
		}
		if p.AssignedTo != "" {
			to := p.AssignedTo
			rp.AssignedTo = &to
		}
		out.Participants[i] = rp
	}
	return out
}

// ToDomain converts and checks the record: a stored record that breaks the
// pending/completed invariants is rejected rather than half-trusted.
func (r Event) ToDomain() (*entities.Event, error) {
	status := entities.EventStatus(r.Status)
	if status != entities.StatusPending && status != entities.StatusCompleted {
		return nil, fmt.Errorf("record: unknown status %q", r.Status)
	}
	e := &entities.Event{
		ID:           r.ID,
		Name:         r.Name,
		DrawDate:     r.DrawDate,
		Status:       status,
		CreatedAt:    r.CreatedAt,
		Participants: make([]entities.Participant, len(r.Participants)),
	}
	if r.DrawnAt != nil {
		e.DrawnAt = *r.DrawnAt
	}
	if (status == entities.StatusCompleted) != !e.DrawnAt.IsZero() {
		return nil, fmt.Errorf("record: drawnAt does not match status %q", r.Status)
	}
	for i, p := range r.Participants {
		dp := entities.Participant{
			ID:       p.ID,
			Name:     p.Name,
			Phone:    p.Phone,
			Token:    p.Token,
			JoinedAt: p.JoinedAt,
		}
		if p.AssignedTo != nil {
			dp.AssignedTo = *p.AssignedTo
		}
		if (status == entities.StatusCompleted) != (dp.AssignedTo != "") {
			return nil, fmt.Errorf("record: participant %s assignment does not match status %q", p.ID, r.Status)
		}
		e.Participants[i] = dp
	}
	return e, nil
}

func Marshal(e *entities.Event) ([]byte, error) {
	return json.MarshalIndent(FromDomain(e), "", "  ")
}

func Unmarshal(data []byte) (*entities.Event, error) {
	var r Event
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	return r.ToDomain()
}
