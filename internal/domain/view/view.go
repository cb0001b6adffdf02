// Package view derives what a browser may see from its routing parameters,
// the persisted event and the token this browser remembers.
package view

import (
	"strings"
	"time"

	"secretsanta/internal/domain/entities"
	"secretsanta/internal/domain/schedule"
)

type Mode string

const (
	ModeLoading             Mode = "loading"
	ModeCreateEvent         Mode = "create_event"
	ModeOrganizer           Mode = "organizer"
	ModeJoin                Mode = "join"
	ModeParticipantWaiting  Mode = "participant_waiting"
	ModeParticipantAssigned Mode = "participant_assigned"
	ModeError               Mode = "error"
)

// ErrorNotFound is the only error a resolved view carries: the link points to
// nothing stored on this device.
const ErrorNotFound = "not_found"

// Route holds the routing parameters: ?event=<id> or ?p=<token>.
type Route struct {
	EventID string
	Token   string
}

// Identity is what this browser remembers about itself: the token it got
// when it joined, if any.
type Identity struct {
	Token string
}

type View struct {
	Mode        Mode
	Event       *entities.Event
	Participant *entities.Participant
	Assignee    *entities.Participant
	Deferred    bool // draw is due but fewer than two participants joined
	Closed      bool // join view of an event already drawn
	ErrorCode   string

	// StorageDegraded is set by the caller when changes only live in memory.
	StorageDegraded bool
}

// Loading is the state before the persisted record has been read.
func Loading() View {
	return View{Mode: ModeLoading}
}

// Resolve computes the view. A participant token wins over an event id.
func Resolve(route Route, event *entities.Event, identity Identity, now time.Time) View {
	token := strings.TrimSpace(route.Token)
	eventID := strings.TrimSpace(route.EventID)

	switch {
	case token != "":
		if event == nil {
			return notFound()
		}
		return participantView(event, event.FindByToken(token))

	case eventID != "":
		if event == nil || event.ID != eventID {
			return notFound()
		}
		if p := event.FindByToken(identity.Token); p != nil {
			return participantView(event, p)
		}
		return View{Mode: ModeJoin, Event: event, Closed: event.IsCompleted()}

	default:
		if event == nil {
			return View{Mode: ModeCreateEvent}
		}
		return View{Mode: ModeOrganizer, Event: event, Deferred: schedule.Deferred(event, now)}
	}
}

func participantView(event *entities.Event, p *entities.Participant) View {
	if p == nil {
		return notFound()
	}
	if !event.IsCompleted() {
		return View{Mode: ModeParticipantWaiting, Event: event, Participant: p}
	}
	return View{Mode: ModeParticipantAssigned, Event: event, Participant: p, Assignee: event.Assignee(p)}
}

func notFound() View {
	return View{Mode: ModeError, ErrorCode: ErrorNotFound}
}

// Fingerprint summarizes everything a client renders, so that a periodic
// re-evaluation only publishes actual changes.
func (v View) Fingerprint() string {
	var b strings.Builder
	b.WriteString(string(v.Mode))
	b.WriteByte('|')
	b.WriteString(v.ErrorCode)
	if v.Deferred {
		b.WriteString("|deferred")
	}
	if v.Closed {
		b.WriteString("|closed")
	}
	if v.StorageDegraded {
		b.WriteString("|storage-degraded")
	}
	if v.Event != nil {
		b.WriteString("|" + v.Event.ID + "|" + string(v.Event.Status) + "|" + v.Event.Name)
		b.WriteString("|" + v.Event.DrawDate.UTC().Format(time.RFC3339))
		for _, p := range v.Event.Participants {
			b.WriteString("|" + p.ID + ":" + p.Name)
		}
	}
	if v.Participant != nil {
		b.WriteString("|me=" + v.Participant.ID + ":" + v.Participant.Name)
	}
	if v.Assignee != nil {
		b.WriteString("|to=" + v.Assignee.ID + ":" + v.Assignee.Name)
	}
	return b.String()
}
