package web

import (
	"time"

	"secretsanta/internal/domain/entities"
	"secretsanta/internal/domain/schedule"
	"secretsanta/internal/domain/view"
	"secretsanta/pkg/datetime"
)

// viewResponse is what a browser renders. It carries no assignment but the
// viewer's own; participant links only appear in the organizer view.
type viewResponse struct {
	Mode      view.Mode            `json:"mode"`
	Message   string               `json:"message"`
	Notice    string               `json:"notice,omitempty"`
	Deferred  bool                 `json:"deferred,omitempty"`
	Closed    bool                 `json:"closed,omitempty"`
	ErrorCode string               `json:"errorCode,omitempty"`
	Event     *eventResponse       `json:"event,omitempty"`
	Me        *participantResponse `json:"me,omitempty"`
	Assignee  *assigneeResponse    `json:"assignee,omitempty"`
}

type eventResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Status           entities.EventStatus  `json:"status"`
	DrawDate         time.Time             `json:"drawDate"`
	DrawDateLabel    string                `json:"drawDateLabel"`
	DrawnAt          *time.Time            `json:"drawnAt,omitempty"`
	ExpiresAt        *time.Time            `json:"expiresAt,omitempty"`
	JoinLink         string                `json:"joinLink"`
	ParticipantCount int                   `json:"participantCount"`
	Participants     []participantResponse `json:"participants,omitempty"`
}

type participantResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone,omitempty"`
	Link     string    `json:"link,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

type assigneeResponse struct {
	Name string `json:"name"`
}

func joinLink(e *entities.Event) string {
	return "/?event=" + e.ID
}

func participantLink(p *entities.Participant) string {
	return "/?p=" + p.Token
}

func (h *Handler) present(locale string, v view.View) viewResponse {
	resp := viewResponse{
		Mode:      v.Mode,
		Deferred:  v.Deferred,
		Closed:    v.Closed,
		ErrorCode: v.ErrorCode,
	}
	if v.StorageDegraded {
		resp.Notice = h.i18n.T(locale, "notice.storage_unavailable", nil)
	}

	switch v.Mode {
	case view.ModeOrganizer:
		resp.Event = h.eventBody(v.Event, true)
		resp.Message = h.organizerMessage(locale, v)
	case view.ModeJoin:
		resp.Event = h.eventBody(v.Event, false)
		key := "view.join"
		if v.Closed {
			key = "view.join_closed"
		}
		resp.Message = h.i18n.T(locale, key, map[string]any{"Event": v.Event.Name})
	case view.ModeParticipantWaiting:
		resp.Event = h.eventBody(v.Event, false)
		resp.Me = meBody(v.Participant)
		resp.Message = h.i18n.T(locale, "view.participant_waiting", map[string]any{
			"Name":     v.Participant.Name,
			"DrawDate": datetime.Format(v.Event.DrawDate, h.location),
		})
	case view.ModeParticipantAssigned:
		resp.Event = h.eventBody(v.Event, false)
		resp.Me = meBody(v.Participant)
		assignee := ""
		if v.Assignee != nil {
			assignee = v.Assignee.Name
			resp.Assignee = &assigneeResponse{Name: assignee}
		}
		resp.Message = h.i18n.T(locale, "view.participant_assigned", map[string]any{
			"Name":     v.Participant.Name,
			"Assignee": assignee,
		})
	default:
		resp.Message = h.i18n.T(locale, "view."+string(v.Mode), nil)
	}
	return resp
}

func (h *Handler) organizerMessage(locale string, v view.View) string {
	e := v.Event
	switch {
	case e.IsCompleted():
		return h.i18n.T(locale, "view.organizer_completed", map[string]any{
			"DrawnAt":   datetime.Format(e.DrawnAt, h.location),
			"ExpiresAt": datetime.Format(schedule.ExpiresAt(e), h.location),
		})
	case v.Deferred:
		return h.i18n.T(locale, "view.organizer_deferred", nil)
	default:
		return h.i18n.T(locale, "view.organizer", map[string]any{
			"Count":    len(e.Participants),
			"DrawDate": datetime.Format(e.DrawDate, h.location),
		})
	}
}

// eventBody lists participants only for the organizer, with their private
// links so they can be handed out.
func (h *Handler) eventBody(e *entities.Event, organizer bool) *eventResponse {
	out := &eventResponse{
		ID:               e.ID,
		Name:             e.Name,
		Status:           e.Status,
		DrawDate:         e.DrawDate,
		DrawDateLabel:    datetime.Format(e.DrawDate, h.location),
		JoinLink:         joinLink(e),
		ParticipantCount: len(e.Participants),
	}
	if !e.DrawnAt.IsZero() {
		drawnAt := e.DrawnAt
		expiresAt := schedule.ExpiresAt(e)
		out.DrawnAt = &drawnAt
		out.ExpiresAt = &expiresAt
	}
	if organizer {
		out.Participants = make([]participantResponse, 0, len(e.Participants))
		for i := range e.Participants {
			out.Participants = append(out.Participants, *meBody(&e.Participants[i]))
		}
	}
	return out
}

func meBody(p *entities.Participant) *participantResponse {
	return &participantResponse{
		ID:       p.ID,
		Name:     p.Name,
		Phone:    p.Phone,
		Link:     participantLink(p),
		JoinedAt: p.JoinedAt,
	}
}
