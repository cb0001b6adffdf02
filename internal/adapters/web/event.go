package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/view"
	"secretsanta/pkg/datetime"
)

// tokenCookieMaxAge outlives any event: the record itself is gone 24h after
// the draw.
const tokenCookieMaxAge = int(90 * 24 * time.Hour / time.Second)

type eventRequest struct {
	Name     string `json:"name"`
	DrawDate string `json:"drawDate"` // RFC 3339 or JJ/MM/AAAA HH:MM
}

type participantRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateEvent creates the device's event and returns the organizer view.
// POST /api/events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	drawDate, err := datetime.Parse(req.DrawDate, h.location)
	if errors.Is(err, datetime.ErrEmpty) {
		h.respondError(c, domain.ErrDrawDateRequired)
		return
	}
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.eventUseCase.CreateEvent(ctx, req.Name, drawDate); err != nil {
		h.respondError(c, err)
		return
	}
	v, err := h.viewUseCase.Load(ctx, view.Route{}, view.Identity{})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.present(h.locale(c), v))
}

// DeleteEvent forgets the event and its participants.
// DELETE /api/events
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.eventUseCase.DeleteEvent(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// JoinEvent registers a participant through the shared link and remembers
// them in this browser.
// POST /api/events/:id/participants
func (h *Handler) JoinEvent(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	ctx := c.Request.Context()
	p, err := h.eventUseCase.AddParticipant(ctx, c.Param("id"), req.Name, req.Phone)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, p.Token, tokenCookieMaxAge, "/", "", false, true)

	v, err := h.viewUseCase.Load(ctx, view.Route{Token: p.Token}, view.Identity{Token: p.Token})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.present(h.locale(c), v))
}

// UpdateParticipant lets the organizer fix a name or phone before the draw.
// PUT /api/participants/:id
func (h *Handler) UpdateParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	p, err := h.eventUseCase.UpdateParticipant(c.Request.Context(), c.Param("id"), req.Name, req.Phone)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meBody(p))
}

// RemoveParticipant
// DELETE /api/participants/:id
func (h *Handler) RemoveParticipant(c *gin.Context) {
	if err := h.eventUseCase.RemoveParticipant(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type drawResponse struct {
	Drawn   bool         `json:"drawn"`
	Expired bool         `json:"expired"`
	View    viewResponse `json:"view"`
}

// CheckDraw runs the draw and retention rules now.
// POST /api/draw
func (h *Handler) CheckDraw(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.drawUseCase.Tick(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	v, err := h.viewUseCase.Load(ctx, view.Route{}, view.Identity{})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drawResponse{Drawn: res.Drawn, Expired: res.Expired, View: h.present(h.locale(c), v)})
}
