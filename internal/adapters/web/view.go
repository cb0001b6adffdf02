package web

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"secretsanta/internal/domain/view"
)

func (h *Handler) route(c *gin.Context) (view.Route, view.Identity) {
	token, _ := c.Cookie(TokenCookie)
	return view.Route{EventID: c.Query("event"), Token: c.Query("p")}, view.Identity{Token: token}
}

// GetView evaluates the draw and retention rules once and returns the view.
// GET /api/view?event=<id> | ?p=<token>
func (h *Handler) GetView(c *gin.Context) {
	route, identity := h.route(c)
	v, err := h.viewUseCase.Load(c.Request.Context(), route, identity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(h.locale(c), v))
}

type streamMessage struct {
	name string
	data any
}

// StreamView pushes the view as server-sent events: once on connect, then
// each time the periodic evaluation changes it. Closing the connection stops
// the timer.
// GET /api/view/stream?event=<id> | ?p=<token>
func (h *Handler) StreamView(c *gin.Context) {
	route, identity := h.route(c)
	locale := h.locale(c)
	ctx := c.Request.Context()

	updates := make(chan streamMessage, 1)
	go func() {
		defer close(updates)
		err := h.viewUseCase.Watch(ctx, route, identity, h.tickInterval, func(v view.View, err error) {
			msg := streamMessage{name: "view", data: h.present(locale, v)}
			if err != nil {
				_, body := h.errorBody(locale, err)
				msg = streamMessage{name: "error", data: body}
			}
			select {
			case updates <- msg:
			case <-ctx.Done():
			}
		})
		if err != nil {
			log.WithError(err).Warn("⚠️ Suivi de la vue interrompu")
		}
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(io.Writer) bool {
		msg, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent(msg.name, msg.data)
		return true
	})
}

// GetMe returns the participant this browser joined as.
// GET /api/me
func (h *Handler) GetMe(c *gin.Context) {
	_, identity := h.route(c)
	p, err := h.eventUseCase.LookupByToken(c.Request.Context(), identity.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meBody(p))
}
