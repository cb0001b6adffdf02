package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"secretsanta/internal/domain"
)

var errInvalidRequest = errors.New("requête invalide")

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) locale(c *gin.Context) string {
	return h.i18n.Match(c.GetHeader("Accept-Language"))
}

func statusFor(code string) int {
	switch code {
	case "not_found":
		return http.StatusNotFound
	case "event_completed", "event_exists":
		return http.StatusConflict
	case "invalid_name", "draw_date_required", "invalid_request":
		return http.StatusBadRequest
	case "insufficient_participants":
		return http.StatusUnprocessableEntity
	case "storage_unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) errorBody(locale string, err error) (int, errorResponse) {
	code := domain.Code(err)
	if errors.Is(err, errInvalidRequest) {
		code = "invalid_request"
		return statusFor(code), errorResponse{Error: code, Message: h.i18n.T(locale, "error.invalid_request", nil)}
	}
	if code == "" {
		code = "unknown"
	}
	return statusFor(code), errorResponse{Error: code, Message: h.i18n.Error(locale, err)}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status, body := h.errorBody(h.locale(c), err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("❌ Erreur serveur")
	}
	c.AbortWithStatusJSON(status, body)
}
