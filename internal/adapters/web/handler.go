package web

import (
	"time"

	"secretsanta/internal/ports/input"
	"secretsanta/internal/ports/output"
)

// TokenCookie remembers, per browser, which participant joined from it.
const TokenCookie = "santa_token"

// Localizer is the translator plus the helpers the HTTP layer needs.
type Localizer interface {
	output.Translator
	Match(acceptLanguage string) string
	Error(locale string, err error) string
}

// Handler serves the HTTP surface using use cases.
type Handler struct {
	eventUseCase input.EventUseCase
	drawUseCase  input.DrawUseCase
	viewUseCase  input.ViewUseCase
	i18n         Localizer
	location     *time.Location
	tickInterval time.Duration
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	drawUseCase input.DrawUseCase,
	viewUseCase input.ViewUseCase,
	i18n Localizer,
	location *time.Location,
	tickInterval time.Duration,
) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		eventUseCase: eventUseCase,
		drawUseCase:  drawUseCase,
		viewUseCase:  viewUseCase,
		i18n:         i18n,
		location:     location,
		tickInterval: tickInterval,
	}
}
