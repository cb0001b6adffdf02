package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrEmpty = errors.New("date et heure requises")

// Layouts accepted for a draw date, in the given location unless the value
// carries its own offset (RFC 3339).
var layouts = []string{
	"02/01/2006 15:04", // JJ/MM/AAAA HH:MM
	"2006-01-02T15:04", // <input type="datetime-local">
	"2006-01-02 15:04",
	"02/01/2006",
	"2006-01-02",
}

// Parse reads a draw date. Dates without a time mean midnight.
func Parse(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmpty
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date invalide %q (attendu JJ/MM/AAAA HH:MM, ex: 24/12/2025 18:00)", value)
}

// Format renders t for display in loc.
func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006 à 15:04")
}
