package entities

import "time"

// Participant represents a person taking part in the exchange.
type Participant struct {
	ID         string
	Name       string
	Phone      string
	Token      string
	AssignedTo string // participant ID, empty until the draw
	JoinedAt   time.Time
}
