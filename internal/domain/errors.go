package domain

import "errors"

// Domain errors.
var (
	ErrInsufficientParticipants = errors.New("il faut au moins deux participants pour le tirage")
	ErrDuplicateParticipant     = errors.New("participant présent deux fois dans le tirage")
	ErrInvalidAssignment        = errors.New("attribution invalide")
	ErrEventAlreadyCompleted    = errors.New("le tirage a déjà eu lieu")
	ErrEventNotFound            = errors.New("événement non trouvé")
	ErrEventExists              = errors.New("un événement existe déjà")
	ErrParticipantNotFound      = errors.New("participant non trouvé")
	ErrStorageUnavailable       = errors.New("stockage local indisponible")
	ErrInvalidName              = errors.New("le nom est requis")
	ErrDrawDateRequired         = errors.New("la date du tirage est requise")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrInsufficientParticipants, "insufficient_participants"},
	{ErrDuplicateParticipant, "invalid_assignment"},
	{ErrInvalidAssignment, "invalid_assignment"},
	{ErrEventAlreadyCompleted, "event_completed"},
	{ErrEventNotFound, "not_found"},
	{ErrParticipantNotFound, "not_found"},
	{ErrEventExists, "event_exists"},
	{ErrStorageUnavailable, "storage_unavailable"},
	{ErrInvalidName, "invalid_name"},
	{ErrDrawDateRequired, "draw_date_required"},
}

// Code returns the stable code of the first domain error found in err's chain,
// or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
