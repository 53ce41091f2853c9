package exchange

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidConcept      = errors.New("invalid concept")
	ErrDuplicateName       = errors.New("a participant with this name already exists")
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNotInEvent          = errors.New("participant does not belong to this event")
	ErrAlreadySubmitted    = errors.New("concept already submitted")
	ErrUnauthorized        = errors.New("not authorized for this event")

	// ErrEventClosed is returned by every roster mutation once the assignment has run.
	ErrEventClosed = errors.New("assignment already run")
	// ErrEventAlreadyClosed is returned when running the assignment a second time.
	// It matches ErrEventClosed as well.
	ErrEventAlreadyClosed = fmt.Errorf("%w: it cannot run again", ErrEventClosed)

	ErrEmptyRoster              = errors.New("event has no participants")
	ErrInsufficientParticipants = errors.New("at least two participants are required")
	ErrIncompleteSubmissions    = errors.New("not all participants have submitted a concept")

	errInvalidClock = errors.New("clock did not return a time after the unix epoch")
)

// IncompleteSubmissionsError reports how many participants have submitted so
// callers can tell the host who is still missing.
type IncompleteSubmissionsError struct {
	Submitted int
	Total     int
}

func (e *IncompleteSubmissionsError) Error() string {
	return fmt.Sprintf("cannot run assignment: only %d out of %d have submitted", e.Submitted, e.Total)
}

// Is makes errors.Is(err, ErrIncompleteSubmissions) hold.
func (e *IncompleteSubmissionsError) Is(target error) bool {
	return target == ErrIncompleteSubmissions
}
