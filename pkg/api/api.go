// Package api defines the request and response messages of the santa.v1 RPC
// services. Messages travel as JSON; field names follow protojson casing.
package api

// Host is a registered event organizer.
type Host struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Event is a gift exchange as seen by its host.
type Event struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Message         string `json:"message,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
	AssignmentRunAt int64  `json:"assignmentRunAt,omitempty"`
	Closed          bool   `json:"closed"`
}

// Participant is a roster entry as seen by the host. Concepts stay private.
type Participant struct {
	ID         string `json:"id"`
	EventID    string `json:"eventId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	HasConcept bool   `json:"hasConcept"`
}

// ParticipantView is what a participant sees through their own token.
type ParticipantView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Token        string `json:"token"`
	Concept      string `json:"concept,omitempty"`
	EventName    string `json:"eventName"`
	EventSlug    string `json:"eventSlug"`
	EventMessage string `json:"eventMessage,omitempty"`
	Closed       bool   `json:"closed"`
}

// Receiver is the person a participant gives a gift to.
type Receiver struct {
	Name    string `json:"name"`
	Concept string `json:"concept"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Host  *Host  `json:"host"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Host  *Host  `json:"host"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentHostRequest struct{}

type GetCurrentHostResponse struct {
	Host *Host `json:"host"`
}

type CreateEventRequest struct {
	Name    string `json:"name"`
	Message string `json:"message,omitempty"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
}

type GetEventRequest struct {
	EventID string `json:"eventId"`
}

type GetEventResponse struct {
	Event            *Event         `json:"event"`
	Participants     []*Participant `json:"participants"`
	Submitted        int32          `json:"submitted"`
	Total            int32          `json:"total"`
	CanRunAssignment bool           `json:"canRunAssignment"`
}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

type DeleteEventRequest struct {
	EventID string `json:"eventId"`
}

type DeleteEventResponse struct{}

type AddParticipantRequest struct {
	EventID string `json:"eventId"`
	Name    string `json:"name"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
	// Token is returned once so the host can send the participant their private link.
	Token string `json:"token"`
}

type RemoveParticipantRequest struct {
	EventID       string `json:"eventId"`
	ParticipantID string `json:"participantId"`
}

type RemoveParticipantResponse struct{}

type RunAssignmentRequest struct {
	EventID string `json:"eventId"`
}

type RunAssignmentResponse struct {
	Event *Event `json:"event"`
}

type JoinEventRequest struct {
	EventSlug string `json:"eventSlug"`
	Name      string `json:"name"`
}

type JoinEventResponse struct {
	Participant *ParticipantView `json:"participant"`
}

type GetParticipantRequest struct {
	Token string `json:"token"`
}

type GetParticipantResponse struct {
	Participant *ParticipantView `json:"participant"`
}

type SubmitConceptRequest struct {
	Token   string `json:"token"`
	Concept string `json:"concept"`
}

type SubmitConceptResponse struct {
	Participant *ParticipantView `json:"participant"`
}

type GetReceiverRequest struct {
	Token string `json:"token"`
}

type GetReceiverResponse struct {
	// Assigned is false until the event's assignment has run.
	Assigned bool      `json:"assigned"`
	Receiver *Receiver `json:"receiver,omitempty"`
}
