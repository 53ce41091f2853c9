package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/pkg/api"
)

func TestParticipantService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	host := register(t, c, "host@example.com")
	event := createEvent(t, c, host, "Neighbours")

	joined, err := c.participant.JoinEvent(ctx, connect.NewRequest(&api.JoinEventRequest{
		EventSlug: event.Slug,
		Name:      "  Zoë   Smith ",
	}))
	if err != nil {
		t.Fatalf("JoinEvent failed: %v", err)
	}
	me := joined.Msg.Participant
	if me.Name != "Zoë Smith" {
		t.Errorf("expected sanitized name, got %q", me.Name)
	}
	if me.EventName != "Neighbours" || me.EventMessage != "Budget is $25" {
		t.Errorf("unexpected event header: %+v", me)
	}

	t.Run("unknown slug", func(t *testing.T) {
		_, err := c.participant.JoinEvent(ctx, connect.NewRequest(&api.JoinEventRequest{EventSlug: "nope", Name: "X"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := c.participant.GetParticipant(ctx, connect.NewRequest(&api.GetParticipantRequest{Token: "nope"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("receiver before assignment", func(t *testing.T) {
		resp, err := c.participant.GetReceiver(ctx, connect.NewRequest(&api.GetReceiverRequest{Token: me.Token}))
		if err != nil {
			t.Fatalf("GetReceiver failed: %v", err)
		}
		if resp.Msg.Assigned || resp.Msg.Receiver != nil {
			t.Errorf("expected no receiver yet, got %+v", resp.Msg)
		}
	})

	t.Run("empty concept", func(t *testing.T) {
		_, err := c.participant.SubmitConcept(ctx, connect.NewRequest(&api.SubmitConceptRequest{Token: me.Token, Concept: " \n "}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("submit once", func(t *testing.T) {
		resp, err := c.participant.SubmitConcept(ctx, connect.NewRequest(&api.SubmitConceptRequest{Token: me.Token, Concept: "a plant"}))
		if err != nil {
			t.Fatalf("SubmitConcept failed: %v", err)
		}
		if resp.Msg.Participant.Concept != "a plant" {
			t.Errorf("expected concept to be stored, got %q", resp.Msg.Participant.Concept)
		}

		_, err = c.participant.SubmitConcept(ctx, connect.NewRequest(&api.SubmitConceptRequest{Token: me.Token, Concept: "something else"}))
		assertCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("read back", func(t *testing.T) {
		resp, err := c.participant.GetParticipant(ctx, connect.NewRequest(&api.GetParticipantRequest{Token: me.Token}))
		if err != nil {
			t.Fatalf("GetParticipant failed: %v", err)
		}
		if resp.Msg.Participant.Concept != "a plant" || resp.Msg.Participant.Closed {
			t.Errorf("unexpected participant: %+v", resp.Msg.Participant)
		}
	})
}
