// Package models defines the core domain models for the gift exchange.
//
// # Models
//
//   - Host: registered account that owns events
//   - Event: one gift-exchange instance with its own roster and lifecycle
//   - Participant: member of an event's roster, identified by a private token
//
// # Design Principles
//
// 1. **Event owns participants**: deleting an Event deletes its Participants
// 2. **Weak links between participants**: a receiver is stored as a participant ID, never a pointer
// 3. **Per-event lifecycle**: AssignmentRunAt on the Event is the only open/closed flag
// 4. **Timestamps**: Unix seconds, zero meaning "not set"
package models
