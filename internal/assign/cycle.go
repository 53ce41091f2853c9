// Package assign computes gift-giving assignments.
//
// An assignment is a single directed cycle over every participant: shuffle the
// roster uniformly, then let each participant give to the next one, wrapping
// around at the end. A single n-cycle has no fixed points for n >= 2, so nobody
// draws themselves and no closed sub-groups form.
package assign

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

var (
	ErrTooFewParticipants = errors.New("at least two participants are required")
	ErrDuplicateID        = errors.New("duplicate participant id")
	ErrInvalidAssignment  = errors.New("invalid assignment")
)

// Link is one "gives to" edge of an assignment.
type Link struct {
	GiverID    string
	ReceiverID string
}

// Shuffler permutes n elements in place through swap.
// *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Default shuffles with the randomly seeded, concurrency-safe top-level
// math/rand/v2 generator.
var Default Shuffler = globalShuffler{}

// Cycle shuffles ids with src (Default when nil) and links position i to
// position (i+1) mod n. The input slice is not modified.
func Cycle(ids []string, src Shuffler) ([]Link, error) {
	if len(ids) < 2 {
		return nil, ErrTooFewParticipants
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}

	if src == nil {
		src = Default
	}

	order := slices.Clone(ids)
	src.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	links := make([]Link, len(order))
	for i, giver := range order {
		links[i] = Link{
			GiverID:    giver,
			ReceiverID: order[(i+1)%len(order)],
		}
	}
	return links, nil
}

// Verify checks that links form exactly one cycle covering every id once.
func Verify(ids []string, links []Link) error {
	if len(ids) < 2 {
		return ErrTooFewParticipants
	}
	if len(links) != len(ids) {
		return fmt.Errorf("%w: %d links for %d participants", ErrInvalidAssignment, len(links), len(ids))
	}

	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}

	next := make(map[string]string, len(links))
	received := make(map[string]struct{}, len(links))
	for _, l := range links {
		if _, ok := members[l.GiverID]; !ok {
			return fmt.Errorf("%w: unknown giver %s", ErrInvalidAssignment, l.GiverID)
		}
		if _, ok := members[l.ReceiverID]; !ok {
			return fmt.Errorf("%w: unknown receiver %s", ErrInvalidAssignment, l.ReceiverID)
		}
		if l.GiverID == l.ReceiverID {
			return fmt.Errorf("%w: %s gives to itself", ErrInvalidAssignment, l.GiverID)
		}
		if _, dup := next[l.GiverID]; dup {
			return fmt.Errorf("%w: %s gives twice", ErrInvalidAssignment, l.GiverID)
		}
		if _, dup := received[l.ReceiverID]; dup {
			return fmt.Errorf("%w: %s receives twice", ErrInvalidAssignment, l.ReceiverID)
		}
		next[l.GiverID] = l.ReceiverID
		received[l.ReceiverID] = struct{}{}
	}

	// Walk the chain from the first id; a single cycle returns home after exactly n hops.
	start := ids[0]
	current := start
	for hop := 1; hop <= len(ids); hop++ {
		current = next[current]
		if current == start && hop != len(ids) {
			return fmt.Errorf("%w: cycle of length %d, want %d", ErrInvalidAssignment, hop, len(ids))
		}
	}
	if current != start {
		return fmt.Errorf("%w: chain does not return to start", ErrInvalidAssignment)
	}
	return nil
}
