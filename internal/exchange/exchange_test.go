package exchange_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/santa/internal/assign"
	"github.com/mmynk/santa/internal/exchange"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
	"github.com/mmynk/santa/internal/storage/sqlite"
)

func newStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "santa.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newService(t *testing.T, store storage.Store, opts ...exchange.Option) *exchange.Service {
	t.Helper()
	opts = append([]exchange.Option{
		exchange.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return exchange.New(store, opts...)
}

// seedEvent creates an event with the given participants; the first
// `submitted` of them submit a concept.
func seedEvent(t *testing.T, svc *exchange.Service, names []string, submitted int) (*models.Event, []*models.Participant) {
	t.Helper()
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "", "Office Party", "")
	require.NoError(t, err)

	participants := make([]*models.Participant, 0, len(names))
	for i, name := range names {
		p, err := svc.AddParticipant(ctx, event.ID, name)
		require.NoError(t, err)
		if i < submitted {
			p, err = svc.SubmitConcept(ctx, p.Token, "something for "+name)
			require.NoError(t, err)
		}
		participants = append(participants, p)
	}
	return event, participants
}

// receivers returns giver ID -> receiver ID for the event.
func receivers(t *testing.T, store storage.Store, eventID string) map[string]string {
	t.Helper()
	roster, err := store.ListParticipants(context.Background(), eventID)
	require.NoError(t, err)
	out := make(map[string]string, len(roster))
	for _, p := range roster {
		out[p.ID] = p.ReceiverID
	}
	return out
}

func assertSingleCycle(t *testing.T, store storage.Store, eventID string) {
	t.Helper()
	roster, err := store.ListParticipants(context.Background(), eventID)
	require.NoError(t, err)

	ids := make([]string, len(roster))
	links := make([]assign.Link, len(roster))
	for i, p := range roster {
		require.NotEmpty(t, p.ReceiverID, "participant %s has no receiver", p.Name)
		ids[i] = p.ID
		links[i] = assign.Link{GiverID: p.ID, ReceiverID: p.ReceiverID}
	}
	assert.NoError(t, assign.Verify(ids, links))
}

func TestRunAssignment_OfficeParty(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store)
	ctx := context.Background()

	event, people := seedEvent(t, svc, []string{"A", "B", "C"}, 3)

	result, err := svc.RunAssignment(ctx, event.ID, true)
	require.NoError(t, err)
	assert.True(t, result.Event.Closed())
	assert.Equal(t, 3, result.Size())

	byID := make(map[string]*models.Participant, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	seen := make(map[string]bool)
	for _, p := range people {
		receiver, err := svc.GetReceiver(ctx, p.Token)
		require.NoError(t, err)
		require.NotNil(t, receiver)
		assert.NotEqual(t, p.ID, receiver.ID, "%s draws themselves", p.Name)
		assert.Contains(t, byID, receiver.ID)
		assert.False(t, seen[receiver.ID], "%s drawn twice", receiver.Name)
		seen[receiver.ID] = true
	}

	// Following receivers from A returns to A after exactly 3 hops.
	next := receivers(t, store, event.ID)
	current := people[0].ID
	for hop := 1; hop <= 3; hop++ {
		current = next[current]
		if hop < 3 {
			assert.NotEqual(t, people[0].ID, current, "returned to A after %d hops", hop)
		}
	}
	assert.Equal(t, people[0].ID, current)
}

func TestRunAssignment_SingleCycleForManySizes(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store, exchange.WithShuffler(rand.New(rand.NewPCG(3, 5))))
	ctx := context.Background()

	for n := 2; n <= 12; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('A' + i))
		}
		event, _ := seedEvent(t, svc, names, n)

		_, err := svc.RunAssignment(ctx, event.ID, true)
		require.NoError(t, err, "n=%d", n)
		assertSingleCycle(t, store, event.ID)
	}
}

func TestRunAssignment_Twice(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store)
	ctx := context.Background()

	event, _ := seedEvent(t, svc, []string{"Alice", "Bob", "Carol", "Dave"}, 4)
	first, err := svc.RunAssignment(ctx, event.ID, true)
	require.NoError(t, err)
	before := receivers(t, store, event.ID)

	_, err = svc.RunAssignment(ctx, event.ID, true)
	assert.ErrorIs(t, err, exchange.ErrEventAlreadyClosed)
	assert.ErrorIs(t, err, exchange.ErrEventClosed)

	after := receivers(t, store, event.ID)
	assert.Equal(t, before, after)

	got, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Event.AssignmentRunAt, got.AssignmentRunAt)
}

func TestRunAssignment_IncompleteSubmissions(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store)

	event, _ := seedEvent(t, svc, []string{"A", "B", "C", "D", "E"}, 2)

	_, err := svc.RunAssignment(context.Background(), event.ID, true)
	require.ErrorIs(t, err, exchange.ErrIncompleteSubmissions)

	var incomplete *exchange.IncompleteSubmissionsError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 2, incomplete.Submitted)
	assert.Equal(t, 5, incomplete.Total)
	assert.Contains(t, err.Error(), "2 out of 5")

	got, err := svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.False(t, got.Closed())
	for _, r := range receivers(t, store, event.ID) {
		assert.Empty(t, r)
	}
}

func TestRunAssignment_TooFewParticipants(t *testing.T) {
	tests := []struct {
		name    string
		roster  []string
		wantErr error
	}{
		{name: "no participants", roster: nil, wantErr: exchange.ErrEmptyRoster},
		{name: "one participant", roster: []string{"Solo"}, wantErr: exchange.ErrInsufficientParticipants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			svc := newService(t, store)
			event, _ := seedEvent(t, svc, tt.roster, len(tt.roster))

			_, err := svc.RunAssignment(context.Background(), event.ID, true)
			assert.ErrorIs(t, err, tt.wantErr)

			got, err := svc.GetEvent(context.Background(), event.ID)
			require.NoError(t, err)
			assert.False(t, got.Closed())
			for _, r := range receivers(t, store, event.ID) {
				assert.Empty(t, r)
			}
		})
	}
}

func TestRunAssignment_PreconditionOrder(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store)
	ctx := context.Background()

	t.Run("unauthorized wins over everything", func(t *testing.T) {
		event, _ := seedEvent(t, svc, nil, 0)
		_, err := svc.RunAssignment(ctx, event.ID, false)
		assert.ErrorIs(t, err, exchange.ErrUnauthorized)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.RunAssignment(ctx, "nonexistent-id", true)
		assert.ErrorIs(t, err, exchange.ErrEventNotFound)
	})

	t.Run("unauthorized leaves event open", func(t *testing.T) {
		event, _ := seedEvent(t, svc, []string{"A", "B"}, 2)
		_, err := svc.RunAssignment(ctx, event.ID, false)
		assert.ErrorIs(t, err, exchange.ErrUnauthorized)

		got, err := svc.GetEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.False(t, got.Closed())
	})
}

func TestRunAssignment_UsesClock(t *testing.T) {
	store := newStore(t)
	at := time.Date(2026, time.December, 1, 18, 0, 0, 0, time.UTC)
	svc := newService(t, store, exchange.WithClock(func() time.Time { return at }))

	event, _ := seedEvent(t, svc, []string{"A", "B"}, 2)
	result, err := svc.RunAssignment(context.Background(), event.ID, true)
	require.NoError(t, err)
	assert.Equal(t, at.Unix(), result.Event.AssignmentRunAt)
}

func TestRunAssignment_RejectsEpochClock(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store, exchange.WithClock(func() time.Time { return time.Unix(0, 0) }))
	ctx := context.Background()

	event, _ := seedEvent(t, svc, []string{"A", "B"}, 2)
	_, err := svc.RunAssignment(ctx, event.ID, true)
	require.Error(t, err)

	got, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, got.Closed())
	for giver, receiver := range receivers(t, store, event.ID) {
		assert.Empty(t, receiver, "%s has a receiver after a failed run", giver)
	}
}

// failingTx fails the nth SetReceiver call.
type failingTx struct {
	storage.Tx
	calls  *int
	failAt int
}

var errDiskFull = errors.New("disk full")

func (f failingTx) SetReceiver(ctx context.Context, participantID, receiverID string) error {
	*f.calls++
	if *f.calls == f.failAt {
		return errDiskFull
	}
	return f.Tx.SetReceiver(ctx, participantID, receiverID)
}

type failingStore struct {
	storage.Store
	failAt int
}

func (f *failingStore) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	calls := 0
	return f.Store.InTx(ctx, func(tx storage.Tx) error {
		return fn(failingTx{Tx: tx, calls: &calls, failAt: f.failAt})
	})
}

func TestRunAssignment_AtomicCommit(t *testing.T) {
	store := newStore(t)
	seeder := newService(t, store)
	event, _ := seedEvent(t, seeder, []string{"A", "B", "C", "D"}, 4)

	svc := newService(t, &failingStore{Store: store, failAt: 3})
	_, err := svc.RunAssignment(context.Background(), event.ID, true)
	require.ErrorIs(t, err, errDiskFull)

	got, err := seeder.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.False(t, got.Closed(), "event closed despite failed commit")
	for id, r := range receivers(t, store, event.ID) {
		assert.Empty(t, r, "receiver written for %s despite rollback", id)
	}

	// The event is still usable once the store recovers.
	_, err = seeder.RunAssignment(context.Background(), event.ID, true)
	require.NoError(t, err)
	assertSingleCycle(t, store, event.ID)
}

func TestRunAssignment_Concurrent(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store)
	event, _ := seedEvent(t, svc, []string{"A", "B", "C", "D", "E"}, 5)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RunAssignment(context.Background(), event.ID, true)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, exchange.ErrEventAlreadyClosed)
	}
	assert.Equal(t, 1, successes)
	assertSingleCycle(t, store, event.ID)
}

func TestAddParticipant_RacesAssignment(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store)
	event, _ := seedEvent(t, svc, []string{"A", "B", "C"}, 3)

	var wg sync.WaitGroup
	var runErr, addErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, runErr = svc.RunAssignment(context.Background(), event.ID, true)
	}()
	go func() {
		defer wg.Done()
		_, addErr = svc.AddParticipant(context.Background(), event.ID, "Late")
	}()
	wg.Wait()

	if runErr == nil {
		// Close landed first: the late joiner must have been rejected.
		assert.ErrorIs(t, addErr, exchange.ErrEventClosed)
		assertSingleCycle(t, store, event.ID)
	} else {
		// Join landed first: the newcomer has no concept yet.
		require.NoError(t, addErr)
		assert.ErrorIs(t, runErr, exchange.ErrIncompleteSubmissions)
	}
}
