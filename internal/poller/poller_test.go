package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-livedata/internal/feed"
	"github.com/DoyleJ11/lol-livedata/internal/liveclient"
	"github.com/DoyleJ11/lol-livedata/internal/tracker"
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

type result struct {
	snap ingame.GameSnapshot
	err  error
}

// scriptedFetcher replays results in order and repeats the last one.
type scriptedFetcher struct {
	mu      sync.Mutex
	results []result
}

func (f *scriptedFetcher) AllGameData(context.Context) (ingame.GameSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return r.snap, r.err
}

type memStore struct {
	saved map[string][]ingame.GameEvent
	err   error
}

func (m *memStore) SaveEvents(_ context.Context, gameID string, events []ingame.GameEvent) error {
	if m.err != nil {
		return m.err
	}
	m.saved[gameID] = append(m.saved[gameID], events...)
	return nil
}

type recordingNotifier struct {
	changes []tracker.Change
}

func (r *recordingNotifier) Notify(_ context.Context, changes []tracker.Change) error {
	r.changes = append(r.changes, changes...)
	return nil
}

func snap(gameTime float64, events ...ingame.GameEvent) result {
	return result{snap: ingame.GameSnapshot{
		AllPlayers: []ingame.Player{{SummonerName: "blue1", Team: ingame.TeamOrder}},
		Events:     events,
		GameData:   ingame.GameStats{GameTime: gameTime},
	}}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("game-%d", n)
	}
}

func pollNow(t *testing.T, p *Poller) error {
	t.Helper()
	reply := make(chan error, 1)
	p.Inbox() <- PollNow{Reply: reply}
	select {
	case err := <-reply:
		return err
	case <-time.After(time.Second):
		t.Fatalf("poll did not complete")
		return nil
	}
}

func status(t *testing.T, p *Poller) Status {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s, err := p.Status(ctx)
	require.NoError(t, err)
	return s
}

func TestPoller_PollPublishesAndSinks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := ingame.GameStart{EventHeader: ingame.EventHeader{ID: 0, Time: 0.1}}
	spawn := ingame.MinionsSpawning{EventHeader: ingame.EventHeader{ID: 1, Time: 65}}
	fetch := &scriptedFetcher{results: []result{
		snap(10, start),
		snap(70, start, spawn),
		snap(71, start, spawn),
	}}
	store := &memStore{saved: map[string][]ingame.GameEvent{}}
	notifier := &recordingNotifier{}

	f := feed.New(ctx)
	out := make(chan feed.Update, 8)
	f.Inbox() <- feed.Join{ClientID: "t", Outbox: out}

	p := New(ctx, fetch, f, zap.NewNop(),
		WithInterval(time.Hour),
		WithStore(store),
		WithNotifier(notifier),
		WithGameIDs(sequentialIDs()),
	)

	for i := 0; i < 3; i++ {
		require.NoError(t, pollNow(t, p))
	}

	var versions []int
	for i := 0; i < 3; i++ {
		u := <-out
		versions = append(versions, u.Version)
		assert.Equal(t, "game-1", u.GameID)
	}
	assert.Equal(t, []int{1, 2, 3}, versions)

	assert.Equal(t, []ingame.GameEvent{start, spawn}, store.saved["game-1"])
	require.Len(t, notifier.changes, 3)
	assert.Equal(t, tracker.ChangeGameStarted, notifier.changes[0].Type)

	s := status(t, p)
	assert.Equal(t, 3, s.Polls)
	assert.Equal(t, 0, s.Failures)
	assert.True(t, s.InGame)
	assert.Equal(t, "game-1", s.GameID)
	assert.Equal(t, int64(1), s.State.LastEventID)
}

func TestPoller_NewGameGetsNewID(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := ingame.GameStart{EventHeader: ingame.EventHeader{ID: 0, Time: 0.1}}
	fetch := &scriptedFetcher{results: []result{snap(500, start), snap(2, start)}}
	store := &memStore{saved: map[string][]ingame.GameEvent{}}

	p := New(ctx, fetch, feed.New(ctx), zap.NewNop(),
		WithInterval(time.Hour), WithStore(store), WithGameIDs(sequentialIDs()))

	require.NoError(t, pollNow(t, p))
	require.NoError(t, pollNow(t, p))

	assert.Len(t, store.saved["game-1"], 1)
	assert.Len(t, store.saved["game-2"], 1)
	assert.Equal(t, 2, status(t, p).State.Games)
}

func TestPoller_Failures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	boom := errors.New("boom")
	empty := snap(1)
	empty.snap.AllPlayers = nil
	fetch := &scriptedFetcher{results: []result{
		{err: fmt.Errorf("x: %w", liveclient.ErrGameNotRunning)},
		{err: boom},
		empty,
	}}

	p := New(ctx, fetch, feed.New(ctx), zap.NewNop(), WithInterval(time.Hour))

	assert.ErrorIs(t, pollNow(t, p), liveclient.ErrGameNotRunning)
	assert.ErrorIs(t, pollNow(t, p), boom)
	assert.ErrorIs(t, pollNow(t, p), ingame.ErrNoPlayers)

	s := status(t, p)
	assert.Equal(t, 3, s.Polls)
	assert.Equal(t, 2, s.Failures)
	assert.False(t, s.InGame)
	assert.Contains(t, s.LastError, "no players")
}

func TestPoller_StoreErrorDoesNotFailPoll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetch := &scriptedFetcher{results: []result{snap(1, ingame.GameStart{})}}
	store := &memStore{err: errors.New("db down")}
	p := New(ctx, fetch, feed.New(ctx), zap.NewNop(), WithInterval(time.Hour), WithStore(store))

	assert.NoError(t, pollNow(t, p))
}

func TestPoller_Ticks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetch := &scriptedFetcher{results: []result{snap(1)}}
	p := New(ctx, fetch, feed.New(ctx), zap.NewNop(), WithInterval(5*time.Millisecond))

	assert.Eventually(t, func() bool {
		s, err := p.Status(context.Background())
		return err == nil && s.Polls >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestPoller_Shutdown(t *testing.T) {
	fetch := &scriptedFetcher{results: []result{snap(1)}}
	p := New(context.Background(), fetch, feed.New(context.Background()), zap.NewNop(), WithInterval(time.Hour))

	p.Inbox() <- Shutdown{}
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop")
	}
}

func TestEvents(t *testing.T) {
	start := ingame.GameStart{}
	got := Events([]tracker.Change{
		{Type: tracker.ChangeGameStarted},
		{Type: tracker.ChangeEvent, Event: start},
		{Type: tracker.ChangeGameEnded},
	})
	assert.Equal(t, []ingame.GameEvent{start}, got)
	assert.Nil(t, Events(nil))
}
