package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/lol-livedata/internal/tracker"
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

// receive one update with a timeout so tests never hang
func recvUpdate(t *testing.T, ch <-chan Update, within time.Duration) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "client outbox closed unexpectedly")
		return u
	case <-time.After(within):
		t.Fatalf("timed out waiting for update")
		return Update{}
	}
}

func recvNoUpdate(t *testing.T, ch <-chan Update, within time.Duration) {
	t.Helper()
	select {
	case u, ok := <-ch:
		if !ok {
			return
		}
		t.Fatalf("expected no update within %v, got version %d", within, u.Version)
	case <-time.After(within):
	}
}

func waitClosed(t *testing.T, ch <-chan Update, within time.Duration) {
	t.Helper()
	deadline := time.After(within)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("outbox not closed within %v", within)
		}
	}
}

func view(t *testing.T, f *Feed) View {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := f.View(ctx)
	require.NoError(t, err)
	return v
}

func publish(gameTime float64) Publish {
	return Publish{
		GameID: "g1",
		Snapshot: ingame.GameSnapshot{
			AllPlayers: []ingame.Player{{SummonerName: "blue1", Team: ingame.TeamOrder}},
			GameData:   ingame.GameStats{GameTime: gameTime},
		},
		State: tracker.NewState(),
	}
}

func TestFeed_JoinBeforePublishGetsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := New(ctx)

	out := make(chan Update, 2)
	f.Inbox() <- Join{ClientID: "c1", Outbox: out}
	recvNoUpdate(t, out, 50*time.Millisecond)

	v := view(t, f)
	assert.Equal(t, 0, v.Version)
	assert.Equal(t, 1, v.NumClients)
	assert.Nil(t, v.Latest)
}

func TestFeed_PublishBroadcastsAndVersionIncrements(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := New(ctx)

	a := make(chan Update, 4)
	b := make(chan Update, 4)
	f.Inbox() <- Join{ClientID: "a", Outbox: a}
	f.Inbox() <- Join{ClientID: "b", Outbox: b}

	f.Inbox() <- publish(10)
	ua := recvUpdate(t, a, 100*time.Millisecond)
	ub := recvUpdate(t, b, 100*time.Millisecond)
	assert.Equal(t, 1, ua.Version)
	assert.Equal(t, ua, ub)
	assert.Equal(t, "g1", ua.GameID)

	f.Inbox() <- publish(20)
	assert.Equal(t, 2, recvUpdate(t, a, 100*time.Millisecond).Version)

	v := view(t, f)
	require.NotNil(t, v.Latest)
	assert.Equal(t, 2, v.Version)
	assert.Equal(t, 20.0, v.Latest.Snapshot.GameData.GameTime)
}

func TestFeed_LateJoinerGetsLatest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := New(ctx)

	f.Inbox() <- publish(30)

	out := make(chan Update, 1)
	f.Inbox() <- Join{ClientID: "late", Outbox: out}
	u := recvUpdate(t, out, 100*time.Millisecond)
	assert.Equal(t, 1, u.Version)
	assert.Equal(t, 30.0, u.Snapshot.GameData.GameTime)
}

func TestFeed_SlowClientDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := New(ctx)

	slow := make(chan Update) // unbuffered and never read
	fast := make(chan Update, 4)
	f.Inbox() <- Join{ClientID: "slow", Outbox: slow}
	f.Inbox() <- Join{ClientID: "fast", Outbox: fast}

	f.Inbox() <- publish(1)
	recvUpdate(t, fast, 100*time.Millisecond)
	waitClosed(t, slow, 100*time.Millisecond)

	assert.Equal(t, 1, view(t, f).NumClients)
}

func TestFeed_LeaveClosesOutbox(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := New(ctx)

	out := make(chan Update, 1)
	f.Inbox() <- Join{ClientID: "c1", Outbox: out}
	f.Inbox() <- Leave{ClientID: "c1"}
	waitClosed(t, out, 100*time.Millisecond)

	// leaving twice is harmless
	f.Inbox() <- Leave{ClientID: "c1"}
	assert.Equal(t, 0, view(t, f).NumClients)
}

func TestFeed_ShutdownClosesClients(t *testing.T) {
	f := New(context.Background())

	out := make(chan Update, 1)
	f.Inbox() <- Join{ClientID: "c1", Outbox: out}
	f.Inbox() <- Shutdown{}

	waitClosed(t, out, 100*time.Millisecond)
	select {
	case <-f.Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("feed did not stop")
	}

	_, err := f.View(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeed_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := New(ctx)

	out := make(chan Update, 1)
	f.Inbox() <- Join{ClientID: "c1", Outbox: out}
	view(t, f)
	cancel()

	waitClosed(t, out, 100*time.Millisecond)
}
