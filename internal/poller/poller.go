// Package poller drives the relay: it polls the live client, folds each
// snapshot through the tracker and hands the result to the feed and sinks.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-livedata/internal/feed"
	"github.com/DoyleJ11/lol-livedata/internal/liveclient"
	"github.com/DoyleJ11/lol-livedata/internal/tracker"
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

type Fetcher interface {
	AllGameData(ctx context.Context) (ingame.GameSnapshot, error)
}

type EventSaver interface {
	SaveEvents(ctx context.Context, gameID string, events []ingame.GameEvent) error
}

type Notifier interface {
	Notify(ctx context.Context, changes []tracker.Change) error
}

type Msg interface{ isPollerMsg() }

// PollNow polls immediately and replies with the poll's error.
type PollNow struct {
	Reply chan error
}

type GetStatus struct {
	Reply chan Status
}

type Shutdown struct{}

func (PollNow) isPollerMsg()   {}
func (GetStatus) isPollerMsg() {}
func (Shutdown) isPollerMsg()  {}

type Status struct {
	Polls     int
	Failures  int
	LastError string
	LastPoll  time.Time
	InGame    bool
	GameID    string
	State     tracker.State
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option { return func(p *Poller) { p.interval = d } }
func WithTimeout(d time.Duration) Option  { return func(p *Poller) { p.timeout = d } }
func WithStore(s EventSaver) Option       { return func(p *Poller) { p.store = s } }
func WithNotifier(n Notifier) Option      { return func(p *Poller) { p.notifier = n } }

// WithGameIDs replaces the uuid generator used to name each new game.
func WithGameIDs(next func() string) Option { return func(p *Poller) { p.newGameID = next } }

type Poller struct {
	inbox     chan Msg
	fetch     Fetcher
	feed      *feed.Feed
	store     EventSaver
	notifier  Notifier
	log       *zap.Logger
	interval  time.Duration
	timeout   time.Duration
	newGameID func() string

	state  tracker.State
	gameID string
	status Status

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, fetch Fetcher, f *feed.Feed, log *zap.Logger, opts ...Option) *Poller {
	ctx, cancel := context.WithCancel(parent)
	p := &Poller{
		inbox:     make(chan Msg, 16),
		fetch:     fetch,
		feed:      f,
		log:       log,
		interval:  time.Second,
		timeout:   3 * time.Second,
		newGameID: uuid.NewString,
		state:     tracker.NewState(),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.loop()
	return p
}

func (p *Poller) Inbox() chan<- Msg { return p.inbox }

func (p *Poller) Done() <-chan struct{} { return p.ctx.Done() }

// Status asks the loop for its counters.
func (p *Poller) Status(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)
	select {
	case p.inbox <- GetStatus{Reply: reply}:
	case <-ctx.Done():
		return Status{}, ctx.Err()
	case <-p.ctx.Done():
		return Status{}, context.Canceled
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return Status{}, ctx.Err()
	case <-p.ctx.Done():
		return Status{}, context.Canceled
	}
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return

		case <-ticker.C:
			_ = p.poll()

		case m := <-p.inbox:
			switch msg := m.(type) {
			case PollNow:
				msg.Reply <- p.poll()

			case GetStatus:
				s := p.status
				s.GameID = p.gameID
				s.State = p.state
				msg.Reply <- s

			case Shutdown:
				p.cancel()
				return
			}
		}
	}
}

func (p *Poller) poll() error {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()

	p.status.Polls++
	p.status.LastPoll = time.Now()

	snap, err := p.fetch.AllGameData(ctx)
	if errors.Is(err, liveclient.ErrGameNotRunning) {
		if p.status.InGame {
			p.log.Info("game closed", zap.String("game_id", p.gameID))
		}
		p.status.InGame = false
		return err
	}
	if err != nil {
		return p.fail("fetch failed", err)
	}

	changes, next, err := tracker.Apply(p.state, snap)
	if err != nil {
		return p.fail("snapshot rejected", err)
	}
	p.state = next
	p.status.InGame = true
	p.status.LastError = ""

	for _, c := range changes {
		switch c.Type {
		case tracker.ChangeGameStarted:
			p.gameID = p.newGameID()
			p.log.Info("game started",
				zap.String("game_id", p.gameID),
				zap.String("mode", string(snap.GameData.GameMode)),
				zap.String("map", string(snap.GameData.MapName)),
				zap.Bool("spectating", snap.Spectating()),
			)
		case tracker.ChangeGameEnded:
			p.log.Info("game ended", zap.String("game_id", p.gameID), zap.String("result", string(c.Result)))
		}
	}

	select {
	case p.feed.Inbox() <- feed.Publish{GameID: p.gameID, Snapshot: snap, State: next, Changes: changes}:
	case <-p.feed.Done():
	case <-ctx.Done():
	}

	p.sink(ctx, changes)
	return nil
}

func (p *Poller) sink(ctx context.Context, changes []tracker.Change) {
	if len(changes) == 0 {
		return
	}
	if p.store != nil {
		if events := Events(changes); len(events) > 0 {
			if err := p.store.SaveEvents(ctx, p.gameID, events); err != nil {
				p.log.Error("store events", zap.String("game_id", p.gameID), zap.Error(err))
			}
		}
	}
	if p.notifier != nil {
		if err := p.notifier.Notify(ctx, changes); err != nil {
			p.log.Warn("notify", zap.Error(err))
		}
	}
}

func (p *Poller) fail(msg string, err error) error {
	p.status.Failures++
	p.status.LastError = err.Error()
	p.log.Warn(msg, zap.Error(err), zap.Int("failures", p.status.Failures))
	return err
}

// Events extracts the game events carried by changes, in order.
func Events(changes []tracker.Change) []ingame.GameEvent {
	var out []ingame.GameEvent
	for _, c := range changes {
		if c.Type == tracker.ChangeEvent {
			out = append(out, c.Event)
		}
	}
	return out
}
