package feed

import (
	"context"

	"github.com/DoyleJ11/lol-livedata/internal/tracker"
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

type Msg interface{ isFeedMsg() }

type Join struct {
	ClientID string
	Outbox   chan Update // where this client wants to receive updates
}

func (Join) isFeedMsg() {}

type Leave struct{ ClientID string }

func (Leave) isFeedMsg() {}

// Publish replaces the latest snapshot and fans it out.
type Publish struct {
	GameID   string
	Snapshot ingame.GameSnapshot
	State    tracker.State
	Changes  []tracker.Change
}

func (Publish) isFeedMsg() {}

type GetView struct {
	Reply chan View
}

func (GetView) isFeedMsg() {}

type Shutdown struct{}

func (Shutdown) isFeedMsg() {}

type Update struct {
	Version  int
	GameID   string
	Snapshot ingame.GameSnapshot
	State    tracker.State
	Changes  []tracker.Change
}

type View struct {
	Version    int
	NumClients int
	// Latest is nil until the first Publish.
	Latest *Update
}

type Feed struct {
	inbox   chan Msg
	latest  *Update
	version int
	clients map[string]chan Update
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context) *Feed {
	ctx, cancel := context.WithCancel(parent)

	f := &Feed{
		inbox:   make(chan Msg, 64),
		clients: make(map[string]chan Update),
		ctx:     ctx,
		cancel:  cancel,
	}

	go f.loop()
	return f
}

func (f *Feed) loop() {
	for {
		select {
		case <-f.ctx.Done():
			f.shutdown()
			return

		case m := <-f.inbox:
			switch msg := m.(type) {
			case Join:
				f.clients[msg.ClientID] = msg.Outbox
				if f.latest != nil {
					select {
					case msg.Outbox <- *f.latest:
					default:
					}
				}

			case Leave:
				if ch, ok := f.clients[msg.ClientID]; ok {
					close(ch)
					delete(f.clients, msg.ClientID)
				}

			case Publish:
				f.version++
				f.latest = &Update{
					Version:  f.version,
					GameID:   msg.GameID,
					Snapshot: msg.Snapshot,
					State:    msg.State,
					Changes:  msg.Changes,
				}
				f.broadcast(*f.latest)

			case GetView:
				msg.Reply <- View{
					Version:    f.version,
					NumClients: len(f.clients),
					Latest:     f.latest,
				}

			case Shutdown:
				f.shutdown()
				return
			}
		}
	}
}

func (f *Feed) shutdown() {
	for id, ch := range f.clients {
		close(ch)
		delete(f.clients, id)
	}
	f.cancel()
}

func (f *Feed) broadcast(u Update) {
	for id, ch := range f.clients {
		select {
		case ch <- u:
		default:
			// slow client, drop it
			close(ch)
			delete(f.clients, id)
		}
	}
}

func (f *Feed) Inbox() chan<- Msg { return f.inbox }

// Done is closed once the feed has shut down.
func (f *Feed) Done() <-chan struct{} { return f.ctx.Done() }

// View asks the loop for its current view.
func (f *Feed) View(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	select {
	case f.inbox <- GetView{Reply: reply}:
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-f.ctx.Done():
		return View{}, context.Canceled
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-f.ctx.Done():
		return View{}, context.Canceled
	}
}
