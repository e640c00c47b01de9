// Package liveclient fetches game state from the Live Client Data API that a
// running game serves on 127.0.0.1:2999.
package liveclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

const DefaultBaseURL = "https://127.0.0.1:2999"

const (
	allGameDataPath  = "/liveclientdata/allgamedata"
	activePlayerPath = "/liveclientdata/activeplayer"
	playerListPath   = "/liveclientdata/playerlist"
	eventDataPath    = "/liveclientdata/eventdata"
	gameStatsPath    = "/liveclientdata/gamestats"
)

var (
	// ErrGameNotRunning means nothing is listening, i.e. no game is loaded.
	ErrGameNotRunning   = errors.New("game not running")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for baseURL, or DefaultBaseURL when empty. The game
// serves a self-signed certificate.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AllGameData fetches and decodes the full snapshot.
func (c *Client) AllGameData(ctx context.Context) (ingame.GameSnapshot, error) {
	data, err := c.get(ctx, allGameDataPath)
	if err != nil {
		return ingame.GameSnapshot{}, err
	}
	snap, err := ingame.Decode(data)
	if err != nil {
		return ingame.GameSnapshot{}, fmt.Errorf("decode allgamedata: %w", err)
	}
	return snap, nil
}

// ActivePlayer returns nil while spectating.
func (c *Client) ActivePlayer(ctx context.Context) (*ingame.ActivePlayer, error) {
	data, err := c.get(ctx, activePlayerPath)
	if err != nil {
		return nil, err
	}
	return ingame.DecodeActivePlayer(data)
}

func (c *Client) PlayerList(ctx context.Context) ([]ingame.Player, error) {
	data, err := c.get(ctx, playerListPath)
	if err != nil {
		return nil, err
	}
	return ingame.DecodePlayers(data)
}

func (c *Client) Events(ctx context.Context) ([]ingame.GameEvent, error) {
	data, err := c.get(ctx, eventDataPath)
	if err != nil {
		return nil, err
	}
	return ingame.DecodeEvents(data)
}

func (c *Client) GameStats(ctx context.Context) (ingame.GameStats, error) {
	data, err := c.get(ctx, gameStatsPath)
	if err != nil {
		return ingame.GameStats{}, err
	}
	return ingame.DecodeGameStats(data)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if connRefused(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrGameNotRunning)
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	// The API answers 404 while the game is still loading.
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrGameNotRunning)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}
	return data, nil
}

func connRefused(err error) bool {
	for _, errno := range refusedErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
