// Package notify posts notable game events to a Discord channel.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-livedata/internal/tracker"
	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

// AllEvents in the event list enables every message.
const AllEvents = "all"

// Sender is the part of *discordgo.Session the notifier uses.
type Sender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Discord struct {
	sender    Sender
	channelID string
	events    []string
	log       *zap.Logger
}

// NewDiscord opens a bot session. events filters by event name
// (tracker.ChangeGameStarted / ChangeGameEnded are named "GameStarted" and
// "GameEnded"); "all" passes everything.
func NewDiscord(token, channelID string, events []string, log *zap.Logger) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discordgo session: %w", err)
	}
	return NewWithSender(session, channelID, events, log), nil
}

func NewWithSender(sender Sender, channelID string, events []string, log *zap.Logger) *Discord {
	return &Discord{sender: sender, channelID: channelID, events: events, log: log}
}

// Notify sends one message per allowed change. A failed send is returned
// after the remaining changes have been attempted.
func (d *Discord) Notify(ctx context.Context, changes []tracker.Change) error {
	var firstErr error
	for _, c := range changes {
		if !d.allowed(changeName(c)) {
			continue
		}
		msg := FormatChange(c)
		if msg == "" {
			continue
		}
		if _, err := d.sender.ChannelMessageSend(d.channelID, msg, discordgo.WithContext(ctx)); err != nil {
			d.log.Warn("discord send failed", zap.String("change", changeName(c)), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("send to Discord: %w", err)
			}
		}
	}
	return firstErr
}

func (d *Discord) allowed(name string) bool {
	for _, e := range d.events {
		if e == AllEvents || e == name {
			return true
		}
	}
	return false
}

func changeName(c tracker.Change) string {
	if c.Type == tracker.ChangeEvent {
		return string(c.Event.EventName())
	}
	return string(c.Type)
}

// FormatChange renders a change as a Discord message, or "" for changes not
// worth posting.
func FormatChange(c tracker.Change) string {
	switch c.Type {
	case tracker.ChangeGameStarted:
		return "🎮 **Game started**"
	case tracker.ChangeGameEnded:
		if c.Result == ingame.ResultWin {
			return "🏆 **Victory!**"
		}
		return "💀 **Defeat**"
	}

	switch e := c.Event.(type) {
	case ingame.FirstBlood:
		return fmt.Sprintf("🩸 **%s** drew first blood", e.Recipient)
	case ingame.ChampionKill:
		return fmt.Sprintf("⚔️ **%s** killed **%s**%s", killerLabel(e.KillerName), e.VictimName, assists(e.Assisters))
	case ingame.Multikill:
		return fmt.Sprintf("🔥 **%s** %s", e.KillerName, streakName(e.KillStreak))
	case ingame.Ace:
		return fmt.Sprintf("🃏 **%s** aced for %s", e.Acer, teamLabel(e.AcingTeam))
	case ingame.DragonKill:
		return fmt.Sprintf("🐉 **%s** slew the %s dragon%s%s", killerLabel(e.KillerName), e.DragonType, stolen(e.Stolen), assists(e.Assisters))
	case ingame.HeraldKill:
		return fmt.Sprintf("👁️ **%s** slew the Rift Herald%s", killerLabel(e.KillerName), stolen(e.Stolen))
	case ingame.BaronKill:
		return fmt.Sprintf("🟣 **%s** slew Baron Nashor%s", killerLabel(e.KillerName), stolen(e.Stolen))
	case ingame.FirstBrick:
		return fmt.Sprintf("🧱 **%s** took the first turret", killerLabel(e.KillerName))
	case ingame.TurretKilled:
		return fmt.Sprintf("🏰 %s turret destroyed by **%s**", e.TurretKilled, killerLabel(e.KillerName))
	case ingame.InhibKilled:
		return fmt.Sprintf("💥 %s inhibitor destroyed by **%s**", e.InhibKilled, killerLabel(e.KillerName))
	case ingame.InhibRespawned:
		return fmt.Sprintf("♻️ %s inhibitor respawned", e.InhibRespawned)
	default:
		return ""
	}
}

func killerLabel(k ingame.Killer) string {
	if k.IsSummoner() {
		return k.Name
	}
	return k.String()
}

func assists(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return " (assists: " + strings.Join(names, ", ") + ")"
}

func stolen(s ingame.StringBool) string {
	if s {
		return ", **stolen!**"
	}
	return ""
}

func streakName(n int32) string {
	switch n {
	case 2:
		return "double kill"
	case 3:
		return "triple kill"
	case 4:
		return "quadra kill"
	case 5:
		return "PENTAKILL"
	default:
		return fmt.Sprintf("%d-kill streak", n)
	}
}

func teamLabel(t ingame.TeamID) string {
	switch t {
	case ingame.TeamOrder:
		return "blue side"
	case ingame.TeamChaos:
		return "red side"
	default:
		return strings.ToLower(string(t))
	}
}
