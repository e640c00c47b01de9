// Package store keeps a durable log of game events in Postgres.
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

// EventRecord is one row of the events table. Payload is the event in its
// upstream encoding, EventName included.
type EventRecord struct {
	GameID    string  `gorm:"primaryKey;size:64"`
	EventID   uint32  `gorm:"primaryKey;autoIncrement:false"`
	Name      string  `gorm:"size:32;index"`
	EventTime float64 `gorm:"not null"`
	Payload   string  `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func (EventRecord) TableName() string { return "events" }

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open connects to Postgres via the pgx-backed gorm driver.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return New(db, log), nil
}

func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&EventRecord{}); err != nil {
		return fmt.Errorf("migrate events: %w", err)
	}
	return nil
}

// SaveEvents inserts events for gameID. Rows already stored are skipped, so
// re-sending a poll is harmless.
func (s *Store) SaveEvents(ctx context.Context, gameID string, events []ingame.GameEvent) error {
	if len(events) == 0 {
		return nil
	}
	records := make([]EventRecord, 0, len(events))
	for _, e := range events {
		r, err := ToRecord(gameID, e)
		if err != nil {
			return err
		}
		records = append(records, r)
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records)
	if res.Error != nil {
		return fmt.Errorf("save events: %w", res.Error)
	}
	s.log.Debug("events saved",
		zap.String("game_id", gameID),
		zap.Int("sent", len(records)),
		zap.Int64("inserted", res.RowsAffected),
	)
	return nil
}

// ListEvents returns the events of gameID in id order.
func (s *Store) ListEvents(ctx context.Context, gameID string) ([]ingame.GameEvent, error) {
	var records []EventRecord
	err := s.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("event_id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]ingame.GameEvent, 0, len(records))
	for _, r := range records {
		e, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Games lists stored game ids, newest first.
func (s *Store) Games(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&EventRecord{}).
		Select("game_id").
		Group("game_id").
		Order("MAX(created_at) DESC").
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return ids, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ToRecord(gameID string, e ingame.GameEvent) (EventRecord, error) {
	payload, err := ingame.EncodeEvent(e)
	if err != nil {
		return EventRecord{}, fmt.Errorf("encode event %d: %w", e.EventID(), err)
	}
	return EventRecord{
		GameID:    gameID,
		EventID:   e.EventID(),
		Name:      string(e.EventName()),
		EventTime: e.EventTime(),
		Payload:   string(payload),
	}, nil
}

func FromRecord(r EventRecord) (ingame.GameEvent, error) {
	e, err := ingame.DecodeEvent([]byte(r.Payload))
	if err != nil {
		return nil, fmt.Errorf("decode event %s/%d: %w", r.GameID, r.EventID, err)
	}
	return e, nil
}
