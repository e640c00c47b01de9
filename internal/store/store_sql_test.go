package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/lol-livedata/pkg/ingame"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return New(db, zap.NewNop()), mock
}

func sampleEvents() []ingame.GameEvent {
	return []ingame.GameEvent{
		ingame.GameStart{EventHeader: ingame.EventHeader{ID: 0, Time: 0.04}},
		ingame.FirstBlood{EventHeader: ingame.EventHeader{ID: 1, Time: 190.2}, Recipient: "Hide on bush"},
	}
}

func TestSaveEvents_InsertSkipsConflicts(t *testing.T) {
	s, mock := newMockStore(t)
	insert := `INSERT INTO "events" \(.*"game_id".*"event_id".*\) VALUES \(.+\),\(.+\) ON CONFLICT DO NOTHING`

	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 2))
	// Re-sending the same poll inserts nothing and is not an error.
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, s.SaveEvents(ctx, "g1", sampleEvents()))
	require.NoError(t, s.SaveEvents(ctx, "g1", sampleEvents()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEvents_Error(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO "events"`).WillReturnError(assert.AnError)

	err := s.SaveEvents(context.Background(), "g1", sampleEvents())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEvents_OrderedByEventID(t *testing.T) {
	s, mock := newMockStore(t)

	var rows []EventRecord
	for _, e := range sampleEvents() {
		r, err := ToRecord("g1", e)
		require.NoError(t, err)
		rows = append(rows, r)
	}
	result := sqlmock.NewRows([]string{"game_id", "event_id", "name", "event_time", "payload", "created_at"})
	for _, r := range rows {
		result.AddRow(r.GameID, int64(r.EventID), r.Name, r.EventTime, r.Payload, time.Now())
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "events" WHERE game_id = $1 ORDER BY event_id`)).
		WithArgs("g1").
		WillReturnRows(result)

	events, err := s.ListEvents(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, sampleEvents(), events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEvents_BadPayload(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "event_id", "name", "event_time", "payload", "created_at"}).
			AddRow("g1", 3, "Nope", 1.0, `{"EventName":"Nope","EventID":3,"EventTime":1}`, time.Now()))

	_, err := s.ListEvents(context.Background(), "g1")
	assert.ErrorIs(t, err, ingame.ErrUnknownEvent)
}

func TestGames_NewestFirst(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT .*game_id.* FROM "events" GROUP BY .*game_id.* ORDER BY MAX\(created_at\) DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"game_id"}).AddRow("g2").AddRow("g1"))

	ids, err := s.Games(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"g2", "g1"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
