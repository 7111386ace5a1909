package dao

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestEventDAOFindSuggestedIDs(t *testing.T) {
	t.Run("scans the two-column result into ids, newest first", func(t *testing.T) {
		db, mock := newMockDB(t)
		d := NewEventDAO(db)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(9, now).
			AddRow(4, now.Add(-time.Hour)).
			AddRow(2, now.Add(-2*time.Hour))
		mock.ExpectQuery("SELECT DISTINCT events.id, events.created_at").WillReturnRows(rows)

		ids, err := d.FindSuggestedIDs(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, []uint{9, 4, 2}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns no ids when no event shares an issue type", func(t *testing.T) {
		db, mock := newMockDB(t)
		d := NewEventDAO(db)

		mock.ExpectQuery("SELECT DISTINCT events.id, events.created_at").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

		ids, err := d.FindSuggestedIDs(context.Background(), 1)

		require.NoError(t, err)
		assert.Empty(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
