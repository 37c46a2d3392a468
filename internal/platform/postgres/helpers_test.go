package postgres

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "5f8d0d55b54764421b7156c3"
	testOtherID = "5f8d0d55b54764421b7156c4"
	testCardID  = "64a1f0c2e3b4d5f60718293a"
)

// newMock returns a pool backed by sqlmock that matches queries exactly.
func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}
