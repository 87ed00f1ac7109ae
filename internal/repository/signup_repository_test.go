package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightwood-pta/portal/internal/model"
)

func newSignupMock(t *testing.T) (*SignupRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSignupRepo(db), mock
}

// CountActive must count rows with status other than cancelled, never read
// the shift's cached column.
func TestCountActiveExcludesCancelled(t *testing.T) {
	repo, mock := newSignupMock(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM signups WHERE shift_id=\\? AND status <> \\?").
		WithArgs(uint64(3), model.SignupStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountActive(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupCreateReadsBackRow(t *testing.T) {
	repo, mock := newSignupMock(t)
	mock.ExpectExec("INSERT INTO signups").
		WithArgs(uint64(3), "Alice", "alice@example.com", nil, model.SignupStatusPending).
		WillReturnResult(sqlmock.NewResult(11, 1))
	created := time.Now()
	mock.ExpectQuery("SELECT .+ FROM signups WHERE id=\\? LIMIT 1").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "shift_id", "name", "email", "user_id", "status", "created_at"}).
			AddRow(11, 3, "Alice", "alice@example.com", nil, "pending", created))

	s := &model.Signup{ShiftID: 3, Name: "Alice", Email: "alice@example.com", Status: model.SignupStatusPending}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, uint64(11), s.ID)
	assert.WithinDuration(t, created, s.CreatedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupUpdateStatusMissingRow(t *testing.T) {
	repo, mock := newSignupMock(t)
	mock.ExpectExec("UPDATE signups SET status=\\? WHERE id=\\?").
		WithArgs(model.SignupStatusConfirmed, uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM signups WHERE id=\\? LIMIT 1").
		WithArgs(uint64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.UpdateStatus(context.Background(), 8, model.SignupStatusConfirmed)
	assert.ErrorIs(t, err, ErrSignupNotFound)
}

// MySQL reports 0 affected rows for a write that changes nothing, so a
// repeated identical status write must still succeed.
func TestSignupUpdateStatusNoopWrite(t *testing.T) {
	repo, mock := newSignupMock(t)
	mock.ExpectExec("UPDATE signups SET status=\\? WHERE id=\\?").
		WithArgs(model.SignupStatusConfirmed, uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM signups WHERE id=\\? LIMIT 1").
		WithArgs(uint64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "shift_id", "name", "email", "user_id", "status", "created_at"}).
			AddRow(8, 3, "Alice", "alice@example.com", nil, "confirmed", time.Now()))

	assert.NoError(t, repo.UpdateStatus(context.Background(), 8, model.SignupStatusConfirmed))
}

func TestSignupDeleteMissing(t *testing.T) {
	repo, mock := newSignupMock(t)
	mock.ExpectExec("DELETE FROM signups WHERE id=\\?").
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 4)
	assert.ErrorIs(t, err, ErrSignupNotFound)
}
