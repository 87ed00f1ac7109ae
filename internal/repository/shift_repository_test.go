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

func newMock(t *testing.T) (*ShiftRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewShiftRepo(db), mock
}

func shiftRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "event_id", "job_title", "description", "start_time", "end_time",
		"spots_available", "spots_filled", "is_active", "created_at", "updated_at",
	}).AddRow(1, 1, "bake sale table", "", nil, nil, 3, 2, true, now, now)
}

func TestShiftGetByID(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM shifts WHERE id=\\? LIMIT 1").
		WithArgs(uint64(1)).
		WillReturnRows(shiftRows())

	s, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, s.SpotsFilled)
	assert.Equal(t, 3, s.SpotsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftGetByIDMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM shifts WHERE id=\\? LIMIT 1").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

// The admin edit form must never write the cached fill count, even when it
// shrinks the capacity below it.
func TestShiftUpdateLeavesSpotsFilledAlone(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("UPDATE shifts SET job_title=\\?, description=\\?, start_time=\\?, end_time=\\?, spots_available=\\?, is_active=\\? WHERE id=\\?").
		WithArgs("bake sale table", "", nil, nil, 1, true, uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &model.Shift{
		ID:             1,
		JobTitle:       "bake sale table",
		SpotsAvailable: 1,
		SpotsFilled:    2, // stale on purpose; must not reach the database
		IsActive:       true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftUpdateSpotsFilled(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("UPDATE shifts SET spots_filled=\\? WHERE id=\\?").
		WithArgs(4, uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSpotsFilled(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftDeleteMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("DELETE FROM shifts WHERE id=\\?").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}
