package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
)

// memStores is an in-memory ShiftStore + SignupStore pair backing the service
// tests.  It keeps the same contract as the repositories: CountActive counts
// rows, UpdateSpotsFilled writes the cached column on the shift.
type memStores struct {
	shifts  map[uint64]*model.Shift
	signups map[uint64]*model.Signup
	nextID  uint64

	countErr  error // injected failure for CountActive
	updateErr error // injected failure for UpdateSpotsFilled
}

func newMemStores() *memStores {
	return &memStores{
		shifts:  map[uint64]*model.Shift{},
		signups: map[uint64]*model.Signup{},
		nextID:  1,
	}
}

func (m *memStores) addShift(capacity int, active bool) *model.Shift {
	id := m.nextID
	m.nextID++
	s := &model.Shift{ID: id, EventID: 1, JobTitle: "bake sale table", SpotsAvailable: capacity, IsActive: active}
	m.shifts[id] = s
	return s
}

func (m *memStores) GetByID(_ context.Context, id uint64) (model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return *s, nil
	}
	return model.Shift{}, repository.ErrShiftNotFound
}

func (m *memStores) UpdateSpotsFilled(_ context.Context, id uint64, n int) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	s, ok := m.shifts[id]
	if !ok {
		return repository.ErrShiftNotFound
	}
	s.SpotsFilled = n
	return nil
}

func (m *memStores) Create(_ context.Context, s *model.Signup) error {
	s.ID = m.nextID
	m.nextID++
	cp := *s
	m.signups[s.ID] = &cp
	return nil
}

func (m *memStores) Get(_ context.Context, id uint64) (model.Signup, error) {
	if s, ok := m.signups[id]; ok {
		return *s, nil
	}
	return model.Signup{}, repository.ErrSignupNotFound
}

func (m *memStores) UpdateStatus(_ context.Context, id uint64, status string) error {
	s, ok := m.signups[id]
	if !ok {
		return repository.ErrSignupNotFound
	}
	s.Status = status
	return nil
}

func (m *memStores) Delete(_ context.Context, id uint64) error {
	if _, ok := m.signups[id]; !ok {
		return repository.ErrSignupNotFound
	}
	delete(m.signups, id)
	return nil
}

func (m *memStores) CountActive(_ context.Context, shiftID uint64) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	n := 0
	for _, s := range m.signups {
		if s.ShiftID == shiftID && s.Status != model.SignupStatusCancelled {
			n++
		}
	}
	return n, nil
}

func TestCreateSignupRecountsAfterEachMutation(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(2, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	a, filled, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, filled)
	assert.Equal(t, model.SignupStatusPending, a.Status)
	assert.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)

	_, filled, err = svc.CreateSignup(ctx, shift.ID, "Bob", "bob@example.com", nil, false)
	require.NoError(t, err)
	assert.Equal(t, 2, filled)

	// Cancelling drops the count back down.
	_, filled, err = svc.UpdateSignupStatus(ctx, a.ID, model.SignupStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, filled)
	assert.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)
}

func TestCreateSignupBlocksAtCapacity(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(1, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	_, _, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)

	_, _, err = svc.CreateSignup(ctx, shift.ID, "Bob", "bob@example.com", nil, false)
	assert.ErrorIs(t, err, repository.ErrNoSpotsAvailable)
	// The rejected request must not leave a row behind.
	assert.Len(t, m.signups, 1)
	assert.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)
}

func TestCreateSignupOverbookBypassesAdmission(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(1, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	_, _, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)

	_, filled, err := svc.CreateSignup(ctx, shift.ID, "Bob", "bob@example.com", nil, true)
	require.NoError(t, err)
	assert.Equal(t, 2, filled)
	assert.Greater(t, m.shifts[shift.ID].SpotsFilled, m.shifts[shift.ID].SpotsAvailable)
}

func TestCreateSignupInactiveShift(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(5, false)
	svc := NewVolunteerService(m, signupStore{m}, nil)

	_, _, err := svc.CreateSignup(context.Background(), shift.ID, "Alice", "alice@example.com", nil, false)
	assert.ErrorIs(t, err, repository.ErrShiftInactive)
	assert.Empty(t, m.signups)
}

func TestCreateSignupMissingShift(t *testing.T) {
	m := newMemStores()
	svc := NewVolunteerService(m, signupStore{m}, nil)

	_, _, err := svc.CreateSignup(context.Background(), 42, "Alice", "alice@example.com", nil, false)
	assert.ErrorIs(t, err, repository.ErrShiftNotFound)
}

func TestDeleteSignupRecounts(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(3, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	a, _, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)
	_, _, err = svc.CreateSignup(ctx, shift.ID, "Bob", "bob@example.com", nil, false)
	require.NoError(t, err)

	shiftID, filled, err := svc.DeleteSignup(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.ID, shiftID)
	assert.Equal(t, 1, filled)

	// The row is gone for good; a second delete is a miss.
	_, _, err = svc.DeleteSignup(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrSignupNotFound)
	assert.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(2, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	a, _, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)

	_, _, err = svc.UpdateSignupStatus(ctx, a.ID, "waitlisted")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, model.SignupStatusPending, m.signups[a.ID].Status)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(2, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	a, _, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)

	_, first, err := svc.UpdateSignupStatus(ctx, a.ID, model.SignupStatusConfirmed)
	require.NoError(t, err)
	_, second, err := svc.UpdateSignupStatus(ctx, a.ID, model.SignupStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)
}

func TestReopeningCancelledSignupCanOverfill(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(1, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	a, _, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)
	_, _, err = svc.UpdateSignupStatus(ctx, a.ID, model.SignupStatusCancelled)
	require.NoError(t, err)

	// The freed spot gets taken...
	_, _, err = svc.CreateSignup(ctx, shift.ID, "Bob", "bob@example.com", nil, false)
	require.NoError(t, err)

	// ...and re-confirming the cancelled signup skips the admission check.
	_, filled, err := svc.UpdateSignupStatus(ctx, a.ID, model.SignupStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 2, filled)
	assert.Greater(t, filled, m.shifts[shift.ID].SpotsAvailable)
}

// Walks one shift through a full admission lifecycle: fill to capacity,
// reject the next request, overbook past capacity by override, cancel, hard
// delete, and finally miss on a repeated delete.  The cached count must track
// the live rows at every step.
func TestSignupLifecycleKeepsCountInSync(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(2, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	a, filled, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, filled)
	b, filled, err := svc.CreateSignup(ctx, shift.ID, "Bob", "bob@example.com", nil, false)
	require.NoError(t, err)
	assert.Equal(t, 2, filled)

	_, _, err = svc.CreateSignup(ctx, shift.ID, "Carol", "carol@example.com", nil, false)
	assert.ErrorIs(t, err, repository.ErrNoSpotsAvailable)

	_, filled, err = svc.CreateSignup(ctx, shift.ID, "Carol", "carol@example.com", nil, true)
	require.NoError(t, err)
	assert.Equal(t, 3, filled)
	assert.Equal(t, 3, m.shifts[shift.ID].SpotsFilled)

	_, filled, err = svc.UpdateSignupStatus(ctx, b.ID, model.SignupStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 2, filled)

	_, filled, err = svc.DeleteSignup(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, filled)
	assert.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)

	_, _, err = svc.DeleteSignup(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrSignupNotFound)
}

func TestRecountFailuresLeaveCacheAlone(t *testing.T) {
	m := newMemStores()
	shift := m.addShift(2, true)
	svc := NewVolunteerService(m, signupStore{m}, nil)
	ctx := context.Background()

	_, _, err := svc.CreateSignup(ctx, shift.ID, "Alice", "alice@example.com", nil, false)
	require.NoError(t, err)
	require.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)

	m.countErr = assert.AnError
	_, err = svc.Recount(ctx, shift.ID)
	assert.Error(t, err)
	// Count failed, so nothing was written.
	assert.Equal(t, 1, m.shifts[shift.ID].SpotsFilled)

	m.countErr = nil
	m.updateErr = assert.AnError
	_, err = svc.Recount(ctx, shift.ID)
	assert.Error(t, err)
}

// signupStore adapts memStores to the SignupStore interface; the shift half
// and the signup half share one GetByID name otherwise.
type signupStore struct{ *memStores }

func (s signupStore) GetByID(ctx context.Context, id uint64) (model.Signup, error) {
	return s.memStores.Get(ctx, id)
}
