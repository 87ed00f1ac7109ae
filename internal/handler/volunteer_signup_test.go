package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
	"github.com/brightwood-pta/portal/internal/service"
)

// fakeVolunteerStores backs the handler tests with a real VolunteerService
// over in-memory data, so the tests cover binding, validation and error
// mapping without a database.
type fakeVolunteerStores struct {
	shifts  map[uint64]*model.Shift
	signups map[uint64]*model.Signup
	nextID  uint64
}

func newFakeStores() *fakeVolunteerStores {
	return &fakeVolunteerStores{shifts: map[uint64]*model.Shift{}, signups: map[uint64]*model.Signup{}, nextID: 1}
}

func (f *fakeVolunteerStores) addShift(capacity int, active bool) *model.Shift {
	id := f.nextID
	f.nextID++
	s := &model.Shift{ID: id, EventID: 1, JobTitle: "carnival booth", SpotsAvailable: capacity, IsActive: active}
	f.shifts[id] = s
	return s
}

func (f *fakeVolunteerStores) GetByID(_ context.Context, id uint64) (model.Shift, error) {
	if s, ok := f.shifts[id]; ok {
		return *s, nil
	}
	return model.Shift{}, repository.ErrShiftNotFound
}

func (f *fakeVolunteerStores) UpdateSpotsFilled(_ context.Context, id uint64, n int) error {
	if s, ok := f.shifts[id]; ok {
		s.SpotsFilled = n
		return nil
	}
	return repository.ErrShiftNotFound
}

type fakeSignupStore struct{ *fakeVolunteerStores }

func (f fakeSignupStore) Create(_ context.Context, s *model.Signup) error {
	s.ID = f.nextID
	f.fakeVolunteerStores.nextID++
	cp := *s
	f.signups[s.ID] = &cp
	return nil
}

func (f fakeSignupStore) GetByID(_ context.Context, id uint64) (model.Signup, error) {
	if s, ok := f.signups[id]; ok {
		return *s, nil
	}
	return model.Signup{}, repository.ErrSignupNotFound
}

func (f fakeSignupStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	if s, ok := f.signups[id]; ok {
		s.Status = status
		return nil
	}
	return repository.ErrSignupNotFound
}

func (f fakeSignupStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.signups[id]; !ok {
		return repository.ErrSignupNotFound
	}
	delete(f.signups, id)
	return nil
}

func (f fakeSignupStore) CountActive(_ context.Context, shiftID uint64) (int, error) {
	n := 0
	for _, s := range f.signups {
		if s.ShiftID == shiftID && s.Status != model.SignupStatusCancelled {
			n++
		}
	}
	return n, nil
}

func signupTestContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder, *SignupHandler, *fakeVolunteerStores) {
	t.Helper()
	f := newFakeStores()
	svc := service.NewVolunteerService(f, fakeSignupStore{f}, nil)
	h := NewSignupHandler(svc, nil)

	e := echo.New()
	e.Validator = NewRequestValidator()
	req := httptest.NewRequest(method, "/v1/volunteer-signups", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, h, f
}

func TestCreateSignupReturnsSignupAndCount(t *testing.T) {
	c, rec, h, f := signupTestContext(t, http.MethodPost,
		`{"shift_id":1,"name":"Alice","email":"alice@example.com"}`)
	f.addShift(2, true)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Signup      model.Signup `json:"signup"`
		SpotsFilled int          `json:"spots_filled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Signup.Name)
	assert.Equal(t, model.SignupStatusPending, resp.Signup.Status)
	assert.Equal(t, 1, resp.SpotsFilled)
}

func TestCreateSignupMissingEmailIs400(t *testing.T) {
	c, rec, h, f := signupTestContext(t, http.MethodPost, `{"shift_id":1,"name":"Alice"}`)
	f.addShift(2, true)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.signups)
}

func TestCreateSignupUnknownShiftIs404(t *testing.T) {
	c, rec, h, _ := signupTestContext(t, http.MethodPost,
		`{"shift_id":99,"name":"Alice","email":"alice@example.com"}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSignupFullShiftIs400(t *testing.T) {
	c, rec, h, f := signupTestContext(t, http.MethodPost,
		`{"shift_id":1,"name":"Bob","email":"bob@example.com"}`)
	shift := f.addShift(1, true)
	shift.SpotsFilled = 1

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no spots available")
}

func TestCreateSignupInactiveShiftIs400(t *testing.T) {
	c, rec, h, f := signupTestContext(t, http.MethodPost,
		`{"shift_id":1,"name":"Bob","email":"bob@example.com"}`)
	f.addShift(3, false)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "shift is not active")
}

func TestUpdateSignupStatusInvalidValueIs400(t *testing.T) {
	c, rec, h, f := signupTestContext(t, http.MethodPut, `{"id":1,"status":"waitlisted"}`)
	f.addShift(2, true)
	f.signups[1] = &model.Signup{ID: 1, ShiftID: 1, Status: model.SignupStatusPending}

	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid status")
}

func TestDeleteSignupReturnsShiftAndCount(t *testing.T) {
	f := newFakeStores()
	shift := f.addShift(2, true)
	f.signups[10] = &model.Signup{ID: 10, ShiftID: shift.ID, Status: model.SignupStatusConfirmed}
	svc := service.NewVolunteerService(f, fakeSignupStore{f}, nil)
	h := NewSignupHandler(svc, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/volunteer-signups?id=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"shift_id":1,"spots_filled":0}`, rec.Body.String())

	// Second delete by the same id is a miss.
	req = httptest.NewRequest(http.MethodDelete, "/v1/volunteer-signups?id=10", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
