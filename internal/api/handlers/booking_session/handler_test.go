package booking_session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/catalog"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
	"github.com/m04kA/SMC-BookingWizard/internal/usecase/availability"
	"github.com/m04kA/SMC-BookingWizard/internal/usecase/finalize_booking"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	log := logger.NewNop()
	clock := fixedClock{now: time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)}
	store := memory.NewStore([]memory.Reservation{{
		Date:  time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC),
		Slots: []types.TimeString{"09:00"},
	}})
	engine := availability.NewEngine(availability.DefaultPolicy(), store, clock, log)
	finalizer := finalize_booking.NewUseCase(store, engine, memory.NewTxManager(), clock, log, 0)
	svc := sessions.NewService(catalog.NewStatic(nil), engine, finalizer, nil, nil, clock, log, sessions.Config{})

	h := NewHandler(svc, log)
	r := mux.NewRouter()
	r.HandleFunc("/sessions", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{sessionId}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{sessionId}/service", h.SelectService).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/date", h.SelectDate).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/time", h.SelectTime).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/details", h.SubmitDetails).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/back", h.GoBack).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/new", h.StartNewBooking).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/errors/{field}", h.ClearFieldError).Methods(http.MethodDelete)
	return r
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, StateResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(v))
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))

	var state StateResponse
	if rec.Code == http.StatusOK || rec.Code == http.StatusCreated {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	}
	return rec, state
}

func TestBookingSession_HappyPath(t *testing.T) {
	r := newRouter(t)

	rec, state := call(t, r, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := state.SessionID
	require.NotEmpty(t, id)
	assert.Equal(t, 1, state.Step)
	assert.Equal(t, 0.25, state.Progress)
	assert.Nil(t, state.Draft.Service)

	base := "/sessions/" + id

	rec, state = call(t, r, http.MethodPost, base+"/service", SelectServiceRequest{ServiceID: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.Applied)
	assert.Equal(t, "selecting_date_time", state.StepName)
	require.NotNil(t, state.Draft.Service)
	assert.Equal(t, "Corte Feminino", state.Draft.Service.Name)

	_, state = call(t, r, http.MethodPost, base+"/date", SelectDateRequest{Date: "2026-10-17"})
	assert.False(t, state.Applied, "saturday")
	assert.Nil(t, state.Draft.Date)

	_, state = call(t, r, http.MethodPost, base+"/date", SelectDateRequest{Date: "2026-10-20"})
	assert.True(t, state.Applied)
	assert.True(t, state.DateAvailable)
	assert.Len(t, state.Slots, 12)
	assert.NotContains(t, state.Slots, "09:00")

	_, state = call(t, r, http.MethodPost, base+"/time", SelectTimeRequest{Time: "09:30"})
	assert.True(t, state.Applied)
	assert.Equal(t, 3, state.Step)

	_, state = call(t, r, http.MethodPost, base+"/details", ClientRequest{
		FirstName: "Ana", LastName: "Lima", Email: "ana@x.com", Phone: "11999999999", AgreeTerms: true,
	})
	assert.False(t, state.Applied)
	assert.NotEmpty(t, state.Errors.Phone)

	_, state = call(t, r, http.MethodDelete, base+"/errors/phone", nil)
	assert.Empty(t, state.Errors.Phone)

	_, state = call(t, r, http.MethodPost, base+"/details", ClientRequest{
		FirstName: "Ana", LastName: "Lima", Email: "ana@x.com", Phone: "(11) 99999-9999", AgreeTerms: true,
	})
	assert.True(t, state.Applied)
	assert.Equal(t, 4, state.Step)
	assert.Equal(t, 1.0, state.Progress)
	require.NotNil(t, state.Confirmed)
	assert.Equal(t, "2026-10-20", state.Confirmed.Date)
	assert.Equal(t, "09:30", state.Confirmed.Time)
	assert.Equal(t, "confirmed", state.Confirmed.Status)
	assert.NotEmpty(t, state.Confirmed.Reference)

	_, state = call(t, r, http.MethodPost, base+"/back", nil)
	assert.False(t, state.Applied, "confirmed is terminal")

	_, state = call(t, r, http.MethodPost, base+"/new", nil)
	assert.True(t, state.Applied)
	assert.Equal(t, 1, state.Step)
	assert.Nil(t, state.Confirmed)
	assert.Nil(t, state.Draft.Service)
}

func TestBookingSession_BadRequests(t *testing.T) {
	r := newRouter(t)
	_, state := call(t, r, http.MethodPost, "/sessions", nil)
	base := "/sessions/" + state.SessionID

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   int
	}{
		{name: "malformed json", method: http.MethodPost, path: base + "/service", body: "{", code: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: base + "/service", body: `{"id":1}`, code: http.StatusBadRequest},
		{name: "missing service id", method: http.MethodPost, path: base + "/service", body: `{}`, code: http.StatusBadRequest},
		{name: "unknown service", method: http.MethodPost, path: base + "/service", body: SelectServiceRequest{ServiceID: 404}, code: http.StatusNotFound},
		{name: "bad date", method: http.MethodPost, path: base + "/date", body: SelectDateRequest{Date: "20/10/2026"}, code: http.StatusBadRequest},
		{name: "bad time", method: http.MethodPost, path: base + "/time", body: SelectTimeRequest{Time: "9h"}, code: http.StatusBadRequest},
		{name: "unknown field error", method: http.MethodDelete, path: base + "/errors/notes", code: http.StatusBadRequest},
		{name: "unknown session", method: http.MethodGet, path: "/sessions/missing", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := call(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestBookingSession_Delete(t *testing.T) {
	r := newRouter(t)
	_, state := call(t, r, http.MethodPost, "/sessions", nil)
	base := "/sessions/" + state.SessionID

	rec, _ := call(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = call(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
