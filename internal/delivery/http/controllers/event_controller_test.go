package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetpoint/internal/delivery/http/helpers"
	"meetpoint/internal/delivery/http/middleware"
	"meetpoint/internal/domain"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr    error
	createResult *domain.EventDetails
	getErr       error
	getResult    *domain.EventDetails
	updateErr    error
	updateResult *domain.EventDetails
	deleteErr    error
	inviteErr    error
	inviteResult *domain.EventDetails
	exitErr      error

	lastCaller   *domain.Member
	lastEventID  string
	lastDraft    domain.EventDraft
	lastNickname string
}

func (f *fakeEventService) Create(_ context.Context, caller *domain.Member, draft domain.EventDraft) (*domain.EventDetails, error) {
	f.lastCaller = caller
	f.lastDraft = draft
	return f.createResult, f.createErr
}

func (f *fakeEventService) Get(_ context.Context, eventID string) (*domain.EventDetails, error) {
	f.lastEventID = eventID
	return f.getResult, f.getErr
}

func (f *fakeEventService) Update(_ context.Context, caller *domain.Member, eventID string, draft domain.EventDraft) (*domain.EventDetails, error) {
	f.lastCaller = caller
	f.lastEventID = eventID
	f.lastDraft = draft
	return f.updateResult, f.updateErr
}

func (f *fakeEventService) Delete(_ context.Context, caller *domain.Member, eventID string) error {
	f.lastCaller = caller
	f.lastEventID = eventID
	return f.deleteErr
}

func (f *fakeEventService) Invite(_ context.Context, caller *domain.Member, eventID, nickname string) (*domain.EventDetails, error) {
	f.lastCaller = caller
	f.lastEventID = eventID
	f.lastNickname = nickname
	return f.inviteResult, f.inviteErr
}

func (f *fakeEventService) Exit(_ context.Context, caller *domain.Member, eventID string) error {
	f.lastCaller = caller
	f.lastEventID = eventID
	return f.exitErr
}

var testCaller = &domain.Member{ID: "m-1", Nickname: "alice", Email: "alice@example.com"}

func testDetails() *domain.EventDetails {
	return &domain.EventDetails{
		Event: &domain.Event{
			ID:            "ev-1",
			Title:         "Lunch",
			EventDateTime: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Place:         "Cafe",
			Point:         0,
			CreatedAt:     time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		},
		Members: []*domain.Member{testCaller},
	}
}

// doRequest runs a handler with an optional authenticated caller and decodes
// the response envelope.
func doRequest(t *testing.T, handler http.HandlerFunc, method, target string, body any, caller *domain.Member, pathValues map[string]string) (*httptest.ResponseRecorder, helpers.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if caller != nil {
		req = req.WithContext(middleware.SetMember(req.Context(), caller))
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)

	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func decodeEvent(t *testing.T, data any) EventResponse {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var ev EventResponse
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := EventRequest{Title: "Lunch", EventDateTime: "2024-05-01-12-00-00", Place: "Cafe"}

	t.Run("created", func(t *testing.T) {
		svc := &fakeEventService{createResult: testDetails()}
		c := NewEventController(testLogger, svc)

		rec, resp := doRequest(t, c.CreateEvent, http.MethodPost, "/events", validBody, testCaller, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
		require.Nil(t, resp.Error)

		ev := decodeEvent(t, resp.Data)
		assert.Equal(t, "ev-1", ev.ID)
		assert.Equal(t, "2024-05-01-12-00-00", ev.EventDateTime)
		require.Len(t, ev.Members, 1)
		assert.Equal(t, "alice", ev.Members[0].Nickname)
		assert.Equal(t, testCaller, svc.lastCaller)
		assert.Equal(t, "Lunch", svc.lastDraft.Title)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})
		rec, resp := doRequest(t, c.CreateEvent, http.MethodPost, "/events",
			EventRequest{EventDateTime: "2024-05-01-12-00-00", Place: "Cafe"}, testCaller, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("malformed schedule maps to 400", func(t *testing.T) {
		svc := &fakeEventService{createErr: domain.ErrMalformedDateTime}
		c := NewEventController(testLogger, svc)
		body := validBody
		body.EventDateTime = "soon"
		rec, resp := doRequest(t, c.CreateEvent, http.MethodPost, "/events", body, testCaller, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeMalformedDateTime, resp.Error.Code)
	})

	t.Run("no caller in context", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})
		rec, resp := doRequest(t, c.CreateEvent, http.MethodPost, "/events", validBody, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeMemberNotFound, resp.Error.Code)
	})
}

func TestEventController_GetEvent(t *testing.T) {
	t.Run("open read returns event", func(t *testing.T) {
		svc := &fakeEventService{getResult: testDetails()}
		c := NewEventController(testLogger, svc)

		rec, resp := doRequest(t, c.GetEvent, http.MethodGet, "/events/ev-1", nil, nil,
			map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, resp.Error)
		assert.Equal(t, "ev-1", svc.lastEventID)

		ev := decodeEvent(t, resp.Data)
		assert.Equal(t, "Lunch", ev.Title)
		assert.NotEmpty(t, ev.DisplayTime)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEventService{getErr: domain.ErrEventNotFound}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.GetEvent, http.MethodGet, "/events/ev-x", nil, nil,
			map[string]string{"eventID": "ev-x"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeEventNotFound, resp.Error.Code)
	})
}

func TestEventController_UpdateEvent(t *testing.T) {
	body := EventRequest{Title: "Dinner", EventDateTime: "2024-06-01-19-00-00", Place: "Bistro", Point: 300}

	t.Run("updated", func(t *testing.T) {
		svc := &fakeEventService{updateResult: testDetails()}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.UpdateEvent, http.MethodPut, "/events/ev-1", body, testCaller,
			map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, resp.Error)
		assert.Equal(t, "ev-1", svc.lastEventID)
		assert.Equal(t, int64(300), svc.lastDraft.Point)
	})

	t.Run("non-member maps to 403", func(t *testing.T) {
		svc := &fakeEventService{updateErr: domain.ErrNotAMember}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.UpdateEvent, http.MethodPut, "/events/ev-1", body, testCaller,
			map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeNotAMember, resp.Error.Code)
	})
}

func TestEventController_DeleteEvent(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.DeleteEvent, http.MethodDelete, "/events/ev-1", nil, testCaller,
			map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, resp.Error)
		assert.Equal(t, "ev-1", svc.lastEventID)
		assert.Equal(t, testCaller, svc.lastCaller)
	})

	t.Run("service failure maps to 500", func(t *testing.T) {
		svc := &fakeEventService{deleteErr: assert.AnError}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.DeleteEvent, http.MethodDelete, "/events/ev-1", nil, testCaller,
			map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeInternalError, resp.Error.Code)
	})
}

func TestEventController_InviteMember(t *testing.T) {
	t.Run("invited", func(t *testing.T) {
		details := testDetails()
		details.Members = append(details.Members, &domain.Member{ID: "m-2", Nickname: "bob"})
		svc := &fakeEventService{inviteResult: details}
		c := NewEventController(testLogger, svc)

		rec, resp := doRequest(t, c.InviteMember, http.MethodPost, "/events/ev-1/invite",
			InviteMemberRequest{Nickname: "bob"}, testCaller, map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, resp.Error)
		assert.Equal(t, "bob", svc.lastNickname)

		ev := decodeEvent(t, resp.Data)
		require.Len(t, ev.Members, 2)
		assert.Equal(t, "bob", ev.Members[1].Nickname)
	})

	t.Run("empty nickname rejected", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})
		rec, resp := doRequest(t, c.InviteMember, http.MethodPost, "/events/ev-1/invite",
			InviteMemberRequest{}, testCaller, map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, resp.Error)
	})

	t.Run("duplicate maps to 409", func(t *testing.T) {
		svc := &fakeEventService{inviteErr: domain.ErrAlreadyMember}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.InviteMember, http.MethodPost, "/events/ev-1/invite",
			InviteMemberRequest{Nickname: "bob"}, testCaller, map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeAlreadyMember, resp.Error.Code)
	})

	t.Run("unknown nickname maps to 404", func(t *testing.T) {
		svc := &fakeEventService{inviteErr: domain.ErrMemberNotFound}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.InviteMember, http.MethodPost, "/events/ev-1/invite",
			InviteMemberRequest{Nickname: "nobody"}, testCaller, map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeMemberNotFound, resp.Error.Code)
	})
}

func TestEventController_ExitEvent(t *testing.T) {
	t.Run("left", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.ExitEvent, http.MethodDelete, "/events/ev-1/exit", nil, testCaller,
			map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, resp.Error)
		assert.Equal(t, testCaller, svc.lastCaller)
	})

	t.Run("not a participant maps to 403", func(t *testing.T) {
		svc := &fakeEventService{exitErr: domain.ErrNotAMember}
		c := NewEventController(testLogger, svc)
		rec, resp := doRequest(t, c.ExitEvent, http.MethodDelete, "/events/ev-1/exit", nil, testCaller,
			map[string]string{"eventID": "ev-1"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeNotAMember, resp.Error.Code)
	})
}
