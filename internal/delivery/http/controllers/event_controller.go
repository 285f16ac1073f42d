package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"meetpoint/internal/delivery/http/helpers"
	"meetpoint/internal/delivery/http/middleware"
	"meetpoint/internal/domain"
	"meetpoint/internal/services"
)

// EventRequest is the request body for event create and update.
type EventRequest struct {
	Title         string `json:"title"`
	EventDateTime string `json:"eventDateTime"`
	Place         string `json:"place"`
	Content       string `json:"content"`
	Point         int64  `json:"point"`
}

// Validate implements Validator. Schedule format errors are left to the
// service so they map to their own failure code.
func (e EventRequest) Validate() []string {
	var errs []string
	if e.Title == "" {
		errs = append(errs, "title is required")
	}
	if e.EventDateTime == "" {
		errs = append(errs, "eventDateTime is required")
	}
	if e.Place == "" {
		errs = append(errs, "place is required")
	}
	return errs
}

func (e EventRequest) draft() domain.EventDraft {
	return domain.EventDraft{
		Title:         e.Title,
		EventDateTime: e.EventDateTime,
		Place:         e.Place,
		Content:       e.Content,
		Point:         e.Point,
	}
}

// InviteMemberRequest is the request body for inviting a member by nickname.
type InviteMemberRequest struct {
	Nickname string `json:"nickname"`
}

// Validate implements Validator.
func (i InviteMemberRequest) Validate() []string {
	var errs []string
	if i.Nickname == "" {
		errs = append(errs, "nickname is required")
	}
	return errs
}

// MemberResponse is the caller-facing member projection.
// swagger:model MemberResponse
type MemberResponse struct {
	ID              string `json:"id"`
	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	Credit          int64  `json:"credit"`
	Point           int64  `json:"point"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// EventResponse is the caller-facing event payload. Members always reflect
// the ledger at response-assembly time, in insertion order.
// swagger:model EventResponse
type EventResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	EventDateTime string           `json:"eventDateTime"`
	Place         string           `json:"place"`
	Content       string           `json:"content"`
	Point         int64            `json:"point"`
	CreatedAt     time.Time        `json:"createdAt"`
	DisplayTime   string           `json:"displayTime"`
	Members       []MemberResponse `json:"members"`
}

// MessageResponse carries a plain confirmation message.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

func newMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:              m.ID,
		PhoneNumber:     m.PhoneNumber,
		Email:           m.Email,
		Nickname:        m.Nickname,
		Credit:          m.Credit,
		Point:           m.Point,
		ProfileImageURL: m.ProfileImageURL,
	}
}

func newEventResponse(d *domain.EventDetails, now time.Time) EventResponse {
	members := make([]MemberResponse, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, newMemberResponse(m))
	}
	return EventResponse{
		ID:            d.Event.ID,
		Title:         d.Event.Title,
		EventDateTime: d.Event.EventDateTime.Format(domain.EventTimeLayout),
		Place:         d.Event.Place,
		Content:       d.Event.Content,
		Point:         d.Event.Point,
		CreatedAt:     d.Event.CreatedAt,
		DisplayTime:   services.DisplayEventTime(d.Event.EventDateTime, now),
		Members:       members,
	}
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// caller pulls the authenticated member placed in the context by the auth
// middleware.
func (c *EventController) caller(w http.ResponseWriter, r *http.Request) (*domain.Member, bool) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeMemberNotFound, domain.ErrMemberNotFound.Error())
		return nil, false
	}
	return member, true
}

// writeServiceError maps service failures onto statuses and codes. Unmapped
// errors are logged and surface as 500.
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrMemberNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeMemberNotFound, err.Error())
	case errors.Is(err, domain.ErrNotAMember):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeNotAMember, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyMember, err.Error())
	case errors.Is(err, domain.ErrMalformedDateTime):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeMalformedDateTime, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event; the authenticated caller becomes its first member.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event fields"
// @Success 201 {object} helpers.APIResponse "data contains the event with its member list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or malformed_datetime"
// @Failure 401 {object} helpers.APIResponse "error.code: invalid_credential"
// @Failure 404 {object} helpers.APIResponse "error.code: member_not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	member, ok := c.caller(w, r)
	if !ok {
		return
	}
	details, err := c.Service.Create(r.Context(), member, req.draft())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newEventResponse(details, time.Now()))
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event and its current member list. No authentication required.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event with its member list"
// @Failure 404 {object} helpers.APIResponse "error.code: event_not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	details, err := c.Service.Get(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newEventResponse(details, time.Now()))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Updates title, schedule, place, content and point. The caller must be a member of the event.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "Event fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or malformed_datetime"
// @Failure 401 {object} helpers.APIResponse "error.code: invalid_credential"
// @Failure 403 {object} helpers.APIResponse "error.code: not_a_member"
// @Failure 404 {object} helpers.APIResponse "error.code: event_not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	member, ok := c.caller(w, r)
	if !ok {
		return
	}
	details, err := c.Service.Update(r.Context(), member, eventID, req.draft())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newEventResponse(details, time.Now()))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and every membership record for it. The caller must be a member.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: invalid_credential"
// @Failure 403 {object} helpers.APIResponse "error.code: not_a_member"
// @Failure 404 {object} helpers.APIResponse "error.code: event_not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	member, ok := c.caller(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), member, eventID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "event deleted"})
}

// InviteMember godoc
// @Summary Invite a member
// @Description Adds the member with the given nickname to the event and returns the refreshed member list.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param invite body InviteMemberRequest true "Invitee nickname"
// @Success 200 {object} helpers.APIResponse "data contains the event with its member list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: invalid_credential"
// @Failure 404 {object} helpers.APIResponse "error.code: member_not_found or event_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_member"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invite [post]
func (c *EventController) InviteMember(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req InviteMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	member, ok := c.caller(w, r)
	if !ok {
		return
	}
	details, err := c.Service.Invite(r.Context(), member, eventID, req.Nickname)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newEventResponse(details, time.Now()))
}

// ExitEvent godoc
// @Summary Leave an event
// @Description Removes the caller's own membership record. The event is kept even when its last member leaves.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: invalid_credential"
// @Failure 403 {object} helpers.APIResponse "error.code: not_a_member"
// @Failure 404 {object} helpers.APIResponse "error.code: event_not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/exit [delete]
func (c *EventController) ExitEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	member, ok := c.caller(w, r)
	if !ok {
		return
	}
	if err := c.Service.Exit(r.Context(), member, eventID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "left the event"})
}
