package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// EventController handles event management endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	CollegeID            string     `json:"college_id"`
	DepartmentID         *string    `json:"department_id,omitempty"`
	Category             string     `json:"category"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              time.Time  `json:"end_time"`
	Location             *string    `json:"location,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MaxParticipants      *int       `json:"max_participants,omitempty"`
	Status               string     `json:"status,omitempty"`
}

// Validate checks the create event request fields.
func (r CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if !uuidRegex.MatchString(r.CollegeID) {
		errs = append(errs, "a valid college_id is required")
	}
	if r.DepartmentID != nil && !uuidRegex.MatchString(*r.DepartmentID) {
		errs = append(errs, "department_id must be a valid UUID")
	}
	if strings.TrimSpace(r.Category) == "" {
		errs = append(errs, "category is required")
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		errs = append(errs, "start_time and end_time are required")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// Absent fields are left unchanged.
type UpdateEventRequest struct {
	Title                *string    `json:"title,omitempty"`
	Description          *string    `json:"description,omitempty"`
	DepartmentID         *string    `json:"department_id,omitempty"`
	Category             *string    `json:"category,omitempty"`
	StartTime            *time.Time `json:"start_time,omitempty"`
	EndTime              *time.Time `json:"end_time,omitempty"`
	Location             *string    `json:"location,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MaxParticipants      *int       `json:"max_participants,omitempty"`
	Status               *string    `json:"status,omitempty"`
}

// Validate checks the update event request fields.
func (r UpdateEventRequest) Validate() []string {
	var errs []string
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if r.DepartmentID != nil && *r.DepartmentID != "" && !uuidRegex.MatchString(*r.DepartmentID) {
		errs = append(errs, "department_id must be a valid UUID")
	}
	return errs
}

// EventSuccessResponse is the success envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListData is the payload for paginated event listings.
type EventListData struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// Create creates an event. Staff only.
//
//	@Summary		Create an event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateEventRequest	true	"Event to create"
//	@Success		201		{object}	EventSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	event := &domain.Event{
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		CollegeID:            req.CollegeID,
		DepartmentID:         req.DepartmentID,
		Category:             req.Category,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Location:             req.Location,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxParticipants:      req.MaxParticipants,
		Status:               req.Status,
	}
	if err := c.Service.CreateEvent(r.Context(), actor, event); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetByID fetches a single event.
//
//	@Summary		Get an event
//	@Tags			events
//	@Produce		json
//	@Param			eventID	path		string	true	"Event ID"
//	@Success		200		{object}	EventSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event ID")
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// List lists events. Anonymous callers see published events only.
//
//	@Summary		List events
//	@Tags			events
//	@Produce		json
//	@Param			college_id		query		string	false	"Filter by college"
//	@Param			department_id	query		string	false	"Filter by department"
//	@Param			category		query		string	false	"Filter by category"
//	@Param			status			query		string	false	"Filter by status (staff only)"
//	@Param			search			query		string	false	"Search in title and description"
//	@Param			page			query		int		false	"Page number"
//	@Param			page_size		query		int		false	"Page size"
//	@Success		200				{object}	helpers.APIResponse{data=EventListData}
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	q := r.URL.Query()
	filter := domain.EventFilter{
		CollegeID:    q.Get("college_id"),
		DepartmentID: q.Get("department_id"),
		Category:     q.Get("category"),
		Status:       q.Get("status"),
		Search:       q.Get("search"),
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), actor, filter, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListData{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Update applies a partial update to an event. Staff only.
//
//	@Summary		Update an event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			eventID	path		string				true	"Event ID"
//	@Param			request	body		UpdateEventRequest	true	"Fields to update"
//	@Success		200		{object}	EventSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event ID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	upd := domain.EventUpdate{
		Title:                req.Title,
		Description:          req.Description,
		DepartmentID:         req.DepartmentID,
		Category:             req.Category,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Location:             req.Location,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxParticipants:      req.MaxParticipants,
		Status:               req.Status,
	}
	event, err := c.Service.UpdateEvent(r.Context(), actor, eventID, upd)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete soft deletes an event. Staff only.
//
//	@Summary		Delete an event
//	@Tags			events
//	@Produce		json
//	@Security		BearerAuth
//	@Param			eventID	path		string	true	"Event ID"
//	@Success		200		{object}	helpers.APIResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Service.DeleteEvent(r.Context(), actor, eventID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "event deleted"})
}
