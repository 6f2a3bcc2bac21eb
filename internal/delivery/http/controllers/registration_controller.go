package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// RegistrationController handles event registration endpoints.
type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

// RegistrationSuccessResponse is the success envelope for a single registration.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// RegistrationListData is the payload for paginated registration listings.
type RegistrationListData struct {
	Registrations []*domain.Registration `json:"registrations"`
	Pagination    helpers.PaginationMeta `json:"pagination"`
}

// MyRegistrationListData is the payload for the caller's own registrations.
type MyRegistrationListData struct {
	Registrations []*domain.RegistrationWithEvent `json:"registrations"`
	Pagination    helpers.PaginationMeta          `json:"pagination"`
}

// Register registers the authenticated user for an event.
//
//	@Summary		Register for an event
//	@Description	Issues a ticket if the event is published, the deadline has not passed, capacity remains and the user is not already registered.
//	@Tags			registrations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			eventID	path		string	true	"Event ID"
//	@Success		201		{object}	RegistrationSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		409		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	reg, err := c.Service.Register(r.Context(), eventID, actor.ID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// Cancel cancels the authenticated user's registration.
//
//	@Summary		Cancel a registration
//	@Tags			registrations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			registrationID	path		string	true	"Registration ID"
//	@Success		200				{object}	helpers.APIResponse
//	@Failure		400				{object}	helpers.APIResponse
//	@Failure		401				{object}	helpers.APIResponse
//	@Failure		404				{object}	helpers.APIResponse
//	@Failure		409				{object}	helpers.APIResponse
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/registrations/{registrationID} [delete]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if !uuidRegex.MatchString(registrationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid registration ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	if err := c.Service.CancelRegistration(r.Context(), registrationID, actor.ID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "registration cancelled"})
}

// CheckMine returns the authenticated user's active registration for an event.
//
//	@Summary		Check my registration for an event
//	@Tags			registrations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			eventID	path		string	true	"Event ID"
//	@Success		200		{object}	RegistrationSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/events/{eventID}/registrations/me [get]
func (c *RegistrationController) CheckMine(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	reg, err := c.Service.GetMyRegistration(r.Context(), eventID, actor.ID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListByEvent lists all registrations for an event. Staff only.
//
//	@Summary		List event registrations
//	@Tags			registrations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			eventID		path		string	true	"Event ID"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=RegistrationListData}
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/events/{eventID}/registrations [get]
func (c *RegistrationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	params := helpers.ParsePagination(r)
	regs, total, err := c.Service.ListEventRegistrations(r.Context(), actor, eventID, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationListData{
		Registrations: regs,
		Pagination:    helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListMine lists the authenticated user's registrations with event details.
//
//	@Summary		List my registrations
//	@Tags			registrations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int	false	"Page number"
//	@Param			page_size	query		int	false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=MyRegistrationListData}
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/users/me/registrations [get]
func (c *RegistrationController) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	params := helpers.ParsePagination(r)
	regs, total, err := c.Service.ListUserRegistrations(r.Context(), actor.ID, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MyRegistrationListData{
		Registrations: regs,
		Pagination:    helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// MarkAttended marks a registration as attended. Staff only.
//
//	@Summary		Mark a registration attended
//	@Tags			registrations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			registrationID	path		string	true	"Registration ID"
//	@Success		200				{object}	helpers.APIResponse
//	@Failure		400				{object}	helpers.APIResponse
//	@Failure		401				{object}	helpers.APIResponse
//	@Failure		403				{object}	helpers.APIResponse
//	@Failure		404				{object}	helpers.APIResponse
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/registrations/{registrationID}/attendance [post]
func (c *RegistrationController) MarkAttended(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if !uuidRegex.MatchString(registrationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid registration ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Service.MarkAttended(r.Context(), actor, registrationID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "attendance recorded"})
}
