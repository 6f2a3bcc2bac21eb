package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// InviteController handles admin invite endpoints.
type InviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

// CreateInviteRequest is the request body for POST /invites.
type CreateInviteRequest struct {
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CollegeID *string `json:"college_id,omitempty"`
}

// Validate checks the create invite request fields.
func (r CreateInviteRequest) Validate() []string {
	var errs []string
	if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "a valid email is required")
	}
	switch r.Role {
	case domain.RoleAdmin, domain.RoleSuperadmin:
	default:
		errs = append(errs, "role must be admin or superadmin")
	}
	if r.CollegeID != nil && !uuidRegex.MatchString(*r.CollegeID) {
		errs = append(errs, "college_id must be a valid UUID")
	}
	return errs
}

// InviteSuccessResponse is the success envelope for a single invite.
type InviteSuccessResponse struct {
	Data  *domain.InviteToken `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// InviteListData is the payload for paginated invite listings.
type InviteListData struct {
	Invites    []*domain.InviteToken  `json:"invites"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// Create mints an invite and emails it to the invitee. Staff only.
//
//	@Summary		Create an invite
//	@Description	Admins may only invite into their own college. Superadmin invites need a superadmin caller.
//	@Tags			invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateInviteRequest	true	"Invite to create"
//	@Success		201		{object}	InviteSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/invites [post]
func (c *InviteController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	invite, err := c.Service.CreateInvite(r.Context(), actor, req.Email, req.Role, req.CollegeID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, invite)
}

// Validate checks an invite token for the signup form without consuming it.
//
//	@Summary		Validate an invite token
//	@Tags			invites
//	@Produce		json
//	@Param			token	query		string	true	"Invite token"
//	@Success		200		{object}	InviteSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		409		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/invites/validate [get]
func (c *InviteController) Validate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "token is required")
		return
	}
	invite, err := c.Service.ValidateInvite(r.Context(), token)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invite)
}

// List lists the caller's invites.
//
//	@Summary		List invites
//	@Tags			invites
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int	false	"Page number"
//	@Param			page_size	query		int	false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=InviteListData}
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/invites [get]
func (c *InviteController) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	params := helpers.ParsePagination(r)
	invites, total, err := c.Service.ListInvites(r.Context(), actor, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteListData{
		Invites:    invites,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Delete revokes an unused invite.
//
//	@Summary		Delete an invite
//	@Tags			invites
//	@Produce		json
//	@Security		BearerAuth
//	@Param			inviteID	path		string	true	"Invite ID"
//	@Success		200			{object}	helpers.APIResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		409			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/invites/{inviteID} [delete]
func (c *InviteController) Delete(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if !uuidRegex.MatchString(inviteID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid invite ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Service.DeleteInvite(r.Context(), actor, inviteID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "invite deleted"})
}
