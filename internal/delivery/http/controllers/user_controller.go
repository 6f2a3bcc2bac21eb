package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// UserController handles user management endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// UpdateUserRequest is the request body for PATCH /users/{userID}.
type UpdateUserRequest struct {
	Name         *string `json:"name,omitempty"`
	CollegeID    *string `json:"college_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Role         *string `json:"role,omitempty"`
}

// Validate checks the update user request fields.
func (r UpdateUserRequest) Validate() []string {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if r.Role != nil {
		switch *r.Role {
		case domain.RoleUser, domain.RoleAdmin, domain.RoleSuperadmin:
		default:
			errs = append(errs, "role must be one of user, admin, superadmin")
		}
	}
	return errs
}

// UserSuccessResponse is the success envelope for a single user.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserListData is the payload for paginated user listings.
type UserListData struct {
	Users      []*domain.User         `json:"users"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// Me returns the authenticated user's profile.
//
//	@Summary		Get my profile
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UserSuccessResponse
//	@Failure		401	{object}	helpers.APIResponse
//	@Failure		500	{object}	helpers.APIResponse
//	@Router			/users/me [get]
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	user, err := c.Service.GetUserByID(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// GetByID fetches a single user. Staff only.
//
//	@Summary		Get a user
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{object}	UserSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/users/{userID} [get]
func (c *UserController) GetByID(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid user ID")
		return
	}
	user, err := c.Service.GetUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// List lists users. Admins see their own college only.
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int	false	"Page number"
//	@Param			page_size	query		int	false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=UserListData}
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/users [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	params := helpers.ParsePagination(r)
	users, total, err := c.Service.ListUsers(r.Context(), actor, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UserListData{
		Users:      users,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Update applies a partial update to a user. Role changes need superadmin.
//
//	@Summary		Update a user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userID	path		string				true	"User ID"
//	@Param			request	body		UpdateUserRequest	true	"Fields to update"
//	@Success		200		{object}	UserSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/users/{userID} [patch]
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid user ID")
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	upd := domain.UserUpdate{
		Name:         req.Name,
		CollegeID:    req.CollegeID,
		DepartmentID: req.DepartmentID,
		Role:         req.Role,
	}
	user, err := c.Service.UpdateUser(r.Context(), actor, userID, upd)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// Delete removes a user account.
//
//	@Summary		Delete a user
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{object}	helpers.APIResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/users/{userID} [delete]
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid user ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Service.DeleteUser(r.Context(), actor, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "user deleted"})
}
