package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// DepartmentController handles department management endpoints.
type DepartmentController struct {
	Logger  *slog.Logger
	Service domain.DepartmentService
}

// CreateDepartmentRequest is the request body for POST /departments.
type CreateDepartmentRequest struct {
	CollegeID    string  `json:"college_id"`
	Name         string  `json:"name"`
	ShortName    *string `json:"short_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}

// Validate checks the create department request fields.
func (r CreateDepartmentRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(r.CollegeID) {
		errs = append(errs, "a valid college_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.ContactEmail != nil && !emailRegex.MatchString(*r.ContactEmail) {
		errs = append(errs, "contact_email must be a valid email")
	}
	return errs
}

// UpdateDepartmentRequest is the request body for PATCH /departments/{departmentID}.
type UpdateDepartmentRequest struct {
	Name         *string `json:"name,omitempty"`
	ShortName    *string `json:"short_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}

// Validate checks the update department request fields.
func (r UpdateDepartmentRequest) Validate() []string {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	return errs
}

// DepartmentSuccessResponse is the success envelope for a single department.
type DepartmentSuccessResponse struct {
	Data  *domain.Department `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// DepartmentListData is the payload for paginated department listings.
type DepartmentListData struct {
	Departments []*domain.Department   `json:"departments"`
	Pagination  helpers.PaginationMeta `json:"pagination"`
}

// Create creates a department. Staff only.
//
//	@Summary		Create a department
//	@Tags			departments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateDepartmentRequest	true	"Department to create"
//	@Success		201		{object}	DepartmentSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/departments [post]
func (c *DepartmentController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDepartmentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	dept := &domain.Department{
		CollegeID:    req.CollegeID,
		Name:         strings.TrimSpace(req.Name),
		ShortName:    req.ShortName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := c.Service.CreateDepartment(r.Context(), actor, dept); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, dept)
}

// GetByID fetches a single department.
//
//	@Summary		Get a department
//	@Tags			departments
//	@Produce		json
//	@Param			departmentID	path		string	true	"Department ID"
//	@Success		200				{object}	DepartmentSuccessResponse
//	@Failure		400				{object}	helpers.APIResponse
//	@Failure		404				{object}	helpers.APIResponse
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/departments/{departmentID} [get]
func (c *DepartmentController) GetByID(w http.ResponseWriter, r *http.Request) {
	departmentID := r.PathValue("departmentID")
	if !uuidRegex.MatchString(departmentID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid department ID")
		return
	}
	dept, err := c.Service.GetDepartmentByID(r.Context(), departmentID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dept)
}

// List lists departments, optionally scoped to a college.
//
//	@Summary		List departments
//	@Tags			departments
//	@Produce		json
//	@Param			college_id	query		string	false	"Filter by college"
//	@Param			search		query		string	false	"Search in name"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=DepartmentListData}
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/departments [get]
func (c *DepartmentController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	q := r.URL.Query()
	depts, total, err := c.Service.ListDepartments(r.Context(), q.Get("college_id"), q.Get("search"), params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DepartmentListData{
		Departments: depts,
		Pagination:  helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Update applies a partial update to a department. Staff only.
//
//	@Summary		Update a department
//	@Tags			departments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			departmentID	path		string						true	"Department ID"
//	@Param			request			body		UpdateDepartmentRequest		true	"Fields to update"
//	@Success		200				{object}	DepartmentSuccessResponse
//	@Failure		400				{object}	helpers.APIResponse
//	@Failure		401				{object}	helpers.APIResponse
//	@Failure		403				{object}	helpers.APIResponse
//	@Failure		404				{object}	helpers.APIResponse
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/departments/{departmentID} [patch]
func (c *DepartmentController) Update(w http.ResponseWriter, r *http.Request) {
	departmentID := r.PathValue("departmentID")
	if !uuidRegex.MatchString(departmentID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid department ID")
		return
	}
	var req UpdateDepartmentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	upd := domain.DepartmentUpdate{
		Name:         req.Name,
		ShortName:    req.ShortName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	dept, err := c.Service.UpdateDepartment(r.Context(), actor, departmentID, upd)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dept)
}

// Delete removes a department. Staff only.
//
//	@Summary		Delete a department
//	@Tags			departments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			departmentID	path		string	true	"Department ID"
//	@Success		200				{object}	helpers.APIResponse
//	@Failure		400				{object}	helpers.APIResponse
//	@Failure		401				{object}	helpers.APIResponse
//	@Failure		403				{object}	helpers.APIResponse
//	@Failure		404				{object}	helpers.APIResponse
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/departments/{departmentID} [delete]
func (c *DepartmentController) Delete(w http.ResponseWriter, r *http.Request) {
	departmentID := r.PathValue("departmentID")
	if !uuidRegex.MatchString(departmentID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid department ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Service.DeleteDepartment(r.Context(), actor, departmentID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "department deleted"})
}
