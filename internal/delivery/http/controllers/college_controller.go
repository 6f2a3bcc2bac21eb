package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// CollegeController handles college management endpoints. Mutations are
// superadmin only, enforced in the router.
type CollegeController struct {
	Logger  *slog.Logger
	Service domain.CollegeService
}

// CreateCollegeRequest is the request body for POST /colleges.
type CreateCollegeRequest struct {
	Name         string  `json:"name"`
	ShortName    *string `json:"short_name,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	WebsiteURL   *string `json:"website_url,omitempty"`
}

// Validate checks the create college request fields.
func (r CreateCollegeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.ContactEmail != nil && !emailRegex.MatchString(*r.ContactEmail) {
		errs = append(errs, "contact_email must be a valid email")
	}
	return errs
}

// UpdateCollegeRequest is the request body for PATCH /colleges/{collegeID}.
type UpdateCollegeRequest struct {
	Name         *string `json:"name,omitempty"`
	ShortName    *string `json:"short_name,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	WebsiteURL   *string `json:"website_url,omitempty"`
}

// Validate checks the update college request fields.
func (r UpdateCollegeRequest) Validate() []string {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if r.ContactEmail != nil && *r.ContactEmail != "" && !emailRegex.MatchString(*r.ContactEmail) {
		errs = append(errs, "contact_email must be a valid email")
	}
	return errs
}

// CollegeSuccessResponse is the success envelope for a single college.
type CollegeSuccessResponse struct {
	Data  *domain.College   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CollegeListData is the payload for paginated college listings.
type CollegeListData struct {
	Colleges   []*domain.College      `json:"colleges"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// Create creates a college.
//
//	@Summary		Create a college
//	@Tags			colleges
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateCollegeRequest	true	"College to create"
//	@Success		201		{object}	CollegeSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/colleges [post]
func (c *CollegeController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollegeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	college := &domain.College{
		Name:         strings.TrimSpace(req.Name),
		ShortName:    req.ShortName,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		WebsiteURL:   req.WebsiteURL,
	}
	if err := c.Service.CreateCollege(r.Context(), college); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, college)
}

// GetByID fetches a single college.
//
//	@Summary		Get a college
//	@Tags			colleges
//	@Produce		json
//	@Param			collegeID	path		string	true	"College ID"
//	@Success		200			{object}	CollegeSuccessResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/colleges/{collegeID} [get]
func (c *CollegeController) GetByID(w http.ResponseWriter, r *http.Request) {
	collegeID := r.PathValue("collegeID")
	if !uuidRegex.MatchString(collegeID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid college ID")
		return
	}
	college, err := c.Service.GetCollegeByID(r.Context(), collegeID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, college)
}

// List lists colleges with optional name search.
//
//	@Summary		List colleges
//	@Tags			colleges
//	@Produce		json
//	@Param			search		query		string	false	"Search in name"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=CollegeListData}
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/colleges [get]
func (c *CollegeController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	colleges, total, err := c.Service.ListColleges(r.Context(), r.URL.Query().Get("search"), params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CollegeListData{
		Colleges:   colleges,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Update applies a partial update to a college.
//
//	@Summary		Update a college
//	@Tags			colleges
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			collegeID	path		string					true	"College ID"
//	@Param			request		body		UpdateCollegeRequest	true	"Fields to update"
//	@Success		200			{object}	CollegeSuccessResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/colleges/{collegeID} [patch]
func (c *CollegeController) Update(w http.ResponseWriter, r *http.Request) {
	collegeID := r.PathValue("collegeID")
	if !uuidRegex.MatchString(collegeID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid college ID")
		return
	}
	var req UpdateCollegeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.CollegeUpdate{
		Name:         req.Name,
		ShortName:    req.ShortName,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		WebsiteURL:   req.WebsiteURL,
	}
	college, err := c.Service.UpdateCollege(r.Context(), collegeID, upd)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, college)
}

// Delete soft deletes a college.
//
//	@Summary		Delete a college
//	@Tags			colleges
//	@Produce		json
//	@Security		BearerAuth
//	@Param			collegeID	path		string	true	"College ID"
//	@Success		200			{object}	helpers.APIResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/colleges/{collegeID} [delete]
func (c *CollegeController) Delete(w http.ResponseWriter, r *http.Request) {
	collegeID := r.PathValue("collegeID")
	if !uuidRegex.MatchString(collegeID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid college ID")
		return
	}
	if err := c.Service.DeleteCollege(r.Context(), collegeID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "college deleted"})
}
