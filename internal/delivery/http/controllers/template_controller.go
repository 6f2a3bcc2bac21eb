package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// TemplateController handles campaign email template endpoints. Staff only.
type TemplateController struct {
	Logger  *slog.Logger
	Service domain.EmailTemplateService
}

// CreateTemplateRequest is the request body for POST /email-templates.
type CreateTemplateRequest struct {
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	BodyText string `json:"body_text"`
}

// Validate checks the create template request fields.
func (r CreateTemplateRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if strings.TrimSpace(r.BodyHTML) == "" && strings.TrimSpace(r.BodyText) == "" {
		errs = append(errs, "body_html or body_text is required")
	}
	return errs
}

// UpdateTemplateRequest is the request body for PATCH /email-templates/{templateID}.
type UpdateTemplateRequest struct {
	Name     *string `json:"name,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	BodyHTML *string `json:"body_html,omitempty"`
	BodyText *string `json:"body_text,omitempty"`
}

// Validate checks the update template request fields.
func (r UpdateTemplateRequest) Validate() []string {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if r.Subject != nil && strings.TrimSpace(*r.Subject) == "" {
		errs = append(errs, "subject cannot be empty")
	}
	return errs
}

// TemplateSuccessResponse is the success envelope for a single template.
type TemplateSuccessResponse struct {
	Data  *domain.EmailTemplate `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// TemplateListData is the payload for paginated template listings.
type TemplateListData struct {
	Templates  []*domain.EmailTemplate `json:"templates"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// Create creates an email template.
//
//	@Summary		Create an email template
//	@Tags			email-templates
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateTemplateRequest	true	"Template to create"
//	@Success		201		{object}	TemplateSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/email-templates [post]
func (c *TemplateController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	tpl := &domain.EmailTemplate{
		Name:     strings.TrimSpace(req.Name),
		Subject:  req.Subject,
		BodyHTML: req.BodyHTML,
		BodyText: req.BodyText,
	}
	if err := c.Service.CreateTemplate(r.Context(), actor, tpl); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tpl)
}

// GetByID fetches a single template.
//
//	@Summary		Get an email template
//	@Tags			email-templates
//	@Produce		json
//	@Security		BearerAuth
//	@Param			templateID	path		string	true	"Template ID"
//	@Success		200			{object}	TemplateSuccessResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/email-templates/{templateID} [get]
func (c *TemplateController) GetByID(w http.ResponseWriter, r *http.Request) {
	templateID := r.PathValue("templateID")
	if !uuidRegex.MatchString(templateID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid template ID")
		return
	}
	tpl, err := c.Service.GetTemplateByID(r.Context(), templateID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tpl)
}

// List lists email templates.
//
//	@Summary		List email templates
//	@Tags			email-templates
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int	false	"Page number"
//	@Param			page_size	query		int	false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=TemplateListData}
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/email-templates [get]
func (c *TemplateController) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	params := helpers.ParsePagination(r)
	tpls, total, err := c.Service.ListTemplates(r.Context(), actor, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TemplateListData{
		Templates:  tpls,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Update applies a partial update to a template.
//
//	@Summary		Update an email template
//	@Tags			email-templates
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			templateID	path		string					true	"Template ID"
//	@Param			request		body		UpdateTemplateRequest	true	"Fields to update"
//	@Success		200			{object}	TemplateSuccessResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/email-templates/{templateID} [patch]
func (c *TemplateController) Update(w http.ResponseWriter, r *http.Request) {
	templateID := r.PathValue("templateID")
	if !uuidRegex.MatchString(templateID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid template ID")
		return
	}
	var req UpdateTemplateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	upd := domain.EmailTemplateUpdate{
		Name:     req.Name,
		Subject:  req.Subject,
		BodyHTML: req.BodyHTML,
		BodyText: req.BodyText,
	}
	tpl, err := c.Service.UpdateTemplate(r.Context(), actor, templateID, upd)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tpl)
}

// Delete removes a template.
//
//	@Summary		Delete an email template
//	@Tags			email-templates
//	@Produce		json
//	@Security		BearerAuth
//	@Param			templateID	path		string	true	"Template ID"
//	@Success		200			{object}	helpers.APIResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/email-templates/{templateID} [delete]
func (c *TemplateController) Delete(w http.ResponseWriter, r *http.Request) {
	templateID := r.PathValue("templateID")
	if !uuidRegex.MatchString(templateID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid template ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Service.DeleteTemplate(r.Context(), actor, templateID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "template deleted"})
}
