package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// CampaignController handles email campaign endpoints. Staff only.
type CampaignController struct {
	Logger  *slog.Logger
	Service domain.CampaignService
}

// CreateCampaignRequest is the request body for POST /campaigns.
type CreateCampaignRequest struct {
	Name       string `json:"name"`
	TemplateID string `json:"template_id"`
	EventID    string `json:"event_id"`
}

// Validate checks the create campaign request fields.
func (r CreateCampaignRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !uuidRegex.MatchString(r.TemplateID) {
		errs = append(errs, "a valid template_id is required")
	}
	if !uuidRegex.MatchString(r.EventID) {
		errs = append(errs, "a valid event_id is required")
	}
	return errs
}

// CampaignSuccessResponse is the success envelope for a single campaign.
type CampaignSuccessResponse struct {
	Data  *domain.Campaign  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CampaignListData is the payload for paginated campaign listings.
type CampaignListData struct {
	Campaigns  []*domain.Campaign     `json:"campaigns"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// Create creates a draft campaign.
//
//	@Summary		Create a campaign
//	@Tags			campaigns
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateCampaignRequest	true	"Campaign to create"
//	@Success		201		{object}	CampaignSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		403		{object}	helpers.APIResponse
//	@Failure		404		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/campaigns [post]
func (c *CampaignController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	campaign := &domain.Campaign{
		Name:       strings.TrimSpace(req.Name),
		TemplateID: req.TemplateID,
		EventID:    req.EventID,
	}
	if err := c.Service.CreateCampaign(r.Context(), actor, campaign); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, campaign)
}

// GetByID fetches a single campaign.
//
//	@Summary		Get a campaign
//	@Tags			campaigns
//	@Produce		json
//	@Security		BearerAuth
//	@Param			campaignID	path		string	true	"Campaign ID"
//	@Success		200			{object}	CampaignSuccessResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/campaigns/{campaignID} [get]
func (c *CampaignController) GetByID(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")
	if !uuidRegex.MatchString(campaignID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid campaign ID")
		return
	}
	campaign, err := c.Service.GetCampaignByID(r.Context(), campaignID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, campaign)
}

// List lists campaigns.
//
//	@Summary		List campaigns
//	@Tags			campaigns
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int	false	"Page number"
//	@Param			page_size	query		int	false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=CampaignListData}
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/campaigns [get]
func (c *CampaignController) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	params := helpers.ParsePagination(r)
	campaigns, total, err := c.Service.ListCampaigns(r.Context(), actor, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CampaignListData{
		Campaigns:  campaigns,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Send sends a draft campaign to every active registrant of its event.
//
//	@Summary		Send a campaign
//	@Tags			campaigns
//	@Produce		json
//	@Security		BearerAuth
//	@Param			campaignID	path		string	true	"Campaign ID"
//	@Success		200			{object}	CampaignSuccessResponse
//	@Failure		400			{object}	helpers.APIResponse
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		403			{object}	helpers.APIResponse
//	@Failure		404			{object}	helpers.APIResponse
//	@Failure		409			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/campaigns/{campaignID}/send [post]
func (c *CampaignController) Send(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")
	if !uuidRegex.MatchString(campaignID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid campaign ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	campaign, err := c.Service.SendCampaign(r.Context(), actor, campaignID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, campaign)
}
