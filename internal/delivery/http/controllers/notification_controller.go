package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// NotificationController handles in-app notification endpoints.
type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

// NotificationListData is the payload for paginated notification listings.
type NotificationListData struct {
	Notifications []*domain.Notification `json:"notifications"`
	Pagination    helpers.PaginationMeta `json:"pagination"`
}

// List lists the authenticated user's notifications.
//
//	@Summary		List my notifications
//	@Tags			notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			unread		query		bool	false	"Unread only"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	helpers.APIResponse{data=NotificationListData}
//	@Failure		401			{object}	helpers.APIResponse
//	@Failure		500			{object}	helpers.APIResponse
//	@Router			/notifications [get]
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	params := helpers.ParsePagination(r)
	notifs, total, err := c.Service.ListNotifications(r.Context(), actor.ID, unreadOnly, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NotificationListData{
		Notifications: notifs,
		Pagination:    helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// MarkRead marks one notification read.
//
//	@Summary		Mark a notification read
//	@Tags			notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			notificationID	path		string	true	"Notification ID"
//	@Success		200				{object}	helpers.APIResponse
//	@Failure		400				{object}	helpers.APIResponse
//	@Failure		401				{object}	helpers.APIResponse
//	@Failure		404				{object}	helpers.APIResponse
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/notifications/{notificationID}/read [post]
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := r.PathValue("notificationID")
	if !uuidRegex.MatchString(notificationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid notification ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	if err := c.Service.MarkRead(r.Context(), notificationID, actor.ID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "notification read"})
}

// MarkAllRead marks all of the caller's notifications read.
//
//	@Summary		Mark all notifications read
//	@Tags			notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	helpers.APIResponse
//	@Failure		401	{object}	helpers.APIResponse
//	@Failure		500	{object}	helpers.APIResponse
//	@Router			/notifications/read-all [post]
func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	if err := c.Service.MarkAllRead(r.Context(), actor.ID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "all notifications read"})
}

// Delete removes one of the caller's notifications.
//
//	@Summary		Delete a notification
//	@Tags			notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			notificationID	path		string	true	"Notification ID"
//	@Success		200				{object}	helpers.APIResponse
//	@Failure		400				{object}	helpers.APIResponse
//	@Failure		401				{object}	helpers.APIResponse
//	@Failure		404				{object}	helpers.APIResponse
//	@Failure		500				{object}	helpers.APIResponse
//	@Router			/notifications/{notificationID} [delete]
func (c *NotificationController) Delete(w http.ResponseWriter, r *http.Request) {
	notificationID := r.PathValue("notificationID")
	if !uuidRegex.MatchString(notificationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid notification ID")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	if err := c.Service.DeleteNotification(r.Context(), notificationID, actor.ID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "notification deleted"})
}
