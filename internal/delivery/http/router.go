package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	College      *controllers.CollegeController
	Department   *controllers.DepartmentController
	Event        *controllers.EventController
	Registration *controllers.RegistrationController
	Invite       *controllers.InviteController
	Template     *controllers.TemplateController
	Campaign     *controllers.CampaignController
	Notification *controllers.NotificationController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier)
	optional := middleware.OptionalAuth(verifier)
	staff := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleAdmin, domain.RoleSuperadmin)(h))
	}
	superadmin := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleSuperadmin)(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.LogIn)
	mux.HandleFunc("GET /auth/verify-email", c.Auth.VerifyEmail)
	mux.HandleFunc("POST /auth/resend-verification", c.Auth.ResendVerification)

	// Users
	mux.HandleFunc("GET /users/me", authed(c.User.Me))
	mux.HandleFunc("GET /users/me/registrations", authed(c.Registration.ListMine))
	mux.HandleFunc("GET /users", staff(c.User.List))
	mux.HandleFunc("GET /users/{userID}", staff(c.User.GetByID))
	mux.HandleFunc("PATCH /users/{userID}", authed(c.User.Update))
	mux.HandleFunc("DELETE /users/{userID}", authed(c.User.Delete))

	// Colleges
	mux.HandleFunc("POST /colleges", superadmin(c.College.Create))
	mux.HandleFunc("GET /colleges", c.College.List)
	mux.HandleFunc("GET /colleges/{collegeID}", c.College.GetByID)
	mux.HandleFunc("PATCH /colleges/{collegeID}", superadmin(c.College.Update))
	mux.HandleFunc("DELETE /colleges/{collegeID}", superadmin(c.College.Delete))

	// Departments
	mux.HandleFunc("POST /departments", staff(c.Department.Create))
	mux.HandleFunc("GET /departments", c.Department.List)
	mux.HandleFunc("GET /departments/{departmentID}", c.Department.GetByID)
	mux.HandleFunc("PATCH /departments/{departmentID}", staff(c.Department.Update))
	mux.HandleFunc("DELETE /departments/{departmentID}", staff(c.Department.Delete))

	// Events
	mux.HandleFunc("POST /events", staff(c.Event.Create))
	mux.HandleFunc("GET /events", optional(c.Event.List))
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetByID)
	mux.HandleFunc("PATCH /events/{eventID}", staff(c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", staff(c.Event.Delete))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", authed(c.Registration.Register))
	mux.HandleFunc("GET /events/{eventID}/registrations", staff(c.Registration.ListByEvent))
	mux.HandleFunc("GET /events/{eventID}/registrations/me", authed(c.Registration.CheckMine))
	mux.HandleFunc("DELETE /registrations/{registrationID}", authed(c.Registration.Cancel))
	mux.HandleFunc("POST /registrations/{registrationID}/attendance", staff(c.Registration.MarkAttended))

	// Invites
	mux.HandleFunc("POST /invites", staff(c.Invite.Create))
	mux.HandleFunc("GET /invites", staff(c.Invite.List))
	mux.HandleFunc("GET /invites/validate", c.Invite.Validate)
	mux.HandleFunc("DELETE /invites/{inviteID}", staff(c.Invite.Delete))

	// Email templates and campaigns
	mux.HandleFunc("POST /email-templates", staff(c.Template.Create))
	mux.HandleFunc("GET /email-templates", staff(c.Template.List))
	mux.HandleFunc("GET /email-templates/{templateID}", staff(c.Template.GetByID))
	mux.HandleFunc("PATCH /email-templates/{templateID}", staff(c.Template.Update))
	mux.HandleFunc("DELETE /email-templates/{templateID}", staff(c.Template.Delete))
	mux.HandleFunc("POST /campaigns", staff(c.Campaign.Create))
	mux.HandleFunc("GET /campaigns", staff(c.Campaign.List))
	mux.HandleFunc("GET /campaigns/{campaignID}", staff(c.Campaign.GetByID))
	mux.HandleFunc("POST /campaigns/{campaignID}/send", staff(c.Campaign.Send))

	// Notifications
	mux.HandleFunc("GET /notifications", authed(c.Notification.List))
	mux.HandleFunc("POST /notifications/{notificationID}/read", authed(c.Notification.MarkRead))
	mux.HandleFunc("POST /notifications/read-all", authed(c.Notification.MarkAllRead))
	mux.HandleFunc("DELETE /notifications/{notificationID}", authed(c.Notification.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
