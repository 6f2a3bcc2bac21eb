package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

var (
	uuidRegex  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// AuthController handles signup, login and email verification endpoints.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	InviteToken string `json:"invite_token,omitempty"`
}

// Validate checks the sign up request fields.
func (r SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "a valid email is required")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// LogInRequest is the request body for POST /auth/login.
type LogInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login request fields.
func (r LogInRequest) Validate() []string {
	var errs []string
	if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "a valid email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LogInData is the payload returned on a successful login.
type LogInData struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// ResendVerificationRequest is the request body for POST /auth/resend-verification.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// Validate checks the resend request fields.
func (r ResendVerificationRequest) Validate() []string {
	if !emailRegex.MatchString(r.Email) {
		return []string{"a valid email is required"}
	}
	return nil
}

// SignUpSuccessResponse is the success envelope for sign up.
type SignUpSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LogInSuccessResponse is the success envelope for login.
type LogInSuccessResponse struct {
	Data  *LogInData        `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MessageData is a generic message payload.
type MessageData struct {
	Message string `json:"message"`
}

// SignUp creates a new account and sends a verification email.
//
//	@Summary		Sign up
//	@Description	Creates an account. An optional invite token grants the invited role and college.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignUpRequest	true	"Sign up request"
//	@Success		201		{object}	SignUpSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		409		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), req.Name, req.Email, req.Password, req.InviteToken)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// LogIn authenticates a user and returns an access token.
//
//	@Summary		Log in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LogInRequest	true	"Login request"
//	@Success		200		{object}	LogInSuccessResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		401		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/auth/login [post]
func (c *AuthController) LogIn(w http.ResponseWriter, r *http.Request) {
	var req LogInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &LogInData{User: user, AccessToken: token})
}

// VerifyEmail consumes a verification token from the query string.
//
//	@Summary		Verify email
//	@Tags			auth
//	@Produce		json
//	@Param			token	query		string	true	"Verification token"
//	@Success		200		{object}	helpers.APIResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		409		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/auth/verify-email [get]
func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "token is required")
		return
	}
	if err := c.Service.VerifyEmail(r.Context(), token); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "email verified"})
}

// ResendVerification issues a fresh verification token.
//
//	@Summary		Resend verification email
//	@Description	Always responds 200 so callers cannot discover which emails exist.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ResendVerificationRequest	true	"Resend request"
//	@Success		200		{object}	helpers.APIResponse
//	@Failure		400		{object}	helpers.APIResponse
//	@Failure		500		{object}	helpers.APIResponse
//	@Router			/auth/resend-verification [post]
func (c *AuthController) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req ResendVerificationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.ResendVerification(r.Context(), req.Email); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageData{Message: "verification email sent"})
}
