// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

// # HTTP Delivery Layer
//
// Every endpoint in this package requires authentication; the router mounts
// [middleware.RequireAuth] on the whole subtree.

package account

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/middleware"
	requestutil "github.com/amwozniak/entertainment-api/internal/platform/request"
	"github.com/amwozniak/entertainment-api/internal/platform/respond"
	"github.com/amwozniak/entertainment-api/internal/platform/validate"
	"github.com/amwozniak/entertainment-api/internal/users/auth"
)

// # Definitions & Constructors

// Handler implements account-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - GET    /current          : Returns the authenticated user's profile.
//   - GET    /check/{username} : Returns another user's profile (admin or self).
//   - PATCH  /update           : Updates profile metadata.
//   - PUT    /password         : Rotates the password.
//   - DELETE /delete           : Closes the account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/current", handler.current)
		r.Get("/check/{username}", handler.check)
		r.Patch("/update", handler.update)
		r.Put("/password", handler.changePassword)
		r.Delete("/delete", handler.deleteAccount)
	})

	return router
}

// callerID resolves the authenticated caller's numeric user ID from the JWT claims.
func callerID(request *http.Request) (int, error) {
	rawID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.Atoi(rawID)
	if err != nil {
		return 0, apperr.Unauthorized("Malformed user identity in token")
	}
	return userID, nil
}

// # Request Payloads

type updateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type changePasswordRequest struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirmation"`
}

/*
Current returns the profile of the authenticated user.

GET /api/v1/user/current

Response:
  - 200: User: The caller's profile
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	userID, err := callerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Check returns the profile of a user by username.

GET /api/v1/user/check/{username}

Description: Admins may inspect any account; regular users only their own.

Response:
  - 200: User: The requested profile
  - 403: ErrForbidden: Cross-user access without the admin role
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) check(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, "username")

	user, err := handler.accountService.CheckUser(request.Context(), claims.AsPrincipal(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update applies a partial profile update to the authenticated user.

PATCH /api/v1/user/update

Request:
  - Body: updateProfileRequest (Email, FirstName, LastName; all optional)

Response:
  - 204: No Content: Profile updated
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := callerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}
	if input.FirstName != nil {
		validator.MinLen(auth.FieldFirstName, *input.FirstName, 2)
	}
	if input.LastName != nil {
		validator.MinLen(auth.FieldLastName, *input.LastName, 2)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
ChangePassword rotates the authenticated user's password.

PUT /api/v1/user/password

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword, confirmation)

Response:
  - 204: No Content: Password rotated, all sessions revoked
  - 400: ErrValidation: New passwords do not match
  - 401: ErrUnauthorized: Incorrect current password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := callerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("current_password", input.CurrentPassword).
		Required("new_password", input.NewPassword).
		MinLen("new_password", input.NewPassword, 8).
		Required("new_password_confirmation", input.NewPasswordConfirm)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(
		request.Context(), userID,
		input.CurrentPassword, input.NewPassword, input.NewPasswordConfirm,
	); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Delete permanently closes the authenticated user's account.

DELETE /api/v1/user/delete

Response:
  - 204: No Content: Account removed
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := callerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
