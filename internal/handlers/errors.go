package handlers

import (
	"errors"
	"net/http"

	"campuskart-backend/internal/apperr"
	"campuskart-backend/internal/utils"
)

// writeServiceError translates service-layer errors into HTTP responses.
// Anything outside the known taxonomy becomes a 500 with the underlying
// message attached for diagnostics.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", verr.Message)
	case errors.Is(err, apperr.ErrEmailTaken):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Email already registered", "An account with this email already exists")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Invalid email or password")
	case errors.Is(err, apperr.ErrUserNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No user matches the given identifier")
	case errors.Is(err, apperr.ErrItemNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Item not found", "No item matches the given identifier")
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
