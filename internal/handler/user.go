package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/intelvestor/gateway/internal/auth"
	"github.com/intelvestor/gateway/internal/handler/dto"
	"github.com/intelvestor/gateway/internal/middleware"
	"github.com/intelvestor/gateway/internal/service"
)

// UserHandler serves the user directory endpoints. Routes must run behind
// the identity middleware.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Sync handles POST /api/users/sync. The request body is ignored.
func (h *UserHandler) Sync(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credential")
		return
	}

	user, err := h.svc.SyncUser(r.Context(), claims)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	if subject == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credential")
		return
	}

	user, err := h.svc.FindUser(r.Context(), subject)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
	case errors.Is(err, service.ErrMissingEmail):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "credential carries no email claim")
	default:
		h.logger.Error("internal_error",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
