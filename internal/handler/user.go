package handler

import (
	"encoding/json"
	"net/http"

	"giftcases-rest-api/internal/middleware"
	"giftcases-rest-api/internal/service"
	"giftcases-rest-api/pkg/apierror"
	"giftcases-rest-api/pkg/response"
)

// UserHandler handles profile requests for the authenticated user.
type UserHandler struct {
	game  *service.GameService
	debug bool
}

// NewUserHandler creates a new user handler.
func NewUserHandler(game *service.GameService, debug bool) *UserHandler {
	return &UserHandler{game: game, debug: debug}
}

// Get handles GET /api/user
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	user, err := h.game.GetUser(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	response.OK(w, user.Public())
}

// ChangeAvatarRequest carries the new avatar reference.
type ChangeAvatarRequest struct {
	AvatarURL string `json:"avatarUrl"`
}

// ChangeAvatar handles POST /api/change-avatar
func (h *UserHandler) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	var req ChangeAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if err := h.game.ChangeAvatar(r.Context(), identity.UserID, req.AvatarURL); err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	response.OK(w, map[string]string{"avatar": req.AvatarURL})
}
