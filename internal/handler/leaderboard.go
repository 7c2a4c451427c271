package handler

import (
	"net/http"

	"giftcases-rest-api/internal/service"
	"giftcases-rest-api/pkg/response"
)

// LeaderboardHandler serves the public leaderboard.
type LeaderboardHandler struct {
	game  *service.GameService
	debug bool
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(game *service.GameService, debug bool) *LeaderboardHandler {
	return &LeaderboardHandler{game: game, debug: debug}
}

// Leaders handles GET /api/leaders
func (h *LeaderboardHandler) Leaders(w http.ResponseWriter, r *http.Request) {
	leaders, err := h.game.Leaders(r.Context())
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}
	response.OK(w, leaders)
}
