package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"giftcases-rest-api/internal/middleware"
	"giftcases-rest-api/internal/service"
	"giftcases-rest-api/pkg/apierror"
	"giftcases-rest-api/pkg/response"
)

// GameHandler handles gameplay requests: catalog, case opening, selling,
// promo codes, the daily bonus and achievements.
type GameHandler struct {
	game  *service.GameService
	debug bool
}

// NewGameHandler creates a new game handler.
func NewGameHandler(game *service.GameService, debug bool) *GameHandler {
	return &GameHandler{game: game, debug: debug}
}

// Cases handles GET /api/cases
func (h *GameHandler) Cases(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.game.Catalog())
}

// OpenCaseRequest names the case to open.
type OpenCaseRequest struct {
	CaseType string `json:"caseType"`
}

// OpenCase handles POST /api/open-case
func (h *GameHandler) OpenCase(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	var req OpenCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	result, err := h.game.OpenCase(r.Context(), identity.UserID, req.CaseType)
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	response.OK(w, result)
}

// SellItemRequest names the inventory entry to sell.
type SellItemRequest struct {
	ItemID string `json:"itemId"`
}

// SellItem handles POST /api/sell-item
func (h *GameHandler) SellItem(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	var req SellItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	result, err := h.game.SellItem(r.Context(), identity.UserID, req.ItemID)
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	response.OK(w, result)
}

// ActivatePromoRequest carries the submitted promo code.
type ActivatePromoRequest struct {
	PromoCode string `json:"promoCode"`
}

// ActivatePromoResponse confirms a redeemed promo code.
type ActivatePromoResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	NewBalance int    `json:"newBalance"`
}

// ActivatePromo handles POST /api/activate-promo
func (h *GameHandler) ActivatePromo(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	var req ActivatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	amount, newBalance, err := h.game.ActivatePromo(r.Context(), identity.UserID, req.PromoCode)
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	response.OK(w, ActivatePromoResponse{
		Success:    true,
		Message:    fmt.Sprintf("Promo code activated! +%d ★", amount),
		NewBalance: newBalance,
	})
}

// DailyBonusResponse confirms a claimed daily bonus.
type DailyBonusResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Bonus      int    `json:"bonus"`
	NewBalance int    `json:"newBalance"`
}

// DailyBonus handles POST /api/daily-bonus
func (h *GameHandler) DailyBonus(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	amount, newBalance, err := h.game.ClaimDailyBonus(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	response.OK(w, DailyBonusResponse{
		Success:    true,
		Message:    fmt.Sprintf("Daily bonus claimed! +%d ★", amount),
		Bonus:      amount,
		NewBalance: newBalance,
	})
}

// Achievements handles GET /api/achievements
func (h *GameHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	result, err := h.game.Achievements(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	response.OK(w, result)
}
