package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"giftcases-rest-api/internal/middleware"
	"giftcases-rest-api/internal/service"
	"giftcases-rest-api/pkg/apierror"
	"giftcases-rest-api/pkg/response"
)

// AdminHandler handles admin-only HTTP requests. The admin flag is read
// from the caller's token, as issued at login time.
type AdminHandler struct {
	game      *service.GameService
	storeType string
	startTime time.Time
	debug     bool
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(game *service.GameService, storeType string, debug bool) *AdminHandler {
	return &AdminHandler{
		game:      game,
		storeType: storeType,
		startTime: time.Now(),
		debug:     debug,
	}
}

// SetBalanceRequest targets a user by username. NewBalance accepts both a
// JSON number and a numeric string.
type SetBalanceRequest struct {
	TargetUsername string      `json:"targetUsername"`
	NewBalance     json.Number `json:"newBalance"`
}

// SetBalanceResponse confirms the override.
type SetBalanceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    struct {
		Username string `json:"username"`
		Balance  int    `json:"balance"`
	} `json:"user"`
}

// SetBalance handles POST /api/admin/set-balance
func (h *AdminHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var req SetBalanceRequest
	if err := dec.Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	newBalance, err := req.NewBalance.Int64()
	if err != nil {
		response.Error(w, apierror.BadRequest("newBalance must be an integer"))
		return
	}

	target, err := h.game.AdminSetBalance(r.Context(), identity, req.TargetUsername, int(newBalance))
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	resp := SetBalanceResponse{
		Success: true,
		Message: fmt.Sprintf("Balance of %s set to %d ★", target.Username, target.Balance),
	}
	resp.User.Username = target.Username
	resp.User.Balance = target.Balance
	response.OK(w, resp)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}
	if !identity.IsAdmin {
		response.Error(w, apierror.Forbidden("Insufficient privileges"))
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := map[string]interface{}{
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"uptime_human":   time.Since(h.startTime).Round(time.Second).String(),
		"server_time":    time.Now().Format(time.RFC3339),
		"store_type":     h.storeType,
		"memory": map[string]interface{}{
			"alloc_mb":   float64(memStats.Alloc) / 1024 / 1024,
			"sys_mb":     float64(memStats.Sys) / 1024 / 1024,
			"num_gc":     memStats.NumGC,
			"goroutines": runtime.NumGoroutine(),
		},
	}

	response.OK(w, stats)
}
