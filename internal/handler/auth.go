package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"giftcases-rest-api/internal/model"
	"giftcases-rest-api/internal/service"
	"giftcases-rest-api/pkg/apierror"
	"giftcases-rest-api/pkg/response"
)

// AuthHandler handles captcha, registration and login.
type AuthHandler struct {
	game   *service.GameService
	tokens *service.TokenService
	debug  bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(game *service.GameService, tokens *service.TokenService, debug bool) *AuthHandler {
	return &AuthHandler{game: game, tokens: tokens, debug: debug}
}

// CaptchaResponse carries a freshly generated captcha challenge.
type CaptchaResponse struct {
	Captcha string `json:"captcha"`
}

// Captcha handles GET /api/captcha
func (h *AuthHandler) Captcha(w http.ResponseWriter, r *http.Request) {
	response.OK(w, CaptchaResponse{Captcha: service.NewCaptcha()})
}

// RegisterRequest is the registration form payload.
type RegisterRequest struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	CaptchaInput string `json:"captchaInput"`
	Captcha      string `json:"captcha"`
}

// AuthResponse is returned by register and login: a signed token plus the
// sanitized user projection.
type AuthResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

func (h *AuthHandler) issue(w http.ResponseWriter, user *model.User) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}
	response.OK(w, AuthResponse{Token: token, User: user.Public()})
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	user, err := h.game.Register(r.Context(), service.RegisterInput{
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		CaptchaInput: req.CaptchaInput,
		Captcha:      req.Captcha,
	})
	if err != nil {
		response.Error(w, apiError(err, h.debug))
		return
	}

	h.issue(w, user)
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	user, err := h.game.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// an unknown email is a 400 here, not a 404: login failures
		// share one status so the endpoint does not enumerate accounts
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, apierror.BadRequest("User not found"))
			return
		}
		response.Error(w, apiError(err, h.debug))
		return
	}

	h.issue(w, user)
}
