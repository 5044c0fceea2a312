package api

import (
	"errors"
	"net/http"
	"time"

	"glasslink/auth"
	"glasslink/tradesperson"
)

// AuthHandler serves registration, login and the current-user endpoint.
type AuthHandler struct {
	authSvc  *auth.Service
	tradeSvc *tradesperson.Service
}

func NewAuthHandler(authSvc *auth.Service, tradeSvc *tradesperson.Service) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, tradeSvc: tradeSvc}
}

type userPayload struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Postcode       string    `json:"postcode"`
	ProfileImage   *string   `json:"profileImage"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	TradespersonID *string   `json:"tradespersonId,omitempty"`
}

func toUserPayload(u auth.User) userPayload {
	return userPayload{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Address:      u.Address,
		City:         u.City,
		Postcode:     u.Postcode,
		ProfileImage: u.ProfileImage,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authSvc.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: result.Token, User: toUserPayload(result.User)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: result.Token, User: toUserPayload(result.User)})
}

// CurrentUser returns the authenticated account. When the account also owns
// a tradesperson profile its id is attached so clients can switch context.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)

	user, err := h.authSvc.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := toUserPayload(*user)
	profile, err := h.tradeSvc.GetByUserID(r.Context(), userID)
	switch {
	case err == nil:
		payload.TradespersonID = &profile.ID
	case !errors.Is(err, tradesperson.ErrNotFound):
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload)
}
