package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"glasslink/auth"
)

// UsersHandler serves profile updates and public user lookups.
type UsersHandler struct {
	authSvc *auth.Service
}

func NewUsersHandler(authSvc *auth.Service) *UsersHandler {
	return &UsersHandler{authSvc: authSvc}
}

type updateProfileRequest struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Postcode     string  `json:"postcode"`
	ProfileImage *string `json:"profileImage"`
}

// UpdateProfile rewrites the caller's own profile. The target row comes from
// the token, never from the request body.
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.authSvc.UpdateProfile(r.Context(), userIDFrom(r), auth.UpdateProfileParams{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Postcode:     req.Postcode,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserPayload(user))
}

type publicProfilePayload struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	City         string    `json:"city"`
	ProfileImage *string   `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetPublicProfile returns the reduced public view of any user.
func (h *UsersHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.authSvc.GetPublicProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, publicProfilePayload{
		ID:           profile.ID,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		City:         profile.City,
		ProfileImage: profile.ProfileImage,
		CreatedAt:    profile.CreatedAt,
	})
}
