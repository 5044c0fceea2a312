package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"glasslink/category"
)

// CategoriesHandler serves the read-only category endpoints.
type CategoriesHandler struct {
	catSvc *category.Service
}

func NewCategoriesHandler(catSvc *category.Service) *CategoriesHandler {
	return &CategoriesHandler{catSvc: catSvc}
}

type categoryPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toCategoryPayload(c category.Category) categoryPayload {
	return categoryPayload{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]categoryPayload, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryPayload(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.catSvc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryPayload(c))
}
