package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"glasslink/job"
)

// JobsHandler serves the job board endpoints.
type JobsHandler struct {
	jobSvc *job.Service
}

func NewJobsHandler(jobSvc *job.Service) *JobsHandler {
	return &JobsHandler{jobSvc: jobSvc}
}

type jobPayload struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	CategoryID      string    `json:"categoryId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	BudgetMin       float64   `json:"budgetMin"`
	BudgetMax       float64   `json:"budgetMax"`
	Timeline        string    `json:"timeline"`
	Images          []string  `json:"images"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	PosterFirstName string    `json:"posterFirstName,omitempty"`
	PosterLastName  string    `json:"posterLastName,omitempty"`
	CategoryName    string    `json:"categoryName,omitempty"`
}

func toJobPayload(j job.Job) jobPayload {
	images := j.Images
	if images == nil {
		images = []string{}
	}
	return jobPayload{
		ID:              j.ID,
		UserID:          j.UserID,
		CategoryID:      j.CategoryID,
		Title:           j.Title,
		Description:     j.Description,
		Location:        j.Location,
		BudgetMin:       j.BudgetMin,
		BudgetMax:       j.BudgetMax,
		Timeline:        j.Timeline,
		Images:          images,
		Status:          string(j.Status),
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
		PosterFirstName: j.PosterFirstName,
		PosterLastName:  j.PosterLastName,
		CategoryName:    j.CategoryName,
	}
}

func toJobPayloads(jobs []job.Job) []jobPayload {
	out := make([]jobPayload, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobPayload(j))
	}
	return out
}

type createJobRequest struct {
	CategoryID  string   `json:"categoryId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	BudgetMin   float64  `json:"budgetMin"`
	BudgetMax   float64  `json:"budgetMax"`
	Timeline    string   `json:"timeline"`
	Images      []string `json:"images"`
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.jobSvc.Create(r.Context(), userIDFrom(r), job.CreateParams{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Timeline:    req.Timeline,
		Images:      req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJobPayload(created))
}

// List returns jobs for the public board. Without an explicit status filter
// only open jobs are shown.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := job.Filters{
		Status:     job.Status(q.Get("status")),
		CategoryID: q.Get("category"),
		Location:   q.Get("location"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filters.Page = page
	}
	if size, err := strconv.Atoi(q.Get("limit")); err == nil {
		filters.PageSize = size
	}

	jobs, err := h.jobSvc.List(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobPayloads(jobs))
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.jobSvc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobPayload(found))
}

type updateJobRequest struct {
	CategoryID  *string  `json:"categoryId"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	BudgetMin   *float64 `json:"budgetMin"`
	BudgetMax   *float64 `json:"budgetMax"`
	Timeline    *string  `json:"timeline"`
	Images      []string `json:"images"`
	Status      *string  `json:"status"`
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateJobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	params := job.UpdateParams{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Timeline:    req.Timeline,
		Images:      req.Images,
	}
	if req.Status != nil {
		status := job.Status(*req.Status)
		params.Status = &status
	}

	updated, err := h.jobSvc.Update(r.Context(), userIDFrom(r), mux.Vars(r)["id"], params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobPayload(updated))
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobSvc.Delete(r.Context(), userIDFrom(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "job deleted"})
}

// ListByUser returns every job a user posted, in any status.
func (h *JobsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobSvc.ListByUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobPayloads(jobs))
}
