package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"glasslink/application"
	"glasslink/quote"
	"glasslink/tradesperson"
)

// TradespeopleHandler serves the tradesperson profile, portfolio, quote,
// application and review endpoints.
type TradespeopleHandler struct {
	tradeSvc *tradesperson.Service
	quoteSvc *quote.Service
	appSvc   *application.Service
}

func NewTradespeopleHandler(tradeSvc *tradesperson.Service, quoteSvc *quote.Service, appSvc *application.Service) *TradespeopleHandler {
	return &TradespeopleHandler{tradeSvc: tradeSvc, quoteSvc: quoteSvc, appSvc: appSvc}
}

type profilePayload struct {
	ID                     string   `json:"id"`
	UserID                 string   `json:"userId"`
	BusinessName           string   `json:"businessName"`
	YearsExperience        int      `json:"yearsExperience"`
	Qualifications         []string `json:"qualifications"`
	Certifications         []string `json:"certifications"`
	Specializations        []string `json:"specializations"`
	ServiceCities          []string `json:"serviceCities"`
	ServicePostcodes       []string `json:"servicePostcodes"`
	HourlyRate             *float64 `json:"hourlyRate"`
	CalloutFee             *float64 `json:"calloutFee"`
	EmergencyServices      bool     `json:"emergencyServices"`
	IdentityVerified       bool     `json:"identityVerified"`
	QualificationsVerified bool     `json:"qualificationsVerified"`
	InsuranceVerified      bool     `json:"insuranceVerified"`
	DBSVerified            bool     `json:"dbsVerified"`
	FinancialVerified      bool     `json:"financialVerified"`
	OverallVerified        bool     `json:"overallVerified"`
	OverallRating          float64  `json:"overallRating"`
	TotalReviews           int      `json:"totalReviews"`
	IsActive               bool     `json:"isActive"`
	Featured               bool     `json:"featured"`
	FirstName              string   `json:"firstName,omitempty"`
	LastName               string   `json:"lastName,omitempty"`
	Phone                  string   `json:"phone,omitempty"`
	ProfileImage           *string  `json:"profileImage,omitempty"`
}

func toProfilePayload(p tradesperson.Profile) profilePayload {
	return profilePayload{
		ID:                     p.ID,
		UserID:                 p.UserID,
		BusinessName:           p.BusinessName,
		YearsExperience:        p.YearsExperience,
		Qualifications:         orEmptyList(p.Qualifications),
		Certifications:         orEmptyList(p.Certifications),
		Specializations:        orEmptyList(p.Specializations),
		ServiceCities:          orEmptyList(p.ServiceCities),
		ServicePostcodes:       orEmptyList(p.ServicePostcodes),
		HourlyRate:             p.HourlyRate,
		CalloutFee:             p.CalloutFee,
		EmergencyServices:      p.EmergencyServices,
		IdentityVerified:       p.IdentityVerified,
		QualificationsVerified: p.QualificationsVerified,
		InsuranceVerified:      p.InsuranceVerified,
		DBSVerified:            p.DBSVerified,
		FinancialVerified:      p.FinancialVerified,
		OverallVerified:        p.OverallVerified,
		OverallRating:          p.OverallRating,
		TotalReviews:           p.TotalReviews,
		IsActive:               p.IsActive,
		Featured:               p.Featured,
		FirstName:              p.FirstName,
		LastName:               p.LastName,
		Phone:                  p.Phone,
		ProfileImage:           p.ProfileImage,
	}
}

func toProfilePayloads(profiles []tradesperson.Profile) []profilePayload {
	out := make([]profilePayload, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfilePayload(p))
	}
	return out
}

func orEmptyList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type registerTradespersonRequest struct {
	BusinessName      string   `json:"businessName"`
	YearsExperience   int      `json:"yearsExperience"`
	Qualifications    []string `json:"qualifications"`
	Certifications    []string `json:"certifications"`
	Specializations   []string `json:"specializations"`
	ServiceCities     []string `json:"serviceCities"`
	ServicePostcodes  []string `json:"servicePostcodes"`
	HourlyRate        *float64 `json:"hourlyRate"`
	CalloutFee        *float64 `json:"calloutFee"`
	EmergencyServices bool     `json:"emergencyServices"`
}

func (h *TradespeopleHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerTradespersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profile, err := h.tradeSvc.Register(r.Context(), userIDFrom(r), tradesperson.RegisterParams{
		BusinessName:      req.BusinessName,
		YearsExperience:   req.YearsExperience,
		Qualifications:    req.Qualifications,
		Certifications:    req.Certifications,
		Specializations:   req.Specializations,
		ServiceCities:     req.ServiceCities,
		ServicePostcodes:  req.ServicePostcodes,
		HourlyRate:        req.HourlyRate,
		CalloutFee:        req.CalloutFee,
		EmergencyServices: req.EmergencyServices,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProfilePayload(profile))
}

// OwnProfile returns the caller's own tradesperson profile.
func (h *TradespeopleHandler) OwnProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.tradeSvc.GetByUserID(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfilePayload(profile))
}

type updateTradespersonRequest struct {
	BusinessName      *string  `json:"businessName"`
	YearsExperience   *int     `json:"yearsExperience"`
	Qualifications    []string `json:"qualifications"`
	Certifications    []string `json:"certifications"`
	Specializations   []string `json:"specializations"`
	ServiceCities     []string `json:"serviceCities"`
	ServicePostcodes  []string `json:"servicePostcodes"`
	HourlyRate        *float64 `json:"hourlyRate"`
	CalloutFee        *float64 `json:"calloutFee"`
	EmergencyServices *bool    `json:"emergencyServices"`
	IsActive          *bool    `json:"isActive"`
}

// UpdateOwnProfile applies a partial update to the caller's profile. Only the
// fields named here can reach the database.
func (h *TradespeopleHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	var req updateTradespersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profile, err := h.tradeSvc.UpdateProfile(r.Context(), userIDFrom(r), tradesperson.UpdateParams{
		BusinessName:      req.BusinessName,
		YearsExperience:   req.YearsExperience,
		Qualifications:    req.Qualifications,
		Certifications:    req.Certifications,
		Specializations:   req.Specializations,
		ServiceCities:     req.ServiceCities,
		ServicePostcodes:  req.ServicePostcodes,
		HourlyRate:        req.HourlyRate,
		CalloutFee:        req.CalloutFee,
		EmergencyServices: req.EmergencyServices,
		IsActive:          req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfilePayload(profile))
}

func (h *TradespeopleHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := tradesperson.SearchCriteria{
		City:           q.Get("city"),
		Postcode:       q.Get("postcode"),
		Specialization: q.Get("specialization"),
		Verified:       q.Get("verified") == "true",
	}
	if v, err := strconv.ParseFloat(q.Get("minRating"), 64); err == nil {
		criteria.MinRating = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxHourlyRate"), 64); err == nil {
		criteria.MaxHourlyRate = v
	}

	profiles, err := h.tradeSvc.Search(r.Context(), criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfilePayloads(profiles))
}

func (h *TradespeopleHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	profiles, err := h.tradeSvc.Featured(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfilePayloads(profiles))
}

type portfolioPayload struct {
	ID                  string     `json:"id"`
	TradespersonID      string     `json:"tradespersonId"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	ProjectType         string     `json:"projectType"`
	BeforeImage         *string    `json:"beforeImage"`
	AfterImage          *string    `json:"afterImage"`
	AdditionalImages    []string   `json:"additionalImages"`
	ProjectValue        *float64   `json:"projectValue"`
	CompletionDate      *time.Time `json:"completionDate"`
	CustomerTestimonial *string    `json:"customerTestimonial"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func toPortfolioPayload(item tradesperson.PortfolioItem) portfolioPayload {
	return portfolioPayload{
		ID:                  item.ID,
		TradespersonID:      item.TradespersonID,
		Title:               item.Title,
		Description:         item.Description,
		ProjectType:         item.ProjectType,
		BeforeImage:         item.BeforeImage,
		AfterImage:          item.AfterImage,
		AdditionalImages:    orEmptyList(item.AdditionalImages),
		ProjectValue:        item.ProjectValue,
		CompletionDate:      item.CompletionDate,
		CustomerTestimonial: item.CustomerTestimonial,
		CreatedAt:           item.CreatedAt,
	}
}

type reviewPayload struct {
	ID                string    `json:"id"`
	TradespersonID    string    `json:"tradespersonId"`
	CustomerID        string    `json:"customerId"`
	JobID             *string   `json:"jobId"`
	Rating            int       `json:"rating"`
	Comment           *string   `json:"comment"`
	CreatedAt         time.Time `json:"createdAt"`
	CustomerFirstName string    `json:"customerFirstName,omitempty"`
	CustomerLastName  string    `json:"customerLastName,omitempty"`
}

func toReviewPayload(rev tradesperson.Review) reviewPayload {
	return reviewPayload{
		ID:                rev.ID,
		TradespersonID:    rev.TradespersonID,
		CustomerID:        rev.CustomerID,
		JobID:             rev.JobID,
		Rating:            rev.Rating,
		Comment:           rev.Comment,
		CreatedAt:         rev.CreatedAt,
		CustomerFirstName: rev.CustomerFirstName,
		CustomerLastName:  rev.CustomerLastName,
	}
}

type detailPayload struct {
	profilePayload
	Portfolio []portfolioPayload `json:"portfolio"`
	Reviews   []reviewPayload    `json:"reviews"`
}

// Detail returns the public profile view with portfolio and recent reviews.
func (h *TradespeopleHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.tradeSvc.GetDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	payload := detailPayload{
		profilePayload: toProfilePayload(detail.Profile),
		Portfolio:      make([]portfolioPayload, 0, len(detail.Portfolio)),
		Reviews:        make([]reviewPayload, 0, len(detail.Reviews)),
	}
	for _, item := range detail.Portfolio {
		payload.Portfolio = append(payload.Portfolio, toPortfolioPayload(item))
	}
	for _, rev := range detail.Reviews {
		payload.Reviews = append(payload.Reviews, toReviewPayload(rev))
	}

	writeJSON(w, http.StatusOK, payload)
}

type addPortfolioRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	ProjectType         string     `json:"projectType"`
	BeforeImage         *string    `json:"beforeImage"`
	AfterImage          *string    `json:"afterImage"`
	AdditionalImages    []string   `json:"additionalImages"`
	ProjectValue        *float64   `json:"projectValue"`
	CompletionDate      *time.Time `json:"completionDate"`
	CustomerTestimonial *string    `json:"customerTestimonial"`
}

func (h *TradespeopleHandler) AddPortfolioItem(w http.ResponseWriter, r *http.Request) {
	var req addPortfolioRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.tradeSvc.AddPortfolioItem(r.Context(), userIDFrom(r), mux.Vars(r)["id"], tradesperson.PortfolioParams{
		Title:               req.Title,
		Description:         req.Description,
		ProjectType:         req.ProjectType,
		BeforeImage:         req.BeforeImage,
		AfterImage:          req.AfterImage,
		AdditionalImages:    req.AdditionalImages,
		ProjectValue:        req.ProjectValue,
		CompletionDate:      req.CompletionDate,
		CustomerTestimonial: req.CustomerTestimonial,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPortfolioPayload(item))
}

type quotePayload struct {
	ID                     string     `json:"id"`
	TradespersonID         string     `json:"tradespersonId"`
	JobID                  string     `json:"jobId"`
	QuoteAmount            float64    `json:"quoteAmount"`
	Breakdown              *string    `json:"breakdown"`
	ValidUntil             *time.Time `json:"validUntil"`
	TermsConditions        *string    `json:"termsConditions"`
	IncludesMaterials      bool       `json:"includesMaterials"`
	EstimatedDurationHours int        `json:"estimatedDurationHours"`
	StartDateEstimate      *time.Time `json:"startDateEstimate"`
	Status                 string     `json:"status"`
	CreatedAt              time.Time  `json:"createdAt"`
	JobTitle               string     `json:"jobTitle,omitempty"`
	JobDescription         string     `json:"jobDescription,omitempty"`
	PosterFirstName        string     `json:"posterFirstName,omitempty"`
	PosterLastName         string     `json:"posterLastName,omitempty"`
}

func toQuotePayload(q quote.Quote) quotePayload {
	return quotePayload{
		ID:                     q.ID,
		TradespersonID:         q.TradespersonID,
		JobID:                  q.JobID,
		QuoteAmount:            q.QuoteAmount,
		Breakdown:              q.Breakdown,
		ValidUntil:             q.ValidUntil,
		TermsConditions:        q.TermsConditions,
		IncludesMaterials:      q.IncludesMaterials,
		EstimatedDurationHours: q.EstimatedDurationHours,
		StartDateEstimate:      q.StartDateEstimate,
		Status:                 q.Status,
		CreatedAt:              q.CreatedAt,
		JobTitle:               q.JobTitle,
		JobDescription:         q.JobDescription,
		PosterFirstName:        q.PosterFirstName,
		PosterLastName:         q.PosterLastName,
	}
}

type createQuoteRequest struct {
	JobID                  string     `json:"jobId"`
	QuoteAmount            float64    `json:"quoteAmount"`
	Breakdown              *string    `json:"breakdown"`
	ValidUntil             *time.Time `json:"validUntil"`
	TermsConditions        *string    `json:"termsConditions"`
	IncludesMaterials      bool       `json:"includesMaterials"`
	EstimatedDurationHours int        `json:"estimatedDurationHours"`
	StartDateEstimate      *time.Time `json:"startDateEstimate"`
}

// SubmitQuote stores a quote under the caller's profile. The path id must be
// the caller's own tradesperson id.
func (h *TradespeopleHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	tradespersonID := mux.Vars(r)["id"]
	if _, err := h.tradeSvc.Authorize(r.Context(), userIDFrom(r), tradespersonID); err != nil {
		writeError(w, err)
		return
	}

	var req createQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.quoteSvc.Create(r.Context(), tradespersonID, quote.CreateParams{
		JobID:                  req.JobID,
		QuoteAmount:            req.QuoteAmount,
		Breakdown:              req.Breakdown,
		ValidUntil:             req.ValidUntil,
		TermsConditions:        req.TermsConditions,
		IncludesMaterials:      req.IncludesMaterials,
		EstimatedDurationHours: req.EstimatedDurationHours,
		StartDateEstimate:      req.StartDateEstimate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toQuotePayload(created))
}

func (h *TradespeopleHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	tradespersonID := mux.Vars(r)["id"]
	if _, err := h.tradeSvc.Authorize(r.Context(), userIDFrom(r), tradespersonID); err != nil {
		writeError(w, err)
		return
	}

	quotes, err := h.quoteSvc.ListByTradesperson(r.Context(), tradespersonID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]quotePayload, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuotePayload(q))
	}
	writeJSON(w, http.StatusOK, out)
}

type applicationPayload struct {
	ID                    string     `json:"id"`
	JobID                 string     `json:"jobId"`
	TradespersonID        string     `json:"tradespersonId"`
	Message               string     `json:"message"`
	ProposedStartDate     *time.Time `json:"proposedStartDate"`
	ProposedDurationHours *int       `json:"proposedDurationHours"`
	ProposedPrice         *float64   `json:"proposedPrice"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"createdAt"`
	JobTitle              string     `json:"jobTitle,omitempty"`
	JobDescription        string     `json:"jobDescription,omitempty"`
	JobLocation           string     `json:"jobLocation,omitempty"`
	JobBudgetMin          float64    `json:"jobBudgetMin,omitempty"`
	JobBudgetMax          float64    `json:"jobBudgetMax,omitempty"`
	JobTimeline           string     `json:"jobTimeline,omitempty"`
	PosterFirstName       string     `json:"posterFirstName,omitempty"`
	PosterLastName        string     `json:"posterLastName,omitempty"`
	PosterPhone           string     `json:"posterPhone,omitempty"`
	PosterEmail           string     `json:"posterEmail,omitempty"`
}

func toApplicationPayload(a application.Application) applicationPayload {
	return applicationPayload{
		ID:                    a.ID,
		JobID:                 a.JobID,
		TradespersonID:        a.TradespersonID,
		Message:               a.Message,
		ProposedStartDate:     a.ProposedStartDate,
		ProposedDurationHours: a.ProposedDurationHours,
		ProposedPrice:         a.ProposedPrice,
		Status:                a.Status,
		CreatedAt:             a.CreatedAt,
		JobTitle:              a.JobTitle,
		JobDescription:        a.JobDescription,
		JobLocation:           a.JobLocation,
		JobBudgetMin:          a.JobBudgetMin,
		JobBudgetMax:          a.JobBudgetMax,
		JobTimeline:           a.JobTimeline,
		PosterFirstName:       a.PosterFirstName,
		PosterLastName:        a.PosterLastName,
		PosterPhone:           a.PosterPhone,
		PosterEmail:           a.PosterEmail,
	}
}

type applyRequest struct {
	JobID                 string     `json:"jobId"`
	Message               string     `json:"message"`
	ProposedStartDate     *time.Time `json:"proposedStartDate"`
	ProposedDurationHours *int       `json:"proposedDurationHours"`
	ProposedPrice         *float64   `json:"proposedPrice"`
}

// Apply records the caller's interest in a job, once per job.
func (h *TradespeopleHandler) Apply(w http.ResponseWriter, r *http.Request) {
	tradespersonID := mux.Vars(r)["id"]
	if _, err := h.tradeSvc.Authorize(r.Context(), userIDFrom(r), tradespersonID); err != nil {
		writeError(w, err)
		return
	}

	var req applyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.appSvc.Apply(r.Context(), tradespersonID, application.ApplyParams{
		JobID:                 req.JobID,
		Message:               req.Message,
		ProposedStartDate:     req.ProposedStartDate,
		ProposedDurationHours: req.ProposedDurationHours,
		ProposedPrice:         req.ProposedPrice,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toApplicationPayload(created))
}

func (h *TradespeopleHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	tradespersonID := mux.Vars(r)["id"]
	if _, err := h.tradeSvc.Authorize(r.Context(), userIDFrom(r), tradespersonID); err != nil {
		writeError(w, err)
		return
	}

	apps, err := h.appSvc.ListByTradesperson(r.Context(), tradespersonID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]applicationPayload, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationPayload(a))
	}
	writeJSON(w, http.StatusOK, out)
}

type addReviewRequest struct {
	JobID   *string `json:"jobId"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// AddReview stores a review from the authenticated customer and updates the
// profile's rating aggregates.
func (h *TradespeopleHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req addReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rev, err := h.tradeSvc.AddReview(r.Context(), tradesperson.ReviewParams{
		TradespersonID: mux.Vars(r)["id"],
		CustomerID:     userIDFrom(r),
		JobID:          req.JobID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewPayload(rev))
}
