package quote

import "time"

// Quote is a tradesperson's priced proposal against a specific job. The
// status column exists for future acceptance flows; no endpoint transitions
// it. JobTitle/JobDescription/PosterFirstName/PosterLastName are joined for
// read views.
type Quote struct {
	ID                     string
	TradespersonID         string
	JobID                  string
	QuoteAmount            float64
	Breakdown              *string
	ValidUntil             *time.Time
	TermsConditions        *string
	IncludesMaterials      bool
	EstimatedDurationHours int
	StartDateEstimate      *time.Time
	Status                 string
	CreatedAt              time.Time

	JobTitle        string
	JobDescription  string
	PosterFirstName string
	PosterLastName  string
}

// CreateParams contains the fields a tradesperson supplies for a new quote.
// Multiple quotes per (job, tradesperson) are allowed; each is independent.
type CreateParams struct {
	JobID                  string
	QuoteAmount            float64
	Breakdown              *string
	ValidUntil             *time.Time
	TermsConditions        *string
	IncludesMaterials      bool
	EstimatedDurationHours int
	StartDateEstimate      *time.Time
}
