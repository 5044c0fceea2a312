package application

import "time"

// Application is a tradesperson's expression of interest in a job, distinct
// from a priced quote. At most one exists per (job, tradesperson) pair.
// Job/poster fields are joined for read views.
type Application struct {
	ID                    string
	JobID                 string
	TradespersonID        string
	Message               string
	ProposedStartDate     *time.Time
	ProposedDurationHours *int
	ProposedPrice         *float64
	Status                string
	CreatedAt             time.Time

	JobTitle        string
	JobDescription  string
	JobLocation     string
	JobBudgetMin    float64
	JobBudgetMax    float64
	JobTimeline     string
	PosterFirstName string
	PosterLastName  string
	PosterPhone     string
	PosterEmail     string
}

// ApplyParams contains the fields a tradesperson supplies when applying.
type ApplyParams struct {
	JobID                 string
	Message               string
	ProposedStartDate     *time.Time
	ProposedDurationHours *int
	ProposedPrice         *float64
}
