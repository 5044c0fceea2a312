package tradesperson

import "time"

// Profile is a user's service-provider record. FirstName/LastName/Email/
// Phone/ProfileImage are joined from the owning user row for read views.
type Profile struct {
	ID                     string
	UserID                 string
	BusinessName           string
	YearsExperience        int
	Qualifications         []string
	Certifications         []string
	Specializations        []string
	ServiceCities          []string
	ServicePostcodes       []string
	HourlyRate             *float64
	CalloutFee             *float64
	EmergencyServices      bool
	IdentityVerified       bool
	QualificationsVerified bool
	InsuranceVerified      bool
	DBSVerified            bool
	FinancialVerified      bool
	OverallVerified        bool
	OverallRating          float64
	TotalReviews           int
	IsActive               bool
	Featured               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time

	FirstName    string
	LastName     string
	Email        string
	Phone        string
	ProfileImage *string
}

// RegisterParams contains the fields supplied when a user registers as a
// tradesperson.
type RegisterParams struct {
	BusinessName      string
	YearsExperience   int
	Qualifications    []string
	Certifications    []string
	Specializations   []string
	ServiceCities     []string
	ServicePostcodes  []string
	HourlyRate        *float64
	CalloutFee        *float64
	EmergencyServices bool
}

// UpdateParams is the explicit allow-list of updatable profile fields; nil
// fields keep the stored value. Caller-supplied keys are never forwarded
// into SQL.
type UpdateParams struct {
	BusinessName      *string
	YearsExperience   *int
	Qualifications    []string
	Certifications    []string
	Specializations   []string
	ServiceCities     []string
	ServicePostcodes  []string
	HourlyRate        *float64
	CalloutFee        *float64
	EmergencyServices *bool
	IsActive          *bool
}

// SearchCriteria narrows the public tradesperson search.
type SearchCriteria struct {
	City           string
	Postcode       string
	MinRating      float64
	MaxHourlyRate  float64
	Verified       bool
	Specialization string
}

// PortfolioItem is a past project showcased on a profile.
type PortfolioItem struct {
	ID                  string
	TradespersonID      string
	Title               string
	Description         string
	ProjectType         string
	BeforeImage         *string
	AfterImage          *string
	AdditionalImages    []string
	ProjectValue        *float64
	CompletionDate      *time.Time
	CustomerTestimonial *string
	CreatedAt           time.Time
}

// PortfolioParams contains the fields for a new portfolio item.
type PortfolioParams struct {
	Title               string
	Description         string
	ProjectType         string
	BeforeImage         *string
	AfterImage          *string
	AdditionalImages    []string
	ProjectValue        *float64
	CompletionDate      *time.Time
	CustomerTestimonial *string
}

// Review is a customer's rating of a tradesperson.
type Review struct {
	ID                string
	TradespersonID    string
	CustomerID        string
	JobID             *string
	Rating            int
	Comment           *string
	CreatedAt         time.Time
	CustomerFirstName string
	CustomerLastName  string
}

// ReviewParams contains the fields for a new review.
type ReviewParams struct {
	TradespersonID string
	CustomerID     string
	JobID          *string
	Rating         int
	Comment        *string
}

// Detail bundles a profile with its portfolio and latest reviews for the
// public detail view.
type Detail struct {
	Profile   Profile
	Portfolio []PortfolioItem
	Reviews   []Review
}
