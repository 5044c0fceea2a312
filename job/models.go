package job

import "time"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the four job statuses. Transitions
// between them are deliberately unordered: the poster may set any value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Job is a homeowner's posted request for glass-installation work.
// PosterFirstName/PosterLastName/CategoryName are joined for read views and
// empty on writes.
type Job struct {
	ID              string
	UserID          string
	CategoryID      string
	Title           string
	Description     string
	Location        string
	BudgetMin       float64
	BudgetMax       float64
	Timeline        string
	Images          []string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PosterFirstName string
	PosterLastName  string
	CategoryName    string
}

// CreateParams contains the fields a poster supplies for a new job.
type CreateParams struct {
	CategoryID  string
	Title       string
	Description string
	Location    string
	BudgetMin   float64
	BudgetMax   float64
	Timeline    string
	Images      []string
}

// UpdateParams carries a partial update; nil fields keep the stored value.
type UpdateParams struct {
	CategoryID  *string
	Title       *string
	Description *string
	Location    *string
	BudgetMin   *float64
	BudgetMax   *float64
	Timeline    *string
	Images      []string
	Status      *Status
}

// Filters narrows job listings. Status defaults to open when empty.
type Filters struct {
	Status     Status
	CategoryID string
	Location   string
	Page       int
	PageSize   int
}
