package category

// Category is a static reference record grouping jobs by type of work.
type Category struct {
	ID          string
	Name        string
	Description *string
}
