package domain

// ListFilter narrows and pages a note listing. Zero values mean no filtering
// and first page with the handler's defaults already applied.
type ListFilter struct {
	// Search matches case-insensitively against title and content.
	Search string
	// Tag keeps only notes carrying the exact tag.
	Tag string
	// Page is zero-based.
	Page int
	Size int
	// SortBy is a validated column name; repositories trust it.
	SortBy string
}

// Offset returns the row offset for the filter's page.
func (f ListFilter) Offset() int {
	return f.Page * f.Size
}
