// Package pagination derives page counts, slices, and compressed page
// windows from a total count and page size. Pure arithmetic, no I/O.
package pagination

// DefaultPerPage is the page size used when a caller passes 0.
const DefaultPerPage = 10

// Data describes one page of a list, fully derived from the total count
// and page size.
type Data struct {
	CurrentPage     int
	TotalPages      int
	TotalPosts      int
	PostsPerPage    int
	HasNextPage     bool
	HasPreviousPage bool
}

// Paginate computes page metadata. postsPerPage is clamped to at least 1.
func Paginate(totalPosts, currentPage, postsPerPage int) Data {
	if postsPerPage < 1 {
		postsPerPage = 1
	}
	if totalPosts < 0 {
		totalPosts = 0
	}

	totalPages := (totalPosts + postsPerPage - 1) / postsPerPage

	return Data{
		CurrentPage:     currentPage,
		TotalPages:      totalPages,
		TotalPosts:      totalPosts,
		PostsPerPage:    postsPerPage,
		HasNextPage:     currentPage < totalPages,
		HasPreviousPage: currentPage > 1,
	}
}

// Slice returns the elements of one page: zero-based offset
// (currentPage-1)*postsPerPage, clipped to bounds. Out-of-range pages
// yield an empty slice, not an error.
func Slice[T any](items []T, currentPage, postsPerPage int) []T {
	if postsPerPage < 1 {
		postsPerPage = 1
	}
	start := (currentPage - 1) * postsPerPage
	if currentPage < 1 || start >= len(items) {
		return nil
	}
	end := start + postsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Validation is the outcome of checking a page number against the total.
type Validation struct {
	IsValid       bool
	CorrectedPage int
}

// Validate checks currentPage and, when invalid, carries the corrected
// page: 1 for underflow, totalPages for overflow when pages exist.
func Validate(currentPage, totalPages int) Validation {
	if currentPage < 1 {
		return Validation{IsValid: false, CorrectedPage: 1}
	}
	if currentPage > totalPages && totalPages > 0 {
		return Validation{IsValid: false, CorrectedPage: totalPages}
	}
	return Validation{IsValid: true, CorrectedPage: currentPage}
}
