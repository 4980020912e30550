package pagination

// DefaultMaxVisible is the standard visible-item budget for page windows.
const DefaultMaxVisible = 7

// minCompressedVisible is the smallest budget that can hold first page,
// last page, two ellipses, and a one-page middle window.
const minCompressedVisible = 5

// Item is one entry of a page window: a page number or an ellipsis gap.
type Item struct {
	Page     int
	Ellipsis bool
}

func page(n int) Item { return Item{Page: n} }
func ellipsis() Item  { return Item{Ellipsis: true} }

// Window returns the visible page items for a pagination control.
// When totalPages fits the budget, every page is listed. Otherwise the
// result always holds exactly maxVisible items: page 1, page totalPages,
// a contiguous window around currentPage, and ellipsis markers where the
// window does not touch the edges. Near a boundary the window widens so
// the visible count is preserved.
func Window(currentPage, totalPages, maxVisible int) []Item {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	if totalPages < 1 {
		return nil
	}

	if totalPages <= maxVisible {
		items := make([]Item, 0, totalPages)
		for n := 1; n <= totalPages; n++ {
			items = append(items, page(n))
		}
		return items
	}

	if maxVisible < minCompressedVisible {
		maxVisible = minCompressedVisible
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	// Width of the middle window when both ellipses are present
	// (budget minus first page, last page, and two ellipses).
	innerWidth := maxVisible - 4
	// Edge window replaces one ellipsis and the near boundary page.
	edgeWidth := maxVisible - 2

	start := currentPage - innerWidth/2
	end := start + innerWidth - 1

	items := make([]Item, 0, maxVisible)

	switch {
	case start <= 2:
		// Window would leave no gap after page 1: widen against the
		// left edge instead.
		for n := 1; n <= edgeWidth; n++ {
			items = append(items, page(n))
		}
		items = append(items, ellipsis(), page(totalPages))

	case end >= totalPages-1:
		// Same at the right edge.
		items = append(items, page(1), ellipsis())
		for n := totalPages - edgeWidth + 1; n <= totalPages; n++ {
			items = append(items, page(n))
		}

	default:
		items = append(items, page(1), ellipsis())
		for n := start; n <= end; n++ {
			items = append(items, page(n))
		}
		items = append(items, ellipsis(), page(totalPages))
	}

	return items
}
