package linkpager

import (
	"math"

	"github.com/samber/lo"
)

const (
	// UnknownLastPage marks a page state without a total (simple pagination).
	UnknownLastPage = -1
	// NoProximity disables the page window: the full [1, lastPage] range is used.
	NoProximity = -1

	DefaultPerPage  = 15
	DefaultPageName = "page"
)

// IsNormalizedPage clamps a raw page number into the valid range and reports
// whether the input was already valid.
//
//   - raw <= 0 → 1.
//   - raw > lastPage → lastPage (or 1 when there are no pages at all).
//   - lastPage == UnknownLastPage → no upper clamp.
func IsNormalizedPage(raw int, lastPage int) (int, bool) {
	if raw <= 0 {
		return 1, false
	} else if lastPage != UnknownLastPage && raw > lastPage {
		return max(lastPage, 1), false
	}

	return raw, true
}

func NormalizePage(raw int, lastPage int) int {
	ret, _ := IsNormalizedPage(raw, lastPage)
	return ret
}

// LastPageFor returns ceil(total / perPage).
func LastPageFor(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}

	return int((total + int64(perPage) - 1) / int64(perPage))
}

// OffsetFor returns the row offset of the given page. An offset that does not
// fit into int saturates to math.MaxInt.
func OffsetFor(page int, perPage int) int {
	ret, _ := IsOffsetInRange(page, perPage)
	return ret
}

// IsOffsetInRange returns the row offset of the given page and reports whether
// (page-1)*perPage fits into int.
func IsOffsetInRange(page int, perPage int) (int, bool) {
	pages := max(page, 1) - 1
	if perPage > 0 && pages > math.MaxInt/perPage {
		return math.MaxInt, false
	}

	return pages * perPage, true
}

// ComputePagesRange returns the window of page numbers shown around
// currentPage.
//
// With NoProximity the whole [1, lastPage] range is returned. Otherwise the
// window [current-proximity, current+proximity] is slid right when it starts
// below 1, or else slid left when it ends past lastPage, and finally clamped to
// [1, lastPage]. A window near a boundary keeps its 2*proximity+1 size until
// there are fewer pages than that.
func ComputePagesRange(currentPage int, lastPage int, proximity int) []int {
	if proximity < 0 {
		if lastPage < 1 {
			return []int{}
		}

		return lo.RangeFrom(1, lastPage)
	}

	start := currentPage - proximity
	end := math.MaxInt
	if currentPage <= math.MaxInt-proximity {
		end = currentPage + proximity
	}

	if start < 1 {
		offset := 1 - start
		start += offset
		end += offset
	} else if end > lastPage {
		offset := end - lastPage
		start -= offset
		end -= offset
	}

	start = max(start, 1)
	end = min(end, lastPage)

	if end < start {
		return []int{}
	}

	return lo.RangeFrom(start, end-start+1)
}
