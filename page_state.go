package linkpager

import (
	"math"
	"slices"
)

// PageState is the computed position of one page within a dataset. It is built
// fresh for every pagination call and is not safe for concurrent use.
type PageState struct {
	total       int64
	hasTotal    bool
	hasMore     bool
	count       int
	perPage     int
	currentPage int
	lastPage    int
	proximity   int
	pagesRange  []int
}

// NewPageState builds the state of a length-aware page. The requested page is
// normalized against the last page derived from total.
func NewPageState(total int64, perPage int, page int, itemCount int) *PageState {
	lastPage := LastPageFor(total, perPage)
	currentPage := NormalizePage(page, lastPage)

	return &PageState{
		total:       total,
		hasTotal:    true,
		hasMore:     currentPage < lastPage,
		count:       itemCount,
		perPage:     perPage,
		currentPage: currentPage,
		lastPage:    lastPage,
		proximity:   NoProximity,
	}
}

// NewSimplePageState builds the state of a page whose total is unknown.
// hasMore is the look-ahead verdict: whether a row past this page exists.
func NewSimplePageState(perPage int, page int, itemCount int, hasMore bool) *PageState {
	return &PageState{
		hasMore:     hasMore,
		count:       itemCount,
		perPage:     perPage,
		currentPage: NormalizePage(page, UnknownLastPage),
		lastPage:    UnknownLastPage,
		proximity:   NoProximity,
	}
}

// Total returns the number of items in the dataset, false in simple mode.
func (s *PageState) Total() (int64, bool) {
	return s.total, s.hasTotal
}

// LastPage returns the last page number or UnknownLastPage in simple mode.
func (s *PageState) LastPage() int {
	return s.lastPage
}

func (s *PageState) PerPage() int {
	return s.perPage
}

func (s *PageState) CurrentPage() int {
	return s.currentPage
}

// IsSimple reports whether the state was built without a total.
func (s *PageState) IsSimple() bool {
	return !s.hasTotal
}

func (s *PageState) OnFirstPage() bool {
	return s.currentPage <= 1
}

func (s *PageState) HasMorePages() bool {
	return s.hasMore
}

// HasPages reports whether there is more than one page to link to.
func (s *PageState) HasPages() bool {
	return s.currentPage != 1 || s.hasMore
}

// NextPage returns the following page number, 0 when there is none.
func (s *PageState) NextPage() int {
	if !s.hasMore || s.currentPage == math.MaxInt {
		return 0
	}

	return s.currentPage + 1
}

// PreviousPage returns the preceding page number, 0 on the first page.
func (s *PageState) PreviousPage() int {
	if s.currentPage <= 1 {
		return 0
	}

	return s.currentPage - 1
}

// FirstItem returns the 1-based position of the first item on the page, 0 for
// an empty page.
func (s *PageState) FirstItem() int {
	if s.count == 0 {
		return 0
	}

	return OffsetFor(s.currentPage, s.perPage) + 1
}

// LastItem returns the 1-based position of the last item on the page, 0 for an
// empty page.
func (s *PageState) LastItem() int {
	if s.count == 0 {
		return 0
	}

	return s.FirstItem() + s.count - 1
}

// PagesProximity returns the configured window half-width or NoProximity.
func (s *PageState) PagesProximity() int {
	return s.proximity
}

// SetPagesProximity changes the window half-width. Negative values disable the
// window. The memoized range is dropped.
func (s *PageState) SetPagesProximity(proximity int) *PageState {
	if proximity < 0 {
		proximity = NoProximity
	}

	s.proximity = proximity
	s.pagesRange = nil

	return s
}

// PagesRange returns the page numbers to show around the current page. The
// result is computed once and reused until SetPagesProximity is called.
func (s *PageState) PagesRange() []int {
	if s.pagesRange != nil {
		return s.pagesRange
	}

	s.pagesRange = ComputePagesRange(s.currentPage, s.horizon(), s.proximity)

	return s.pagesRange
}

// CanShowFirstPage reports whether page 1 is outside the window and needs a
// separate link.
func (s *PageState) CanShowFirstPage() bool {
	return !slices.Contains(s.PagesRange(), 1)
}

// CanShowLastPage reports whether the last page is outside the window and needs
// a separate link. Always false when the last page is unknown.
func (s *PageState) CanShowLastPage() bool {
	if !s.hasTotal {
		return false
	}

	return !slices.Contains(s.PagesRange(), s.lastPage)
}

// horizon is the last page the window may reach. Without a total only the
// current page and, if the look-ahead row exists, the next one are known. An
// empty simple page lies past the end of the data, so only page 1 is known.
func (s *PageState) horizon() int {
	if s.hasTotal {
		return s.lastPage
	}

	if s.count == 0 && !s.hasMore {
		return 1
	}

	if s.hasMore && s.currentPage < math.MaxInt {
		return s.currentPage + 1
	}

	return s.currentPage
}
