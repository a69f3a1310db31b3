package linkpager

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrKeysUnsupported = errors.New("source cannot fetch by keys")

// Paginate counts the dataset, clamps the requested page into [1, lastPage]
// and fetches it. page == 0 resolves the page from the request; perPage == 0
// uses Options.PerPage, negative perPage is ErrInvalidPerPage.
func Paginate[T any](ctx context.Context, p *Pager, src Source[T], perPage int, page int) (*Page[T], error) {
	p = p.orDefault()

	perPage, err := p.perPage(perPage)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	total, err := src.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	currentPage := NormalizePage(p.CurrentPage(page), LastPageFor(total, perPage))
	offset := OffsetFor(currentPage, perPage)

	var items []T
	if total > int64(offset) {
		items, err = src.FetchPage(ctx, offset, perPage)
		if err != nil {
			return nil, fmt.Errorf("cannot paginate: %w", err)
		}
	}

	p.logger.Debug("paginated",
		zap.Int64("total", total),
		zap.Int("per_page", perPage),
		zap.Int("page", currentPage),
		zap.Int("items", len(items)),
	)

	return newPage(NewPageState(total, perPage, currentPage, len(items)), items, p.links()), nil
}

// SimplePaginate fetches a page without counting the dataset. One extra row is
// requested to learn whether a next page exists; it is not returned. The
// requested page is not clamped from above; a page whose offset does not fit
// into int is returned empty without fetching. page == 0 resolves the page
// from the request; perPage == 0 uses Options.PerPage, negative perPage is
// ErrInvalidPerPage.
func SimplePaginate[T any](ctx context.Context, p *Pager, src Source[T], perPage int, page int) (*Page[T], error) {
	p = p.orDefault()

	perPage, err := p.perPage(perPage)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	currentPage := NormalizePage(p.CurrentPage(page), UnknownLastPage)

	offset, ok := IsOffsetInRange(currentPage, perPage)
	if !ok {
		p.logger.Debug("page offset out of range",
			zap.Int("per_page", perPage),
			zap.Int("page", currentPage),
		)

		return newPage(NewSimplePageState(perPage, currentPage, 0, false), []T{}, p.links()), nil
	}

	strategy, err := fetchStrategy(p, src, currentPage, offset)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	resultSet, err := fetchLookahead(ctx, src, strategy, offset, perPage+1)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	hasMore := !IsLastPage(perPage, resultSet)
	items := TrimResultSet(perPage, resultSet)

	p.logger.Debug("paginated without total",
		zap.String("strategy", string(strategy)),
		zap.Int("per_page", perPage),
		zap.Int("page", currentPage),
		zap.Int("items", len(items)),
		zap.Bool("has_more", hasMore),
	)

	return newPage(NewSimplePageState(perPage, currentPage, len(items), hasMore), items, p.links()), nil
}

// Make builds a length-aware page from rows fetched by the caller. perPage
// follows the Paginate rules.
func Make[T any](p *Pager, items []T, total int64, perPage int, page int) (*Page[T], error) {
	p = p.orDefault()

	perPage, err := p.perPage(perPage)
	if err != nil {
		return nil, fmt.Errorf("cannot make page: %w", err)
	}

	state := NewPageState(total, perPage, p.CurrentPage(page), len(items))

	return newPage(state, items, p.links()), nil
}

// MakeSimple builds a simple page from rows fetched by the caller. items may
// hold the perPage+1 look-ahead row; it is trimmed.
func MakeSimple[T any](p *Pager, items []T, perPage int, page int) (*Page[T], error) {
	p = p.orDefault()

	perPage, err := p.perPage(perPage)
	if err != nil {
		return nil, fmt.Errorf("cannot make page: %w", err)
	}

	hasMore := !IsLastPage(perPage, items)
	items = TrimResultSet(perPage, items)
	state := NewSimplePageState(perPage, p.CurrentPage(page), len(items), hasMore)

	return newPage(state, items, p.links()), nil
}

// fetchStrategy decides between OptimizeOff and OptimizeOn.
//
// OptimizeAuto switches to key prefetch for keyed sources once the page
// reaches LargePageOptimizeCurrentPage or the offset reaches
// LargePageOptimizeTotal. A zero threshold never triggers.
func fetchStrategy[T any](p *Pager, src Source[T], page int, offset int) (OptimizeMode, error) {
	_, keyed := src.(KeyedSource[T])

	switch p.options.LargePageOptimize {
	case OptimizeOn:
		if !keyed {
			return "", ErrKeysUnsupported
		}
		return OptimizeOn, nil
	case OptimizeAuto:
		byPage := p.options.LargePageOptimizeCurrentPage > 0 && page >= p.options.LargePageOptimizeCurrentPage
		byOffset := p.options.LargePageOptimizeTotal > 0 && offset >= p.options.LargePageOptimizeTotal
		if keyed && (byPage || byOffset) {
			return OptimizeOn, nil
		}
		return OptimizeOff, nil
	default:
		return OptimizeOff, nil
	}
}

func fetchLookahead[T any](ctx context.Context, src Source[T], strategy OptimizeMode, offset int, limit int) ([]T, error) {
	if strategy != OptimizeOn {
		return src.FetchPage(ctx, offset, limit)
	}

	keyed, ok := src.(KeyedSource[T])
	if !ok {
		return nil, ErrKeysUnsupported
	}

	keys, err := keyed.FetchKeys(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []T{}, nil
	}

	return keyed.FetchByKeys(ctx, keys)
}

// IsLastPage reports whether a look-ahead result set of up to perPage+1 rows
// ends the dataset.
func IsLastPage[T any](perPage int, resultSet []T) bool {
	return len(resultSet) <= perPage
}

// TrimResultSet drops the look-ahead row, if present.
func TrimResultSet[T any](perPage int, resultSet []T) []T {
	if len(resultSet) > perPage {
		resultSet = resultSet[:perPage]
	}

	return resultSet
}
