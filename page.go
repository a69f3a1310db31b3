package linkpager

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type linkConfig struct {
	options   Options
	route     *RouteBinding
	request   Request
	generator URLGenerator
}

// Page is one page of a dataset together with everything needed to link to
// its neighbours.
type Page[T any] struct {
	*PageState
	// Items holds the rows of the page, without the look-ahead row.
	Items []T

	links linkConfig
}

func newPage[T any](state *PageState, items []T, links linkConfig) *Page[T] {
	state.SetPagesProximity(links.options.proximity())

	return &Page[T]{
		PageState: state,
		Items:     lo.Ternary(items == nil, []T{}, items),
		links:     links,
	}
}

// SetPagesProximity changes the page window half-width of this page only.
func (p *Page[T]) SetPagesProximity(proximity int) *Page[T] {
	p.PageState.SetPagesProximity(proximity)
	return p
}

// PageName returns the parameter name carrying the page number.
func (p *Page[T]) PageName() string {
	return p.links.options.PageName
}

// URL returns the link to the given page. Pages below 1 link to page 1; pages
// past the end are not clamped.
//
// With a bound route and a URL generator the route is resolved with its
// parameters, the current query (when enabled) and the page parameter, in
// increasing precedence. Otherwise the page parameter is appended to the base
// URL or the current request URL.
func (p *Page[T]) URL(page int) (string, error) {
	page = max(page, 1)

	if p.links.route == nil || p.links.generator == nil {
		return p.queryURL(page), nil
	}

	route := *p.links.route
	params := url.Values{}
	for k, v := range route.Parameters {
		params.Set(k, v)
	}

	if p.links.options.withQuery() {
		for k, v := range p.currentQuery() {
			if _, ok := params[k]; !ok {
				params[k] = v
			}
		}
	}

	params.Set(p.PageName(), strconv.Itoa(page))

	generated, err := p.links.generator.Resolve(route, params, route.IsAbsolute())
	if err != nil {
		return "", fmt.Errorf("cannot generate url for page %d: %w", page, err)
	}

	return generated + p.fragment(), nil
}

// URLRange maps every page in [start, end] to its URL.
func (p *Page[T]) URLRange(start int, end int) (map[int]string, error) {
	ret := make(map[int]string, max(end-start+1, 0))
	for page := start; page <= end; page++ {
		u, err := p.URL(page)
		if err != nil {
			return nil, err
		}
		ret[page] = u
	}

	return ret, nil
}

// NextPageURL returns "" when there is no next page.
func (p *Page[T]) NextPageURL() (string, error) {
	if !p.HasMorePages() {
		return "", nil
	}

	return p.URL(p.CurrentPage() + 1)
}

// PreviousPageURL returns "" on the first page.
func (p *Page[T]) PreviousPageURL() (string, error) {
	if p.OnFirstPage() {
		return "", nil
	}

	return p.URL(p.CurrentPage() - 1)
}

func (p *Page[T]) queryURL(page int) string {
	params := url.Values{}
	if p.links.options.withQuery() {
		params = p.currentQuery()
	}

	params.Set(p.PageName(), strconv.Itoa(page))

	return p.currentURL() + "?" + params.Encode() + p.fragment()
}

// currentQuery returns a copy of the request query without the page
// parameter.
func (p *Page[T]) currentQuery() url.Values {
	if p.links.request == nil {
		return url.Values{}
	}

	query := url.Values{}
	for k, v := range p.links.request.QueryParams() {
		if k == p.PageName() {
			continue
		}
		query[k] = append([]string(nil), v...)
	}

	return query
}

func (p *Page[T]) currentURL() string {
	base := p.links.options.BaseURL
	if base == "" && p.links.request != nil {
		base = p.links.request.URL()
	}

	if base == "" || base == "/" {
		return "/"
	}

	return strings.TrimRight(base, "/")
}

func (p *Page[T]) fragment() string {
	if p.links.options.Fragment == "" {
		return ""
	}

	return "#" + strings.TrimPrefix(p.links.options.Fragment, "#")
}
