package linkpager

import (
	"fmt"
	"maps"

	"go.uber.org/zap"
)

// Pager holds the link configuration and the request collaborators shared by
// the pages it produces. Configure it once per request; With* setters mutate
// the receiver and return it for chaining.
type Pager struct {
	options   Options
	route     *RouteBinding
	request   Request
	generator URLGenerator
	logger    *zap.Logger
}

// NewPager applies option defaults and validates them.
func NewPager(options Options) (*Pager, error) {
	normalized, err := options.Normalize()
	if err != nil {
		return nil, err
	}

	return &Pager{
		options: normalized,
		logger:  zap.NewNop(),
	}, nil
}

// MustPager is NewPager for static configuration known to be valid.
func MustPager(options Options) *Pager {
	p, err := NewPager(options)
	if err != nil {
		panic(fmt.Errorf("cannot create pager: %w", err))
	}

	return p
}

// orDefault lets the nil-receiver setters start from a valid configuration.
func (p *Pager) orDefault() *Pager {
	if p == nil {
		return MustPager(Options{})
	}

	return p
}

// Options returns a copy of the effective options.
func (p *Pager) Options() Options {
	return p.orDefault().options
}

func (p *Pager) WithRequest(req Request) *Pager {
	p = p.orDefault()
	p.request = req

	return p
}

// WithURLGenerator sets the collaborator resolving bound routes. Without it
// links fall back to query-string URLs even when a route is bound.
func (p *Pager) WithURLGenerator(generator URLGenerator) *Pager {
	p = p.orDefault()
	p.generator = generator

	return p
}

func (p *Pager) WithLogger(logger *zap.Logger) *Pager {
	p = p.orDefault()
	if logger == nil {
		logger = zap.NewNop()
	}
	p.logger = logger

	return p
}

// WithRoute binds generated links to the route with the given name.
func (p *Pager) WithRoute(name string, parameters map[string]string, absolute bool) *Pager {
	p = p.orDefault()
	p.route = &RouteBinding{
		Name:       name,
		Parameters: maps.Clone(parameters),
		Absolute:   &absolute,
	}

	return p
}

// WithRouteInstance binds generated links to a router-specific route object,
// e.g. *mux.Route.
func (p *Pager) WithRouteInstance(instance any, parameters map[string]string, absolute bool) *Pager {
	p = p.orDefault()
	p.route = &RouteBinding{
		Instance:   instance,
		Parameters: maps.Clone(parameters),
		Absolute:   &absolute,
	}

	return p
}

// WithoutRoute drops the route binding; links use the query-string form.
func (p *Pager) WithoutRoute() *Pager {
	p = p.orDefault()
	p.route = nil

	return p
}

// Route returns the bound route, false when links use the query-string form.
func (p *Pager) Route() (RouteBinding, bool) {
	if p == nil || p.route == nil {
		return RouteBinding{}, false
	}

	return *p.route, true
}

// WithQuery propagates the current query string into generated links.
func (p *Pager) WithQuery() *Pager {
	p = p.orDefault()
	p.options.WithQuery = boolPtr(true)

	return p
}

// WithoutQuery drops the current query string from generated links.
func (p *Pager) WithoutQuery() *Pager {
	p = p.orDefault()
	p.options.WithQuery = boolPtr(false)

	return p
}

// WithPagesProximity sets the page window half-width. Negative values show
// every page.
func (p *Pager) WithPagesProximity(proximity int) *Pager {
	p = p.orDefault()
	if proximity < 0 {
		p.options.PagesProximity = nil
	} else {
		p.options.PagesProximity = &proximity
	}

	return p
}

// WithPerPage sets the page size used when Paginate gets perPage == 0.
// Non-positive values are ignored.
func (p *Pager) WithPerPage(perPage int) *Pager {
	p = p.orDefault()
	if perPage > 0 {
		p.options.PerPage = perPage
	}

	return p
}

// WithPageName sets the page parameter name. Empty names are ignored.
func (p *Pager) WithPageName(name string) *Pager {
	p = p.orDefault()
	if name != "" {
		p.options.PageName = name
	}

	return p
}

func (p *Pager) WithBaseURL(baseURL string) *Pager {
	p = p.orDefault()
	p.options.BaseURL = baseURL

	return p
}

func (p *Pager) WithFragment(fragment string) *Pager {
	p = p.orDefault()
	p.options.Fragment = fragment

	return p
}

func (p *Pager) WithView(view string) *Pager {
	p = p.orDefault()
	p.options.View = view

	return p
}

// WithLargePageOptimize sets the simple pagination fetch strategy. The mode is
// case-insensitive.
func (p *Pager) WithLargePageOptimize(mode OptimizeMode) (*Pager, error) {
	p = p.orDefault()

	parsed, err := ParseOptimizeMode(string(mode))
	if err != nil {
		return p, err
	}
	p.options.LargePageOptimize = parsed

	return p, nil
}

// WithOptimizeThresholds sets the offset and page thresholds of OptimizeAuto.
func (p *Pager) WithOptimizeThresholds(total int, currentPage int) *Pager {
	p = p.orDefault()
	p.options.LargePageOptimizeTotal = max(total, 0)
	p.options.LargePageOptimizeCurrentPage = max(currentPage, 0)

	return p
}

// CurrentPage resolves the raw page number of the request: explicit wins,
// then the route or query parameter.
func (p *Pager) CurrentPage(explicit int) int {
	p = p.orDefault()
	return ResolveCurrentPage(explicit, p.request, p.options.PageName, p.route != nil)
}

// perPage resolves the page size: 0 means Options.PerPage, negative is an
// error.
func (p *Pager) perPage(perPage int) (int, error) {
	if perPage == 0 {
		perPage = p.options.PerPage
	}

	if perPage <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPerPage, perPage)
	}

	return perPage, nil
}

// links snapshots the configuration so later setter calls do not alter pages
// already built.
func (p *Pager) links() linkConfig {
	cfg := linkConfig{
		options:   p.options,
		request:   p.request,
		generator: p.generator,
	}

	if p.route != nil {
		route := *p.route
		route.Parameters = maps.Clone(p.route.Parameters)
		cfg.route = &route
	}

	return cfg
}

func boolPtr(b bool) *bool {
	return &b
}
