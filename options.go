package linkpager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// OptimizeMode selects how simple pagination fetches a page.
type OptimizeMode string

const (
	// OptimizeOff fetches perPage+1 full rows at the page offset.
	OptimizeOff OptimizeMode = "off"
	// OptimizeOn fetches perPage+1 keys at the page offset, then the full rows
	// for those keys.
	OptimizeOn OptimizeMode = "on"
	// OptimizeAuto picks OptimizeOn once the page or offset crosses the
	// configured thresholds.
	OptimizeAuto OptimizeMode = "auto"
)

func (m OptimizeMode) Valid() bool {
	return m == OptimizeOff || m == OptimizeOn || m == OptimizeAuto
}

// ParseOptimizeMode is case-insensitive.
func ParseOptimizeMode(s string) (OptimizeMode, error) {
	m := OptimizeMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid large page optimize mode '%s'", s)
	}

	return m, nil
}

const DefaultView = "slider"

var (
	ErrInvalidOptions = errors.New("invalid pagination options")
	ErrInvalidPerPage = errors.New("per page must be greater than zero")
)

// Options is the static pagination configuration. Zero fields are filled with
// the values from the default tags by NewPager.
type Options struct {
	// PerPage is used when Paginate is called with perPage == 0.
	PerPage int `default:"15" validate:"gt=0"`
	// PagesProximity is the half-width of the page window. Nil shows every
	// page.
	PagesProximity *int `validate:"omitempty,gte=0"`
	// WithQuery propagates the current query string into generated URLs.
	WithQuery *bool `default:"true"`
	// PageName is the query or route parameter carrying the page number.
	PageName string `default:"page" validate:"required"`
	// BaseURL replaces the request URL for query-string links.
	BaseURL string
	// Fragment is appended to every generated URL as "#Fragment".
	Fragment string

	LargePageOptimize            OptimizeMode `default:"off" validate:"oneof=off on auto"`
	LargePageOptimizeTotal       int          `default:"100000" validate:"gte=0"`
	LargePageOptimizeCurrentPage int          `default:"1000" validate:"gte=0"`

	// View is the name handed to a Renderer by Page.Links.
	View string `default:"slider"`
}

var _validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize fills defaults and validates the options.
func (o Options) Normalize() (Options, error) {
	o.LargePageOptimize = OptimizeMode(strings.ToLower(string(o.LargePageOptimize)))

	if err := defaults.Set(&o); err != nil {
		return Options{}, fmt.Errorf("cannot apply option defaults: %w", err)
	}

	if err := _validate.Struct(o); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	return o, nil
}

func (o Options) withQuery() bool {
	return o.WithQuery == nil || *o.WithQuery
}

func (o Options) proximity() int {
	if o.PagesProximity == nil {
		return NoProximity
	}

	return *o.PagesProximity
}
