package linkpager

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// Request is the part of the incoming request the pager reads.
type Request interface {
	// QueryParams returns the parsed query string.
	QueryParams() url.Values
	// RouteParam returns a parameter matched by the router.
	RouteParam(name string) (string, bool)
	// URL returns the current URL without query string and fragment.
	URL() string
}

// RouteBinding points generated links to a named route or a router-specific
// route object.
type RouteBinding struct {
	Name       string
	Instance   any
	Parameters map[string]string
	// Absolute defaults to true when nil.
	Absolute *bool
}

func (b RouteBinding) IsAbsolute() bool {
	return b.Absolute == nil || *b.Absolute
}

// URLGenerator resolves a route binding into a URL.
type URLGenerator interface {
	Resolve(route RouteBinding, params url.Values, absolute bool) (string, error)
}

// ResolveCurrentPage picks the raw page number for a request. A non-zero
// explicit page is returned as is. Otherwise the pageName parameter is read
// from the route when routed is set, or from the query string. A missing or
// unparsable parameter yields 0, which NormalizePage turns into 1.
func ResolveCurrentPage(explicit int, req Request, pageName string, routed bool) int {
	if explicit != 0 {
		return explicit
	}

	if req == nil {
		return 0
	}

	var raw string
	if routed {
		raw, _ = req.RouteParam(pageName)
	} else {
		raw = req.QueryParams().Get(pageName)
	}

	page, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}

	return page
}

// HTTPRequest adapts *http.Request. Route parameters come from the
// net/http ServeMux pattern wildcards.
type HTTPRequest struct {
	r *http.Request
}

func NewHTTPRequest(r *http.Request) HTTPRequest {
	return HTTPRequest{r: r}
}

func (h HTTPRequest) QueryParams() url.Values {
	if h.r == nil || h.r.URL == nil {
		return url.Values{}
	}

	return h.r.URL.Query()
}

func (h HTTPRequest) RouteParam(name string) (string, bool) {
	if h.r == nil {
		return "", false
	}

	v := h.r.PathValue(name)

	return v, v != ""
}

func (h HTTPRequest) URL() string {
	if h.r == nil || h.r.URL == nil {
		return "/"
	}

	return RequestURL(h.r)
}

// RequestURL rebuilds scheme://host/path of a server-side request.
func RequestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	host := r.Host
	if host == "" {
		host = r.URL.Host
	}

	u := url.URL{Scheme: scheme, Host: host, Path: r.URL.Path}
	if host == "" {
		u.Scheme = ""
	}

	return u.String()
}

var _ Request = HTTPRequest{}
