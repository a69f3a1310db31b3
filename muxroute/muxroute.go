// Package muxroute connects linkpager to gorilla/mux: route parameters come
// from mux.Vars and bound routes are resolved through the router.
package muxroute

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Alp4ka/linkpager"
)

// Request adapts a request served by a mux router.
type Request struct {
	linkpager.HTTPRequest
	r *http.Request
}

func NewRequest(r *http.Request) Request {
	return Request{HTTPRequest: linkpager.NewHTTPRequest(r), r: r}
}

func (m Request) RouteParam(name string) (string, bool) {
	if m.r == nil {
		return "", false
	}

	v, ok := mux.Vars(m.r)[name]
	return v, ok
}

// Generator resolves linkpager route bindings against a mux router. The
// binding Instance may be a *mux.Route; otherwise Name is looked up with
// Router.Get. Parameters matching path variables fill the path, the rest go to
// the query string.
type Generator struct {
	router  *mux.Router
	request *http.Request
}

// NewGenerator takes the current request to build absolute URLs. It may be nil
// when every route declares its own host.
func NewGenerator(router *mux.Router, request *http.Request) Generator {
	return Generator{router: router, request: request}
}

func (g Generator) Resolve(binding linkpager.RouteBinding, params url.Values, absolute bool) (string, error) {
	route, err := g.route(binding)
	if err != nil {
		return "", err
	}

	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return "", fmt.Errorf("cannot read path template: %w", err)
	}

	vars := pathVars(tmpl)
	pairs := make([]string, 0, len(vars)*2)
	query := url.Values{}
	for k, v := range params {
		if _, ok := vars[k]; ok && len(v) > 0 {
			pairs = append(pairs, k, v[0])
			continue
		}
		query[k] = v
	}

	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("cannot build route path: %w", err)
	}

	if absolute {
		if host, hostErr := route.URLHost(pairs...); hostErr == nil {
			u.Scheme, u.Host = host.Scheme, host.Host
		} else if g.request != nil {
			base, err := url.Parse(linkpager.RequestURL(g.request))
			if err != nil {
				return "", fmt.Errorf("cannot read request url: %w", err)
			}
			u.Scheme, u.Host = base.Scheme, base.Host
		}
	}

	u.RawQuery = query.Encode()

	return u.String(), nil
}

func (g Generator) route(binding linkpager.RouteBinding) (*mux.Route, error) {
	if route, ok := binding.Instance.(*mux.Route); ok && route != nil {
		return route, nil
	}

	if g.router == nil {
		return nil, fmt.Errorf("no router to look up route '%s'", binding.Name)
	}

	route := g.router.Get(binding.Name)
	if route == nil {
		return nil, fmt.Errorf("route '%s' not found", binding.Name)
	}

	return route, nil
}

// pathVars extracts the variable names of a mux path template such as
// "/teams/{team}/users/{page:[0-9]{1,4}}".
func pathVars(tmpl string) map[string]struct{} {
	vars := map[string]struct{}{}
	depth, start := 0, 0
	for i, c := range tmpl {
		switch c {
		case '{':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case '}':
			depth--
			if depth == 0 {
				name, _, _ := strings.Cut(tmpl[start:i], ":")
				vars[strings.TrimSpace(name)] = struct{}{}
			}
		}
	}

	return vars
}

var (
	_ linkpager.Request      = Request{}
	_ linkpager.URLGenerator = Generator{}
)
