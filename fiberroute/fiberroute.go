// Package fiberroute connects linkpager to fiber handlers.
package fiberroute

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/Alp4ka/linkpager"
)

// Request adapts the request of a fiber handler. Use it only while the handler
// runs: fiber recycles the context afterwards.
type Request struct {
	c *fiber.Ctx
}

func NewRequest(c *fiber.Ctx) Request {
	return Request{c: c}
}

func (r Request) QueryParams() url.Values {
	values := url.Values{}
	r.c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})

	return values
}

func (r Request) RouteParam(name string) (string, bool) {
	v := r.c.Params(name)
	return v, v != ""
}

func (r Request) URL() string {
	return r.c.BaseURL() + r.c.Path()
}

// Generator resolves named fiber routes. The binding Instance may be a
// fiber.Route or *fiber.Route; its Name is used. Parameters matching route
// params fill the path, the rest go to the query string.
type Generator struct {
	c *fiber.Ctx
}

func NewGenerator(c *fiber.Ctx) Generator {
	return Generator{c: c}
}

func (g Generator) Resolve(binding linkpager.RouteBinding, params url.Values, absolute bool) (string, error) {
	name := binding.Name
	switch route := binding.Instance.(type) {
	case fiber.Route:
		name = route.Name
	case *fiber.Route:
		if route != nil {
			name = route.Name
		}
	}

	route := g.c.App().GetRoute(name)
	if name == "" || route.Name == "" {
		return "", fmt.Errorf("route '%s' not found", name)
	}

	pathParams := fiber.Map{}
	query := url.Values{}
	for k, v := range params {
		if lo.Contains(route.Params, k) && len(v) > 0 {
			pathParams[k] = v[0]
			continue
		}
		query[k] = v
	}

	location, err := g.c.GetRouteURL(name, pathParams)
	if err != nil {
		return "", fmt.Errorf("cannot build route path: %w", err)
	}

	if absolute && !strings.Contains(location, "://") {
		location = g.c.BaseURL() + location
	}

	if len(query) > 0 {
		location += "?" + query.Encode()
	}

	return location, nil
}

var (
	_ linkpager.Request      = Request{}
	_ linkpager.URLGenerator = Generator{}
)
