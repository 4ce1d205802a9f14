package baser

import (
	"fmt"
	"sort"
)

// Route maps a logical endpoint name to the plugin and controller path
// segments of the remote API.
type Route struct {
	Name       string `json:"name"       yaml:"name"`
	Plugin     string `json:"plugin"     yaml:"plugin"`
	Controller string `json:"controller" yaml:"controller"`
}

// Endpoint names registered by DefaultRoutes.
const (
	EndpointBlogPosts      = "blogPosts"
	EndpointBlogCategories = "blogCategories"
	EndpointBlogContents   = "blogContents"
	EndpointBlogTags       = "blogTags"
	EndpointUsers          = "users"
	EndpointCustomTables   = "customTables"
	EndpointCustomFields   = "customFields"
	EndpointCustomEntries  = "customEntries"
	EndpointCustomLinks    = "customLinks"
	EndpointCustomContents = "customContents"
)

const (
	pluginBlog          = "bc-blog"
	pluginCore          = "baser-core"
	pluginCustomContent = "bc-custom-content"
)

// RouteRegistry is an immutable lookup table of routes.
type RouteRegistry struct {
	routes map[string]Route
}

// NewRouteRegistry builds a registry from routes. A later route with the same
// name replaces an earlier one.
func NewRouteRegistry(routes ...Route) *RouteRegistry {
	reg := &RouteRegistry{routes: make(map[string]Route, len(routes))}
	for _, route := range routes {
		reg.routes[route.Name] = route
	}

	return reg
}

// DefaultRoutes returns the registry of every endpoint the baserCMS core,
// bc-blog and bc-custom-content plugins expose.
func DefaultRoutes() *RouteRegistry {
	return NewRouteRegistry(
		Route{Name: EndpointBlogPosts, Plugin: pluginBlog, Controller: "blog_posts"},
		Route{Name: EndpointBlogCategories, Plugin: pluginBlog, Controller: "blog_categories"},
		Route{Name: EndpointBlogContents, Plugin: pluginBlog, Controller: "blog_contents"},
		Route{Name: EndpointBlogTags, Plugin: pluginBlog, Controller: "blog_tags"},
		Route{Name: EndpointUsers, Plugin: pluginCore, Controller: "users"},
		Route{Name: EndpointCustomTables, Plugin: pluginCustomContent, Controller: "custom_tables"},
		Route{Name: EndpointCustomFields, Plugin: pluginCustomContent, Controller: "custom_fields"},
		Route{Name: EndpointCustomEntries, Plugin: pluginCustomContent, Controller: "custom_entries"},
		Route{Name: EndpointCustomLinks, Plugin: pluginCustomContent, Controller: "custom_links"},
		Route{Name: EndpointCustomContents, Plugin: pluginCustomContent, Controller: "custom_contents"},
	)
}

// Resolve looks up the route registered under name.
func (r *RouteRegistry) Resolve(name string) (Route, error) {
	if r != nil {
		if route, ok := r.routes[name]; ok {
			return route, nil
		}
	}

	return Route{}, fmt.Errorf("%w: %q", ErrUnknownEndpoint, name)
}

// With returns a copy of the registry extended with routes.
func (r *RouteRegistry) With(routes ...Route) *RouteRegistry {
	merged := make([]Route, 0, r.Len()+len(routes))
	if r != nil {
		for _, route := range r.routes {
			merged = append(merged, route)
		}
	}

	return NewRouteRegistry(append(merged, routes...)...)
}

// Names returns the registered endpoint names sorted.
func (r *RouteRegistry) Names() []string {
	if r == nil {
		return nil
	}

	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Routes returns every registered route ordered by name.
func (r *RouteRegistry) Routes() []Route {
	names := r.Names()

	routes := make([]Route, 0, len(names))
	for _, name := range names {
		routes = append(routes, r.routes[name])
	}

	return routes
}

// Len returns the number of registered routes.
func (r *RouteRegistry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.routes)
}
