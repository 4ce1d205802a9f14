package baser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoutes(t *testing.T) {
	t.Parallel()

	routes := DefaultRoutes()
	assert.Equal(t, 10, routes.Len())

	tests := []struct {
		name       string
		plugin     string
		controller string
	}{
		{EndpointBlogPosts, "bc-blog", "blog_posts"},
		{EndpointBlogCategories, "bc-blog", "blog_categories"},
		{EndpointBlogContents, "bc-blog", "blog_contents"},
		{EndpointBlogTags, "bc-blog", "blog_tags"},
		{EndpointUsers, "baser-core", "users"},
		{EndpointCustomTables, "bc-custom-content", "custom_tables"},
		{EndpointCustomFields, "bc-custom-content", "custom_fields"},
		{EndpointCustomEntries, "bc-custom-content", "custom_entries"},
		{EndpointCustomLinks, "bc-custom-content", "custom_links"},
		{EndpointCustomContents, "bc-custom-content", "custom_contents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			route, err := routes.Resolve(tt.name)
			require.NoError(t, err)
			assert.Equal(t, Route{Name: tt.name, Plugin: tt.plugin, Controller: tt.controller}, route)
		})
	}
}

func TestRouteRegistry_ResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := DefaultRoutes().Resolve("pages")
	require.ErrorIs(t, err, ErrUnknownEndpoint)
	assert.Contains(t, err.Error(), `"pages"`)

	var nilRegistry *RouteRegistry

	_, err = nilRegistry.Resolve(EndpointUsers)
	require.ErrorIs(t, err, ErrUnknownEndpoint)
	assert.Zero(t, nilRegistry.Len())
	assert.Nil(t, nilRegistry.Names())
}

func TestRouteRegistry_With(t *testing.T) {
	t.Parallel()

	base := DefaultRoutes()
	extended := base.With(
		Route{Name: "pages", Plugin: "baser-core", Controller: "pages"},
		Route{Name: EndpointUsers, Plugin: "baser-core", Controller: "members"},
	)

	assert.Equal(t, 10, base.Len())
	assert.Equal(t, 11, extended.Len())

	route, err := extended.Resolve(EndpointUsers)
	require.NoError(t, err)
	assert.Equal(t, "members", route.Controller)

	route, err = base.Resolve(EndpointUsers)
	require.NoError(t, err)
	assert.Equal(t, "users", route.Controller)
}

func TestRouteRegistry_NamesSorted(t *testing.T) {
	t.Parallel()

	routes := NewRouteRegistry(
		Route{Name: "b", Plugin: "p", Controller: "b"},
		Route{Name: "a", Plugin: "p", Controller: "a"},
	)

	assert.Equal(t, []string{"a", "b"}, routes.Names())
	assert.Equal(t, "a", routes.Routes()[0].Name)
}
