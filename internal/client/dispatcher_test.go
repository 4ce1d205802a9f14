package client

import (
	"context"
	"mime"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPath(t *testing.T) {
	t.Parallel()

	route := baser.Route{Name: "blogPosts", Plugin: "bc-blog", Controller: "blog_posts"}

	tests := []struct {
		name  string
		op    baser.Operation
		id    string
		admin bool
		want  string
	}{
		{name: "public index", op: baser.OpList, want: "/baser/api/bc-blog/blog_posts/index.json"},
		{name: "admin index", op: baser.OpList, admin: true, want: "/baser/api/admin/bc-blog/blog_posts/index.json"},
		{name: "view", op: baser.OpView, id: "7", want: "/baser/api/bc-blog/blog_posts/view/7.json"},
		{name: "add", op: baser.OpAdd, admin: true, want: "/baser/api/admin/bc-blog/blog_posts/add.json"},
		{name: "edit", op: baser.OpEdit, id: "7", admin: true, want: "/baser/api/admin/bc-blog/blog_posts/edit/7.json"},
		{name: "delete", op: baser.OpDelete, id: "7", admin: true, want: "/baser/api/admin/bc-blog/blog_posts/delete/7.json"},
		{name: "escaped id", op: baser.OpView, id: "a/b", want: "/baser/api/bc-blog/blog_posts/view/a%2Fb.json"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, BuildPath(route, testCase.op, testCase.id, testCase.admin))
		})
	}
}

func TestDispatch_UnknownEndpointNeverReachesNetwork(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	for _, op := range []baser.Operation{baser.OpList, baser.OpView, baser.OpAdd, baser.OpEdit, baser.OpDelete} {
		_, err := client.Dispatch(context.Background(), op, &baser.CallRequest{Endpoint: "blogComments", ID: "1"})
		require.ErrorIs(t, err, baser.ErrUnknownEndpoint)
		assert.Equal(t, baser.KindUnknownEndpoint, baser.Classify(err))
	}

	assert.Zero(t, rec.count())
}

func TestDispatch_RegisteredRoutesResolve(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	for _, route := range baser.DefaultRoutes().Routes() {
		_, err := client.Dispatch(context.Background(), baser.OpList, &baser.CallRequest{Endpoint: route.Name})
		require.NoError(t, err)
		assert.Equal(t, "/baser/api/"+route.Plugin+"/"+route.Controller+"/index.json", rec.last(t).Path)
	}
}

func TestDispatch_AdminOptionSelectsPrefixOnly(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	_, err := client.Dispatch(context.Background(), baser.OpList, &baser.CallRequest{
		Endpoint: baser.EndpointBlogPosts,
		Options:  baser.Options{"admin": true, "foo": "bar"},
	})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, "/baser/api/admin/bc-blog/blog_posts/index.json", req.Path)
	assert.Equal(t, "foo=bar", req.RawQuery)
}

func TestDispatch_AdminFalseStillSelectsAdmin(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	_, err := client.Dispatch(context.Background(), baser.OpView, &baser.CallRequest{
		Endpoint: baser.EndpointUsers,
		ID:       "1",
		Options:  baser.Options{"admin": false},
	})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, "/baser/api/admin/baser-core/users/view/1.json", req.Path)
	assert.Empty(t, req.RawQuery)
}

func TestDispatch_QueryEncoding(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	_, err := client.Dispatch(context.Background(), baser.OpList, &baser.CallRequest{
		Endpoint: baser.EndpointBlogPosts,
		Options: baser.Options{
			"status":   "publish",
			"limit":    10,
			"sort":     []string{"posted", "id"},
			"contents": nil,
			"draft":    false,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "draft=false&limit=10&sort=posted&sort=id&status=publish", rec.last(t).RawQuery)
}

func TestDispatch_IDRequired(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	for _, op := range []baser.Operation{baser.OpView, baser.OpEdit, baser.OpDelete} {
		_, err := client.Dispatch(context.Background(), op, &baser.CallRequest{Endpoint: baser.EndpointBlogPosts})
		require.ErrorIs(t, err, baser.ErrRecordIDRequired)
	}

	assert.Zero(t, rec.count())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestDispatch_WriteBodies(t *testing.T) {
	t.Parallel()

	t.Run("add sends the payload to the admin path", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		client := newTestClient(t, rec.server.URL)

		_, err := client.Dispatch(context.Background(), baser.OpAdd, &baser.CallRequest{
			Endpoint: baser.EndpointBlogTags,
			Payload:  baser.Record{"name": "go"},
		})
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/baser/api/admin/bc-blog/blog_tags/add.json", req.Path)
		assert.JSONEq(t, `{"name":"go"}`, string(req.Body))
	})

	t.Run("edit injects the id", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		client := newTestClient(t, rec.server.URL)

		_, err := client.Dispatch(context.Background(), baser.OpEdit, &baser.CallRequest{
			Endpoint: baser.EndpointBlogTags,
			ID:       "3",
			Payload:  baser.Record{"name": "golang"},
		})
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, "/baser/api/admin/bc-blog/blog_tags/edit/3.json", req.Path)
		assert.JSONEq(t, `{"name":"golang","id":"3"}`, string(req.Body))
	})

	t.Run("delete sends the id over the payload", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		client := newTestClient(t, rec.server.URL)

		_, err := client.Dispatch(context.Background(), baser.OpDelete, &baser.CallRequest{
			Endpoint: baser.EndpointBlogTags,
			ID:       "3",
			Payload:  baser.Record{"id": "99", "reason": "dup"},
		})
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/baser/api/admin/bc-blog/blog_tags/delete/3.json", req.Path)
		assert.JSONEq(t, `{"id":"3","reason":"dup"}`, string(req.Body))
	})

	t.Run("options on writes never reach the query", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		client := newTestClient(t, rec.server.URL)

		for _, op := range []baser.Operation{baser.OpAdd, baser.OpEdit, baser.OpDelete} {
			_, err := client.Dispatch(context.Background(), op, &baser.CallRequest{
				Endpoint: baser.EndpointBlogTags,
				ID:       "3",
				Payload:  baser.Record{"name": "go"},
				Options:  baser.Options{"admin": true, "foo": "bar"},
			})
			require.NoError(t, err)

			req := rec.last(t)
			assert.Empty(t, req.RawQuery, op.String())
			assert.NotContains(t, string(req.Body), "foo", op.String())
		}
	})
}

func TestDispatch_PayloadEncodingSelection(t *testing.T) {
	t.Parallel()

	t.Run("binary field forces multipart", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		client := newTestClient(t, rec.server.URL)

		_, err := client.Dispatch(context.Background(), baser.OpAdd, &baser.CallRequest{
			Endpoint: baser.EndpointBlogPosts,
			Payload: baser.Record{
				"title":     "Hello",
				"eye_catch": strings.NewReader("image-bytes"),
			},
		})
		require.NoError(t, err)

		req := rec.last(t)
		mediaType, params, err := mime.ParseMediaType(req.ContentType)
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)
		assert.Equal(t, 2, strings.Count(string(req.Body), "--"+params["boundary"]+"\r\n"))
	})

	t.Run("plain fields stay JSON", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		client := newTestClient(t, rec.server.URL)

		_, err := client.Dispatch(context.Background(), baser.OpAdd, &baser.CallRequest{
			Endpoint: baser.EndpointBlogPosts,
			Payload:  baser.Record{"title": "Hello"},
		})
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, "application/json", req.ContentType)
		assert.JSONEq(t, `{"title":"Hello"}`, string(req.Body))
	})
}

func TestDispatch_BearerAfterLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	seen := make(chan string, 3)

	mux.HandleFunc("/baser/api/admin/baser-core/users/login.json", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"access_token":"T1"}`))
	})
	mux.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		seen <- request.Header.Get("Authorization")

		_, _ = writer.Write([]byte(`{}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.Dispatch(ctx, baser.OpList, &baser.CallRequest{Endpoint: baser.EndpointBlogPosts})
	require.NoError(t, err)
	_, err = client.Dispatch(ctx, baser.OpView, &baser.CallRequest{Endpoint: baser.EndpointBlogTags, ID: "1"})
	require.NoError(t, err)
	_, err = client.Dispatch(ctx, baser.OpDelete, &baser.CallRequest{Endpoint: baser.EndpointUsers, ID: "1"})
	require.NoError(t, err)

	close(seen)

	for header := range seen {
		assert.Equal(t, "Bearer T1", header)
	}
}

func TestDispatch_ConnectionRefused(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client := newTestClient(t, "http://"+addr)

	_, err = client.Dispatch(context.Background(), baser.OpList, &baser.CallRequest{Endpoint: baser.EndpointBlogPosts})
	require.Error(t, err)
	assert.Equal(t, baser.KindServiceUnavailable, baser.Classify(err))
}

func TestDispatch_ValidationOnCreate(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusBadRequest, map[string]interface{}{
		"errors": map[string]interface{}{"title": []interface{}{"required"}},
	})
	client := newTestClient(t, rec.server.URL)

	_, err := client.Dispatch(context.Background(), baser.OpAdd, &baser.CallRequest{
		Endpoint: baser.EndpointBlogPosts,
		Payload:  baser.Record{},
	})
	require.Error(t, err)
	assert.Equal(t, baser.KindValidation, baser.Classify(err))

	fields, ok := baser.ValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"title": []interface{}{"required"}}, fields)
}

func TestDispatch_Events(t *testing.T) {
	t.Parallel()

	t.Run("successful writes publish", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		publisher := &fakePublisher{}
		client := newTestClient(t, rec.server.URL, func(c *baser.Config) { c.Events = publisher })

		ctx := context.Background()
		_, err := client.Dispatch(ctx, baser.OpList, &baser.CallRequest{Endpoint: baser.EndpointBlogPosts})
		require.NoError(t, err)
		_, err = client.Dispatch(ctx, baser.OpEdit, &baser.CallRequest{Endpoint: baser.EndpointBlogPosts, ID: "5"})
		require.NoError(t, err)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, baser.EndpointBlogPosts, publisher.events[0].Endpoint)
		assert.Equal(t, "edit", publisher.events[0].Action)
		assert.Equal(t, "5", publisher.events[0].ID)
		assert.False(t, publisher.events[0].OccurredAt.IsZero())
	})

	t.Run("publish failure is logged, not returned", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
		publisher := &fakePublisher{err: ErrTestPublish}
		logger := &memoryLogger{}
		client := newTestClient(t, rec.server.URL, func(c *baser.Config) {
			c.Events = publisher
			c.Logger = logger
		})

		_, err := client.Dispatch(context.Background(), baser.OpDelete, &baser.CallRequest{Endpoint: baser.EndpointBlogTags, ID: "1"})
		require.NoError(t, err)
		assert.Contains(t, logger.entries, "warn: Failed to publish change event")
	})

	t.Run("failed writes do not publish", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder(t, http.StatusInternalServerError, map[string]interface{}{"message": "boom"})
		publisher := &fakePublisher{}
		client := newTestClient(t, rec.server.URL, func(c *baser.Config) { c.Events = publisher })

		_, err := client.Dispatch(context.Background(), baser.OpAdd, &baser.CallRequest{Endpoint: baser.EndpointBlogTags})
		require.ErrorIs(t, err, baser.ErrRequestFailed)
		assert.Empty(t, publisher.events)
	})
}

func TestDispatch_FileSliceUploadsEveryFile(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	_, err := client.Dispatch(context.Background(), baser.OpAdd, &baser.CallRequest{
		Endpoint: baser.EndpointBlogPosts,
		Payload: baser.Record{
			"title": "x",
			"imgs":  []*baser.File{baser.NewFile("a.png", []byte("PNGDATA"))},
		},
	})
	require.NoError(t, err)

	req := rec.last(t)
	assert.True(t, strings.HasPrefix(req.ContentType, "multipart/form-data"))
	assert.Contains(t, string(req.Body), `filename="a.png"`)
	assert.Contains(t, string(req.Body), "PNGDATA")
}

func TestDispatch_NestedFileFailsBeforeSending(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t, http.StatusOK, map[string]interface{}{})
	client := newTestClient(t, rec.server.URL)

	_, err := client.Dispatch(context.Background(), baser.OpAdd, &baser.CallRequest{
		Endpoint: baser.EndpointBlogPosts,
		Payload: baser.Record{
			"title": "x",
			"imgs":  []interface{}{baser.NewFile("a.png", []byte("PNGDATA"))},
		},
	})
	require.ErrorIs(t, err, baser.ErrUnsupportedFieldValue)
	assert.Zero(t, rec.count())
}
