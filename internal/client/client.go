package client

import (
	"context"
	"errors"

	"github.com/fivetwenty-io/baser-client/internal/auth"
	baserhttp "github.com/fivetwenty-io/baser-client/internal/http"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

var _ baser.Client = (*Client)(nil)

// Client implements the baser.Client interface.
type Client struct {
	httpClient *baserhttp.Client
	session    *auth.Session
	auth       *auth.Manager
	dispatcher *Dispatcher

	// Resource clients
	blogPosts      *Resource[baser.BlogPost]
	blogCategories *BlogCategoriesClient
	blogContents   *Resource[baser.BlogContent]
	blogTags       *Resource[baser.BlogTag]
	users          *UsersClient
	customTables   *Resource[baser.CustomTable]
	customFields   *Resource[baser.CustomField]
	customLinks    *Resource[baser.CustomLink]
	customContents *Resource[baser.CustomContent]
}

// Option configures the client beyond baser.Config.
type Option func(*options)

type options struct {
	persister auth.TokenPersister
}

// WithTokenPersister saves every token issued by Login.
func WithTokenPersister(persister auth.TokenPersister) Option {
	return func(o *options) {
		o.persister = persister
	}
}

// createHTTPClientOptions builds HTTP client options from config. The TLS
// policy comes from the session.
func createHTTPClientOptions(config *baser.Config, session *auth.Session) []baserhttp.Option {
	httpOpts := []baserhttp.Option{
		baserhttp.WithSkipTLSVerify(session.SkipTLSVerify()),
		baserhttp.WithTimeout(config.HTTPTimeout),
		baserhttp.WithUserAgent(config.UserAgent),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, baserhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, baserhttp.WithDebug(true))
	}

	return httpOpts
}

// New creates a new baserCMS API client. An AccessToken in config is
// installed without contacting the server.
func New(config *baser.Config, opts ...Option) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	session := auth.NewSession(config.BaseURL, config.SkipTLSVerify)
	if config.AccessToken != "" {
		session.SetToken(config.AccessToken)
	}

	httpClient := baserhttp.NewClient(session.BaseURL(), session, createHTTPClientOptions(config, session)...)

	authOpts := []auth.ManagerOption{auth.WithLogger(config.Logger)}
	if o.persister != nil {
		authOpts = append(authOpts, auth.WithPersister(o.persister))
	}

	dispatcherOpts := []DispatcherOption{WithDispatcherLogger(config.Logger)}
	if config.Events != nil {
		dispatcherOpts = append(dispatcherOpts, WithEvents(config.Events))
	}

	client := &Client{
		httpClient: httpClient,
		session:    session,
		auth:       auth.NewManager(session, httpClient, authOpts...),
		dispatcher: NewDispatcher(httpClient, config.Routes, dispatcherOpts...),
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.blogPosts = NewResource(c.dispatcher, baser.EndpointBlogPosts, BlogPostsCodec(c.session.BaseURL()))
	c.blogCategories = NewBlogCategoriesClient(c.dispatcher)
	c.blogContents = NewResource(c.dispatcher, baser.EndpointBlogContents, EntityCodec[baser.BlogContent]{
		Singular: "blogContent",
		Plural:   "blogContents",
	})
	c.blogTags = NewResource(c.dispatcher, baser.EndpointBlogTags, EntityCodec[baser.BlogTag]{
		Singular: "blogTag",
		Plural:   "blogTags",
	})
	c.users = NewUsersClient(c.dispatcher)
	c.customTables = NewResource(c.dispatcher, baser.EndpointCustomTables, customTablesCodec)
	c.customFields = NewResource(c.dispatcher, baser.EndpointCustomFields, customFieldsCodec)
	c.customLinks = NewResource(c.dispatcher, baser.EndpointCustomLinks, customLinksCodec)
	c.customContents = NewResource(c.dispatcher, baser.EndpointCustomContents, customContentsCodec)
}

// Login exchanges email and password for a bearer token used by every later
// call.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.auth.Login(ctx, email, password)
}

// Logout forgets the bearer token.
func (c *Client) Logout() {
	c.auth.Logout()
}

// Authenticated reports whether a bearer token is installed.
func (c *Client) Authenticated() bool {
	return c.session.Authenticated()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.session.Token()
}

// BaseURL returns the site root.
func (c *Client) BaseURL() string {
	return c.session.BaseURL()
}

// Dispatch performs a generic API call.
func (c *Client) Dispatch(ctx context.Context, op baser.Operation, req *baser.CallRequest) (baser.Record, error) {
	return c.dispatcher.Dispatch(ctx, op, req)
}

// Routes returns the route registry.
func (c *Client) Routes() *baser.RouteRegistry {
	return c.dispatcher.Routes()
}

// BlogPosts returns the blog posts client.
func (c *Client) BlogPosts() baser.ResourceClient[baser.BlogPost] {
	return c.blogPosts
}

// BlogCategories returns the blog categories client.
func (c *Client) BlogCategories() baser.BlogCategoriesClient {
	return c.blogCategories
}

// BlogContents returns the blog contents client.
func (c *Client) BlogContents() baser.ResourceClient[baser.BlogContent] {
	return c.blogContents
}

// BlogTags returns the blog tags client.
func (c *Client) BlogTags() baser.ResourceClient[baser.BlogTag] {
	return c.blogTags
}

// Users returns the users client.
func (c *Client) Users() baser.UsersClient {
	return c.users
}

// CustomTables returns the custom tables client.
func (c *Client) CustomTables() baser.ResourceClient[baser.CustomTable] {
	return c.customTables
}

// CustomFields returns the custom fields client.
func (c *Client) CustomFields() baser.ResourceClient[baser.CustomField] {
	return c.customFields
}

// CustomEntries returns the client for the entries of custom table tableID.
func (c *Client) CustomEntries(tableID int) baser.ResourceClient[baser.CustomEntry] {
	return NewResource(c.dispatcher, baser.EndpointCustomEntries, CustomEntriesCodec(tableID))
}

// CustomLinks returns the custom links client.
func (c *Client) CustomLinks() baser.ResourceClient[baser.CustomLink] {
	return c.customLinks
}

// CustomContents returns the custom contents client.
func (c *Client) CustomContents() baser.ResourceClient[baser.CustomContent] {
	return c.customContents
}
