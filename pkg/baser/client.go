package baser

import (
	"context"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ResourceClient is the CRUD surface shared by every resource type.
type ResourceClient[T any] interface {
	List(ctx context.Context, opts Options) ([]T, error)
	Get(ctx context.Context, id string, opts Options) (*T, error)
	Add(ctx context.Context, fields Record, opts Options) (*T, error)
	Create(ctx context.Context, entity *T, opts Options) (*T, error)
	Edit(ctx context.Context, id string, fields Record, opts Options) (*T, error)
	Delete(ctx context.Context, id string, opts Options) error
}

// UsersClient adds user lookups on top of the CRUD surface.
type UsersClient interface {
	ResourceClient[User]
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// BlogCategoriesClient adds per-blog listing on top of the CRUD surface.
type BlogCategoriesClient interface {
	ResourceClient[BlogCategory]
	ListByContent(ctx context.Context, blogContentID int, opts Options) ([]BlogCategory, error)
}

// BlogClients provides access to the bc-blog plugin resources.
type BlogClients interface {
	BlogPosts() ResourceClient[BlogPost]
	BlogCategories() BlogCategoriesClient
	BlogContents() ResourceClient[BlogContent]
	BlogTags() ResourceClient[BlogTag]
}

// CustomContentClients provides access to the bc-custom-content plugin resources.
type CustomContentClients interface {
	CustomTables() ResourceClient[CustomTable]
	CustomFields() ResourceClient[CustomField]
	CustomEntries(tableID int) ResourceClient[CustomEntry]
	CustomLinks() ResourceClient[CustomLink]
	CustomContents() ResourceClient[CustomContent]
}

// Dispatcher performs a single generic API call.
type Dispatcher interface {
	Dispatch(ctx context.Context, op Operation, req *CallRequest) (Record, error)
}

// Authenticator exchanges an identity for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Authenticated() bool
}

// Client is the full baserCMS API client.
type Client interface {
	Authenticator
	Dispatcher
	BlogClients
	CustomContentClients

	Users() UsersClient
	Routes() *RouteRegistry
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// EventPublisher receives a ChangeEvent after every successful write.
type EventPublisher interface {
	Publish(ctx context.Context, event *ChangeEvent) error
}

// Config represents client configuration for building a baser.Client.
//
// # Authentication
//
// Email and Password are exchanged for a bearer token by
// baserclient.NewWithPassword or by calling Login on the client. AccessToken,
// if set, is installed as-is. Without either, requests are sent
// unauthenticated and the remote API answers admin calls with 401.
//
// # TLS
//
// SkipTLSVerify disables certificate verification for every request made by
// the client, including login. It is an explicit opt-out meant for local
// installations with self-signed certificates and is never enabled implicitly.
type Config struct {
	// BaseURL is the site root, e.g. "https://example.com". baserclient.New
	// trims a trailing slash and adds "https://" when no scheme is present.
	BaseURL string

	// Email and Password identify the API user.
	Email    string
	Password string
	// AccessToken is a previously issued bearer token.
	AccessToken string

	// SkipTLSVerify disables certificate verification.
	SkipTLSVerify bool
	// HTTPTimeout bounds a single round trip. Zero uses the transport default.
	HTTPTimeout time.Duration
	// Debug logs every request and response when a Logger is set.
	Debug bool
	// Logger receives transport and event logs.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Routes replaces the default route registry.
	Routes *RouteRegistry
	// Events receives change events for successful writes.
	Events EventPublisher
}

// Validate checks that the configuration can produce a working client.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Email, validation.Required.When(c.Password != "").Error("is required when a password is set")),
		validation.Field(&c.Password, validation.Required.When(c.Email != "").Error("is required when an email is set")),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return err
	}

	return nil
}

func httpURL(value interface{}) error {
	raw, _ := value.(string)

	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidBaseURL
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidBaseURL
	}

	if parsed.Host == "" {
		return ErrInvalidBaseURL
	}

	return nil
}
