package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

const (
	userSingular = "user"
	userPlural   = "users"
)

// UsersClient manages baser-core users through the admin API.
type UsersClient struct {
	*Resource[baser.User]
}

// NewUsersClient creates a user client.
func NewUsersClient(dispatcher baser.Dispatcher) *UsersClient {
	return &UsersClient{
		Resource: NewResource(dispatcher, baser.EndpointUsers, EntityCodec[baser.User]{
			Singular: userSingular,
			Plural:   userPlural,
			Fixed:    baser.Admin(),
		}),
	}
}

// FindByEmail returns the user registered with email.
func (c *UsersClient) FindByEmail(ctx context.Context, email string) (*baser.User, error) {
	record, err := c.dispatcher.Dispatch(ctx, baser.OpList, &baser.CallRequest{
		Endpoint: c.endpoint,
		Options:  baser.Options{"email": email}.Merge(c.codec.Fixed),
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // dispatcher errors already carry the operation
	}

	if fields, ok := record[userSingular].(map[string]interface{}); ok {
		return c.codec.Decode(fields)
	}

	if users, ok := record[userPlural].([]interface{}); ok && len(users) > 0 {
		if fields, ok := users[0].(map[string]interface{}); ok {
			return c.codec.Decode(fields)
		}
	}

	return nil, fmt.Errorf("user %q: %w", email, baser.ErrRecordNotFound)
}
