package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTestBroker = errors.New("broker down")

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *fakeConn) Publish(subj string, data []byte) error {
	c.subjects = append(c.subjects, subj)
	c.payloads = append(c.payloads, data)

	return c.err
}

func TestNewNATSPublisher(t *testing.T) {
	t.Parallel()

	_, err := NewNATSPublisher(nil, "")
	require.ErrorIs(t, err, ErrConnectionRequired)

	publisher, err := NewNATSPublisher(&fakeConn{}, "")
	require.NoError(t, err)
	assert.Equal(t, "baser", publisher.prefix)

	publisher, err = NewNATSPublisher(&fakeConn{}, "site.a.")
	require.NoError(t, err)
	assert.Equal(t, "site.a", publisher.prefix)
}

func TestNATSPublisher_Publish(t *testing.T) {
	t.Parallel()

	t.Run("publishes JSON on the event subject", func(t *testing.T) {
		t.Parallel()

		conn := &fakeConn{}
		publisher, err := NewNATSPublisher(conn, "")
		require.NoError(t, err)

		event := &baser.ChangeEvent{
			Endpoint:   baser.EndpointBlogPosts,
			Action:     "edit",
			ID:         "5",
			OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}

		require.NoError(t, publisher.Publish(context.Background(), event))
		require.Len(t, conn.subjects, 1)
		assert.Equal(t, "baser.blogPosts.edit", conn.subjects[0])

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(conn.payloads[0], &decoded))
		assert.Equal(t, "blogPosts", decoded["endpoint"])
		assert.Equal(t, "edit", decoded["action"])
		assert.Equal(t, "5", decoded["id"])
		assert.Equal(t, "2024-01-02T03:04:05Z", decoded["occurred_at"])
	})

	t.Run("wraps broker errors", func(t *testing.T) {
		t.Parallel()

		publisher, err := NewNATSPublisher(&fakeConn{err: errTestBroker}, "cms")
		require.NoError(t, err)

		err = publisher.Publish(context.Background(), &baser.ChangeEvent{Endpoint: "users", Action: "delete"})
		require.ErrorIs(t, err, errTestBroker)
		assert.Contains(t, err.Error(), "cms.users.delete")
	})

	t.Run("nil event", func(t *testing.T) {
		t.Parallel()

		publisher, err := NewNATSPublisher(&fakeConn{}, "")
		require.NoError(t, err)
		require.ErrorIs(t, publisher.Publish(context.Background(), nil), ErrEventRequired)
	})

	t.Run("cancelled context skips the broker", func(t *testing.T) {
		t.Parallel()

		conn := &fakeConn{}
		publisher, err := NewNATSPublisher(conn, "")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = publisher.Publish(ctx, &baser.ChangeEvent{Endpoint: "users", Action: "add"})
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, conn.subjects)
	})
}
