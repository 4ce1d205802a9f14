package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/internal/events"
	"github.com/fivetwenty-io/baser-client/internal/logging"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/fivetwenty-io/baser-client/pkg/baserclient"
	"github.com/spf13/viper"
)

// CreateClient builds a client from the effective configuration. The
// returned cleanup func drains the event connection, if any.
func CreateClient(ctx context.Context) (baser.Client, func(), error) {
	config := loadConfig()
	if config.BaseURL == "" {
		return nil, func() {}, constants.ErrNoBaseURL
	}

	verbose := viper.GetBool(KeyVerbose)
	logger := logging.New(constants.LoggerName, verbose)

	clientConfig := &baser.Config{
		BaseURL:       config.BaseURL,
		AccessToken:   config.AccessToken,
		SkipTLSVerify: config.SkipSSLValidation,
		Debug:         verbose,
		Logger:        logger,
	}

	// Environment credentials log in when no token is stored.
	password := viper.GetString(KeyPassword)
	if config.AccessToken == "" && config.Email != "" && password != "" {
		clientConfig.Email = config.Email
		clientConfig.Password = password
	}

	cleanup := func() {}

	if config.NATSURL != "" {
		conn, err := events.Connect(config.NATSURL)
		if err != nil {
			return nil, cleanup, err
		}

		publisher, err := events.NewNATSPublisher(conn, config.SubjectPrefix)
		if err != nil {
			conn.Close()

			return nil, cleanup, err
		}

		clientConfig.Events = publisher
		cleanup = func() {
			drainErr := conn.Drain()
			if drainErr != nil {
				logger.Warn("Failed to drain NATS connection", map[string]interface{}{"error": drainErr.Error()})
			}
		}
	}

	client, err := baserclient.New(ctx, clientConfig, baserclient.WithTokenPersister(NewConfigPersister(configFilePath())))
	if err != nil {
		cleanup()

		return nil, func() {}, fmt.Errorf("failed to create client: %w", err)
	}

	return client, cleanup, nil
}
