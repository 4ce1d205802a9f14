// Package baserclient provides the primary entry point for constructing a
// baserCMS API client that implements the baser.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// resource interfaces and types defined in the baser package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/baser-client/pkg/baser"
//	  "github.com/fivetwenty-io/baser-client/pkg/baserclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just a site root (no auth).
//	  cli, err := baserclient.New(ctx, &baser.Config{BaseURL: "https://example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a token you already have:
//	  cli, err = baserclient.NewWithToken(ctx, "https://example.com", "eyJhbGciOi...")
//
//	  // Or with the email and password of an admin user. New logs in before
//	  // returning, so a failed login surfaces here.
//	  cli, err = baserclient.New(ctx, &baser.Config{
//	    BaseURL:  "example.com", // https:// is added
//	    Email:    "admin@example.com",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  tags, err := cli.BlogTags().List(ctx, nil)
//	  _ = tags
//	}
//
// Change events
//
// Set Config.Events to receive a baser.ChangeEvent after every successful
// write. The internal events package provides a NATS backed publisher used
// by the baser CLI.
package baserclient
