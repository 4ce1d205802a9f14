// Package baser provides types, interfaces, and helpers for working with the
// baserCMS REST API.
//
// # Overview
//
// The baser package defines the domain types (BlogPost, BlogCategory, User,
// CustomEntry and friends), the route registry that maps logical endpoint
// names to plugin and controller path segments, and the interfaces for
// resource-oriented clients. A concrete implementation is provided by the
// baserclient package, which wires configuration, transport and
// authentication. Most consumers should import baserclient to construct a
// client and then use the interfaces exposed here.
//
// Getting a client
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
//	  cli, err := baserclient.NewWithPassword(ctx, "https://example.com", "admin@example.com", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  posts, err := cli.BlogPosts().List(ctx, baser.Options{"limit": 10})
//	  if err != nil { log.Fatal(err) }
//	  _ = posts
//	}
//
// # Generic calls
//
// Every resource client is a thin layer over Dispatch, which accepts an
// endpoint name, an Operation, an optional record id, a payload and options:
//
//	rec, err := cli.Dispatch(ctx, baser.OpView, &baser.CallRequest{
//	  Endpoint: baser.EndpointBlogPosts,
//	  ID:       "1",
//	  Options:  baser.Admin(),
//	})
//
// Reads go to the admin API only when the options contain the "admin" key.
// Writes always go to the admin API. Remaining options are sent as query
// parameters on reads; writes send everything in the body. A payload holding
// a File, a []*File, a []byte or an io.Reader is sent as multipart/form-data,
// any other payload as JSON.
//
// # Errors
//
// Failures fall into three categories. ServiceUnavailableError covers
// connection failures and gateway statuses. ValidationError carries the
// remote field errors of a rejected write. APIError covers everything else.
// Classify, IsServiceUnavailable, IsValidation and ValidationErrors make it
// easy to branch on them.
package baser
