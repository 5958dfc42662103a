// Package stofware provides types, interfaces, and query-building
// helpers for working with the Stofware API.
//
// # Overview
//
// The stofware package defines the query vocabulary (operators, sort
// directions, aggregate functions, filter trees) and the interfaces for
// the client and its query builders (Client, ModelQuery, ViewQuery). A
// concrete implementation is provided by the swclient package, which
// wires configuration, transport, and authentication. Most consumers
// should import swclient to construct a client and then interact with
// the builder interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/stofloos/stofware-client-go/pkg/stofware"
//	  "github.com/stofloos/stofware-client-go/pkg/swclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := swclient.New(&stofware.Config{BaseURL: "https://api.example.com/api"})
//	  if err != nil { log.Fatal(err) }
//
//	  users, err := cli.Model("users").
//	    Filter("active", stofware.OpEQ, true).
//	    OrderBy("created_at", stofware.Desc).
//	    PageLimit(50).
//	    GetAll(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = users
//	}
//
// # Queries
//
// Builders accumulate query intent in a mutable QueryParams and send it
// on a terminal call (GetAll, GetSingle, Aggregate, Post, Put, Delete,
// and the bulk variants). Chaining returns the same builder instance:
// scalar keys are overwritten by the last call and sequence keys grow in
// call order. Nothing is validated against the remote schema; unknown
// field names travel to the service and fail there.
//
// # Errors
//
// Pre-flight input problems surface as *InputError, non-success HTTP
// statuses as *RequestError (status code plus raw body text), and
// malformed success bodies as *DecodeError. Helpers such as IsNotFound,
// IsUnauthorized, and IsInputError make it easy to branch on common
// cases.
package stofware
