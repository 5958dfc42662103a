// Package swclient wires configuration, transport, and token handling
// into a concrete stofware.Client. Most consumers construct a client
// here and then work with the builder interfaces from pkg/stofware:
//
//	cli, err := swclient.NewWithToken("https://api.example.com/api", token)
//	if err != nil { ... }
//
//	rows, err := cli.View("active_users").PageLimit(100).GetAll(ctx)
package swclient
