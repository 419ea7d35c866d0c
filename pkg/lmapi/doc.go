// Package lmapi defines the public types of the lmtk monitoring API client:
// the Client interface, per-instance configuration, the error taxonomy,
// filter expressions, protocol version resolution, and the response
// envelope/item model.
//
// Construct a working client with the lmclient package:
//
//	client, err := lmclient.New(&lmapi.Config{Account: "acme"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	devices, err := client.GetAll(ctx, "/device/devices", &lmapi.ListOptions{
//		Filter: lmapi.AttrFilter(lmapi.Attr{Attribute: "displayName:", Expression: "esxi"}),
//		Fields: []string{"id", "displayName"},
//	})
//
// Requests are signed with the tenant's LMv1 keypair, paged collections are
// accumulated transparently, rate limiting is absorbed by sleeping out the
// server's advertised window, and connection-layer failures are retried a
// bounded number of times. Every other failure surfaces as a typed *Error.
package lmapi
